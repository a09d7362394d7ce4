package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
)

func TestEdgeNameJoinsConcurrentRoutesSorted(t *testing.T) {
	sys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	r1 := corpus.NewRoute(sys, "nh", "30", "", "", "", "r1", nil)
	r2 := corpus.NewRoute(sys, "nh", "20", "", "", "", "r2", nil)

	w1 := corpus.NewWaypoint("A", nil, 0, 0, nil)
	w2 := corpus.NewWaypoint("B", nil, 1, 1, nil)
	r1.AddWaypoint(w1)
	seg1 := r1.AddWaypoint(w2)
	r2.AddWaypoint(w1)
	seg2 := r2.AddWaypoint(w2)

	group := []*corpus.HighwaySegment{seg1, seg2}
	seg1.Concurrent = group
	seg2.Concurrent = group

	e := &Edge{Segments: []*corpus.HighwaySegment{seg1}}
	assert.Equal(t, "20,30", e.Name())
}

func TestEdgeNameExcludesDevelSystemRoutes(t *testing.T) {
	activeSys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	develSys := corpus.NewHighwaySystem("devel", "USA", "Devel System", "red", 1, corpus.LevelDevel)
	r1 := corpus.NewRoute(activeSys, "nh", "20", "", "", "", "r1", nil)
	r2 := corpus.NewRoute(develSys, "nh", "99", "", "", "", "r2", nil)

	w1 := corpus.NewWaypoint("A", nil, 0, 0, nil)
	w2 := corpus.NewWaypoint("B", nil, 1, 1, nil)
	r1.AddWaypoint(w1)
	seg1 := r1.AddWaypoint(w2)
	r2.AddWaypoint(w1)
	seg2 := r2.AddWaypoint(w2)

	group := []*corpus.HighwaySegment{seg1, seg2}
	seg1.Concurrent = group
	seg2.Concurrent = group

	e := &Edge{Segments: []*corpus.HighwaySegment{seg1}}
	assert.Equal(t, "20", e.Name(), "devel-system concurrent members never appear in the edge label")
}

func TestEdgeRegionAndLength(t *testing.T) {
	sys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	r := corpus.NewRoute(sys, "vt", "100", "", "", "", "r1", nil)
	w1 := corpus.NewWaypoint("A", nil, 0, 0, nil)
	w2 := corpus.NewWaypoint("B", nil, 1, 1, nil)
	r.AddWaypoint(w1)
	seg := r.AddWaypoint(w2)

	e := &Edge{Segments: []*corpus.HighwaySegment{seg}}
	assert.Equal(t, "vt", e.Region())
	assert.Equal(t, seg.Length, e.Length())
}

func TestEdgeRouteSystemPairsDeduplicates(t *testing.T) {
	sys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	r := corpus.NewRoute(sys, "nh", "20", "", "", "", "r1", nil)
	w1 := corpus.NewWaypoint("A", nil, 0, 0, nil)
	w2 := corpus.NewWaypoint("B", nil, 1, 1, nil)
	w3 := corpus.NewWaypoint("C", nil, 2, 2, nil)
	r.AddWaypoint(w1)
	seg1 := r.AddWaypoint(w2)
	seg2 := r.AddWaypoint(w3)

	e := &Edge{Segments: []*corpus.HighwaySegment{seg1, seg2}}
	pairs := e.RouteSystemPairs()
	assert.Equal(t, [][2]string{{"20", "ncn"}}, pairs)
}
