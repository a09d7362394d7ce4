package concurrency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
)

func colocate(pts ...*corpus.Waypoint) {
	for _, p := range pts {
		p.Colocated = pts
	}
}

func TestDetectorUnionsConcurrentSegments(t *testing.T) {
	sys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)

	r1 := corpus.NewRoute(sys, "nh", "20", "", "", "", "r1", nil)
	a := corpus.NewWaypoint("A", nil, 0, 0, nil)
	b := corpus.NewWaypoint("B", nil, 1, 1, nil)
	r1.AddWaypoint(a)
	seg1 := r1.AddWaypoint(b)

	r2 := corpus.NewRoute(sys, "nh", "30", "", "", "", "r2", nil)
	c := corpus.NewWaypoint("C", nil, 0, 0, nil)
	d := corpus.NewWaypoint("D", nil, 1, 1, nil)
	r2.AddWaypoint(c)
	seg2 := r2.AddWaypoint(d)

	colocate(a, c)
	colocate(b, d)

	sys.Routes = []*corpus.Route{r1, r2}

	det := NewDetector()
	det.Run([]*corpus.HighwaySystem{sys})

	require.NotNil(t, seg1.Concurrent)
	require.NotNil(t, seg2.Concurrent)
	assert.ElementsMatch(t, []*corpus.HighwaySegment{seg1, seg2}, seg1.Concurrent)
	assert.Equal(t, seg1.Concurrent, seg2.Concurrent, "both segments must share the same concurrency list")
	assert.Len(t, det.Log(), 1)
}

func TestDetectorLeavesUniqueSegmentsAlone(t *testing.T) {
	sys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	r1 := corpus.NewRoute(sys, "nh", "20", "", "", "", "r1", nil)
	a := corpus.NewWaypoint("A", nil, 0, 0, nil)
	b := corpus.NewWaypoint("B", nil, 5, 5, nil)
	r1.AddWaypoint(a)
	seg := r1.AddWaypoint(b)
	sys.Routes = []*corpus.Route{r1}

	det := NewDetector()
	det.Run([]*corpus.HighwaySystem{sys})

	assert.Nil(t, seg.Concurrent)
	assert.Empty(t, det.Log())
}
