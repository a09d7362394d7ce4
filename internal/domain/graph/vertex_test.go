package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
)

func activeRoute(name string) *corpus.Route {
	sys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	r := corpus.NewRoute(sys, "nh", name, "", "", "", "r-"+name, nil)
	return r
}

func wpOnRoute(r *corpus.Route, label string) *corpus.Waypoint {
	w := corpus.NewWaypoint(label, nil, 0, 0, nil)
	w.Route = r
	return w
}

func TestCandidateNameSingleMember(t *testing.T) {
	r := activeRoute("20")
	w := wpOnRoute(r, "Exit5")
	name := candidateName([]*corpus.Waypoint{w})
	assert.Equal(t, "20@Exit5", name)
}

func TestCandidateNameSameLabelJoinsRouteNames(t *testing.T) {
	r1 := activeRoute("20")
	r2 := activeRoute("30")
	a := wpOnRoute(r1, "JctAB")
	b := wpOnRoute(r2, "JctAB")

	name := candidateName([]*corpus.Waypoint{a, b})
	assert.Equal(t, "20/30@JctAB", name)
}

func TestCandidateNameCrossReferencingLabelsJoinWithSlash(t *testing.T) {
	r1 := activeRoute("20")
	r2 := activeRoute("30")
	a := wpOnRoute(r1, "Jct30")
	b := wpOnRoute(r2, "Jct20")

	name := candidateName([]*corpus.Waypoint{a, b})
	assert.Equal(t, "Jct30/Jct20", name)
}

func TestCandidateNameFallsBackToAmpersandJoin(t *testing.T) {
	r1 := activeRoute("20")
	r2 := activeRoute("30")
	a := wpOnRoute(r1, "North")
	b := wpOnRoute(r2, "South")

	name := candidateName([]*corpus.Waypoint{a, b})
	assert.Equal(t, "20@North&30@South", name)
}

func TestQualifiesRequiresActiveOrPreviewMember(t *testing.T) {
	active := activeRoute("20")
	w := wpOnRoute(active, "A")
	assert.True(t, qualifies(w))

	devel := corpus.NewRoute(corpus.NewHighwaySystem("x", "USA", "X", "red", 1, corpus.LevelDevel), "nh", "99", "", "", "", "r-99", nil)
	w2 := wpOnRoute(devel, "B")
	assert.False(t, qualifies(w2))
}

func TestDisambiguateAppendsRegionThenBang(t *testing.T) {
	g := &HighwayGraph{}
	r := activeRoute("20")
	w := wpOnRoute(r, "A")

	taken := map[string]bool{"20@A": true}
	name := g.disambiguate("20@A", w, taken)
	assert.Equal(t, "20@A|nh", name)

	taken["20@A|nh"] = true
	name = g.disambiguate("20@A", w, taken)
	assert.Equal(t, "20@A!", name, "appends '!' once both the candidate and region-suffixed names are taken")
}
