package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
	"github.com/teresco/tm-dataproc/internal/domain/graph"
	"github.com/teresco/tm-dataproc/internal/domain/quadtree"
	"github.com/teresco/tm-dataproc/internal/domain/traveler"
)

type graphCollapseContext struct {
	tree *quadtree.Tree
	sys  *corpus.HighwaySystem
	segs map[string]*corpus.HighwaySegment
	wps  map[string]*corpus.Waypoint
	hg   *graph.HighwayGraph
}

func (c *graphCollapseContext) reset() error {
	c.tree = quadtree.New()
	c.sys = corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	c.segs = make(map[string]*corpus.HighwaySegment)
	c.wps = make(map[string]*corpus.Waypoint)
	c.hg = nil
	return nil
}

func (c *graphCollapseContext) routeThroughHiddenWaypoint(from, to, hidden string) error {
	route := corpus.NewRoute(c.sys, "nh", "20", "", "", "", "r1", nil)
	a := corpus.NewWaypoint(from, nil, 0, 0, route)
	h := corpus.NewWaypoint("+"+hidden, nil, 1, 1, route)
	b := corpus.NewWaypoint(to, nil, 2, 2, route)

	c.tree.Insert(a, true)
	c.tree.Insert(h, true)
	c.tree.Insert(b, true)

	route.AddWaypoint(a)
	seg1 := route.AddWaypoint(h)
	seg2 := route.AddWaypoint(b)
	c.sys.Routes = []*corpus.Route{route}

	c.wps[from], c.wps[hidden], c.wps[to] = a, h, b
	c.segs["first"], c.segs["second"] = seg1, seg2
	return nil
}

func (c *graphCollapseContext) bothSegmentsClinchedBySameTravelers() error {
	t := traveler.NewList("alice")
	c.segs["first"].MarkClinched(t)
	c.segs["second"].MarkClinched(t)
	return nil
}

func (c *graphCollapseContext) onlyTheFirstSegmentClinchedByATraveler() error {
	t := traveler.NewList("alice")
	c.segs["first"].MarkClinched(t)
	return nil
}

func (c *graphCollapseContext) theGraphIsBuiltForCollapse() error {
	c.hg = graph.Build(c.tree, []*corpus.HighwaySystem{c.sys}, []string{"alice"}, nil)
	return nil
}

func (c *graphCollapseContext) staysHiddenInTheCollapsedGraph(label string) error {
	v := c.hg.ByWaypoint[c.wps[label]]
	if v == nil {
		return fmt.Errorf("no vertex for %s", label)
	}
	sub := c.hg.Emit(graph.KindCollapsed, graph.Filter{})
	for _, cv := range sub.Vertices {
		if cv == v {
			return fmt.Errorf("%s unexpectedly visible in the collapsed graph", label)
		}
	}
	return nil
}

func (c *graphCollapseContext) staysHiddenInTheTraveledGraph(label string) error {
	v := c.hg.ByWaypoint[c.wps[label]]
	if v.Vis != graph.VisibilityHidden {
		return fmt.Errorf("%s expected hidden, got visibility %d", label, v.Vis)
	}
	return nil
}

func (c *graphCollapseContext) becomesVisibleInTheTraveledGraph(label string) error {
	v := c.hg.ByWaypoint[c.wps[label]]
	if v.Vis != graph.VisibilityTraveledOnly {
		return fmt.Errorf("%s expected traveled-only visibility, got %d", label, v.Vis)
	}
	sub := c.hg.Emit(graph.KindTraveled, graph.Filter{})
	found := false
	for _, tv := range sub.Vertices {
		if tv == v {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%s not present in the emitted traveled subgraph", label)
	}
	return nil
}

func (c *graphCollapseContext) theTraveledGraphHasOneEdgeShapedThrough(from, to, shaping string) error {
	sub := c.hg.Emit(graph.KindTraveled, graph.Filter{})
	vFrom, vTo, vShape := c.hg.ByWaypoint[c.wps[from]], c.hg.ByWaypoint[c.wps[to]], c.hg.ByWaypoint[c.wps[shaping]]
	for _, e := range sub.Edges {
		if (e.V1 == vFrom && e.V2 == vTo) || (e.V1 == vTo && e.V2 == vFrom) {
			for _, shape := range e.Shaping {
				if shape == vShape {
					return nil
				}
			}
			return fmt.Errorf("edge %s-%s found but %s is not a shaping point", from, to, shaping)
		}
	}
	return fmt.Errorf("no traveled edge between %s and %s", from, to)
}

func InitializeTraveledCollapseScenario(ctx *godog.ScenarioContext) {
	c := &graphCollapseContext{}
	ctx.Before(func(goCtx context.Context, sc *godog.Scenario) (context.Context, error) {
		return goCtx, c.reset()
	})

	ctx.Step(`^a route "([^"]*)" to "([^"]*)" through hidden waypoint "([^"]*)"$`, c.routeThroughHiddenWaypoint)
	ctx.Step(`^both segments are clinched by the same travelers$`, c.bothSegmentsClinchedBySameTravelers)
	ctx.Step(`^only the first segment is clinched by a traveler$`, c.onlyTheFirstSegmentClinchedByATraveler)
	ctx.Step(`^the graph is built$`, c.theGraphIsBuiltForCollapse)
	ctx.Step(`^"([^"]*)" stays hidden in the collapsed graph$`, c.staysHiddenInTheCollapsedGraph)
	ctx.Step(`^"([^"]*)" stays hidden in the traveled graph$`, c.staysHiddenInTheTraveledGraph)
	ctx.Step(`^"([^"]*)" becomes visible in the traveled graph$`, c.becomesVisibleInTheTraveledGraph)
	ctx.Step(`^the traveled graph has one edge between "([^"]*)" and "([^"]*)" shaped through "([^"]*)"$`, c.theTraveledGraphHasOneEdgeShapedThrough)
}
