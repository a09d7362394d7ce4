package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
	"github.com/teresco/tm-dataproc/internal/domain/graph"
	"github.com/teresco/tm-dataproc/internal/domain/quadtree"
)

type vertexNamingContext struct {
	tree     *quadtree.Tree
	systems  []*corpus.HighwaySystem
	hg       *graph.HighwayGraph
	labelled []*corpus.Waypoint
}

func (c *vertexNamingContext) reset() error {
	c.tree = quadtree.New()
	c.systems = nil
	c.hg = nil
	c.labelled = nil
	return nil
}

// threeActiveSystemsCollide builds three single-waypoint, same-region,
// same-route-name vertices with an identical naming candidate
// ("20@X", the single-member candidateName form), inserted at three
// distinct locations so all three become distinct vertices that must be
// disambiguated against one another.
func (c *vertexNamingContext) threeActiveSystemsCollide(label, routeName, region string) error {
	for i := 0; i < 3; i++ {
		sys := corpus.NewHighwaySystem(fmt.Sprintf("sys%d", i), "USA", "Test System", "black", 1, corpus.LevelActive)
		route := corpus.NewRoute(sys, region, routeName, "", "", "", fmt.Sprintf("%s.sys%d%s", region, i, routeName), nil)
		w := corpus.NewWaypoint(label, nil, float64(i), float64(i), route)
		c.tree.Insert(w, true)
		route.AddWaypoint(w)
		sys.Routes = []*corpus.Route{route}
		c.systems = append(c.systems, sys)
		c.labelled = append(c.labelled, w)
	}
	return nil
}

func (c *vertexNamingContext) theGraphIsBuilt() error {
	c.hg = graph.Build(c.tree, c.systems, nil, nil)
	return nil
}

func (c *vertexNamingContext) theNthVertexIsNamed(ordinal int, want string) error {
	if ordinal < 1 || ordinal > len(c.labelled) {
		return fmt.Errorf("no waypoint at ordinal %d", ordinal)
	}
	w := c.labelled[ordinal-1]
	v, ok := c.hg.ByWaypoint[w]
	if !ok {
		return fmt.Errorf("waypoint %d has no vertex", ordinal)
	}
	if v.Name != want {
		return fmt.Errorf("expected vertex name %q, got %q", want, v.Name)
	}
	return nil
}

func InitializeVertexNamingScenario(ctx *godog.ScenarioContext) {
	c := &vertexNamingContext{}
	ctx.Before(func(goCtx context.Context, sc *godog.Scenario) (context.Context, error) {
		return goCtx, c.reset()
	})

	ctx.Step(`^3 active systems each with a single waypoint labeled "([^"]*)" on route "([^"]*)" in region "([^"]*)"$`, c.threeActiveSystemsCollide)
	ctx.Step(`^the naming graph is built$`, c.theGraphIsBuilt)
	ctx.Step(`^the first vertex is named "([^"]*)"$`, func(name string) error { return c.theNthVertexIsNamed(1, name) })
	ctx.Step(`^the second vertex is named "([^"]*)"$`, func(name string) error { return c.theNthVertexIsNamed(2, name) })
	ctx.Step(`^the third vertex is named "([^"]*)"$`, func(name string) error { return c.theNthVertexIsNamed(3, name) })
}
