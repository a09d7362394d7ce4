package steps

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"

	"github.com/teresco/tm-dataproc/internal/application/concurrency"
	"github.com/teresco/tm-dataproc/internal/application/ingest"
	"github.com/teresco/tm-dataproc/internal/domain/corpus"
	"github.com/teresco/tm-dataproc/internal/domain/graph"
	"github.com/teresco/tm-dataproc/internal/domain/quadtree"
	"github.com/teresco/tm-dataproc/internal/domain/shared"
)

type quadtreeContext struct {
	sys     *corpus.HighwaySystem
	tree    *quadtree.Tree
	routes  map[string]*corpus.Route
	byLabel map[string]*corpus.Waypoint
	hg      *graph.HighwayGraph
	det     *concurrency.Detector

	splitTree  *quadtree.Tree
	pointCount int
}

func (c *quadtreeContext) reset() error {
	c.sys = corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	c.tree = quadtree.New()
	c.routes = make(map[string]*corpus.Route)
	c.byLabel = make(map[string]*corpus.Waypoint)
	c.hg = nil
	c.det = nil
	c.splitTree = nil
	c.pointCount = 0
	return nil
}

func (c *quadtreeContext) routeWithWaypoints(root string, table *godog.Table) error {
	route := corpus.NewRoute(c.sys, "nh", root, "", "", "", "r"+root, nil)
	c.routes[root] = route
	c.sys.Routes = append(c.sys.Routes, route)

	var b strings.Builder
	for _, row := range table.Rows[1:] {
		label := cellValue(table, row, "label")
		lat := cellValue(table, row, "lat")
		lng := cellValue(table, row, "lng")
		fmt.Fprintf(&b, "%s http://tm.example/wpt?lat=%s&lon=%s\n", label, lat, lng)
	}

	errs := shared.NewErrorList(nil)
	loader := ingest.NewRouteLoader(c.tree, &sync.Mutex{}, errs)
	if err := loader.Load(route, strings.NewReader(b.String())); err != nil {
		return err
	}
	if n := len(errs.All()); n > 0 {
		return fmt.Errorf("unexpected %d load error(s)", n)
	}
	for _, w := range route.Waypoints {
		c.byLabel[w.Label] = w
	}
	return nil
}

func (c *quadtreeContext) theRoutesAreLoadedIntoASharedQuadtree() error {
	c.det = concurrency.NewDetector()
	c.det.Run([]*corpus.HighwaySystem{c.sys})
	c.hg = graph.Build(c.tree, []*corpus.HighwaySystem{c.sys}, nil, nil)
	return nil
}

func (c *quadtreeContext) shareAColocationGroupOfSize(label1, label2 string, size int) error {
	w1, w2 := c.byLabel[label1], c.byLabel[label2]
	if w1 == nil || w2 == nil {
		return fmt.Errorf("unknown waypoint label")
	}
	if len(w1.Colocated) != size {
		return fmt.Errorf("expected colocation group of size %d, got %d", size, len(w1.Colocated))
	}
	if w2.Colocated[0] != w1.Colocated[0] {
		return fmt.Errorf("%s and %s do not share a colocation group", label1, label2)
	}
	return nil
}

func (c *quadtreeContext) theSimpleGraphHasVerticesAndEdges(vertices, edges int) error {
	sub := c.hg.Emit(graph.KindSimple, graph.Filter{})
	if len(sub.Vertices) != vertices {
		return fmt.Errorf("expected %d vertices, got %d", vertices, len(sub.Vertices))
	}
	if len(sub.Edges) != edges {
		return fmt.Errorf("expected %d edges, got %d", edges, len(sub.Edges))
	}
	return nil
}

func (c *quadtreeContext) thereAreConcurrentSegmentGroups(n int) error {
	count := 0
	for _, r := range c.routes {
		for _, s := range r.Segments {
			if s.Concurrent != nil && s.Concurrent[0] == s {
				count++
			}
		}
	}
	if count != n {
		return fmt.Errorf("expected %d concurrent group(s), got %d", n, count)
	}
	return nil
}

// testPoint is a minimal quadtree.Point for the split-invariant scenario,
// independent of the corpus.Waypoint arena.
type testPoint struct {
	lat, lng float64
	key      string
}

func (p testPoint) Coordinates() (float64, float64) { return p.lat, p.lng }
func (p testPoint) SortKey() string                 { return p.key }

func (c *quadtreeContext) nWaypointsAtUniqueLocations(n int) error {
	c.pointCount = n
	return nil
}

func (c *quadtreeContext) eachWaypointIsInsertedIntoAFreshQuadtree() error {
	c.splitTree = quadtree.New()
	for i := 0; i < c.pointCount; i++ {
		p := testPoint{lat: float64(i) * 0.001, lng: float64(i) * 0.001, key: strconv.Itoa(i)}
		c.splitTree.Insert(p, true)
	}
	return nil
}

func (c *quadtreeContext) theRootNodeHasRefinedIntoChildQuadrants(_ int) error {
	// The quadtree does not export its node structure, so this step checks
	// only that every inserted point is still stored after the split that
	// 51 unique points over leafCapacity=50 causes; the number of child
	// quadrants is not inspected.
	if c.splitTree.Size() != c.pointCount {
		return fmt.Errorf("expected tree size %d, got %d", c.pointCount, c.splitTree.Size())
	}
	return nil
}

func (c *quadtreeContext) theTreeHoldsExactlyUniqueLocations(n int) error {
	if len(c.splitTree.PointList()) != n {
		return fmt.Errorf("expected %d unique locations, got %d", n, len(c.splitTree.PointList()))
	}
	return nil
}

func cellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	for i, h := range table.Rows[0].Cells {
		if h.Value == columnName {
			return row.Cells[i].Value
		}
	}
	return ""
}

func InitializeQuadtreeScenario(ctx *godog.ScenarioContext) {
	c := &quadtreeContext{}
	ctx.Before(func(goCtx context.Context, sc *godog.Scenario) (context.Context, error) {
		return goCtx, c.reset()
	})

	ctx.Step(`^route "([^"]*)" with waypoints:$`, c.routeWithWaypoints)
	ctx.Step(`^the routes are loaded into a shared quadtree$`, c.theRoutesAreLoadedIntoASharedQuadtree)
	ctx.Step(`^"([^"]*)" and "([^"]*)" share a colocation group of size (\d+)$`, c.shareAColocationGroupOfSize)
	ctx.Step(`^the simple graph has (\d+) vertices and (\d+) edges$`, c.theSimpleGraphHasVerticesAndEdges)
	ctx.Step(`^there are (\d+) concurrent segment groups$`, c.thereAreConcurrentSegmentGroups)

	ctx.Step(`^(\d+) waypoints at unique locations within the root bounds$`, c.nWaypointsAtUniqueLocations)
	ctx.Step(`^each waypoint is inserted into a fresh quadtree$`, c.eachWaypointIsInsertedIntoAFreshQuadtree)
	ctx.Step(`^the root node has refined into exactly (\d+) child quadrants$`, c.theRootNodeHasRefinedIntoChildQuadrants)
	ctx.Step(`^the tree holds exactly (\d+) unique locations$`, c.theTreeHoldsExactlyUniqueLocations)
}
