package steps

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cucumber/godog"

	"github.com/teresco/tm-dataproc/internal/application/concurrency"
	"github.com/teresco/tm-dataproc/internal/application/ingest"
	"github.com/teresco/tm-dataproc/internal/application/mileage"
	"github.com/teresco/tm-dataproc/internal/application/travel"
	"github.com/teresco/tm-dataproc/internal/domain/corpus"
	"github.com/teresco/tm-dataproc/internal/domain/quadtree"
	"github.com/teresco/tm-dataproc/internal/domain/shared"
	"github.com/teresco/tm-dataproc/internal/domain/traveler"
)

type concurrencyMileageContext struct {
	sys     *corpus.HighwaySystem
	tree    *quadtree.Tree
	routes  map[string]*corpus.Route
	byLabel map[string]*corpus.Waypoint
	list    *traveler.List

	segShared *corpus.HighwaySegment
	segOther  *corpus.HighwaySegment
	agg       *mileage.Aggregator
}

func (c *concurrencyMileageContext) reset() error {
	c.sys = corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	c.tree = quadtree.New()
	c.routes = make(map[string]*corpus.Route)
	c.byLabel = make(map[string]*corpus.Waypoint)
	c.list = nil
	c.segShared = nil
	c.segOther = nil
	c.agg = nil
	return nil
}

func (c *concurrencyMileageContext) concurrentRouteWithWaypoints(root string, table *godog.Table) error {
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

func (c *concurrencyMileageContext) concurrencyDetectionRuns() error {
	det := concurrency.NewDetector()
	det.Run([]*corpus.HighwaySystem{c.sys})
	return nil
}

func (c *concurrencyMileageContext) travelerClinchesRouteFromTo(name, root, from, to string) error {
	for _, r := range c.routes {
		r.BuildLabelHashes()
	}
	c.list = traveler.NewList(name)
	c.list.Entries = []traveler.Entry{{
		Raw:       fmt.Sprintf("nh %s %s %s", root, from, to),
		Region1:   "nh",
		Route1:    root,
		Waypoint1: from,
		Waypoint2: to,
	}}

	idx := travel.NewRouteIndex([]*corpus.HighwaySystem{c.sys})
	travel.NewResolver(idx).ResolveAll(c.list)
	return nil
}

func (c *concurrencyMileageContext) routeSegmentFromToIsClinchedBy(root, from, to, name string) error {
	route := c.routes[root]
	for _, s := range route.Segments {
		if (s.Waypoint1.Label == from && s.Waypoint2.Label == to) || (s.Waypoint1.Label == to && s.Waypoint2.Label == from) {
			for clincher := range s.ClinchedBy {
				if clincher.Name() == name {
					return nil
				}
			}
			return fmt.Errorf("segment %s/%s on route %s not clinched by %s", from, to, root, name)
		}
	}
	return fmt.Errorf("no segment %s/%s on route %s", from, to, root)
}

func (c *concurrencyMileageContext) sharedSegment(miles float64) error {
	r1 := corpus.NewRoute(c.sys, "nh", "20", "", "", "", "r1", nil)
	r2 := corpus.NewRoute(c.sys, "nh", "30", "", "", "", "r2", nil)
	w1 := corpus.NewWaypoint("A", nil, 0, 0, nil)
	w2 := corpus.NewWaypoint("B", nil, 1, 0, nil)
	w3 := corpus.NewWaypoint("C", nil, 0, 0, nil)
	w4 := corpus.NewWaypoint("D", nil, 1, 0, nil)
	r1.AddWaypoint(w1)
	seg1 := r1.AddWaypoint(w2)
	r2.AddWaypoint(w3)
	seg2 := r2.AddWaypoint(w4)

	// Force the physical length to the literal scenario value rather than
	// depending on the haversine distance between the chosen coordinates.
	// Route.Mileage was already accumulated from the pre-override length in
	// AddWaypoint, so it must be corrected here too.
	seg1.Length = miles
	seg2.Length = miles
	r1.Mileage = miles
	r2.Mileage = miles

	group := []*corpus.HighwaySegment{seg1, seg2}
	seg1.Concurrent, seg2.Concurrent = group, group
	c.sys.Routes = []*corpus.Route{r1, r2}
	c.routes["20"], c.routes["30"] = r1, r2
	c.segShared, c.segOther = seg1, seg2
	return nil
}

func (c *concurrencyMileageContext) theMileageAggregatorRuns() error {
	c.agg = mileage.NewAggregator()
	c.agg.Run([]*corpus.HighwaySystem{c.sys})
	return nil
}

func (c *concurrencyMileageContext) eachRoutesOwnMileageIs(miles float64) error {
	for _, r := range c.routes {
		if r.Mileage != miles {
			return fmt.Errorf("route %s: expected mileage %v, got %v", r.Root, miles, r.Mileage)
		}
	}
	return nil
}

func (c *concurrencyMileageContext) theRegionsActivePreviewMileageTotalIsMiles(miles float64) error {
	got := c.agg.Totals.ActivePreview["nh"]
	if got != miles {
		return fmt.Errorf("expected active-preview total %v, got %v", miles, got)
	}
	return nil
}

func (c *concurrencyMileageContext) aTravelerWhoClinchedEitherRouteIsCreditedMilesInThatRegion(miles float64) error {
	for _, r := range c.routes {
		r.BuildLabelHashes()
	}
	t := traveler.NewList("bob")
	t.Entries = []traveler.Entry{{
		Raw:       "nh 20 A B",
		Region1:   "nh",
		Route1:    "20",
		Waypoint1: "A",
		Waypoint2: "B",
	}}
	idx := travel.NewRouteIndex([]*corpus.HighwaySystem{c.sys})
	travel.NewResolver(idx).ResolveAll(t)

	agg := mileage.NewAggregator()
	agg.Run([]*corpus.HighwaySystem{c.sys})

	if t.ActivePreviewByRegion["nh"] != miles {
		return fmt.Errorf("expected traveler credit %v, got %v", miles, t.ActivePreviewByRegion["nh"])
	}
	return nil
}

func InitializeConcurrencyAndMileageScenario(ctx *godog.ScenarioContext) {
	c := &concurrencyMileageContext{}
	ctx.Before(func(goCtx context.Context, sc *godog.Scenario) (context.Context, error) {
		return goCtx, c.reset()
	})

	ctx.Step(`^concurrent route "([^"]*)" with waypoints:$`, c.concurrentRouteWithWaypoints)
	ctx.Step(`^concurrency detection runs$`, c.concurrencyDetectionRuns)
	ctx.Step(`^traveler "([^"]*)" clinches route "([^"]*)" from "([^"]*)" to "([^"]*)"$`, c.travelerClinchesRouteFromTo)
	ctx.Step(`^route "([^"]*)"'s segment from "([^"]*)" to "([^"]*)" is clinched by "([^"]*)"$`, c.routeSegmentFromToIsClinchedBy)

	ctx.Step(`^a (\d+) mile active segment shared by two active-or-preview routes$`, func(miles int) error { return c.sharedSegment(float64(miles)) })
	ctx.Step(`^the mileage aggregator runs$`, c.theMileageAggregatorRuns)
	ctx.Step(`^each route's own mileage is (\d+) miles$`, func(miles int) error { return c.eachRoutesOwnMileageIs(float64(miles)) })
	ctx.Step(`^the region's active-preview mileage total is (\d+) miles$`, func(miles int) error {
		return c.theRegionsActivePreviewMileageTotalIsMiles(float64(miles))
	})
	ctx.Step(`^a traveler who clinched either route is credited (\d+) miles in that region$`, func(miles int) error {
		return c.aTravelerWhoClinchedEitherRouteIsCreditedMilesInThatRegion(float64(miles))
	})
}
