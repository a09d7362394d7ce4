// Package travel implements TravelListResolver: matching a
// user's parsed travel entries against the loaded corpus, recording
// clinches, and running the post-resolution concurrency augmentation pass.
package travel

import (
	"strings"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
	"github.com/teresco/tm-dataproc/internal/domain/traveler"
)

// RouteIndex looks routes up by their "REGION ROUTE" key,
// built once from every loaded system's primary and alt route names.
type RouteIndex struct {
	primary map[string]*corpus.Route
	alt     map[string]*corpus.Route
}

// NewRouteIndex builds a RouteIndex over every route of every system.
func NewRouteIndex(systems []*corpus.HighwaySystem) *RouteIndex {
	idx := &RouteIndex{
		primary: make(map[string]*corpus.Route),
		alt:     make(map[string]*corpus.Route),
	}
	for _, sys := range systems {
		for _, r := range sys.Routes {
			idx.primary[r.Key()] = r
		}
	}
	for _, sys := range systems {
		for _, r := range sys.Routes {
			for _, k := range r.AltKeys() {
				if _, exists := idx.primary[k]; exists {
					continue
				}
				idx.alt[k] = r
			}
		}
	}
	return idx
}

// Lookup resolves a "region route" pair, reporting whether the hit came
// through the alt-name table (a "deprecated route name" condition).
func (idx *RouteIndex) Lookup(region, route string) (r *corpus.Route, viaAlt, ok bool) {
	key := strings.ToUpper(region) + " " + strings.ToUpper(route)
	if r, found := idx.primary[key]; found {
		return r, false, true
	}
	if r, found := idx.alt[key]; found {
		return r, true, true
	}
	return nil, false, false
}

// Resolver resolves one TravelerList's entries against a RouteIndex.
type Resolver struct {
	routes *RouteIndex
}

// NewResolver builds a Resolver over routes.
func NewResolver(routes *RouteIndex) *Resolver {
	return &Resolver{routes: routes}
}

// ResolveAll resolves every entry of t, recording clinches on t and logging
// diagnostics to t.Log, then runs the concurrency augmentation pass for t.
func (r *Resolver) ResolveAll(t *traveler.List) {
	for _, e := range t.Entries {
		if e.CrossRoute {
			r.resolveCrossRoute(t, e)
		} else {
			r.resolveSameRoute(t, e)
		}
	}
	r.augmentConcurrency(t)
}

func (r *Resolver) resolveSameRoute(t *traveler.List, e traveler.Entry) {
	route, viaAlt, ok := r.routes.Lookup(e.Region1, e.Route1)
	if !ok {
		t.Logf("unknown region/highway combo: %s %s", e.Region1, e.Route1)
		return
	}
	if viaAlt {
		t.Logf("deprecated route name: %s %s", e.Region1, e.Route1)
	}
	if route.System != nil && !route.System.Level.Clinchable() {
		t.Logf("ignored devel-system entry: %s %s", e.Region1, e.Route1)
		return
	}

	i1, ok1, dup1, viaAlt1 := route.FindWaypoint(e.Waypoint1)
	i2, ok2, dup2, viaAlt2 := route.FindWaypoint(e.Waypoint2)

	if dup1 || dup2 {
		t.Logf("duplicate label on route %s, cannot disambiguate: %s", route.Root, e.Raw)
		return
	}
	if !ok1 || !ok2 {
		t.Logf("waypoint not found on route %s: %s", route.Root, e.Raw)
		return
	}
	if i1 == i2 {
		t.Logf("zero distance: %s %s", e.Waypoint1, e.Waypoint2)
		return
	}

	lo, hi := i1, i2
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := lo; i < hi; i++ {
		t.Clinch(route.Segments[i])
	}

	route.MarkListNameUsed(e.Route1)
	if viaAlt1 {
		route.ConsumeAltLabel(e.Waypoint1)
	}
	if viaAlt2 {
		route.ConsumeAltLabel(e.Waypoint2)
	}
}

// resolveCrossRoute resolves the 6-field form: a traversal spanning two
// chopped routes of one ConnectedRoute, using ConnectedRoute ordering to
// walk every intermediate route in full.
func (r *Resolver) resolveCrossRoute(t *traveler.List, e traveler.Entry) {
	route1, via1, ok1 := r.routes.Lookup(e.Region1, e.Route1)
	route2, via2, ok2 := r.routes.Lookup(e.Region2, e.Route2)
	if !ok1 || !ok2 {
		t.Logf("unknown region/highway combo in cross-route entry: %s", e.Raw)
		return
	}
	if via1 {
		t.Logf("deprecated route name: %s %s", e.Region1, e.Route1)
	}
	if via2 {
		t.Logf("deprecated route name: %s %s", e.Region2, e.Route2)
	}
	if route1.Connected == nil || route1.Connected != route2.Connected {
		t.Logf("cross-route entry does not share a ConnectedRoute: %s", e.Raw)
		return
	}

	idx1, found1, dup1, _ := route1.FindWaypoint(e.Waypoint1)
	idx2, found2, dup2, _ := route2.FindWaypoint(e.Waypoint2)
	if dup1 || dup2 || !found1 || !found2 {
		t.Logf("could not resolve cross-route waypoints: %s", e.Raw)
		return
	}

	cr := route1.Connected
	lo, hi := route1.ConnectedIndex, route2.ConnectedIndex
	reverseWalk := lo > hi
	if reverseWalk {
		lo, hi = hi, lo
	}

	for pos := lo; pos <= hi; pos++ {
		member := cr.Roots[pos]
		switch {
		case member == route1:
			r.clinchFromIndex(t, member, idx1, reverseWalk)
		case member == route2:
			r.clinchToIndex(t, member, idx2, reverseWalk)
		default:
			for _, seg := range member.Segments {
				t.Clinch(seg)
			}
		}
	}
}

func (r *Resolver) clinchFromIndex(t *traveler.List, route *corpus.Route, idx int, reversed bool) {
	if reversed {
		for i := 0; i < idx; i++ {
			t.Clinch(route.Segments[i])
		}
		return
	}
	for i := idx; i < len(route.Segments); i++ {
		t.Clinch(route.Segments[i])
	}
}

func (r *Resolver) clinchToIndex(t *traveler.List, route *corpus.Route, idx int, reversed bool) {
	if reversed {
		for i := idx; i < len(route.Segments); i++ {
			t.Clinch(route.Segments[i])
		}
		return
	}
	for i := 0; i < idx; i++ {
		t.Clinch(route.Segments[i])
	}
}

// augmentConcurrency is the post-resolution pass: for every clinched
// segment participating in a concurrency list, mark every other segment in
// that list also clinched, provided its route belongs to an
// active-or-preview system.
func (r *Resolver) augmentConcurrency(t *traveler.List) {
	seed := make([]*corpus.HighwaySegment, 0, len(t.Clinched))
	for s := range t.Clinched {
		seed = append(seed, s)
	}

	for _, s := range seed {
		for _, other := range s.ConcurrencyGroup() {
			if other == s {
				continue
			}
			if other.Route == nil || other.Route.System == nil {
				continue
			}
			if !other.Route.System.Level.Clinchable() {
				continue
			}
			t.Clinch(other)
		}
	}
}
