package graph

import (
	"sort"
	"strings"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
)

// Edge is one graph edge, shared structurally across whichever of the
// three incidence lists (simple/collapsed/traveled) it belongs to: the
// three kinds are independent slots on one record rather than a class
// hierarchy, so a single traversal can emit all three formats.
type Edge struct {
	V1, V2 *Vertex

	// Segments is the ordered list of physical HighwaySegments this edge
	// represents: exactly one for a simple edge, and for a collapsed or
	// traveled edge the chain of segments walked through every absorbed
	// shaping vertex, in walk order.
	Segments []*corpus.HighwaySegment

	// Shaping is the ordered list of intermediate hidden vertices absorbed
	// into this edge by collapsed/traveled construction.
	Shaping []*Vertex

	// ClinchedBy is the sorted traveler-name bitmask for a traveled edge;
	// nil for simple/collapsed edges.
	ClinchedBy []bool
}

// Name is the comma-joined list of concurrent route list-entry names
// restricted to non-devel systems.
func (e *Edge) Name() string {
	seen := make(map[string]bool)
	var names []string
	for _, seg := range e.Segments {
		for _, concurrent := range seg.ConcurrencyGroup() {
			if concurrent.Route == nil || concurrent.Route.System == nil {
				continue
			}
			if concurrent.Route.System.HiddenFromGraphs() {
				continue
			}
			n := concurrent.Route.PrimaryName()
			if seen[n] {
				continue
			}
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

// Region returns the canonical region of this edge's first segment's route.
func (e *Edge) Region() string {
	if len(e.Segments) == 0 || e.Segments[0].Route == nil {
		return ""
	}
	return e.Segments[0].Route.Region
}

// RouteSystemPairs lists the distinct (route-name, system-name) pairs this
// edge's segments belong to, the metadata subgraph system-filter matching
// requires every edge to expose.
func (e *Edge) RouteSystemPairs() [][2]string {
	seen := make(map[[2]string]bool)
	var out [][2]string
	for _, seg := range e.Segments {
		if seg.Route == nil || seg.Route.System == nil {
			continue
		}
		pair := [2]string{seg.Route.PrimaryName(), seg.Route.System.SystemName}
		if seen[pair] {
			continue
		}
		seen[pair] = true
		out = append(out, pair)
	}
	return out
}

// Length sums the length of every physical segment this edge represents.
func (e *Edge) Length() float64 {
	var total float64
	for _, s := range e.Segments {
		total += s.Length
	}
	return total
}
