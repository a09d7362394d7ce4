// Package graph implements HighwayGraph: the vertex-naming
// cascade, the three coincident incidence lists (simple/collapsed/traveled)
// built from one vertex set, and subgraph emission in the textual .tmg
// format.
package graph

import (
	"strings"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
)

// Visibility is a vertex's presence tier across the three graph kinds:
// 0 hidden from collapsed and traveled (the simple graph keeps every
// vertex), 1 also visible in traveled, 2 visible everywhere.
type Visibility int

const (
	VisibilityHidden       Visibility = 0
	VisibilityTraveledOnly Visibility = 1
	VisibilityVisible      Visibility = 2
)

// Vertex is one graph vertex: the canonical waypoint of a colocation group
// that qualifies for graph inclusion.
type Vertex struct {
	Canonical *corpus.Waypoint
	Name      string
	Lat, Lng  float64
	Vis       Visibility

	Simple    []*Edge
	Collapsed []*Edge
	Traveled  []*Edge

	index int // assigned once, during numbering
}

// qualifies reports whether w's colocation group includes a waypoint in an
// active-or-preview system, the vertex-set membership test.
func qualifies(w *corpus.Waypoint) bool {
	for _, member := range colocationGroup(w) {
		if member.Route == nil || member.Route.System == nil {
			continue
		}
		if member.Route.System.Level.Clinchable() {
			return true
		}
	}
	return false
}

func colocationGroup(w *corpus.Waypoint) []*corpus.Waypoint {
	if len(w.Colocated) == 0 {
		return []*corpus.Waypoint{w}
	}
	return w.Colocated
}

// activePreviewMembers filters a colocation group down to the waypoints
// that belong to an active-or-preview route, the subset vertex naming
// works from.
func activePreviewMembers(group []*corpus.Waypoint) []*corpus.Waypoint {
	var out []*corpus.Waypoint
	for _, w := range group {
		if w.Route != nil && w.Route.System != nil && w.Route.System.Level.Clinchable() {
			out = append(out, w)
		}
	}
	return out
}

// candidateName computes the canonical-name candidate for a vertex, per
// the pattern-rule cascade step 1. Exotic exit-number and
// reversed-border patterns are intentionally out of scope for the initial
// rule set — unmatched cases fall through to the simple "&"-joined form,
// which is always well-defined.
func candidateName(group []*corpus.Waypoint) string {
	members := activePreviewMembers(group)
	if len(members) == 0 {
		members = group
	}

	if len(members) == 1 {
		w := members[0]
		return routeName(w) + "@" + w.Label
	}

	if allSameLabel(members) {
		return joinRouteNames(members) + "@" + members[0].Label
	}

	if len(members) == 2 {
		a, b := members[0], members[1]
		if labelReferencesRoute(a, b) && labelReferencesRoute(b, a) {
			name := a.Label + "/" + b.Label
			if a.Route != nil && b.Route != nil && a.Route.Abbrev == b.Route.Abbrev && a.Route.Abbrev != "" {
				name += a.Route.Abbrev
			}
			return name
		}
	}

	return fallbackName(members)
}

func allSameLabel(members []*corpus.Waypoint) bool {
	if len(members) == 0 {
		return false
	}
	first := members[0].Label
	for _, w := range members[1:] {
		if w.Label != first {
			return false
		}
	}
	return true
}

func labelReferencesRoute(label, other *corpus.Waypoint) bool {
	if other.Route == nil {
		return false
	}
	return strings.Contains(strings.ToUpper(label.Label), strings.ToUpper(other.Route.PrimaryName()))
}

func routeName(w *corpus.Waypoint) string {
	if w.Route == nil {
		return ""
	}
	return w.Route.PrimaryName()
}

func joinRouteNames(members []*corpus.Waypoint) string {
	seen := make(map[string]bool)
	var names []string
	for _, w := range members {
		n := routeName(w)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	return strings.Join(names, "/")
}

// fallbackName is the always-safe "route@label" joined with "&" form
// (step 1's final fallback).
func fallbackName(members []*corpus.Waypoint) string {
	parts := make([]string, len(members))
	for i, w := range members {
		parts[i] = routeName(w) + "@" + w.Label
	}
	return strings.Join(parts, "&")
}

// Region returns the region of the vertex's canonical waypoint's route,
// used by the "|region" disambiguation suffix.
func (v *Vertex) Region() string {
	if v.Canonical.Route == nil {
		return ""
	}
	return v.Canonical.Route.Region
}
