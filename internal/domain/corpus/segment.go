package corpus

import "github.com/teresco/tm-dataproc/internal/domain/shared"

// Clincher is anything that can clinch a HighwaySegment. HighwaySegment
// deliberately depends on this narrow interface rather than on the
// traveler package directly, so corpus never imports traveler — only
// traveler imports corpus ("weak reference" requirement: a
// TravelerList's clinched-by membership must not extend a segment's
// lifetime, and an interface satisfies that without a back-import).
type Clincher interface {
	Name() string
}

// HighwaySegment is the undirected physical edge between two consecutive
// Waypoints of one Route.
type HighwaySegment struct {
	Waypoint1 *Waypoint
	Waypoint2 *Waypoint
	Route     *Route
	Length    float64 // miles, haversine with the unplotted-curve scale factor

	// Concurrent is nil if this segment is unique, or the shared list of
	// every HighwaySegment — across routes — that physically coincides
	// with it. Concurrent[0] is the canonical representative used for
	// mileage accounting.
	Concurrent []*HighwaySegment

	ClinchedBy map[Clincher]bool
}

// NewHighwaySegment builds the segment between w1 and w2, computing its
// haversine length immediately ("precomputed length").
func NewHighwaySegment(w1, w2 *Waypoint, route *Route) *HighwaySegment {
	return &HighwaySegment{
		Waypoint1:  w1,
		Waypoint2:  w2,
		Route:      route,
		Length:     shared.HaversineMiles(w1.Lat, w1.Lng, w2.Lat, w2.Lng),
		ClinchedBy: make(map[Clincher]bool),
	}
}

// OtherEndpoint returns the endpoint of s that is not w.
func (s *HighwaySegment) OtherEndpoint(w *Waypoint) *Waypoint {
	if s.Waypoint1 == w {
		return s.Waypoint2
	}
	return s.Waypoint1
}

// ConcurrencyGroup returns every segment sharing this segment's physical
// location, including s itself — s.Concurrent if set, or a singleton
// otherwise. Callers (mileage.Aggregator, travel.Resolver) should always
// use this rather than reading Concurrent directly, so the "no
// concurrency" case doesn't need special-casing at every call site.
func (s *HighwaySegment) ConcurrencyGroup() []*HighwaySegment {
	if s.Concurrent != nil {
		return s.Concurrent
	}
	return []*HighwaySegment{s}
}

// Canonical reports whether s is index 0 of its own concurrency group —
// the representative used for mileage accounting.
func (s *HighwaySegment) Canonical() bool {
	group := s.Concurrent
	return group == nil || group[0] == s
}

// MarkClinched records that clincher has driven this segment.
func (s *HighwaySegment) MarkClinched(c Clincher) {
	s.ClinchedBy[c] = true
}

// IsClinchedBy reports whether clincher has driven this segment.
func (s *HighwaySegment) IsClinchedBy(c Clincher) bool {
	return s.ClinchedBy[c]
}
