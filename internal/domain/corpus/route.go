package corpus

import "strings"

// Route is one chopped highway segment within a HighwaySystem.
type Route struct {
	System      *HighwaySystem
	Region      string
	RouteName   string // the bare route designation, e.g. "20" or "I"
	Banner      string // optional suffix, e.g. "Alt", "Bus"
	Abbrev      string // optional disambiguator
	City        string
	Root        string // unique, lowercase, global file-basename identifier
	AltNames    []string

	Waypoints []*Waypoint
	Segments  []*HighwaySegment
	Mileage   float64

	Connected      *ConnectedRoute
	ConnectedIndex int
	Reversed       bool

	labelIndex    map[string]int // normalized label -> waypoint index
	altLabelIndex map[string]int

	DuplicateLabels map[string]bool
	UsedListNames   map[string]bool
	UnusedAltLabels map[string]bool
}

// NewRoute constructs an empty Route owned by system.
func NewRoute(system *HighwaySystem, region, routeName, banner, abbrev, city, root string, altNames []string) *Route {
	return &Route{
		System:          system,
		Region:          region,
		RouteName:       routeName,
		Banner:          banner,
		Abbrev:          abbrev,
		City:            city,
		Root:            strings.ToLower(root),
		AltNames:        altNames,
		DuplicateLabels: make(map[string]bool),
		UsedListNames:   make(map[string]bool),
		UnusedAltLabels: make(map[string]bool),
	}
}

// PrimaryName is the route + banner + abbrev identity used as the primary
// lookup key, e.g. "20Alt" or "I95BusA".
func (r *Route) PrimaryName() string {
	return r.RouteName + r.Banner + r.Abbrev
}

// Key is the combined "REGION ROUTE" lookup key, case-insensitive.
func (r *Route) Key() string {
	return strings.ToUpper(r.Region) + " " + strings.ToUpper(r.PrimaryName())
}

// AltKeys returns the combined "REGION ALTNAME" keys for every alt-name
// alias of this route.
func (r *Route) AltKeys() []string {
	out := make([]string, len(r.AltNames))
	for i, n := range r.AltNames {
		out[i] = strings.ToUpper(r.Region) + " " + strings.ToUpper(n)
	}
	return out
}

// AddWaypoint appends w to the route's ordered waypoint list and, if a
// previous waypoint exists, creates the HighwaySegment connecting them.
// Returns the new segment, or nil for the route's first waypoint.
func (r *Route) AddWaypoint(w *Waypoint) *HighwaySegment {
	w.Route = r
	r.Waypoints = append(r.Waypoints, w)
	if len(r.Waypoints) < 2 {
		return nil
	}
	prev := r.Waypoints[len(r.Waypoints)-2]
	seg := NewHighwaySegment(prev, w, r)
	r.Segments = append(r.Segments, seg)
	r.Mileage += seg.Length
	return seg
}

// BuildLabelHashes indexes every waypoint's primary and alt labels,
// normalized, recording duplicates and seeding the unused-alt-label set
// that TravelListResolver drains as aliases are consumed. Must run once,
// after every waypoint for the route is loaded.
func (r *Route) BuildLabelHashes() {
	r.labelIndex = make(map[string]int, len(r.Waypoints))
	r.altLabelIndex = make(map[string]int)

	for i, w := range r.Waypoints {
		primary := NormalizeLabel(w.Label)
		if _, dup := r.labelIndex[primary]; dup {
			r.DuplicateLabels[primary] = true
		} else {
			r.labelIndex[primary] = i
		}

		for _, alt := range w.AltLabels {
			norm := NormalizeLabel(alt)
			if norm == primary {
				continue
			}
			if _, dup := r.labelIndex[norm]; dup {
				r.DuplicateLabels[norm] = true
				continue
			}
			if _, dup := r.altLabelIndex[norm]; dup {
				r.DuplicateLabels[norm] = true
				continue
			}
			r.altLabelIndex[norm] = i
			r.UnusedAltLabels[alt] = true
		}
	}
}

// FindWaypoint performs the two-tier (primary, then alt) lookup of label.
// ok is false if the label resolves to nothing; dup is true
// if the label is ambiguous (a DuplicateLabels entry) and must not be used.
// viaAlt reports whether the hit came through the alt-label table, so
// callers know to drain the label from UnusedAltLabels.
func (r *Route) FindWaypoint(label string) (idx int, ok bool, dup bool, viaAlt bool) {
	norm := NormalizeLabel(label)
	if r.DuplicateLabels[norm] {
		return 0, false, true, false
	}
	if i, found := r.labelIndex[norm]; found {
		return i, true, false, false
	}
	if i, found := r.altLabelIndex[norm]; found {
		return i, true, false, true
	}
	return 0, false, false, false
}

// MarkListNameUsed records that a user list referenced this route under
// the given name (primary or alt), for the listnamesinuse.log output.
func (r *Route) MarkListNameUsed(name string) {
	r.UsedListNames[strings.ToUpper(name)] = true
}

// ConsumeAltLabel removes alt from the unused-alt-label set once a
// TravelerList entry has resolved through it.
func (r *Route) ConsumeAltLabel(alt string) {
	norm := NormalizeLabel(alt)
	for label := range r.UnusedAltLabels {
		if NormalizeLabel(label) == norm {
			delete(r.UnusedAltLabels, label)
		}
	}
}

// Reverse flips the waypoint and segment order in place and toggles
// Reversed, used by ConnectedRoute reconciliation when two
// chopped routes meet end-to-end but not head-to-tail.
func (r *Route) Reverse() {
	for i, j := 0, len(r.Waypoints)-1; i < j; i, j = i+1, j-1 {
		r.Waypoints[i], r.Waypoints[j] = r.Waypoints[j], r.Waypoints[i]
	}
	for i, j := 0, len(r.Segments)-1; i < j; i, j = i+1, j-1 {
		r.Segments[i], r.Segments[j] = r.Segments[j], r.Segments[i]
	}
	r.Reversed = !r.Reversed
}

// Begin and End return the route's first and last waypoints (its two
// connection endpoints within a ConnectedRoute).
func (r *Route) Begin() *Waypoint {
	if len(r.Waypoints) == 0 {
		return nil
	}
	return r.Waypoints[0]
}

func (r *Route) End() *Waypoint {
	if len(r.Waypoints) == 0 {
		return nil
	}
	return r.Waypoints[len(r.Waypoints)-1]
}
