// Package traveler holds TravelerList, the one user-facing domain type that
// sits downstream of corpus: it records what a user has clinched and the
// mileage that implies, but never feeds back into corpus's own state except
// through the corpus.Clincher interface ("weak reference"
// requirement — a TravelerList must not extend a HighwaySegment's lifetime).
package traveler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
)

// Entry is one parsed line of a user's travel list: either a
// 4-field same-route traversal or a 6-field cross-ConnectedRoute traversal.
type Entry struct {
	Raw string

	Region1, Route1, Waypoint1 string
	Region2, Route2, Waypoint2 string

	// CrossRoute is true for the 6-field form.
	CrossRoute bool
}

// List is a user identity, its parsed travel entries, and the mileage they
// resolve to (TravelerList).
type List struct {
	UserName string

	Entries []Entry

	Clinched map[*corpus.HighwaySegment]bool

	// Both maps are keyed by region code; ActivePreviewByRegion counts
	// active and preview systems, ActiveOnlyByRegion active systems only.
	ActivePreviewByRegion map[string]float64
	ActiveOnlyByRegion    map[string]float64

	// BySystemRegion[system][region] is the per-system per-region nested
	// bucket that system-scoped user stats pages require.
	BySystemRegion map[string]map[string]float64

	Log []string
}

// NewList constructs an empty TravelerList for name.
func NewList(name string) *List {
	return &List{
		UserName:              name,
		Clinched:              make(map[*corpus.HighwaySegment]bool),
		ActivePreviewByRegion: make(map[string]float64),
		ActiveOnlyByRegion:    make(map[string]float64),
		BySystemRegion:        make(map[string]map[string]float64),
	}
}

// Name satisfies corpus.Clincher, letting *List itself be passed directly
// to corpus.HighwaySegment.MarkClinched / IsClinchedBy.
func (l *List) Name() string { return l.UserName }

// AsClincher adapts l to corpus.Clincher.
func (l *List) AsClincher() corpus.Clincher { return l }

// Clinch records that l has driven segment s, updating both l's own
// clinched set and s's clinched-by set.
func (l *List) Clinch(s *corpus.HighwaySegment) {
	if l.Clinched[s] {
		return
	}
	l.Clinched[s] = true
	s.MarkClinched(l.AsClincher())
}

// HasClinched reports whether l has previously recorded s as clinched.
func (l *List) HasClinched(s *corpus.HighwaySegment) bool {
	return l.Clinched[s]
}

// Logf appends a formatted diagnostic line to l's per-user log.
func (l *List) Logf(format string, args ...any) {
	l.Log = append(l.Log, fmt.Sprintf(format, args...))
}

// AddRegionMileage accumulates apMiles into l's active-preview bucket for
// region, and aoMiles into the active-only bucket. Pass aoMiles as 0 when
// the owning system isn't active-only.
func (l *List) AddRegionMileage(region string, apMiles, aoMiles float64) {
	l.ActivePreviewByRegion[region] += apMiles
	if aoMiles != 0 {
		l.ActiveOnlyByRegion[region] += aoMiles
	}
}

// AddSystemMileage accumulates miles into l's per-system per-region nested
// bucket.
func (l *List) AddSystemMileage(system, region string, miles float64) {
	bySystem, ok := l.BySystemRegion[system]
	if !ok {
		bySystem = make(map[string]float64)
		l.BySystemRegion[system] = bySystem
	}
	bySystem[region] += miles
}

// TotalActivePreview sums l's active-preview mileage across all regions.
func (l *List) TotalActivePreview() float64 {
	var total float64
	for _, m := range l.ActivePreviewByRegion {
		total += m
	}
	return total
}

// TotalActiveOnly sums l's active-only mileage across all regions.
func (l *List) TotalActiveOnly() float64 {
	var total float64
	for _, m := range l.ActiveOnlyByRegion {
		total += m
	}
	return total
}

// ParseEntry parses one non-blank, non-comment line of a .list file into an
// Entry: either "region route wp1 wp2" or the six-field
// cross-ConnectedRoute form "region1 route1 wp1 region2 route2 wp2".
func ParseEntry(line string) (Entry, error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 4:
		return Entry{
			Raw:       line,
			Region1:   fields[0],
			Route1:    fields[1],
			Waypoint1: fields[2],
			Waypoint2: fields[3],
		}, nil
	case 6:
		return Entry{
			Raw:        line,
			Region1:    fields[0],
			Route1:     fields[1],
			Waypoint1:  fields[2],
			Region2:    fields[3],
			Route2:     fields[4],
			Waypoint2:  fields[5],
			CrossRoute: true,
		}, nil
	default:
		return Entry{}, fmt.Errorf("malformed travel list line (expected 4 or 6 fields, got %d): %q", len(fields), line)
	}
}

// SortedNames returns every name in lists in ascending order — the stable
// ordering a graph traversal needs to assign travelers their position in a
// traveled-graph edge's clinched-by bitmask.
func SortedNames(lists []*List) []string {
	names := make([]string, len(lists))
	for i, l := range lists {
		names[i] = l.UserName
	}
	sort.Strings(names)
	return names
}
