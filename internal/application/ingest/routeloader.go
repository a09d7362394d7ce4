// Package ingest implements RouteLoader, which turns one .wpt file into a
// fully-populated corpus.Route: every waypoint parsed, inserted into the
// shared quadtree under a mutex, and chained into corpus.HighwaySegments.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
	"github.com/teresco/tm-dataproc/internal/domain/quadtree"
	"github.com/teresco/tm-dataproc/internal/domain/shared"
)

// Codes for the datacheck entries RouteLoader emits.
const (
	CodeMalformedURL  = "MALFORMED_URL"
	CodeMalformedLat  = "MALFORMED_LAT"
	CodeMalformedLon  = "MALFORMED_LON"
	CodeLabelTooLong  = "LABEL_TOO_LONG"
	CodeLabelInvalid  = "LABEL_INVALID_CHAR"
	CodeLabelParens   = "LABEL_PARENS"
	CodeLabelSelfRef  = "LABEL_SELFREF"
	CodeLabelBusOnInt = "LABEL_BUS_ON_INTERSTATE"
)

var numericCoord = regexp.MustCompile(`^-?[0-9]*\.?[0-9]+$`)

var validLabelChar = regexp.MustCompile(`^[A-Za-z0-9()+*_./-]+$`)

// RouteLoader reads one .wpt file per corpus.Route, serializing quadtree
// insertion through a shared mutex while route-local parsing runs
// concurrently across a worker pool.
type RouteLoader struct {
	tree   *quadtree.Tree
	treeMu *sync.Mutex
	errs   *shared.ErrorList
}

// NewRouteLoader builds a loader that inserts into tree under mu and logs
// parse defects to errs. Every RouteLoader spawned for one ingestion run
// must share the same tree and mu.
func NewRouteLoader(tree *quadtree.Tree, mu *sync.Mutex, errs *shared.ErrorList) *RouteLoader {
	return &RouteLoader{tree: tree, treeMu: mu, errs: errs}
}

// Load parses r as one .wpt file into route, appending waypoints and
// segments to it as they're read.
func (l *RouteLoader) Load(route *corpus.Route, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := l.loadLine(route, line, lineNo); err != nil {
			return fmt.Errorf("%s line %d: %w", route.Root, lineNo, err)
		}
	}
	return scanner.Err()
}

func (l *RouteLoader) loadLine(route *corpus.Route, line string, lineNo int) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return fmt.Errorf("expected at least a label and URL, got %q", line)
	}

	label := fields[0]
	url := fields[len(fields)-1]
	altLabels := fields[1 : len(fields)-1]

	l.checkLabel(route, label)

	lat, lng, ok := parseURL(url)
	if !ok {
		code, what := CodeMalformedURL, "URL"
		if parts := strings.Split(url, "="); len(parts) >= 3 {
			if !numericCoord.MatchString(stripAmp(parts[1])) {
				code, what = CodeMalformedLat, "latitude"
			} else {
				code, what = CodeMalformedLon, "longitude"
			}
		}
		l.errs.Add(shared.NewDataError(code, fmt.Sprintf("%s: malformed %s on label %s", route.Root, what, label), shared.SeverityDatacheck))
		return nil
	}

	if kept, tail, truncated := truncateLabel(label); truncated {
		l.errs.Add(shared.NewDataError(CodeLabelTooLong,
			fmt.Sprintf("%s: label %s truncated, tail %q dropped", route.Root, kept, tail),
			shared.SeverityDatacheck))
		label = kept
	}

	w := corpus.NewWaypoint(label, altLabels, lat, lng, route)

	l.treeMu.Lock()
	match, colocated := l.tree.Insert(w, true)
	near := l.tree.NearMiss(w, shared.NearMissTolerance)
	l.treeMu.Unlock()

	if colocated && match != nil {
		group := matchWaypoint(match).Colocated
		if len(group) == 0 {
			group = []*corpus.Waypoint{matchWaypoint(match)}
		}
		group = append(group, w)
		setColocationGroup(group)
	}
	w.NearMiss = toWaypoints(near)

	route.AddWaypoint(w)
	return nil
}

// checkLabel emits the structural label datacheck entries, without
// aborting the line: invalid characters, unbalanced parens, self-reference
// to the owning route, and "Bus" appended to an interstate designation.
func (l *RouteLoader) checkLabel(route *corpus.Route, label string) {
	bare := strings.TrimPrefix(label, "+")
	if bare == "" {
		return
	}
	if !validLabelChar.MatchString(bare) {
		l.errs.Add(shared.NewDataError(CodeLabelInvalid, fmt.Sprintf("%s: invalid character in label %s", route.Root, label), shared.SeverityDatacheck))
	}
	if strings.Count(bare, "(") != strings.Count(bare, ")") {
		l.errs.Add(shared.NewDataError(CodeLabelParens, fmt.Sprintf("%s: unbalanced parentheses in label %s", route.Root, label), shared.SeverityDatacheck))
	}
	if strings.EqualFold(bare, route.RouteName) {
		l.errs.Add(shared.NewDataError(CodeLabelSelfRef, fmt.Sprintf("%s: label %s self-references its own route", route.Root, label), shared.SeverityDatacheck))
	}
	if strings.HasPrefix(route.RouteName, "I") && strings.HasSuffix(bare, "Bus") {
		l.errs.Add(shared.NewDataError(CodeLabelBusOnInt, fmt.Sprintf("%s: label %s appends Bus to an interstate designation", route.Root, label), shared.SeverityDatacheck))
	}
}

// parseURL extracts lat/lon from a map URL's query string: split on '=',
// take value segments 1 and 2, strip trailing "&...", validate each as a
// single optional leading '-', at most one '.', otherwise digits.
func parseURL(url string) (lat, lng float64, ok bool) {
	parts := strings.Split(url, "=")
	if len(parts) < 3 {
		return 0, 0, false
	}
	latStr := stripAmp(parts[1])
	lngStr := stripAmp(parts[2])

	if !numericCoord.MatchString(latStr) || !numericCoord.MatchString(lngStr) {
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, false
	}
	lng, err = strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lng, true
}

func stripAmp(s string) string {
	if i := strings.Index(s, "&"); i >= 0 {
		return s[:i]
	}
	return s
}

// truncateLabel enforces shared.FieldLimits["waypoint.label"], returning the
// kept prefix, the dropped tail, and whether truncation occurred.
func truncateLabel(label string) (kept, tail string, truncated bool) {
	limit := shared.FieldLimits["waypoint.label"]
	kept, tail = shared.Truncate(label, limit)
	return kept, tail, tail != ""
}

func matchWaypoint(p quadtree.Point) *corpus.Waypoint {
	w, _ := p.(*corpus.Waypoint)
	return w
}

func toWaypoints(points []quadtree.Point) []*corpus.Waypoint {
	out := make([]*corpus.Waypoint, 0, len(points))
	for _, p := range points {
		if w := matchWaypoint(p); w != nil {
			out = append(out, w)
		}
	}
	return out
}

// setColocationGroup assigns the same shared slice, sorted by (route.root,
// label), to every member of a colocation group, so Waypoint.Canonical
// agrees for all of them.
func setColocationGroup(group []*corpus.Waypoint) {
	sortWaypoints(group)
	for _, w := range group {
		w.Colocated = group
	}
}

func sortWaypoints(ws []*corpus.Waypoint) {
	for i := 1; i < len(ws); i++ {
		for j := i; j > 0 && ws[j].SortKey() < ws[j-1].SortKey(); j-- {
			ws[j], ws[j-1] = ws[j-1], ws[j]
		}
	}
}
