package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
	"github.com/teresco/tm-dataproc/internal/domain/datacheck"
	"github.com/teresco/tm-dataproc/internal/domain/quadtree"
	"github.com/teresco/tm-dataproc/internal/domain/shared"
)

// HighwayGraph is the one vertex set shared by the three graph kinds.
type HighwayGraph struct {
	Vertices      []*Vertex
	ByWaypoint    map[*corpus.Waypoint]*Vertex
	TravelerNames []string
}

// Build walks every waypoint reachable from systems, in quadtree-sorted
// order, and constructs the vertex set and all three incidence lists.
// travelerNames must already be sorted; it defines the traveled-edge
// clinched-by bitmask's column order.
func Build(tree *quadtree.Tree, systems []*corpus.HighwaySystem, travelerNames []string, checker *datacheck.Checker) *HighwayGraph {
	g := &HighwayGraph{
		ByWaypoint:    make(map[*corpus.Waypoint]*Vertex),
		TravelerNames: travelerNames,
	}

	g.buildVertices(tree)
	g.buildSimpleEdges(systems)
	g.buildCollapsedEdges(checker, false)
	g.buildCollapsedEdges(checker, true)

	return g
}

func (g *HighwayGraph) buildVertices(tree *quadtree.Tree) {
	type candidate struct {
		w        *corpus.Waypoint
		name     string
		priority int
	}

	var candidates []candidate
	for _, p := range tree.PointList() {
		w, ok := p.(*corpus.Waypoint)
		if !ok || !w.Canonical() {
			continue
		}
		if !qualifies(w) {
			continue
		}
		group := colocationGroup(w)
		name := candidateName(group)
		candidates = append(candidates, candidate{w: w, name: name, priority: len(group)})
	}

	// Process small colocation groups (no ambiguity risk) before large ones,
	// so short canonical names are claimed by the vertices most likely to
	// want them.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].priority < candidates[j].priority
	})

	taken := make(map[string]bool)
	for _, c := range candidates {
		name := g.disambiguate(c.name, c.w, taken)
		taken[name] = true

		v := &Vertex{
			Canonical: c.w,
			Name:      name,
			Lat:       c.w.Lat,
			Lng:       c.w.Lng,
			Vis:       VisibilityVisible,
		}
		if c.w.Hidden() {
			v.Vis = VisibilityHidden
		}
		g.Vertices = append(g.Vertices, v)
		for _, member := range colocationGroup(c.w) {
			g.ByWaypoint[member] = v
		}
	}

	for i, v := range g.Vertices {
		v.index = i
	}
}

// disambiguate implements step 2: append "|region" if the
// candidate is taken, fall back to the simple form if still taken, then
// append "!" characters until unique.
func (g *HighwayGraph) disambiguate(candidateName string, w *corpus.Waypoint, taken map[string]bool) string {
	if !taken[candidateName] {
		return candidateName
	}

	region := ""
	if w.Route != nil {
		region = w.Route.Region
	}
	withRegion := candidateName + "|" + region
	if !taken[withRegion] {
		return withRegion
	}

	simple := fallbackName(activePreviewMembers(colocationGroup(w)))
	if simple == "" {
		simple = fallbackName(colocationGroup(w))
	}
	if !taken[simple] {
		return simple
	}

	name := simple
	for taken[name] {
		name += "!"
	}
	return name
}

// vertexFor resolves the vertex owning w's colocation group.
func (g *HighwayGraph) vertexFor(w *corpus.Waypoint) *Vertex {
	return g.ByWaypoint[w]
}

// buildSimpleEdges adds one Edge per physical HighwaySegment between its
// endpoints' canonical vertices, skipping the degenerate self-edge case a
// same-vertex reversal could otherwise produce.
func (g *HighwayGraph) buildSimpleEdges(systems []*corpus.HighwaySystem) {
	for _, sys := range systems {
		if sys.HiddenFromGraphs() {
			continue
		}
		for _, r := range sys.Routes {
			for _, s := range r.Segments {
				v1 := g.vertexFor(s.Waypoint1)
				v2 := g.vertexFor(s.Waypoint2)
				if v1 == nil || v2 == nil || v1 == v2 {
					continue
				}
				e := &Edge{V1: v1, V2: v2, Segments: []*corpus.HighwaySegment{s}}
				v1.Simple = append(v1.Simple, e)
				v2.Simple = append(v2.Simple, e)
			}
		}
	}
}

// buildCollapsedEdges constructs the collapsed graph (traveled=false) or
// traveled graph (traveled=true) by walking the simple edges and absorbing
// degree-2 hidden vertices whose incident edges agree (same segment name
// for collapsed, identical clinched-by set for traveled) into a single
// edge carrying the absorbed vertex as a shaping point.
func (g *HighwayGraph) buildCollapsedEdges(checker *datacheck.Checker, traveled bool) {
	visited := make(map[*Edge]bool)

	for _, start := range g.Vertices {
		if g.hiddenDegreeTwo(start, traveled) {
			continue // absorbed from the other direction
		}
		for _, e := range start.Simple {
			if visited[e] {
				continue
			}
			g.walkAndAbsorb(start, e, visited, checker, traveled)
		}
	}

	// Degree != 2 hidden vertices are promoted and flagged via the
	// HIDDEN_TERMINUS/HIDDEN_JUNCTION rule.
	for _, v := range g.Vertices {
		if v.Vis != VisibilityHidden {
			continue
		}
		degree := len(v.Simple)
		if degree == 2 {
			if traveled && travelerEdgesDisagree(v) {
				v.Vis = VisibilityTraveledOnly
			}
			continue
		}
		if checker != nil {
			root := ""
			if v.Canonical.Route != nil {
				root = v.Canonical.Route.Root
			}
			checker.CheckVertex(root, v.Canonical.Label, true, degree)
		}
		if traveled {
			if v.Vis == VisibilityHidden {
				v.Vis = VisibilityTraveledOnly
			}
		} else {
			v.Vis = VisibilityVisible
		}
	}
}

func (g *HighwayGraph) hiddenDegreeTwo(v *Vertex, traveled bool) bool {
	if v.Vis != VisibilityHidden && !(traveled && v.Vis == VisibilityTraveledOnly) {
		return false
	}
	return len(v.Simple) == 2
}

// walkAndAbsorb follows a chain of simple edges from start through any
// degree-2 absorbable hidden vertex, producing one collapsed/traveled
// Edge for the whole span.
func (g *HighwayGraph) walkAndAbsorb(start *Vertex, first *Edge, visited map[*Edge]bool, checker *datacheck.Checker, traveled bool) {
	visited[first] = true
	segs := append([]*corpus.HighwaySegment{}, first.Segments...)
	var shaping []*Vertex

	cur := first
	other := otherEnd(cur, start)
	for absorbable(other) {
		var next *Edge
		for _, e := range other.Simple {
			if e != cur && !visited[e] {
				next = e
				break
			}
		}
		if next == nil {
			break
		}
		if !edgesAgree(cur, next, traveled) {
			break
		}
		visited[next] = true
		shaping = append(shaping, other)
		segs = append(segs, next.Segments...)
		cur = next
		other = otherEnd(cur, other)
	}

	e := &Edge{V1: start, V2: other, Segments: segs, Shaping: shaping}
	if traveled {
		e.ClinchedBy = clinchedMask(segs, g.TravelerNames)
		start.Traveled = append(start.Traveled, e)
		other.Traveled = append(other.Traveled, e)
	} else {
		start.Collapsed = append(start.Collapsed, e)
		other.Collapsed = append(other.Collapsed, e)
	}
}

func otherEnd(e *Edge, v *Vertex) *Vertex {
	if e.V1 == v {
		return e.V2
	}
	return e.V1
}

// absorbable reports whether v is eligible to be folded into a longer edge:
// hidden with exactly two simple edges, regardless of graph kind (edgesAgree
// is what differs between collapsed and traveled absorption).
func absorbable(v *Vertex) bool {
	return v.Vis == VisibilityHidden && len(v.Simple) == 2
}

// edgesAgree reports whether cur and next may be merged through their
// shared hidden vertex: matching segment name for collapsed, identical
// clinched-by sets for traveled.
func edgesAgree(cur, next *Edge, traveled bool) bool {
	if !traveled {
		return segmentName(cur) == segmentName(next)
	}
	return clinchedSetsEqual(cur.Segments, next.Segments)
}

func segmentName(e *Edge) string {
	if len(e.Segments) == 0 {
		return ""
	}
	return (&Edge{Segments: e.Segments[len(e.Segments)-1:]}).Name()
}

func clinchedSetsEqual(a, b []*corpus.HighwaySegment) bool {
	lastA := a[len(a)-1]
	firstB := b[0]
	setA := make(map[corpus.Clincher]bool)
	for c := range lastA.ClinchedBy {
		setA[c] = true
	}
	if len(setA) != len(firstB.ClinchedBy) {
		return false
	}
	for c := range firstB.ClinchedBy {
		if !setA[c] {
			return false
		}
	}
	return true
}

// travelerEdgesDisagree reports whether a degree-2 hidden vertex stopped
// traveled absorption because its two incident traveled edges carry
// different clinched-by sets, per edgesAgree. Such a vertex must surface in
// the traveled graph even though it stays hidden in the collapsed one.
func travelerEdgesDisagree(v *Vertex) bool {
	if len(v.Traveled) < 2 {
		return false
	}
	first := v.Traveled[0].ClinchedBy
	for _, e := range v.Traveled[1:] {
		if !equalBoolSlice(first, e.ClinchedBy) {
			return true
		}
	}
	return false
}

func equalBoolSlice(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func clinchedMask(segs []*corpus.HighwaySegment, names []string) []bool {
	if len(segs) == 0 {
		return nil
	}
	mask := make([]bool, len(names))
	clinchers := segs[0].ClinchedBy
	for i, name := range names {
		for c := range clinchers {
			if c.Name() == name {
				mask[i] = true
				break
			}
		}
	}
	return mask
}

// Filter describes the optional subgraph-emission constraints of
// a set of regions, a set of systems, and a geographic disk.
type Filter struct {
	Regions map[string]bool
	Systems map[string]bool

	HasDisk   bool
	CenterLat float64
	CenterLng float64
	RadiusMi  float64
}

// Kind selects which of the three incidence lists a subgraph walks.
type Kind int

const (
	KindSimple Kind = iota
	KindCollapsed
	KindTraveled
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindCollapsed:
		return "collapsed"
	case KindTraveled:
		return "traveled"
	default:
		return "unknown"
	}
}

// Subgraph holds the vertex/edge subset selected by a Filter for one Kind.
type Subgraph struct {
	Kind          Kind
	Vertices      []*Vertex
	Edges         []*Edge
	TravelerNames []string // populated for KindTraveled only
}

// Emit computes the induced vertex and edge subset for kind under filter.
func (g *HighwayGraph) Emit(kind Kind, filter Filter) *Subgraph {
	selected := make(map[*Vertex]bool)
	var vertices []*Vertex
	for _, v := range g.Vertices {
		if !g.vertexMatchesFilter(v, filter, kind) {
			continue
		}
		selected[v] = true
		vertices = append(vertices, v)
	}

	seen := make(map[*Edge]bool)
	var edges []*Edge
	for _, v := range vertices {
		for _, e := range incidence(v, kind) {
			if seen[e] {
				continue
			}
			if !selected[e.V1] || !selected[e.V2] {
				continue
			}
			if !edgeMatchesFilter(e, filter) {
				continue
			}
			seen[e] = true
			edges = append(edges, e)
		}
	}

	sub := &Subgraph{Kind: kind, Vertices: vertices, Edges: edges}
	if kind == KindTraveled {
		sub.TravelerNames = g.TravelerNames
	}
	return sub
}

func incidence(v *Vertex, kind Kind) []*Edge {
	switch kind {
	case KindSimple:
		return v.Simple
	case KindCollapsed:
		return v.Collapsed
	default:
		return v.Traveled
	}
}

func (g *HighwayGraph) vertexMatchesFilter(v *Vertex, filter Filter, kind Kind) bool {
	if kind == KindCollapsed && v.Vis != VisibilityVisible {
		return false
	}
	if kind == KindTraveled && v.Vis == VisibilityHidden {
		return false
	}
	if len(filter.Regions) > 0 && !filter.Regions[v.Region()] {
		return false
	}
	if filter.HasDisk && kind != KindSimple {
		if haversineApprox(filter.CenterLat, filter.CenterLng, v.Lat, v.Lng) > filter.RadiusMi {
			return false
		}
	}
	return true
}

func edgeMatchesFilter(e *Edge, filter Filter) bool {
	if len(filter.Regions) > 0 && !filter.Regions[e.Region()] {
		return false
	}
	if len(filter.Systems) > 0 {
		ok := false
		for _, pair := range e.RouteSystemPairs() {
			if filter.Systems[pair[1]] {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// haversineApprox wraps shared.HaversineMiles with antimeridian-aware
// longitude handling for place-radius subgraph filtering.
func haversineApprox(lat1, lng1, lat2, lng2 float64) float64 {
	dLng := lng2 - lng1
	if dLng > 180 {
		dLng -= 360
	} else if dLng < -180 {
		dLng += 360
	}
	return shared.HaversineMiles(lat1, lng1, lat2, lng1+dLng)
}

// WriteTMG renders sub as the textual master graph file format: a header
// line, one vertex line per vertex, then one edge line per edge.
func WriteTMG(sub *Subgraph, version string, w interface{ WriteString(string) (int, error) }) error {
	numbering := make(map[*Vertex]int, len(sub.Vertices))
	for i, v := range sub.Vertices {
		numbering[v] = i
	}

	header := fmt.Sprintf("TMG %s %s\n", version, sub.Kind)
	if _, err := w.WriteString(header); err != nil {
		return err
	}

	countLine := fmt.Sprintf("%d %d", len(sub.Vertices), len(sub.Edges))
	if sub.Kind == KindTraveled {
		countLine += fmt.Sprintf(" %d", len(sub.TravelerNames))
	}
	if _, err := w.WriteString(countLine + "\n"); err != nil {
		return err
	}

	for _, v := range sub.Vertices {
		line := fmt.Sprintf("%s %g %g\n", v.Name, v.Lat, v.Lng)
		if _, err := w.WriteString(line); err != nil {
			return err
		}
	}

	for _, e := range sub.Edges {
		var b strings.Builder
		fmt.Fprintf(&b, "%d %d %s", numbering[e.V1], numbering[e.V2], e.Name())
		if sub.Kind == KindTraveled {
			b.WriteString(" " + hexMask(e.ClinchedBy))
		}
		for _, shape := range e.Shaping {
			fmt.Fprintf(&b, " %g %g", shape.Lat, shape.Lng)
		}
		b.WriteString("\n")
		if _, err := w.WriteString(b.String()); err != nil {
			return err
		}
	}

	return nil
}

// hexMask packs a per-traveler clinched-by mask into a hex string, four
// travelers per digit, least-significant traveler first. Unlike a single
// uint64 it never truncates a corpus with more than 64 travelers.
func hexMask(mask []bool) string {
	if len(mask) == 0 {
		return "0"
	}
	digits := (len(mask) + 3) / 4
	nibbles := make([]byte, digits)
	for i, b := range mask {
		if !b {
			continue
		}
		d := i / 4
		nibbles[digits-1-d] |= 1 << uint(i%4)
	}
	const hexDigits = "0123456789abcdef"
	var sb strings.Builder
	for _, n := range nibbles {
		sb.WriteByte(hexDigits[n])
	}
	return sb.String()
}
