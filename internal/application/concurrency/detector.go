// Package concurrency implements ConcurrencyDetector:
// discovering physical road segments shared by more than one corpus.Route
// and unioning them into one shared concurrency list.
package concurrency

import (
	"fmt"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
)

// Detector finds and unions concurrent segments across every route of
// every system it is given.
type Detector struct {
	log []string
}

// NewDetector creates an empty Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Log returns the discovered-concurrency and extended-concurrency lines
// accumulated so far, in detection order.
func (d *Detector) Log() []string {
	return d.log
}

// Run scans every segment of every route in systems and unions concurrent
// segments in place: if both endpoints of s are colocated
// with waypoints in some other route r', and that colocation includes a
// pair (w1, w2) consecutive in r' (i.e. r' has a segment matching either
// order), s and s' are concurrent.
func (d *Detector) Run(systems []*corpus.HighwaySystem) {
	for _, sys := range systems {
		for _, r := range sys.Routes {
			for _, s := range r.Segments {
				d.detectFor(s)
			}
		}
	}
}

func (d *Detector) detectFor(s *corpus.HighwaySegment) {
	if s.Concurrent != nil {
		return // already unioned via an earlier partner
	}

	group1 := colocationGroup(s.Waypoint1)
	group2 := colocationGroup(s.Waypoint2)

	for _, w1 := range group1 {
		if w1.Route == s.Route {
			continue
		}
		for _, seg := range segmentsOf(w1) {
			other := seg.OtherEndpoint(w1)
			if !sameGroup(other, group2) {
				continue
			}
			d.union(s, seg)
		}
	}
}

// union merges s and s' into one shared concurrency list, extending an
// existing list if either side already belongs to one.
func (d *Detector) union(s, sPrime *corpus.HighwaySegment) {
	if s == sPrime {
		return
	}

	group := s.Concurrent
	otherGroup := sPrime.Concurrent

	switch {
	case group == nil && otherGroup == nil:
		group = []*corpus.HighwaySegment{s, sPrime}
		d.log = append(d.log, fmt.Sprintf("concurrency: %s and %s", segmentName(s), segmentName(sPrime)))
	case group != nil && otherGroup == nil:
		if contains(group, sPrime) {
			return
		}
		group = append(group, sPrime)
		d.log = append(d.log, fmt.Sprintf("extended concurrency: %s joins %s", segmentName(sPrime), segmentName(s)))
	case group == nil && otherGroup != nil:
		if contains(otherGroup, s) {
			return
		}
		otherGroup = append(otherGroup, s)
		group = otherGroup
		d.log = append(d.log, fmt.Sprintf("extended concurrency: %s joins %s", segmentName(s), segmentName(sPrime)))
	default:
		if group == otherGroup {
			return
		}
		merged := append(append([]*corpus.HighwaySegment{}, group...), otherGroup...)
		group = merged
		d.log = append(d.log, fmt.Sprintf("merged concurrency groups at %s / %s", segmentName(s), segmentName(sPrime)))
	}

	for _, seg := range group {
		seg.Concurrent = group
	}
}

func colocationGroup(w *corpus.Waypoint) []*corpus.Waypoint {
	if len(w.Colocated) == 0 {
		return []*corpus.Waypoint{w}
	}
	return w.Colocated
}

func sameGroup(w *corpus.Waypoint, group []*corpus.Waypoint) bool {
	for _, g := range group {
		if g == w {
			return true
		}
	}
	return false
}

// segmentsOf returns every HighwaySegment of w's own route incident to w.
func segmentsOf(w *corpus.Waypoint) []*corpus.HighwaySegment {
	if w.Route == nil {
		return nil
	}
	var out []*corpus.HighwaySegment
	for _, seg := range w.Route.Segments {
		if seg.Waypoint1 == w || seg.Waypoint2 == w {
			out = append(out, seg)
		}
	}
	return out
}

func contains(segs []*corpus.HighwaySegment, target *corpus.HighwaySegment) bool {
	for _, s := range segs {
		if s == target {
			return true
		}
	}
	return false
}

func segmentName(s *corpus.HighwaySegment) string {
	if s.Route == nil {
		return fmt.Sprintf("%s/%s", s.Waypoint1.Label, s.Waypoint2.Label)
	}
	return fmt.Sprintf("%s %s/%s", s.Route.Root, s.Waypoint1.Label, s.Waypoint2.Label)
}
