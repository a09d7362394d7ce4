// Package datacheck implements the datachecker rule registry: a fixed
// taxonomy of structural-error predicates run over every waypoint, segment,
// and three-waypoint window of the loaded corpus, with false-positive
// suppression against a user-supplied list.
package datacheck

import (
	"fmt"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
	"github.com/teresco/tm-dataproc/internal/domain/shared"
)

// Rule predicates, by category. Each is evaluated over one waypoint (W),
// one segment (S), or a three-waypoint window (W3).
const (
	RuleSharpAngle         = "SHARPANGLE"
	RuleBadAngle           = "BADANGLE"
	RuleLongSegment        = "LONG_SEGMENT"
	RuleVisibleDistance    = "VISIBLE_DISTANCE"
	RuleDuplicateLabel     = "DUPLICATE_LABEL"
	RuleDuplicateCoords    = "DUPLICATE_COORDS"
	RuleOutOfBounds        = "OUT_OF_BOUNDS"
	RuleHiddenTerminus     = "HIDDEN_TERMINUS"
	RuleHiddenJunction     = "HIDDEN_JUNCTION"
	RuleVisibleHiddenColoc = "VISIBLE_HIDDEN_COLOC"
	RuleDisconnectedRoute  = "DISCONNECTED_ROUTE"
)

// alwaysError is the subset of codes this package declares non-suppressible:
// an FP-file entry naming one of these is rejected at load time.
var alwaysError = map[string]bool{
	RuleOutOfBounds:       true,
	RuleDisconnectedRoute: true,
}

// FalsePositive is one (root, label1, label2, label3, code, info) tuple
// from the user-supplied suppression list.
type FalsePositive struct {
	Root, Label1, Label2, Label3, Code, Info string
	matched                                  bool
}

// Checker runs the rule pass and matches emissions against a
// false-positive list.
type Checker struct {
	log   *shared.DatacheckLog
	fps   []*FalsePositive
	fpIdx map[string][]*FalsePositive
}

// NewChecker builds a Checker that appends to log and suppresses entries
// matching fps. Any fp whose code is in alwaysError is dropped and
// reported via the returned rejected slice.
func NewChecker(log *shared.DatacheckLog, fps []*FalsePositive) (c *Checker, rejected []*FalsePositive) {
	c = &Checker{log: log, fpIdx: make(map[string][]*FalsePositive)}
	for _, fp := range fps {
		if alwaysError[fp.Code] {
			rejected = append(rejected, fp)
			continue
		}
		c.fps = append(c.fps, fp)
		key := fpKey(fp.Root, fp.Label1, fp.Label2, fp.Label3, fp.Code)
		c.fpIdx[key] = append(c.fpIdx[key], fp)
	}
	return c, rejected
}

func fpKey(root, l1, l2, l3, code string) string {
	return root + "\x00" + l1 + "\x00" + l2 + "\x00" + l3 + "\x00" + code
}

// emit reports a candidate datacheck entry, suppressing it (recorded with
// FPMatch set, so Unsuppressed omits it) if an exact (root, labels, code,
// info) match exists in the FP list, and logging a "near match" when every
// field but info matches.
func (c *Checker) emit(root, l1, l2, l3, code, info string) {
	key := fpKey(root, l1, l2, l3, code)
	var nearMatch bool
	for _, fp := range c.fpIdx[key] {
		if fp.Info == info {
			fp.matched = true
			c.log.Add(&shared.DatacheckEntry{
				Root: root, Label1: l1, Label2: l2, Label3: l3,
				Code: code, Info: info, FPMatch: true,
			})
			return
		}
		nearMatch = true
		fp.matched = true
	}
	c.log.Add(&shared.DatacheckEntry{
		Root: root, Label1: l1, Label2: l2, Label3: l3,
		Code: code, Info: info, FPMatch: false, NearOnly: nearMatch,
	})
}

// UnresolvedFPs returns every false positive that never matched an
// emission, the input to the unresolved-FP log.
func (c *Checker) UnresolvedFPs() []*FalsePositive {
	var out []*FalsePositive
	for _, fp := range c.fps {
		if !fp.matched {
			out = append(out, fp)
		}
	}
	return out
}

// CheckRoute runs every waypoint-window and segment rule over r's
// waypoints and segments.
func (c *Checker) CheckRoute(r *corpus.Route) {
	for i, w := range r.Waypoints {
		c.checkBounds(r, w)
		if i > 0 && i < len(r.Waypoints)-1 {
			c.checkAngle(r, r.Waypoints[i-1], w, r.Waypoints[i+1])
		}
	}
	for _, s := range r.Segments {
		c.checkSegmentLength(r, s)
	}
	c.checkDuplicateLabels(r)
}

func (c *Checker) checkBounds(r *corpus.Route, w *corpus.Waypoint) {
	if w.Lat < -90 || w.Lat > 90 || w.Lng < -180 || w.Lng > 180 {
		c.emit(r.Root, w.Label, "", "", RuleOutOfBounds, fmt.Sprintf("(%g,%g)", w.Lat, w.Lng))
	}
}

// checkAngle flags a sharp (near-reversal) angle at the middle of a
// three-waypoint window, against the SharpAngleDegrees threshold.
func (c *Checker) checkAngle(r *corpus.Route, a, b, cw *corpus.Waypoint) {
	angle := shared.AngleDegrees(a.Lat, a.Lng, b.Lat, b.Lng, cw.Lat, cw.Lng)
	if angle < (180 - shared.SharpAngleDegrees) {
		c.emit(r.Root, a.Label, b.Label, cw.Label, RuleSharpAngle, fmt.Sprintf("%.1f", angle))
	}
}

func (c *Checker) checkSegmentLength(r *corpus.Route, s *corpus.HighwaySegment) {
	const longSegmentMiles = 20.0
	if s.Length > longSegmentMiles {
		c.emit(r.Root, s.Waypoint1.Label, s.Waypoint2.Label, "", RuleLongSegment, fmt.Sprintf("%.2f", s.Length))
	}
}

func (c *Checker) checkDuplicateLabels(r *corpus.Route) {
	for label := range r.DuplicateLabels {
		c.emit(r.Root, label, "", "", RuleDuplicateLabel, "")
	}
}

// CheckVertex flags a hidden-visibility vertex whose degree doesn't match
// the hide/absorb contract of the collapsed graph:
// degree < 2 emits HIDDEN_TERMINUS, degree > 2 emits HIDDEN_JUNCTION.
func (c *Checker) CheckVertex(root, label string, hidden bool, degree int) {
	if !hidden {
		return
	}
	switch {
	case degree < 2:
		c.emit(root, label, "", "", RuleHiddenTerminus, fmt.Sprintf("degree %d", degree))
	case degree > 2:
		c.emit(root, label, "", "", RuleHiddenJunction, fmt.Sprintf("degree %d", degree))
	}
}

// CheckConnectedRouteReconcile emits DISCONNECTED_ROUTE for a
// ConnectedRoute whose member routes failed to reconcile end-to-end
// (connectivity invariant).
func (c *Checker) CheckConnectedRouteReconcile(cr *corpus.ConnectedRoute, failedAt int) {
	if failedAt <= 0 || failedAt >= len(cr.Roots) {
		return
	}
	prev := cr.Roots[failedAt-1]
	cur := cr.Roots[failedAt]
	c.emit(prev.Root, "", "", "", RuleDisconnectedRoute, fmt.Sprintf("does not connect to %s", cur.Root))
}
