package datacheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
	"github.com/teresco/tm-dataproc/internal/domain/shared"
)

func TestCheckBoundsEmitsOutOfBounds(t *testing.T) {
	log := shared.NewDatacheckLog()
	checker, rejected := NewChecker(log, nil)
	require.Empty(t, rejected)

	sys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	r := corpus.NewRoute(sys, "nh", "20", "", "", "", "r1", nil)
	bad := corpus.NewWaypoint("Bad", nil, 500, 0, nil)
	r.AddWaypoint(bad)

	checker.CheckRoute(r)

	entries := log.Unsuppressed()
	require.Len(t, entries, 1)
	assert.Equal(t, RuleOutOfBounds, entries[0].Code)
}

func TestCheckAngleFlagsSharpReversal(t *testing.T) {
	log := shared.NewDatacheckLog()
	checker, _ := NewChecker(log, nil)

	sys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	r := corpus.NewRoute(sys, "nh", "20", "", "", "", "r1", nil)
	a := corpus.NewWaypoint("A", nil, 0, 0, nil)
	b := corpus.NewWaypoint("B", nil, 0, 1, nil)
	c := corpus.NewWaypoint("C", nil, 0, 0.001, nil) // doubles back near a
	r.AddWaypoint(a)
	r.AddWaypoint(b)
	r.AddWaypoint(c)

	checker.CheckRoute(r)

	var sharpFound bool
	for _, e := range log.Unsuppressed() {
		if e.Code == RuleSharpAngle {
			sharpFound = true
		}
	}
	assert.True(t, sharpFound)
}

func TestCheckSegmentLengthFlagsLongSegment(t *testing.T) {
	log := shared.NewDatacheckLog()
	checker, _ := NewChecker(log, nil)

	sys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	r := corpus.NewRoute(sys, "nh", "20", "", "", "", "r1", nil)
	r.AddWaypoint(corpus.NewWaypoint("A", nil, 0, 0, nil))
	r.AddWaypoint(corpus.NewWaypoint("B", nil, 10, 10, nil))

	checker.CheckRoute(r)

	var longFound bool
	for _, e := range log.Unsuppressed() {
		if e.Code == RuleLongSegment {
			longFound = true
		}
	}
	assert.True(t, longFound)
}

func TestCheckDuplicateLabels(t *testing.T) {
	log := shared.NewDatacheckLog()
	checker, _ := NewChecker(log, nil)

	sys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	r := corpus.NewRoute(sys, "nh", "20", "", "", "", "r1", nil)
	r.AddWaypoint(corpus.NewWaypoint("Dup", nil, 0, 0, nil))
	r.AddWaypoint(corpus.NewWaypoint("Dup", nil, 0, 0.1, nil))
	r.BuildLabelHashes()

	checker.CheckRoute(r)

	entries := log.Unsuppressed()
	require.Len(t, entries, 1)
	assert.Equal(t, RuleDuplicateLabel, entries[0].Code)
}

func TestFalsePositiveSuppressesExactMatch(t *testing.T) {
	log := shared.NewDatacheckLog()
	fp := &FalsePositive{Root: "r1", Label1: "dup", Code: RuleDuplicateLabel, Info: ""}
	checker, rejected := NewChecker(log, []*FalsePositive{fp})
	require.Empty(t, rejected)

	sys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	r := corpus.NewRoute(sys, "nh", "20", "", "", "", "r1", nil)
	r.AddWaypoint(corpus.NewWaypoint("Dup", nil, 0, 0, nil))
	r.AddWaypoint(corpus.NewWaypoint("Dup", nil, 0, 0.1, nil))
	r.BuildLabelHashes()

	checker.CheckRoute(r)

	assert.Empty(t, checker.UnresolvedFPs())
	assert.Len(t, log.All(), 1)
	assert.Empty(t, log.Unsuppressed())
}

func TestAlwaysErrorRulesRejectFalsePositives(t *testing.T) {
	log := shared.NewDatacheckLog()
	fp := &FalsePositive{Root: "r1", Code: RuleOutOfBounds}
	_, rejected := NewChecker(log, []*FalsePositive{fp})
	require.Len(t, rejected, 1)
	assert.Equal(t, RuleOutOfBounds, rejected[0].Code)
}

func TestUnresolvedFPsTracksUnmatchedEntries(t *testing.T) {
	log := shared.NewDatacheckLog()
	fp := &FalsePositive{Root: "never-hit", Code: RuleDuplicateLabel}
	checker, _ := NewChecker(log, []*FalsePositive{fp})

	unresolved := checker.UnresolvedFPs()
	require.Len(t, unresolved, 1)
	assert.Equal(t, "never-hit", unresolved[0].Root)
}

func TestCheckVertexHiddenDegreeViolations(t *testing.T) {
	log := shared.NewDatacheckLog()
	checker, _ := NewChecker(log, nil)

	checker.CheckVertex("r1", "A", true, 1)
	checker.CheckVertex("r1", "B", true, 3)
	checker.CheckVertex("r1", "C", true, 2) // exactly 2: never flagged
	checker.CheckVertex("r1", "D", false, 5)

	entries := log.Unsuppressed()
	require.Len(t, entries, 2)
	assert.Equal(t, RuleHiddenTerminus, entries[0].Code)
	assert.Equal(t, RuleHiddenJunction, entries[1].Code)
}

func TestCheckConnectedRouteReconcileEmitsDisconnected(t *testing.T) {
	log := shared.NewDatacheckLog()
	checker, _ := NewChecker(log, nil)

	sys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	r1 := corpus.NewRoute(sys, "nh", "20", "", "", "", "r1", nil)
	r2 := corpus.NewRoute(sys, "nh", "30", "", "", "", "r2", nil)
	cr := corpus.NewConnectedRoute(sys, "20", "", "")
	cr.AddRoute(r1)
	cr.AddRoute(r2)

	checker.CheckConnectedRouteReconcile(cr, 1)

	entries := log.Unsuppressed()
	require.Len(t, entries, 1)
	assert.Equal(t, RuleDisconnectedRoute, entries[0].Code)
}
