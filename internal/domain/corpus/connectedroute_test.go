package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRoute(sys *HighwaySystem, root string, coords [][2]float64) *Route {
	r := NewRoute(sys, "nh", "20", "", "", "", root, nil)
	for i, c := range coords {
		w := NewWaypoint(root+string(rune('A'+i)), nil, c[0], c[1], nil)
		r.AddWaypoint(w)
	}
	return r
}

func colocate(a, b *Waypoint) {
	group := []*Waypoint{a, b}
	a.Colocated = group
	b.Colocated = group
}

func TestConnectedRouteReconcileAlreadyAligned(t *testing.T) {
	sys := newTestSystem(LevelActive)
	r1 := buildRoute(sys, "r1", [][2]float64{{0, 0}, {1, 1}})
	r2 := buildRoute(sys, "r2", [][2]float64{{1, 1}, {2, 2}})
	colocate(r1.End(), r2.Begin())

	cr := NewConnectedRoute(sys, "20", "", "")
	cr.AddRoute(r1)
	cr.AddRoute(r2)

	ok, reversed, failedAt := cr.Reconcile()
	assert.True(t, ok)
	assert.False(t, reversed)
	assert.Equal(t, 0, failedAt)
}

func TestConnectedRouteReconcileReversesNeighbor(t *testing.T) {
	sys := newTestSystem(LevelActive)
	r1 := buildRoute(sys, "r1", [][2]float64{{0, 0}, {1, 1}})
	r2 := buildRoute(sys, "r2", [][2]float64{{2, 2}, {1, 1}}) // needs reversal to connect at (1,1)
	colocate(r1.End(), r2.End())

	cr := NewConnectedRoute(sys, "20", "", "")
	cr.AddRoute(r1)
	cr.AddRoute(r2)

	ok, reversed, failedAt := cr.Reconcile()
	require.True(t, ok)
	assert.True(t, reversed)
	assert.Equal(t, 0, failedAt)
	assert.True(t, r2.Reversed)
}

func TestConnectedRouteReconcileReportsFailure(t *testing.T) {
	sys := newTestSystem(LevelActive)
	r1 := buildRoute(sys, "r1", [][2]float64{{0, 0}, {1, 1}})
	r2 := buildRoute(sys, "r2", [][2]float64{{5, 5}, {6, 6}}) // shares no endpoint with r1

	cr := NewConnectedRoute(sys, "20", "", "")
	cr.AddRoute(r1)
	cr.AddRoute(r2)

	ok, _, failedAt := cr.Reconcile()
	assert.False(t, ok)
	assert.Equal(t, 1, failedAt)
}

func TestConnectedRouteComputeMileage(t *testing.T) {
	sys := newTestSystem(LevelActive)
	r1 := buildRoute(sys, "r1", [][2]float64{{0, 0}, {1, 1}})
	r2 := buildRoute(sys, "r2", [][2]float64{{1, 1}, {2, 2}})

	cr := NewConnectedRoute(sys, "20", "", "")
	cr.AddRoute(r1)
	cr.AddRoute(r2)
	cr.ComputeMileage()

	assert.Equal(t, r1.Mileage+r2.Mileage, cr.Mileage)
	assert.Greater(t, cr.Mileage, 0.0)
}
