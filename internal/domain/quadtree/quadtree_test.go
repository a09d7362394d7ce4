package quadtree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPoint struct {
	lat, lng float64
	key      string
}

func (p *testPoint) Coordinates() (float64, float64) { return p.lat, p.lng }
func (p *testPoint) SortKey() string                 { return p.key }

func pt(lat, lng float64, key string) *testPoint {
	return &testPoint{lat: lat, lng: lng, key: key}
}

func TestInsertRoundTrip(t *testing.T) {
	tree := New()
	var want []Point
	for i := 0; i < 40; i++ {
		p := pt(float64(i)*0.1, float64(i)*0.1, fmt.Sprintf("r%02d", i))
		want = append(want, p)
		_, ok := tree.Insert(p, true)
		assert.False(t, ok, "unique points should never report a match")
	}

	got := tree.PointList()
	assert.ElementsMatch(t, want, got)
}

func TestColocationDetected(t *testing.T) {
	tree := New()
	a := pt(10, 20, "a")
	b := pt(10, 20, "b")

	_, ok := tree.Insert(a, true)
	require.False(t, ok)

	match, ok := tree.Insert(b, true)
	require.True(t, ok, "second point at identical coordinates must report a match")
	assert.Same(t, a, match)
}

func TestNoColocationForDistinctCoordinates(t *testing.T) {
	tree := New()
	a := pt(10, 20, "a")
	b := pt(10, 20.0001, "b")

	tree.Insert(a, true)
	_, ok := tree.Insert(b, true)
	assert.False(t, ok)
}

// TestRefinementAt51Points checks that 51 unique points inserted into the
// root force exactly one split into four quadrants, with the
// leaf-unique-count now distributed among the children and summing to 51.
func TestRefinementAt51Points(t *testing.T) {
	tree := New()
	for i := 0; i < 51; i++ {
		lat := float64(i%10) - 5
		lng := float64(i/10) - 2
		p := pt(lat, lng, fmt.Sprintf("p%02d", i))
		_, ok := tree.Insert(p, true)
		require.False(t, ok)
	}

	require.False(t, tree.root.isLeaf(), "root must have split after the 51st unique point")
	total := 0
	for _, leaf := range tree.root.collectLeaves() {
		total += leaf.uniqueCount
	}
	assert.Equal(t, 51, total)
}

func TestNearMissExcludesExactMatchAndDistantPoints(t *testing.T) {
	tree := New()
	center := pt(40.0, -80.0, "center")
	near := pt(40.0002, -80.0001, "near")
	far := pt(41.0, -80.0, "far")
	exact := pt(40.0, -80.0, "exact")

	for _, p := range []*testPoint{center, near, far, exact} {
		tree.Insert(p, true)
	}

	results := tree.NearMiss(center, NearMissTolerance)
	assert.Contains(t, results, Point(near))
	assert.NotContains(t, results, Point(far))
	for _, r := range results {
		lat, lng := r.Coordinates()
		assert.False(t, lat == 40.0 && lng == -80.0, "near-miss must not include the exact-coordinate point")
	}
}

func TestMidpointTieGoesToClosedQuadrant(t *testing.T) {
	// Force a split, then confirm a point exactly on the midpoint lands in
	// the north-west child.
	tree := New()
	for i := 0; i < 51; i++ {
		p := pt(float64(i)-25, float64(i)-25, fmt.Sprintf("seed%02d", i))
		tree.Insert(p, true)
	}
	midLat, midLng := tree.root.bounds.mid()
	onMid := pt(midLat, midLng, "onmid")
	idx := tree.root.childIndex(midLat, midLng)
	assert.Equal(t, quadNW, idx)
	_, ok := tree.Insert(onMid, false)
	assert.False(t, ok)
}

// NearMissTolerance mirrors shared.NearMissTolerance without importing the
// shared package, avoiding a test-only import cycle.
const NearMissTolerance = 0.0005
