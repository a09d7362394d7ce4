package traveler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
)

func TestParseEntrySameRoute(t *testing.T) {
	e, err := ParseEntry("nh 20 StartPoint EndPoint")
	require.NoError(t, err)
	assert.False(t, e.CrossRoute)
	assert.Equal(t, "nh", e.Region1)
	assert.Equal(t, "20", e.Route1)
	assert.Equal(t, "StartPoint", e.Waypoint1)
	assert.Equal(t, "EndPoint", e.Waypoint2)
}

func TestParseEntryCrossRoute(t *testing.T) {
	e, err := ParseEntry("nh 20 Start vt 30 End")
	require.NoError(t, err)
	assert.True(t, e.CrossRoute)
	assert.Equal(t, "vt", e.Region2)
	assert.Equal(t, "30", e.Route2)
	assert.Equal(t, "End", e.Waypoint2)
}

func TestParseEntryMalformed(t *testing.T) {
	_, err := ParseEntry("nh 20 OnlyThree")
	assert.Error(t, err)
}

func TestListClinchUpdatesBothSides(t *testing.T) {
	l := NewList("alice")
	w1 := corpus.NewWaypoint("A", nil, 0, 0, nil)
	w2 := corpus.NewWaypoint("B", nil, 0, 1, nil)
	s := corpus.NewHighwaySegment(w1, w2, nil)

	assert.False(t, l.HasClinched(s))
	l.Clinch(s)
	assert.True(t, l.HasClinched(s))
	assert.True(t, s.IsClinchedBy(l))

	// Clinching twice must not double-count or panic.
	l.Clinch(s)
	assert.True(t, l.HasClinched(s))
}

func TestListMileageAccumulation(t *testing.T) {
	l := NewList("bob")
	l.AddRegionMileage("nh", 10, 0)
	l.AddRegionMileage("nh", 5, 2)
	l.AddRegionMileage("vt", 1, 1)

	assert.Equal(t, 16.0, l.TotalActivePreview())
	assert.Equal(t, 3.0, l.TotalActiveOnly())
}

func TestListSystemMileageNestedBuckets(t *testing.T) {
	l := NewList("carol")
	l.AddSystemMileage("usai", "nh", 5)
	l.AddSystemMileage("usai", "nh", 5)
	l.AddSystemMileage("usai", "vt", 2)

	assert.Equal(t, 10.0, l.BySystemRegion["usai"]["nh"])
	assert.Equal(t, 2.0, l.BySystemRegion["usai"]["vt"])
}

func TestSortedNamesAscending(t *testing.T) {
	lists := []*List{NewList("zeta"), NewList("alpha"), NewList("mike")}
	assert.Equal(t, []string{"alpha", "mike", "zeta"}, SortedNames(lists))
}

func TestListLogfAppends(t *testing.T) {
	l := NewList("dave")
	l.Logf("issue %d", 1)
	l.Logf("issue %d", 2)
	assert.Equal(t, []string{"issue 1", "issue 2"}, l.Log)
}
