package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&SystemModel{}, &RouteModel{}, &ConnectedRouteModel{},
		&WaypointModel{}, &SegmentModel{}, &TravelerModel{},
		&ClinchedSegmentModel{}, &DatacheckModel{},
	))
	return db
}

func buildPersistedSystem() (*corpus.HighwaySystem, *corpus.Route) {
	sys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	r := corpus.NewRoute(sys, "nh", "20", "", "", "", "nh.ncn20", nil)
	w1 := corpus.NewWaypoint("A", nil, 0, 0, nil)
	w2 := corpus.NewWaypoint("B", nil, 1, 1, nil)
	r.AddWaypoint(w1)
	r.AddWaypoint(w2)
	sys.Routes = []*corpus.Route{r}
	return sys, r
}

func TestSaveSystemsInsertsOneRowPerSystem(t *testing.T) {
	db := openTestDB(t)
	repo := NewCorpusRepository(db)
	sys, _ := buildPersistedSystem()

	require.NoError(t, repo.SaveSystems(context.Background(), []*corpus.HighwaySystem{sys}))

	var count int64
	require.NoError(t, db.Model(&SystemModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var row SystemModel
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, "ncn", row.SystemName)
	assert.Equal(t, "active", row.Level)
}

func TestSaveSystemsNoOpOnEmpty(t *testing.T) {
	db := openTestDB(t)
	repo := NewCorpusRepository(db)
	require.NoError(t, repo.SaveSystems(context.Background(), nil))

	var count int64
	require.NoError(t, db.Model(&SystemModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSaveRoutesPersistsWaypointsAndSegments(t *testing.T) {
	db := openTestDB(t)
	repo := NewCorpusRepository(db)
	sys, r := buildPersistedSystem()

	waypointIDs := make(map[*corpus.Waypoint]uint)
	segmentIDs := make(map[*corpus.HighwaySegment]uint)
	require.NoError(t, repo.SaveRoutes(context.Background(), sys, waypointIDs, segmentIDs))

	var routeCount, wptCount, segCount int64
	require.NoError(t, db.Model(&RouteModel{}).Count(&routeCount).Error)
	require.NoError(t, db.Model(&WaypointModel{}).Count(&wptCount).Error)
	require.NoError(t, db.Model(&SegmentModel{}).Count(&segCount).Error)

	assert.EqualValues(t, 1, routeCount)
	assert.EqualValues(t, 2, wptCount)
	assert.EqualValues(t, 1, segCount)
	assert.Len(t, waypointIDs, 2)
	assert.Len(t, segmentIDs, 1)
	assert.Contains(t, waypointIDs, r.Waypoints[0])
	assert.Contains(t, segmentIDs, r.Segments[0])
}

func TestSaveConnectedRoutesBuildsCompositeID(t *testing.T) {
	db := openTestDB(t)
	repo := NewCorpusRepository(db)
	sys, r := buildPersistedSystem()
	cr := corpus.NewConnectedRoute(sys, "20", "", "")
	cr.AddRoute(r)
	cr.DisplayName = "Route 20"
	sys.ConnectedRoutes = []*corpus.ConnectedRoute{cr}

	require.NoError(t, repo.SaveConnectedRoutes(context.Background(), sys))

	var row ConnectedRouteModel
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, "ncn.20", row.ID)
	assert.Equal(t, "Route 20", row.Name)
}

func TestColocationHashSharesKeyAcrossColocatedGroup(t *testing.T) {
	sys := corpus.NewHighwaySystem("ncn", "USA", "National Connections Network", "black", 1, corpus.LevelActive)
	r1 := corpus.NewRoute(sys, "nh", "20", "", "", "", "r1", nil)
	r2 := corpus.NewRoute(sys, "nh", "30", "", "", "", "r2", nil)
	w1 := corpus.NewWaypoint("A", nil, 0, 0, nil)
	w2 := corpus.NewWaypoint("A", nil, 0, 0, nil)
	r1.AddWaypoint(w1)
	r2.AddWaypoint(w2)
	w1.Colocated = []*corpus.Waypoint{w1, w2}
	w2.Colocated = []*corpus.Waypoint{w1, w2}

	assert.Equal(t, colocationHash(w1), colocationHash(w2))
}
