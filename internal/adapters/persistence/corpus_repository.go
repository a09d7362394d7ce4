package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
)

// CorpusRepository stages a fully-loaded, concurrency-resolved corpus into
// the relational dump tables in FK-safe order (systems, then each system's
// routes with their waypoints and segments, then connected routes).
type CorpusRepository struct {
	db *gorm.DB
}

// NewCorpusRepository creates a new GORM-backed corpus repository.
func NewCorpusRepository(db *gorm.DB) *CorpusRepository {
	return &CorpusRepository{db: db}
}

// SaveSystems bulk-inserts one row per HighwaySystem.
func (r *CorpusRepository) SaveSystems(ctx context.Context, systems []*corpus.HighwaySystem) error {
	if len(systems) == 0 {
		return nil
	}
	models := make([]SystemModel, 0, len(systems))
	for _, s := range systems {
		models = append(models, SystemModel{
			SystemName:  s.SystemName,
			CountryCode: s.CountryCode,
			FullName:    s.FullName,
			Color:       s.Color,
			Tier:        s.Tier,
			Level:       s.Level.String(),
		})
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return fmt.Errorf("failed to save systems: %w", err)
	}
	return nil
}

// SaveRoutes bulk-inserts every Route belonging to system, along with its
// waypoints and segments. waypointIDs and segmentIDs are populated with the
// assigned auto-increment ID of every waypoint and segment, keyed by pointer
// identity, so segment rows and later callers (TravelerRepository.SaveAll)
// can resolve FK references without a second read-back.
func (r *CorpusRepository) SaveRoutes(ctx context.Context, system *corpus.HighwaySystem, waypointIDs map[*corpus.Waypoint]uint, segmentIDs map[*corpus.HighwaySegment]uint) error {
	if len(system.Routes) == 0 {
		return nil
	}

	routeModels := make([]RouteModel, 0, len(system.Routes))
	for _, route := range system.Routes {
		connectedRoot := ""
		if route.Connected != nil && len(route.Connected.Roots) > 0 {
			connectedRoot = route.Connected.Roots[0].Root
		}
		routeModels = append(routeModels, RouteModel{
			Root:          route.Root,
			SystemName:    system.SystemName,
			Region:        route.Region,
			RouteName:     route.RouteName,
			Banner:        route.Banner,
			Abbrev:        route.Abbrev,
			City:          route.City,
			ConnectedRoot: connectedRoot,
			Mileage:       route.Mileage,
			Reversed:      route.Reversed,
		})
	}
	if err := r.db.WithContext(ctx).Create(&routeModels).Error; err != nil {
		return fmt.Errorf("failed to save routes for system %s: %w", system.SystemName, err)
	}

	for _, route := range system.Routes {
		if err := r.saveRouteWaypointsAndSegments(ctx, route, waypointIDs, segmentIDs); err != nil {
			return err
		}
	}

	return nil
}

func (r *CorpusRepository) saveRouteWaypointsAndSegments(ctx context.Context, route *corpus.Route, waypointIDs map[*corpus.Waypoint]uint, segmentIDs map[*corpus.HighwaySegment]uint) error {
	if len(route.Waypoints) == 0 {
		return nil
	}

	wModels := make([]WaypointModel, len(route.Waypoints))
	for i, w := range route.Waypoints {
		wModels[i] = WaypointModel{
			RouteRoot:      route.Root,
			Sequence:       i,
			Label:          w.Label,
			Lat:            w.Lat,
			Lng:            w.Lng,
			ColocationHash: colocationHash(w),
		}
	}
	if err := r.db.WithContext(ctx).Create(&wModels).Error; err != nil {
		return fmt.Errorf("failed to save waypoints for route %s: %w", route.Root, err)
	}
	for i, w := range route.Waypoints {
		waypointIDs[w] = wModels[i].ID
	}

	if len(route.Segments) == 0 {
		return nil
	}
	sModels := make([]SegmentModel, len(route.Segments))
	for i, seg := range route.Segments {
		sModels[i] = SegmentModel{
			RouteRoot:       route.Root,
			Waypoint1ID:     waypointIDs[seg.Waypoint1],
			Waypoint2ID:     waypointIDs[seg.Waypoint2],
			Length:          seg.Length,
			ConcurrencyHash: concurrencyHash(seg),
		}
	}
	if err := r.db.WithContext(ctx).Create(&sModels).Error; err != nil {
		return fmt.Errorf("failed to save segments for route %s: %w", route.Root, err)
	}
	for i, seg := range route.Segments {
		segmentIDs[seg] = sModels[i].ID
	}
	return nil
}

// SaveConnectedRoutes bulk-inserts one row per ConnectedRoute of system.
func (r *CorpusRepository) SaveConnectedRoutes(ctx context.Context, system *corpus.HighwaySystem) error {
	if len(system.ConnectedRoutes) == 0 {
		return nil
	}
	models := make([]ConnectedRouteModel, 0, len(system.ConnectedRoutes))
	for _, cr := range system.ConnectedRoutes {
		id := system.SystemName + "." + cr.RouteName + cr.Banner + cr.Abbrev
		models = append(models, ConnectedRouteModel{
			ID:         id,
			SystemName: system.SystemName,
			RouteName:  cr.RouteName,
			Banner:     cr.Banner,
			Abbrev:     cr.Abbrev,
			Name:       cr.DisplayName,
			Mileage:    cr.Mileage,
		})
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return fmt.Errorf("failed to save connected routes for system %s: %w", system.SystemName, err)
	}
	return nil
}

// colocationHash gives every member of a colocation group the same stable
// string key, derived from the canonical member's (route root, label), so
// the dump's waypoint rows can be grouped back into colocation sets without
// carrying pointer identity into SQL.
func colocationHash(w *corpus.Waypoint) string {
	canon := w
	if len(w.Colocated) > 0 {
		canon = w.Colocated[0]
	}
	root := ""
	if canon.Route != nil {
		root = canon.Route.Root
	}
	return root + "#" + canon.Label
}

// concurrencyHash is the SegmentModel analogue of colocationHash, keyed off
// the canonical segment of the concurrency group.
func concurrencyHash(s *corpus.HighwaySegment) string {
	group := s.ConcurrencyGroup()
	canon := group[0]
	root := ""
	if canon.Route != nil {
		root = canon.Route.Root
	}
	return fmt.Sprintf("%s#%d", root, indexOf(canon.Route.Segments, canon))
}

func indexOf(segs []*corpus.HighwaySegment, target *corpus.HighwaySegment) int {
	for i, s := range segs {
		if s == target {
			return i
		}
	}
	return -1
}
