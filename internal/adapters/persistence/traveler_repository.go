package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/teresco/tm-dataproc/internal/domain/corpus"
	"github.com/teresco/tm-dataproc/internal/domain/traveler"
)

// TravelerRepository stages TravelerList identities and their clinched
// segments into the dump's travelers/clinched tables.
type TravelerRepository struct {
	db *gorm.DB
}

// NewTravelerRepository creates a new GORM-backed traveler repository.
func NewTravelerRepository(db *gorm.DB) *TravelerRepository {
	return &TravelerRepository{db: db}
}

// SaveAll bulk-inserts one row per traveler and one clinched-segment row
// per (traveler, segment) pair. segmentIDs resolves a HighwaySegment to its
// previously-assigned row ID (see CorpusRepository.SaveRoutes).
func (r *TravelerRepository) SaveAll(ctx context.Context, lists []*traveler.List, segmentIDs map[*corpus.HighwaySegment]uint) error {
	if len(lists) == 0 {
		return nil
	}

	models := make([]TravelerModel, len(lists))
	for i, l := range lists {
		models[i] = TravelerModel{Name: l.Name()}
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return fmt.Errorf("failed to save travelers: %w", err)
	}

	var clinched []ClinchedSegmentModel
	for _, l := range lists {
		for seg := range l.Clinched {
			id, ok := segmentIDs[seg]
			if !ok {
				continue
			}
			clinched = append(clinched, ClinchedSegmentModel{
				TravelerName: l.Name(),
				SegmentID:    id,
			})
		}
	}
	if len(clinched) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&clinched).Error; err != nil {
		return fmt.Errorf("failed to save clinched segments: %w", err)
	}
	return nil
}
