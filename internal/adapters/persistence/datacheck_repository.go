package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/teresco/tm-dataproc/internal/domain/shared"
)

// DatacheckRepository stages a DatacheckLog's entries into the dump's
// datacheck table.
type DatacheckRepository struct {
	db *gorm.DB
}

// NewDatacheckRepository creates a new GORM-backed datacheck repository.
func NewDatacheckRepository(db *gorm.DB) *DatacheckRepository {
	return &DatacheckRepository{db: db}
}

// SaveAll bulk-inserts every entry in log.
func (r *DatacheckRepository) SaveAll(ctx context.Context, log *shared.DatacheckLog) error {
	entries := log.All()
	if len(entries) == 0 {
		return nil
	}
	models := make([]DatacheckModel, len(entries))
	for i, e := range entries {
		models[i] = DatacheckModel{
			Root:     e.Root,
			Label1:   e.Label1,
			Label2:   e.Label2,
			Label3:   e.Label3,
			Code:     e.Code,
			Info:     e.Info,
			FPMatch:  e.FPMatch,
			NearOnly: e.NearOnly,
		}
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return fmt.Errorf("failed to save datacheck entries: %w", err)
	}
	return nil
}
