package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teresco/tm-dataproc/internal/domain/shared"
)

func TestDatacheckSaveAllPersistsEntries(t *testing.T) {
	db := openTestDB(t)
	log := shared.NewDatacheckLog()
	log.Add(&shared.DatacheckEntry{Root: "r1", Label1: "A", Code: "SHARPANGLE", Info: "45.0"})
	log.Add(&shared.DatacheckEntry{Root: "r1", Label1: "B", Code: "OUT_OF_BOUNDS", FPMatch: true})

	repo := NewDatacheckRepository(db)
	require.NoError(t, repo.SaveAll(context.Background(), log))

	var count int64
	require.NoError(t, db.Model(&DatacheckModel{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestDatacheckSaveAllNoOpOnEmpty(t *testing.T) {
	db := openTestDB(t)
	log := shared.NewDatacheckLog()

	repo := NewDatacheckRepository(db)
	require.NoError(t, repo.SaveAll(context.Background(), log))

	var count int64
	require.NoError(t, db.Model(&DatacheckModel{}).Count(&count).Error)
	assert.Zero(t, count)
}
