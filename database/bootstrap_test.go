package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriplan/entities"
)

func TestOpenMigratesEveryTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agriplan.db")
	db, err := Open(path)
	require.NoError(t, err)

	for _, m := range []any{
		&entities.PlannedCrop{}, &entities.PlannedActivity{}, &entities.SoilSample{},
		&entities.KV{}, &entities.NoteDocument{}, &entities.NoteChunk{},
		&entities.SavedPlan{}, &entities.Field{},
	} {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	require.NoError(t, sqlDB.Close())

	// reopening an existing file is a no-op migration
	db, err = Open(path)
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable(&entities.Field{}))
}

func TestOpenBadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "dir", "x.db"))
	assert.Error(t, err)
}
