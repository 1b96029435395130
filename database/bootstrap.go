package database

import (
	"fmt"
	"strings"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"agriplan/entities"
	"agriplan/pkg/logger"
)

// Open connects to the SQLite file at path with foreign keys enforced and
// migrates every table.
func Open(path string) (*gorm.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "_pragma=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// single writer
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entities.PlannedCrop{},
		&entities.PlannedActivity{},
		&entities.SoilSample{},
		&entities.KV{},
		&entities.NoteDocument{},
		&entities.NoteChunk{},
		&entities.SavedPlan{},
		&entities.Field{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// OpenSQLite is Open for main: it exits the process on failure.
func OpenSQLite(path string) *gorm.DB {
	db, err := Open(path)
	if err != nil {
		logger.Fatal("database unavailable", zap.String("path", path), zap.Error(err))
	}
	return db
}
