// Package kvstore keeps small JSON documents under string keys.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agriplan/entities"
)

var ErrNotFound = errors.New("key not found")

type Store interface {
	// Get decodes the document at key into dst.
	Get(ctx context.Context, key string, dst any) error
	Put(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
}

type gormStore struct{ db *gorm.DB }

func New(db *gorm.DB) Store { return &gormStore{db} }

func (s *gormStore) Get(ctx context.Context, key string, dst any) error {
	var row entities.KV
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(row.Value, dst)
}

func (s *gormStore) Put(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	row := entities.KV{Key: key, Value: datatypes.JSON(b)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}

func (s *gormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("key = ?", key).Delete(&entities.KV{}).Error
}
