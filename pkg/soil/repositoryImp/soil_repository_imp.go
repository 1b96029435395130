package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"agriplan/entities"
	"agriplan/pkg/soil/repository"
)

type soilRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SoilRepository { return &soilRepo{db} }

func (r *soilRepo) Create(ctx context.Context, s *entities.SoilSample) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *soilRepo) Recent(ctx context.Context, uid string, limit int) ([]entities.SoilSample, error) {
	var out []entities.SoilSample
	q := r.db.WithContext(ctx).Where("user_id = ?", uid).Order("taken_at DESC, sample_id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
