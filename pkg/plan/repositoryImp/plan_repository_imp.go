package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"agriplan/entities"
	"agriplan/pkg/apperr"
	"agriplan/pkg/plan/repository"
)

type planRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlanRepository { return &planRepo{db} }

func (r *planRepo) Create(ctx context.Context, p *entities.SavedPlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		if err := tx.Model(&entities.SavedPlan{}).
			Where("user_id = ? AND crop = ?", p.UserID, p.Crop).
			Select("COALESCE(MAX(version), 0)").Scan(&last).Error; err != nil {
			return err
		}
		p.Version = last + 1
		return tx.Create(p).Error
	})
}

func (r *planRepo) Latest(ctx context.Context, uid, crop string) (*entities.SavedPlan, error) {
	var p entities.SavedPlan
	err := r.db.WithContext(ctx).Where("user_id = ? AND crop = ?", uid, crop).Order("version DESC").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns the user's plans newest first, optionally for one crop.
func (r *planRepo) List(ctx context.Context, uid, crop string) ([]entities.SavedPlan, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", uid)
	if crop != "" {
		q = q.Where("crop = ?", crop)
	}
	var ps []entities.SavedPlan
	if err := q.Order("created_at DESC").Order("plan_id DESC").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}
