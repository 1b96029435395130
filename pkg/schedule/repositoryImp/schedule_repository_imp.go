package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"agriplan/entities"
	"agriplan/pkg/apperr"
	"agriplan/pkg/schedule/repository"
)

type activityRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ActivityRepository { return &activityRepo{db} }

func (r *activityRepo) List(ctx context.Context, uid string, f repository.Filter) ([]entities.PlannedActivity, error) {
	var out []entities.PlannedActivity
	q := r.db.WithContext(ctx).Where("user_id = ?", uid)
	if !f.From.IsZero() {
		q = q.Where("due_date >= ?", f.From)
	}
	if f.CropID != "" {
		q = q.Where("crop_id = ?", f.CropID)
	}
	if !f.IncludeCompleted {
		q = q.Where("completed = ?", false)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if err := q.Order("due_date ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *activityRepo) SetCompleted(ctx context.Context, id, uid string, completed *bool) (*entities.PlannedActivity, error) {
	var a entities.PlannedActivity
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, uid).First(&a).Error; err != nil {
			return err
		}
		done := !a.Completed
		if completed != nil {
			done = *completed
		}
		a.Completed = done
		return tx.Model(&a).Update("completed", done).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
