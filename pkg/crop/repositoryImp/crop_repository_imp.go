package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"agriplan/entities"
	"agriplan/pkg/apperr"
	"agriplan/pkg/crop/repository"
)

type cropRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CropRepository { return &cropRepo{db} }

func insert(tx *gorm.DB, c *entities.PlannedCrop, acts []entities.PlannedActivity) error {
	if err := tx.Omit("Activities").Create(c).Error; err != nil {
		return err
	}
	if len(acts) == 0 {
		return nil
	}
	return tx.Create(&acts).Error
}

func (r *cropRepo) Create(ctx context.Context, c *entities.PlannedCrop, acts []entities.PlannedActivity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insert(tx, c, acts)
	})
}

func (r *cropRepo) ReplaceAll(ctx context.Context, uid string, c *entities.PlannedCrop, acts []entities.PlannedActivity, replace bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !replace {
			var n int64
			if err := tx.Model(&entities.PlannedCrop{}).Where("user_id = ?", uid).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return apperr.ErrReplaceNotConfirmed
			}
			return insert(tx, c, acts)
		}
		if err := tx.Where("user_id = ?", uid).Delete(&entities.PlannedActivity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", uid).Delete(&entities.PlannedCrop{}).Error; err != nil {
			return err
		}
		return insert(tx, c, acts)
	})
}

func (r *cropRepo) List(ctx context.Context, uid string) ([]entities.PlannedCrop, error) {
	var out []entities.PlannedCrop
	err := r.db.WithContext(ctx).
		Where("user_id = ?", uid).
		Order("planting_date ASC, created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *cropRepo) FindByID(ctx context.Context, id, uid string) (*entities.PlannedCrop, error) {
	var c entities.PlannedCrop
	err := r.db.WithContext(ctx).
		Preload("Activities", func(db *gorm.DB) *gorm.DB { return db.Order("due_date ASC") }).
		Where("id = ? AND user_id = ?", id, uid).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cropRepo) UpdateStatus(ctx context.Context, id, uid string, status entities.CropStatus) error {
	res := r.db.WithContext(ctx).Model(&entities.PlannedCrop{}).
		Where("id = ? AND user_id = ?", id, uid).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *cropRepo) Delete(ctx context.Context, id, uid string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, uid).Delete(&entities.PlannedCrop{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrNotFound
		}
		return tx.Where("crop_id = ?", id).Delete(&entities.PlannedActivity{}).Error
	})
}

func (r *cropRepo) Summary(ctx context.Context, uid string) (repository.Summary, error) {
	var s repository.Summary
	err := r.db.WithContext(ctx).Model(&entities.PlannedCrop{}).
		Select("COUNT(*) AS crops, COALESCE(SUM(area_hectares), 0) AS total_hectares").
		Where("user_id = ?", uid).
		Scan(&s).Error
	return s, err
}
