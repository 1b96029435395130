package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"agriplan/entities"
	"agriplan/pkg/apperr"
	"agriplan/pkg/field/repository"
)

type fieldRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FieldRepository { return &fieldRepo{db} }

func (r *fieldRepo) Create(ctx context.Context, f *entities.Field) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fieldRepo) List(ctx context.Context, uid string) ([]entities.Field, error) {
	var fs []entities.Field
	err := r.db.WithContext(ctx).Where("user_id = ?", uid).Order("name ASC").Find(&fs).Error
	return fs, err
}

func (r *fieldRepo) FindByID(ctx context.Context, id uint, uid string) (*entities.Field, error) {
	var f entities.Field
	err := r.db.WithContext(ctx).Where("field_id = ? AND user_id = ?", id, uid).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fieldRepo) Delete(ctx context.Context, id uint, uid string) error {
	res := r.db.WithContext(ctx).Where("field_id = ? AND user_id = ?", id, uid).Delete(&entities.Field{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
