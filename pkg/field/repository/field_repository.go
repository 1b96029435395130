package repository

import (
	"context"

	"agriplan/entities"
)

type FieldRepository interface {
	Create(ctx context.Context, f *entities.Field) error
	List(ctx context.Context, uid string) ([]entities.Field, error)
	FindByID(ctx context.Context, id uint, uid string) (*entities.Field, error)
	Delete(ctx context.Context, id uint, uid string) error
}
