package repository

import (
	"context"

	"agriplan/entities"
)

type Summary struct {
	Crops         int64   `json:"crops"`
	TotalHectares float64 `json:"total_hectares"`
}

type CropRepository interface {
	// Create inserts a crop and its activities in one transaction.
	Create(ctx context.Context, c *entities.PlannedCrop, acts []entities.PlannedActivity) error
	// ReplaceAll deletes every crop and activity of the user, then inserts c
	// and acts, all in one transaction. Without replace it fails with
	// apperr.ErrReplaceNotConfirmed when the user already has crops.
	ReplaceAll(ctx context.Context, uid string, c *entities.PlannedCrop, acts []entities.PlannedActivity, replace bool) error
	List(ctx context.Context, uid string) ([]entities.PlannedCrop, error)
	FindByID(ctx context.Context, id, uid string) (*entities.PlannedCrop, error)
	UpdateStatus(ctx context.Context, id, uid string, status entities.CropStatus) error
	Delete(ctx context.Context, id, uid string) error
	Summary(ctx context.Context, uid string) (Summary, error)
}
