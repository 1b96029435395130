package service

import (
	"context"
	"io"

	"agriplan/entities"
	"agriplan/pkg/projection"
)

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

type Result struct {
	projection.Projection
	Advice projection.Advice `json:"advice"`
}

type PlanService interface {
	// Project fills empty region, water source and soil type from the
	// user's profile before running the calculator.
	Project(ctx context.Context, uid string, in projection.Input) (Result, error)
	// FromField fills empty inputs, area included, from one of the user's
	// fields.
	FromField(ctx context.Context, uid string, fieldID uint, in projection.Input) (projection.Input, error)
	Save(ctx context.Context, uid string, in projection.Input) (*entities.SavedPlan, error)
	History(ctx context.Context, uid, crop string) ([]entities.SavedPlan, error)
	// Latest returns the highest saved version for one crop.
	Latest(ctx context.Context, uid, crop string) (*entities.SavedPlan, error)
	// Export writes the projection in the given format and returns its
	// content type and a download file name.
	Export(ctx context.Context, uid string, in projection.Input, format string, w io.Writer) (string, string, error)
}
