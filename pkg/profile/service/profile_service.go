package service

import "context"

// UserProfile holds the farm settings the business plan and assistant
// default to. Values are catalog slugs.
type UserProfile struct {
	Region      string `json:"region"`
	SoilType    string `json:"soil_type"`
	WaterSource string `json:"water_source"`
}

func (p UserProfile) Complete() bool {
	return p.Region != "" && p.SoilType != "" && p.WaterSource != ""
}

type ProfileService interface {
	// Get returns the stored profile, or an empty one if none was saved.
	Get(ctx context.Context, uid string) (UserProfile, error)
	Put(ctx context.Context, uid string, p UserProfile) (UserProfile, error)
	// Reset forgets the stored profile.
	Reset(ctx context.Context, uid string) error
}
