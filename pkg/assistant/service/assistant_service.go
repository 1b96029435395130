package service

import (
	"context"

	"agriplan/pkg/projection"
)

const (
	IntentRecommend    = "recommend"
	IntentBusinessPlan = "business_plan"
	IntentYield        = "yield"
	IntentSoil         = "soil"
	IntentWater        = "water"
	IntentConfirm      = "confirm"
	IntentHelp         = "help"
)

// Conversation is the follow-up state kept per user between messages.
type Conversation struct {
	LastRecommendedCrop  string `json:"last_recommended_crop"`
	AwaitingBusinessPlan bool   `json:"awaiting_business_plan"`
	AwaitingYieldInfo    bool   `json:"awaiting_yield_info"`
}

type Reply struct {
	Intent     string                 `json:"intent"`
	Text       string                 `json:"text"`
	Crop       string                 `json:"crop,omitempty"`
	Projection *projection.Projection `json:"projection,omitempty"`
	Sources    []string               `json:"sources,omitempty"`
}

type AssistantService interface {
	Reply(ctx context.Context, uid, message string) (Reply, error)
	Conversation(uid string) Conversation
	Reset(uid string)
}
