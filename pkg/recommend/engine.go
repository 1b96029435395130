package recommend

import (
	"context"

	"agriplan/pkg/catalog"
)

const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

type Recommendation struct {
	Crop    string   `json:"crop"`
	Ruleset string   `json:"ruleset"`
	Source  string   `json:"source"`
	Rules   []string `json:"rules,omitempty"`
}

type Recommender interface {
	Recommend(ctx context.Context, r SoilReading) Recommendation
}

type local struct{ rs Ruleset }

// NewLocal returns an in-process recommender for the named ruleset.
func NewLocal(ruleset string) (Recommender, error) {
	rs, err := ByName(ruleset)
	if err != nil {
		return nil, err
	}
	return &local{rs: rs}, nil
}

func (l *local) Recommend(_ context.Context, r SoilReading) Recommendation {
	return Recommendation{
		Crop:    l.rs.Evaluate(r),
		Ruleset: l.rs.Name,
		Source:  SourceLocal,
		Rules:   l.rs.Trace(r),
	}
}

// Build returns the local engine for ruleset, fronted by the remote client
// when endpoint is set.
func Build(ruleset, endpoint string, cat *catalog.Catalog) (Recommender, error) {
	l, err := NewLocal(ruleset)
	if err != nil {
		return nil, err
	}
	if endpoint == "" {
		return l, nil
	}
	return NewRemote(endpoint, cat, l), nil
}
