package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"agriplan/pkg/catalog"
	"agriplan/pkg/logger"
)

type remote struct {
	endpoint string
	httpc    *http.Client
	crops    *catalog.Catalog
	fallback Recommender
}

// NewRemote posts readings to an external recommendation service. Any
// transport or decoding failure, and any crop the catalog does not know,
// falls back to the given local recommender.
func NewRemote(endpoint string, crops *catalog.Catalog, fallback Recommender) Recommender {
	return &remote{
		endpoint: strings.TrimRight(endpoint, "/"),
		httpc:    &http.Client{Timeout: 10 * time.Second},
		crops:    crops,
		fallback: fallback,
	}
}

func (c *remote) Recommend(ctx context.Context, r SoilReading) Recommendation {
	crop, err := c.call(ctx, r)
	if err != nil {
		logger.Named("recommend").Warn("remote recommender failed, using local rules",
			zap.String("endpoint", c.endpoint), zap.Error(err))
		return c.fallback.Recommend(ctx, r)
	}
	return Recommendation{Crop: crop, Ruleset: "external", Source: SourceRemote}
}

func (c *remote) call(ctx context.Context, r SoilReading) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/predict", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	var out struct {
		Crop string `json:"crop"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	p, ok := c.crops.Crop(out.Crop)
	if !ok {
		return "", fmt.Errorf("crop %q: %w", out.Crop, catalog.ErrUnknownCrop)
	}
	return p.Name, nil
}
