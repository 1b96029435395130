package controllerImp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriplan/pkg/recommend"
)

func post(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRecommendEndpoint(t *testing.T) {
	local, err := recommend.NewLocal(recommend.RulesetPlanner)
	require.NoError(t, err)
	h := New(local)
	e := echo.New()
	e.POST("/recommendations", h.Recommend)
	e.GET("/recommendations/rulesets", h.Rulesets)

	rec := post(e, "/recommendations", `{"n":80,"p":40,"k":40,"temperature":23.5,"humidity":70,"ph":6.5,"rainfall":200}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"crop":"Millet"`)
	assert.Contains(t, rec.Body.String(), `"source":"local"`)

	diverging := `{"n":50,"p":30,"k":30,"temperature":26,"humidity":50,"ph":6.5,"rainfall":100}`
	assert.Contains(t, post(e, "/recommendations", diverging).Body.String(), `"crop":"Chickpea"`)
	assert.Contains(t, post(e, "/recommendations?ruleset=assistant", diverging).Body.String(), `"crop":"Dates"`)

	assert.Equal(t, http.StatusBadRequest, post(e, "/recommendations?ruleset=nope", diverging).Code)
	assert.Equal(t, http.StatusBadRequest, post(e, "/recommendations", `{"ph":20}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(e, "/recommendations", `{"n":`).Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recommendations/rulesets", nil))
	assert.JSONEq(t, `["assistant","planner"]`, rec.Body.String())
}
