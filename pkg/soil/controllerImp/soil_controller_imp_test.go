package controllerImp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriplan/database"
	"agriplan/entities"
	"agriplan/pkg/soil/repositoryImp"
	"agriplan/pkg/soil/service"
	"agriplan/pkg/soil/serviceImp"
)

func setup(t *testing.T) (*echo.Echo, service.SoilService) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "soil.db"))
	require.NoError(t, err)
	svc := serviceImp.NewSoilService(repositoryImp.New(db))
	h := New(svc)

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("uid", "U1")
			return next(c)
		}
	})
	e.GET("/soil-readings", h.List)
	e.POST("/soil-readings", h.Create)
	return e, svc
}

func post(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/soil-readings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSaveAndListReadings(t *testing.T) {
	e, svc := setup(t)

	_, ok, err := svc.Latest(context.Background(), "U1")
	require.NoError(t, err)
	assert.False(t, ok)

	rec := post(e, `{"n":80,"p":40,"k":40,"temperature":23.5,"humidity":70,"ph":6.5,"rainfall":200,"date":"2025-04-01","note":"north plot"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = post(e, `{"n":95,"p":30,"k":30,"temperature":23,"humidity":50,"ph":8,"rainfall":150,"date":"2025-04-20"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/soil-readings", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []entities.SoilSample
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, 95.0, list[0].N)
	assert.Equal(t, "north plot", list[1].Note)

	latest, ok, err := svc.Latest(context.Background(), "U1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 8.0, latest.PH)
}

func TestRejectInvalidReading(t *testing.T) {
	e, _ := setup(t)
	assert.Equal(t, http.StatusBadRequest, post(e, `{"ph":15}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(e, `{"n":-4}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(e, `{"ph":7,"date":"yesterday"}`).Code)
}
