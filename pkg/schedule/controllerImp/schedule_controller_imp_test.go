package controllerImp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriplan/database"
	"agriplan/entities"
	"agriplan/pkg/catalog"
	cropRepoImp "agriplan/pkg/crop/repositoryImp"
	cropService "agriplan/pkg/crop/service"
	cropSvcImp "agriplan/pkg/crop/serviceImp"
	"agriplan/pkg/schedule/repositoryImp"
	"agriplan/pkg/schedule/serviceImp"
)

var today = time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)

func clock() time.Time { return today.Add(9 * time.Hour) }

type fixture struct {
	e     *echo.Echo
	crops cropService.CropService
}

func setup(t *testing.T) fixture {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "acts.db"))
	require.NoError(t, err)

	crops := cropSvcImp.NewCropServiceWithClock(cropRepoImp.New(db), catalog.Default(), clock)
	h := New(serviceImp.NewActivityService(repositoryImp.New(db), clock))

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := c.Request().Header.Get("X-Test-Uid")
			if uid == "" {
				uid = "U1"
			}
			c.Set("uid", uid)
			return next(c)
		}
	})
	e.GET("/activities", h.List)
	e.PATCH("/activities/:id", h.Patch)
	return fixture{e: e, crops: crops}
}

func get(t *testing.T, e *echo.Echo, path string) []entities.PlannedActivity {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out []entities.PlannedActivity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestUpcomingActivities(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	// rice: +3, +14, +30; tomatoes: +3, +14, +30
	_, err := f.crops.AddCrop(ctx, "U1", cropService.AddRequest{Crop: "Rice"})
	require.NoError(t, err)
	_, err = f.crops.AddCrop(ctx, "U1", cropService.AddRequest{Crop: "Tomatoes", PlantingDate: today.AddDate(0, 0, -3)})
	require.NoError(t, err)
	_, err = f.crops.AddCrop(ctx, "U2", cropService.AddRequest{Crop: "Maize"})
	require.NoError(t, err)

	out := get(t, f.e, "/activities")
	require.Len(t, out, 5)
	assert.Equal(t, today, out[0].DueDate.UTC())
	for i := 1; i < len(out); i++ {
		assert.False(t, out[i].DueDate.Before(out[i-1].DueDate))
	}
	for _, a := range out {
		assert.Equal(t, "U1", a.UserID)
	}

	assert.Len(t, get(t, f.e, "/activities?limit=2"), 2)
	assert.Len(t, get(t, f.e, "/activities?limit=50"), 6)

	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/activities?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleCompleted(t *testing.T) {
	f := setup(t)
	c, err := f.crops.AddCrop(context.Background(), "U1", cropService.AddRequest{Crop: "Millet"})
	require.NoError(t, err)
	id := c.Activities[0].ID

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/activities/"+id, strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	f.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// completed ones drop out of the upcoming list but stay on the crop calendar
	assert.Len(t, get(t, f.e, "/activities"), 2)
	all := get(t, f.e, "/activities?crop_id="+c.ID)
	require.Len(t, all, 3)
	assert.True(t, all[0].Completed)

	// an empty body flips it back
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/activities/"+id, strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	f.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var a entities.PlannedActivity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.False(t, a.Completed)
	assert.Len(t, get(t, f.e, "/activities"), 3)

	// an explicit value is set, not flipped
	for i := 0; i < 2; i++ {
		rec = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodPatch, "/activities/"+id, strings.NewReader(`{"completed":true}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		f.e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Len(t, get(t, f.e, "/activities"), 2)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/activities/"+id, strings.NewReader(`{"completed":false}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	f.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, get(t, f.e, "/activities"), 3)

	// another user cannot touch it
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/activities/"+id, strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-Test-Uid", "U2")
	f.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
