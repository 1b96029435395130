package serviceImp

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agriplan/database"
	"agriplan/entities"
	"agriplan/pkg/apperr"
	"agriplan/pkg/catalog"
	"agriplan/pkg/crop/repository"
	"agriplan/pkg/crop/repositoryImp"
	"agriplan/pkg/crop/service"
	"agriplan/pkg/recommend"
)

var (
	today  = time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	clock  = func() time.Time { return today.Add(14 * time.Hour) }
	sample = recommend.SoilReading{N: 80, P: 40, K: 40, Temperature: 23.5, Humidity: 70, PH: 6.5, Rainfall: 200}
)

func setup(t *testing.T) (service.CropService, *gorm.DB) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "crops.db"))
	require.NoError(t, err)
	return NewCropServiceWithClock(repositoryImp.New(db), catalog.Default(), clock), db
}

func TestAcceptRecommendation(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()

	c, err := svc.AcceptRecommendation(ctx, "u1", service.AcceptRequest{Crop: "Millet", Reading: sample})
	require.NoError(t, err)

	assert.Equal(t, "Millet", c.CropName)
	assert.Equal(t, "Pearl", c.Variety)
	assert.Equal(t, entities.StatusPlanning, c.Status)
	assert.Equal(t, "Select field", c.Field)
	assert.Equal(t, 5.0, c.AreaHectares)
	assert.True(t, c.Recommended)
	assert.Equal(t, "Recommended based on soil analysis (N:80, P:40, K:40, pH:6.5)", c.Notes)
	assert.Equal(t, today, c.PlantingDate.UTC())
	assert.Equal(t, today.AddDate(0, 0, 90), c.HarvestDate.UTC())
	require.NotNil(t, c.SoilReading)
	assert.Equal(t, sample, *c.SoilReading)

	require.Len(t, c.Activities, 3)
	assert.Equal(t, c.ID+"-activity-0", c.Activities[0].ID)
	for _, a := range c.Activities {
		assert.True(t, a.Recommended)
		assert.Equal(t, "u1", a.UserID)
	}

	var n int64
	require.NoError(t, db.Model(&entities.PlannedActivity{}).Where("crop_id = ?", c.ID).Count(&n).Error)
	assert.EqualValues(t, 3, n)

	got, err := svc.Get(ctx, c.ID, "u1")
	require.NoError(t, err)
	require.NotNil(t, got.SoilReading)
	assert.Equal(t, sample.PH, got.SoilReading.PH)
	assert.Len(t, got.Activities, 3)
}

func TestAcceptRecommendationNeedsReplaceConfirmation(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()

	first, err := svc.AcceptRecommendation(ctx, "u1", service.AcceptRequest{Crop: "Wheat", Reading: sample, AreaHectares: 2})
	require.NoError(t, err)
	_, err = svc.AddCrop(ctx, "u1", service.AddRequest{Crop: "Tomatoes"})
	require.NoError(t, err)
	_, err = svc.AddCrop(ctx, "u2", service.AddRequest{Crop: "Maize"})
	require.NoError(t, err)

	_, err = svc.AcceptRecommendation(ctx, "u1", service.AcceptRequest{Crop: "Olives", Reading: sample})
	assert.ErrorIs(t, err, apperr.ErrReplaceNotConfirmed)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	second, err := svc.AcceptRecommendation(ctx, "u1", service.AcceptRequest{Crop: "Olives", Reading: sample, Replace: true})
	require.NoError(t, err)

	list, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)

	var orphans int64
	require.NoError(t, db.Model(&entities.PlannedActivity{}).Where("crop_id = ?", first.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)

	// other users are untouched
	other, err := svc.List(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestAcceptRecommendationRejects(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.AcceptRecommendation(ctx, "u1", service.AcceptRequest{Crop: "Quinoa", Reading: sample})
	assert.ErrorIs(t, err, apperr.ErrUnknownCrop)

	// finance-only crops have no growing calendar
	_, err = svc.AcceptRecommendation(ctx, "u1", service.AcceptRequest{Crop: "Almonds", Reading: sample})
	assert.ErrorIs(t, err, apperr.ErrUnknownCrop)

	_, err = svc.AcceptRecommendation(ctx, "u1", service.AcceptRequest{Crop: "Wheat", Reading: recommend.SoilReading{PH: 20}})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.AcceptRecommendation(ctx, "u1", service.AcceptRequest{Crop: "Wheat", Reading: sample, AreaHectares: -2})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

// countingRepo holds every ReplaceAll until release is closed.
type countingRepo struct {
	repository.CropRepository
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (r *countingRepo) ReplaceAll(_ context.Context, _ string, _ *entities.PlannedCrop, _ []entities.PlannedActivity, _ bool) error {
	if r.calls.Add(1) == 1 {
		close(r.entered)
	}
	<-r.release
	return nil
}

func TestAcceptRecommendationCollapsesConcurrentDuplicates(t *testing.T) {
	repo := &countingRepo{entered: make(chan struct{}), release: make(chan struct{})}
	svc := NewCropServiceWithClock(repo, catalog.Default(), clock)
	ctx := context.Background()
	req := service.AcceptRequest{Crop: "Rice", Reading: sample}

	results := make([]*entities.PlannedCrop, 4)
	errs := make([]error, 4)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = svc.AcceptRecommendation(ctx, "u1", req)
	}()
	<-repo.entered

	for i := 1; i < len(errs); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.AcceptRecommendation(ctx, "u1", req)
		}(i)
	}
	// let the late callers reach the in-flight call before it returns
	time.Sleep(50 * time.Millisecond)
	close(repo.release)
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err)
		assert.Same(t, results[0], results[i])
	}
	assert.EqualValues(t, 1, repo.calls.Load())
}

func TestConcurrentUnconfirmedAcceptsKeepOneCrop(t *testing.T) {
	crops := []string{"Rice", "Wheat", "Cotton", "Chickpea", "Maize", "Barley", "Millet", "Tomatoes"}
	for round := 0; round < 5; round++ {
		svc, _ := setup(t)
		ctx := context.Background()

		errs := make([]error, len(crops))
		var wg sync.WaitGroup
		for i, name := range crops {
			wg.Add(1)
			go func(i int, name string) {
				defer wg.Done()
				_, errs[i] = svc.AcceptRecommendation(ctx, "u1", service.AcceptRequest{Crop: name, Reading: sample})
			}(i, name)
		}
		wg.Wait()

		ok := 0
		for _, err := range errs {
			if err == nil {
				ok++
				continue
			}
			assert.ErrorIs(t, err, apperr.ErrReplaceNotConfirmed)
		}
		assert.Equal(t, 1, ok, "round %d", round)

		list, err := svc.List(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, list, 1, "round %d", round)
	}
}

func TestAddCropKeepsPastActivitiesOut(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	c, err := svc.AddCrop(ctx, "u1", service.AddRequest{
		Crop:         "wheat",
		Variety:      "Common",
		PlantingDate: today.AddDate(0, 0, -21),
		Status:       entities.StatusGrowing,
		AreaHectares: 1.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Common", c.Variety)
	assert.False(t, c.Recommended)
	assert.Nil(t, c.SoilReading)
	require.Len(t, c.Activities, 2)
	assert.Equal(t, today, c.Activities[0].DueDate.UTC())
	assert.False(t, c.Activities[0].Recommended)

	_, err = svc.AddCrop(ctx, "u1", service.AddRequest{Crop: "wheat", Status: "Harvested"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestUpdateStatusAndDelete(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()

	c, err := svc.AddCrop(ctx, "u1", service.AddRequest{Crop: "Rice"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, c.ID, "u1", entities.StatusPlanted))
	got, err := svc.Get(ctx, c.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, entities.StatusPlanted, got.Status)

	assert.ErrorIs(t, svc.UpdateStatus(ctx, c.ID, "u1", "Sold"), apperr.ErrInvalidInput)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, c.ID, "someone-else", entities.StatusGrowing), apperr.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, c.ID, "someone-else"), apperr.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, c.ID, "u1"))
	_, err = svc.Get(ctx, c.ID, "u1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	var n int64
	require.NoError(t, db.Model(&entities.PlannedActivity{}).Where("crop_id = ?", c.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestSummary(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	s, err := svc.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, s.Crops)
	assert.Zero(t, s.TotalHectares)

	_, err = svc.AddCrop(ctx, "u1", service.AddRequest{Crop: "Rice", AreaHectares: 1.5})
	require.NoError(t, err)
	_, err = svc.AddCrop(ctx, "u1", service.AddRequest{Crop: "Maize", AreaHectares: 2})
	require.NoError(t, err)

	s, err = svc.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, s.Crops)
	assert.InDelta(t, 3.5, s.TotalHectares, 1e-9)
}
