package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"agriplan/pkg/catalog"
	"agriplan/pkg/projection"
	"agriplan/pkg/report"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRecommendCommand(t *testing.T) {
	out, err := run(t, "recommend", "--n", "80", "--p", "40", "--k", "40",
		"--temperature", "23.5", "--humidity", "70", "--ph", "6.5", "--rainfall", "200")
	require.NoError(t, err)
	assert.Equal(t, "Millet\n", out)

	args := []string{"recommend", "--n", "50", "--p", "30", "--k", "30",
		"--temperature", "26", "--humidity", "50", "--ph", "6.5", "--rainfall", "100"}
	out, err = run(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "Chickpea")

	out, err = run(t, append(args, "--ruleset", "assistant", "--json")...)
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "Dates", rec["crop"])
	assert.Equal(t, "assistant", rec["ruleset"])

	_, err = run(t, "recommend", "--ph", "15")
	assert.ErrorIs(t, err, catalog.ErrInvalidInput)

	_, err = run(t, "recommend", "--ruleset", "oracle")
	assert.Error(t, err)
}

func TestProjectCommand(t *testing.T) {
	out, err := run(t, "project", "--region", "fes-meknes", "--water", "irrigation",
		"--soil", "loamy", "--crop", "wheat", "--area", "1", "--scenario", "base", "--json")
	require.NoError(t, err)
	var s projection.Scenario
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 85000.0, s.InitialInvestment)
	assert.InDelta(t, 54003.33, s.AnnualCosts, 0.01)

	out, err = run(t, "project", "--region", "fes-meknes", "--water", "irrigation",
		"--soil", "loamy", "--crop", "wheat", "--area", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "170000.00")
	assert.Contains(t, out, "downside")
	assert.Contains(t, out, "n/a")

	_, err = run(t, "project", "--crop", "wheat", "--scenario", "sideways")
	assert.ErrorIs(t, err, catalog.ErrInvalidInput)
}

func TestProjectWritesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")
	_, err := run(t, "project", "--region", "fes-meknes", "--water", "irrigation",
		"--soil", "loamy", "--crop", "wheat", "--xlsx", path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(report.SheetSummary, "B4")
	require.NoError(t, err)
	assert.Equal(t, "wheat", v)
}

func TestActivitiesCommand(t *testing.T) {
	out, err := run(t, "activities", "--crop", "Rice", "--planted", "2025-05-05", "--now", "2025-05-10")
	require.NoError(t, err)
	assert.NotContains(t, out, "2025-05-08")
	assert.Contains(t, out, "2025-05-19")
	assert.Contains(t, out, "Harvest")

	_, err = run(t, "activities", "--crop", "Kale", "--planted", "2025-05-05")
	assert.ErrorIs(t, err, catalog.ErrUnknownCrop)

	_, err = run(t, "activities", "--crop", "Rice", "--planted", "05/05/2025")
	assert.ErrorIs(t, err, catalog.ErrInvalidInput)
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "catalog", "--json")
	require.NoError(t, err)
	var got struct {
		Crops   []catalog.CropProfile `json:"crops"`
		Regions []string              `json:"regions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.Crops, 19)
	assert.Len(t, got.Regions, 12)

	out, err = run(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "Millet")
	assert.Contains(t, out, "soil types:")
}
