package report

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"agriplan/pkg/projection"
)

func golden(t *testing.T) projection.Projection {
	t.Helper()
	p, err := projection.Project(projection.Input{Region: "fes-meknes", WaterSource: "irrigation", SoilType: "loamy", Crop: "wheat", AreaHectares: 1})
	require.NoError(t, err)
	return p
}

func TestWriteXLSX(t *testing.T) {
	p := golden(t)
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, p))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetSummary, SheetCashFlow}, f.GetSheetList())

	v, err := f.GetCellValue(SheetSummary, "B4")
	require.NoError(t, err)
	assert.Equal(t, "wheat", v)

	rows, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	var inv []string
	var be []string
	for _, r := range rows {
		if len(r) == 0 {
			continue
		}
		switch r[0] {
		case "Initial investment":
			inv = r
		case "Break-even (years)":
			be = r
		}
	}
	require.Len(t, inv, 4)
	got, err := strconv.ParseFloat(inv[1], 64)
	require.NoError(t, err)
	assert.InDelta(t, 85000, got, 0.01)
	require.Len(t, be, 4)
	assert.Equal(t, "n/a", be[3])

	cf, err := f.GetRows(SheetCashFlow)
	require.NoError(t, err)
	assert.Len(t, cf, projection.CashFlowYears+1)
}

func TestWriteCSV(t *testing.T) {
	p := golden(t)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, p))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, projection.CashFlowYears+1)
	assert.Equal(t, []string{"year", "base", "upside", "downside"}, recs[0])
	assert.Equal(t, "1", recs[1][0])
	assert.Equal(t, strconv.FormatFloat(p.Base.CashFlow[0].Value, 'f', 2, 64), recs[1][1])
}
