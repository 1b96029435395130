// Package report renders a business-plan projection as a spreadsheet.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"agriplan/pkg/projection"
)

const (
	SheetSummary  = "Summary"
	SheetCashFlow = "Cash flow"

	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMECSV  = "text/csv"
)

var scenarioHeader = []any{"", projection.ScenarioBase, projection.ScenarioUpside, projection.ScenarioDownside}

func row(label string, f func(projection.Scenario) any, p projection.Projection) []any {
	out := []any{label}
	for _, s := range p.Scenarios() {
		out = append(out, f(s))
	}
	return out
}

func breakEven(s projection.Scenario) any {
	if s.BreakEvenYears == nil {
		return "n/a"
	}
	return *s.BreakEvenYears
}

func summaryRows(p projection.Projection) [][]any {
	in := p.Input
	return [][]any{
		{"Region", in.Region},
		{"Water source", in.WaterSource},
		{"Soil type", in.SoilType},
		{"Crop", in.Crop},
		{"Area (ha)", in.AreaHectares},
		{"Soil compatibility bonus", p.SoilCompatibilityBonus},
		{"Water efficiency multiplier", p.WaterEfficiencyMultiplier},
		{},
		scenarioHeader,
		row("Initial investment", func(s projection.Scenario) any { return s.InitialInvestment }, p),
		row("Maintenance", func(s projection.Scenario) any { return s.Costs.Maintenance }, p),
		row("Water", func(s projection.Scenario) any { return s.Costs.Water }, p),
		row("Fertilizer", func(s projection.Scenario) any { return s.Costs.Fertilizer }, p),
		row("Labor", func(s projection.Scenario) any { return s.Costs.Labor }, p),
		row("Depreciation", func(s projection.Scenario) any { return s.Costs.Depreciation }, p),
		row("Annual costs", func(s projection.Scenario) any { return s.AnnualCosts }, p),
		row("Yearly revenue", func(s projection.Scenario) any { return s.YearlyRevenue }, p),
		row("Profit", func(s projection.Scenario) any { return s.Profit }, p),
		row("ROI (%)", func(s projection.Scenario) any { return s.ROI }, p),
		row("Break-even (years)", breakEven, p),
	}
}

func cashFlowRows(p projection.Projection) [][]any {
	rows := [][]any{{"year", projection.ScenarioBase, projection.ScenarioUpside, projection.ScenarioDownside}}
	for i := range p.Base.CashFlow {
		r := []any{p.Base.CashFlow[i].Year}
		for _, s := range p.Scenarios() {
			r = append(r, s.CashFlow[i].Value)
		}
		rows = append(rows, r)
	}
	return rows
}

// Workbook builds a two-sheet workbook: inputs and scenario figures on
// Summary, the cumulative cash flow per scenario on Cash flow.
func Workbook(p projection.Projection) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetCashFlow); err != nil {
		return nil, err
	}
	if err := writeRows(f, SheetSummary, summaryRows(p)); err != nil {
		return nil, err
	}
	if err := writeRows(f, SheetCashFlow, cashFlowRows(p)); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(SheetSummary, "A", "A", 28)
	_ = f.SetColWidth(SheetSummary, "B", "D", 16)
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, r := range rows {
		if len(r) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func WriteXLSX(w io.Writer, p projection.Projection) error {
	f, err := Workbook(p)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// WriteCSV writes the cash flow sheet only.
func WriteCSV(w io.Writer, p projection.Projection) error {
	cw := csv.NewWriter(w)
	for _, r := range cashFlowRows(p) {
		rec := make([]string, len(r))
		for i, v := range r {
			switch x := v.(type) {
			case float64:
				rec[i] = strconv.FormatFloat(x, 'f', 2, 64)
			default:
				rec[i] = fmt.Sprint(x)
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
