// Package budget computes horizontal (AH) and vertical (AV) analysis for a
// budget sheet with budgeted, forecast and actual amounts per account.
package budget

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/painel/internal/model"
	"github.com/Veraticus/painel/internal/normalize"
)

// RevenueLabel is the account whose budgeted amount is the AV baseline.
const RevenueLabel = "Faturamento"

// Column names appended by Annotate.
const (
	ColumnAH = "AH"
	ColumnAV = "AV"
)

// Columns names the source columns of a budget sheet.
type Columns struct {
	Account  string
	Budgeted string
	Forecast string
	Actual   string
}

// Line is one analysed account. AH and AV are NaN when undefined.
type Line struct {
	Account  string
	Budgeted decimal.Decimal
	Forecast decimal.Decimal
	Actual   decimal.Decimal
	AH       float64
	AV       float64
}

// IsRevenue reports whether an account label is the revenue baseline.
func IsRevenue(account any) bool {
	return normalize.Fold(account) == normalize.FoldString(RevenueLabel)
}

// Baseline returns the budgeted amount of the first revenue line.
func Baseline(ds model.Dataset, cols Columns) (float64, bool) {
	for _, r := range ds.Rows {
		if IsRevenue(r[cols.Account]) {
			f, ok := normalize.ParseNumber(r[cols.Budgeted])
			return f, ok
		}
	}
	return 0, false
}

// Compute analyses every row. The first pass locates the revenue baseline,
// the second divides each other line's budget by it.
//
// AH = actual / budgeted, NaN when budgeted is zero or missing.
// AV = budgeted / baseline, NaN on the revenue line itself and on every line
// when no usable baseline exists.
func Compute(ds model.Dataset, cols Columns) []Line {
	baseline, hasBaseline := Baseline(ds, cols)
	if baseline == 0 {
		hasBaseline = false
	}

	lines := make([]Line, 0, len(ds.Rows))
	for _, r := range ds.Rows {
		budgeted, budgetOK := normalize.ParseNumber(r[cols.Budgeted])
		actual, actualOK := normalize.ParseNumber(r[cols.Actual])
		forecast := normalize.Number(r[cols.Forecast])

		line := Line{
			Account:  model.CellString(r[cols.Account]),
			Budgeted: decimal.NewFromFloat(budgeted),
			Forecast: decimal.NewFromFloat(forecast),
			Actual:   decimal.NewFromFloat(actual),
			AH:       math.NaN(),
			AV:       math.NaN(),
		}

		if budgetOK && actualOK && budgeted != 0 {
			line.AH = actual / budgeted
		}
		if hasBaseline && budgetOK && !IsRevenue(r[cols.Account]) {
			line.AV = budgeted / baseline
		}

		lines = append(lines, line)
	}

	return lines
}

// Annotate returns a copy of ds with AH and AV columns holding the ratios
// (nil where undefined).
func Annotate(ds model.Dataset, cols Columns) model.Dataset {
	lines := Compute(ds, cols)
	ratio := func(f float64) any {
		if math.IsNaN(f) {
			return nil
		}
		return f
	}

	return ds.
		AddIndexedColumn(ColumnAH, func(i int, _ model.Row) any { return ratio(lines[i].AH) }).
		AddIndexedColumn(ColumnAV, func(i int, _ model.Row) any { return ratio(lines[i].AV) })
}
