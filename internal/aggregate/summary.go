// Package aggregate computes the summary figures shown above each page's grid.
//
// Sums are accumulated as decimals so that Positive + Negative == Total holds
// exactly for any subset of rows.
package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/painel/internal/model"
	"github.com/Veraticus/painel/internal/normalize"
)

// Summary holds the signed sums of one numeric column.
type Summary struct {
	Column   string
	Positive decimal.Decimal
	Negative decimal.Decimal
	Total    decimal.Decimal
	Count    int // cells that parsed as numbers
}

// Summarize sums the positive, negative and all values of column.
// Cells that do not parse contribute nothing.
func Summarize(ds model.Dataset, column string) Summary {
	s := Summary{
		Column:   column,
		Positive: decimal.Zero,
		Negative: decimal.Zero,
		Total:    decimal.Zero,
	}

	for _, r := range ds.Rows {
		f, ok := normalize.ParseNumber(r[column])
		if !ok {
			continue
		}
		d := decimal.NewFromFloat(f)
		s.Count++
		s.Total = s.Total.Add(d)
		switch d.Sign() {
		case 1:
			s.Positive = s.Positive.Add(d)
		case -1:
			s.Negative = s.Negative.Add(d)
		}
	}

	return s
}

// SumColumn returns the sum of the numeric cells of column.
func SumColumn(ds model.Dataset, column string) decimal.Decimal {
	return Summarize(ds, column).Total
}

// LastNonEmpty returns the value of the last row, in dataset order, whose
// column holds a value. It is positional, not the latest by date.
func LastNonEmpty(ds model.Dataset, column string) (any, bool) {
	for i := len(ds.Rows) - 1; i >= 0; i-- {
		v := ds.Rows[i][column]
		if !model.IsEmpty(v) {
			return v, true
		}
	}
	return nil, false
}

// LastNumber is LastNonEmpty parsed as a decimal; zero when absent or
// unparseable.
func LastNumber(ds model.Dataset, column string) decimal.Decimal {
	v, ok := LastNonEmpty(ds, column)
	if !ok {
		return decimal.Zero
	}
	f, ok := normalize.ParseNumber(v)
	if !ok {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// Forecast is the projected balance: received + paid - pending.
// Each input comes from its own independently loaded summary file.
func Forecast(received, paid, pending decimal.Decimal) decimal.Decimal {
	return received.Add(paid).Sub(pending)
}
