// Package pages holds the per-page pipelines of the dashboard. Each page
// takes a loaded dataset plus the user's criteria and returns the filtered
// rows with the summary figures shown above the grid.
package pages

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/painel/internal/common"
	"github.com/Veraticus/painel/internal/filter"
	"github.com/Veraticus/painel/internal/model"
	"github.com/Veraticus/painel/internal/normalize"
	"github.com/Veraticus/painel/internal/schema"
)

// Page identifiers, used as command names and journal keys.
const (
	PageReconciliation = "conciliacao"
	PageMovements      = "movimentacao"
	PageTransfers      = "transferencias"
	PagePayables       = "pagar"
	PageReceivables    = "receber"
	PageBudget         = "orcamento"
	PageDashboard      = "dashboard"
)

// Option labels shared by several pages.
const (
	OptionAll  = "Todos"
	OptionNone = "Nenhum"
)

// CompanyColumn is the derived column holding the inferred company.
const CompanyColumn = "EMPRESA"

// Metric is one summary card.
type Metric struct {
	Label string
	Value decimal.Decimal
}

// Result is what a page hands to the presentation layer.
type Result struct {
	Page     string
	Filtered model.Dataset
	Metrics  []Metric
	// Total is the row count before filtering.
	Total int
}

// Shown is the number of rows that survived the filters.
func (r Result) Shown() int {
	return r.Filtered.Len()
}

// Metric returns the value of the metric with the given label.
func (r Result) Metric(label string) (decimal.Decimal, bool) {
	for _, m := range r.Metrics {
		if m.Label == label {
			return m.Value, true
		}
	}
	return decimal.Zero, false
}

// Period is an inclusive date interval picked by the user. Zero bounds are open.
type Period struct {
	Start time.Time
	End   time.Time
}

// CurrentMonth returns the first day of now's month through now's day.
func CurrentMonth(now time.Time) Period {
	y, m, d := now.Date()
	return Period{
		Start: time.Date(y, m, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}
}

func (p Period) rangeOf(byDay bool) filter.Range {
	return filter.Range{Start: p.Start, End: p.End, ByDay: byDay}
}

// dateFilter filters on the first column whose name mentions "data".
// Without such a column the page is not date-filtered.
func dateFilter(ds model.Dataset, p Period) filter.Filter {
	col, ok := schema.Resolve(ds.Columns, "data")
	if !ok {
		return nil
	}
	return filter.DateRange(col, p.rangeOf(false))
}

// exactMembership filters on a multiselect whose options are the column's
// own distinct values.
func exactMembership(column string, found bool, values []string) filter.Filter {
	if !found {
		return nil
	}
	return filter.Membership(column, filter.SelectOf(values...), model.CellString)
}

// capitalized is the canon used by status pickers with fixed options.
func capitalized(v any) string {
	return normalize.Capitalize(model.CellString(v))
}

func missingColumns(err error, message string) error {
	return common.NewUserError(message, fmt.Errorf("schema: %w", err))
}
