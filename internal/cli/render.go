package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/painel/internal/model"
	"github.com/Veraticus/painel/internal/normalize"
	"github.com/Veraticus/painel/internal/pages"
)

// DefaultMaxRows is the grid height when the caller sets none.
const DefaultMaxRows = 50

// GridOptions controls RenderGrid.
type GridOptions struct {
	// Percent lists columns holding ratios, rendered as percentages.
	Percent []string
	// MaxRows caps the rendered rows; zero means DefaultMaxRows and a
	// negative value renders everything.
	MaxRows int
}

// RenderMetrics lays the metric cards out side by side.
func RenderMetrics(metrics []pages.Metric) string {
	if len(metrics) == 0 {
		return ""
	}
	cards := make([]string, 0, len(metrics))
	for _, m := range metrics {
		value := CardValueStyle
		if m.Value.IsNegative() {
			value = NegativeValueStyle
		}
		cards = append(cards, CardStyle.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			CardLabelStyle.Render(m.Label),
			value.Render(normalize.FormatBRL(m.Value)),
		)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// RowCounter is the line shown under the grid.
func RowCounter(shown, total int) string {
	return fmt.Sprintf("Exibindo %d de %d registros", shown, total)
}

// RenderGrid draws the dataset as a bordered table.
func RenderGrid(ds model.Dataset, opts GridOptions) string {
	if len(ds.Columns) == 0 {
		return SubtleStyle.Render("Nenhum dado para exibir.")
	}

	limit := opts.MaxRows
	if limit == 0 {
		limit = DefaultMaxRows
	}
	rows := ds.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	percent := make(map[string]bool, len(opts.Percent))
	for _, c := range opts.Percent {
		percent[c] = true
	}

	body := make([][]string, 0, len(rows))
	for _, r := range rows {
		line := make([]string, len(ds.Columns))
		for i, c := range ds.Columns {
			if percent[c] {
				line[i] = FormatRatio(r[c])
				continue
			}
			line[i] = FormatCell(r[c])
		}
		body = append(body, line)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers(ds.Columns...).
		Rows(body...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})

	return t.String()
}

// FormatCell renders a cell for the grid: dates day-first, numbers with
// Brazilian separators, everything else as the spreadsheet shows it.
func FormatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return t.Format("02/01/2006")
		}
		return t.Format("02/01/2006 15:04")
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "-"
		}
		d := decimal.NewFromFloat(t)
		if d.Equal(d.Truncate(0)) {
			return normalize.FormatDecimal(d, 0)
		}
		return normalize.FormatDecimal(d, 2)
	case string:
		return strings.TrimSpace(t)
	default:
		return model.CellString(t)
	}
}

// FormatRatio renders AH/AV style ratios; missing ratios render as "-".
func FormatRatio(v any) string {
	f, ok := v.(float64)
	if !ok {
		return "-"
	}
	return normalize.FormatPercentPrec(f, 1)
}
