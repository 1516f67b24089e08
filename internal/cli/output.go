package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/Veraticus/painel/internal/model"
	"github.com/Veraticus/painel/internal/pages"
)

// Output formats accepted by --format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Formats lists the accepted output formats.
func Formats() []string {
	return []string{FormatTable, FormatJSON}
}

type jsonMetric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type jsonResult struct {
	Source  string           `json:"source,omitempty"`
	Page    string           `json:"page"`
	Metrics []jsonMetric     `json:"metrics"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
	Shown   int              `json:"shown"`
	Total   int              `json:"total"`
}

// WriteJSON encodes the result as an indented JSON document. Amounts are
// emitted as decimal strings and dates as YYYY-MM-DD.
func WriteJSON(w io.Writer, r pages.Result) error {
	out := jsonResult{
		Source:  r.Filtered.Source,
		Page:    r.Page,
		Metrics: make([]jsonMetric, 0, len(r.Metrics)),
		Columns: r.Filtered.Columns,
		Rows:    make([]map[string]any, 0, r.Shown()),
		Shown:   r.Shown(),
		Total:   r.Total,
	}
	if out.Columns == nil {
		out.Columns = []string{}
	}
	for _, m := range r.Metrics {
		out.Metrics = append(out.Metrics, jsonMetric{Label: m.Label, Value: m.Value.StringFixed(2)})
	}
	for _, row := range r.Filtered.Rows {
		out.Rows = append(out.Rows, jsonRow(r.Filtered.Columns, row))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

func jsonRow(columns []string, r model.Row) map[string]any {
	out := make(map[string]any, len(columns))
	for _, c := range columns {
		v := r[c]
		if t, ok := v.(time.Time); ok {
			v = model.CellString(t)
		}
		out[c] = v
	}
	return out
}
