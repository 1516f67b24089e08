// Package testutil provides test helpers for building synthetic datasets
// and journals without touching real spreadsheet files.
package testutil

import (
	"testing"

	"github.com/Veraticus/painel/internal/model"
)

// DatasetBuilder provides a fluent interface for constructing datasets with
// arbitrary column layouts.
//
// Example:
//
//	ds := testutil.NewDataset(t, "Data", "Valor").
//		Row("01/03/2024", 100.0).
//		Row("02/03/2024", -40.0).
//		Build()
type DatasetBuilder struct {
	t       *testing.T
	source  string
	columns []string
	rows    []model.Row
}

// NewDataset starts a dataset with the given columns in source order.
func NewDataset(t *testing.T, columns ...string) *DatasetBuilder {
	t.Helper()
	return &DatasetBuilder{
		t:       t,
		source:  "test.xlsx",
		columns: columns,
	}
}

// Source sets the dataset's source path.
func (b *DatasetBuilder) Source(path string) *DatasetBuilder {
	b.source = path
	return b
}

// Row appends a row; values are positional and must match the column count.
func (b *DatasetBuilder) Row(values ...any) *DatasetBuilder {
	b.t.Helper()
	if len(values) != len(b.columns) {
		b.t.Fatalf("row has %d values, dataset has %d columns", len(values), len(b.columns))
	}
	r := make(model.Row, len(values))
	for i, v := range values {
		r[b.columns[i]] = v
	}
	b.rows = append(b.rows, r)
	return b
}

// Build returns the dataset.
func (b *DatasetBuilder) Build() model.Dataset {
	cols := make([]string, len(b.columns))
	copy(cols, b.columns)
	return model.Dataset{
		Source:  b.source,
		Columns: cols,
		Rows:    b.rows,
	}
}

// Column extracts one column's values in row order.
func Column(ds model.Dataset, name string) []any {
	out := make([]any, len(ds.Rows))
	for i, r := range ds.Rows {
		out[i] = r[name]
	}
	return out
}
