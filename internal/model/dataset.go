// Package model holds the tabular types shared by every dashboard page.
package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row maps a column name to its raw cell value.
// Cell values are nil, string, float64, bool or time.Time.
type Row map[string]any

// Dataset is an ordered sequence of rows loaded from a single spreadsheet.
// Columns keeps the source column order; filters never reorder rows.
type Dataset struct {
	Source  string
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (d Dataset) Len() int {
	return len(d.Rows)
}

// HasColumn reports whether the dataset exposes the exact column name.
func (d Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// WithRows returns a dataset sharing columns and source but holding rows.
func (d Dataset) WithRows(rows []Row) Dataset {
	return Dataset{
		Source:  d.Source,
		Columns: d.Columns,
		Rows:    rows,
	}
}

// Select keeps the rows for which keep returns true, preserving order.
func (d Dataset) Select(keep func(Row) bool) Dataset {
	rows := make([]Row, 0, len(d.Rows))
	for _, r := range d.Rows {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	return d.WithRows(rows)
}

// AddColumn returns a copy of the dataset with a derived column appended.
// Row maps are copied so the input dataset is left untouched.
func (d Dataset) AddColumn(name string, derive func(Row) any) Dataset {
	return d.AddIndexedColumn(name, func(_ int, r Row) any { return derive(r) })
}

// AddIndexedColumn is AddColumn with the row's position passed to derive,
// for columns computed from a slice aligned with d.Rows.
func (d Dataset) AddIndexedColumn(name string, derive func(i int, r Row) any) Dataset {
	cols := make([]string, 0, len(d.Columns)+1)
	for _, c := range d.Columns {
		if c != name {
			cols = append(cols, c)
		}
	}
	cols = append(cols, name)

	rows := make([]Row, len(d.Rows))
	for i, r := range d.Rows {
		nr := make(Row, len(r)+1)
		for k, v := range r {
			nr[k] = v
		}
		nr[name] = derive(i, r)
		rows[i] = nr
	}

	return Dataset{Source: d.Source, Columns: cols, Rows: rows}
}

// DropColumn returns a copy of the dataset without the named column.
func (d Dataset) DropColumn(name string) Dataset {
	if !d.HasColumn(name) {
		return d
	}

	cols := make([]string, 0, len(d.Columns)-1)
	for _, c := range d.Columns {
		if c != name {
			cols = append(cols, c)
		}
	}

	rows := make([]Row, len(d.Rows))
	for i, r := range d.Rows {
		nr := make(Row, len(r))
		for k, v := range r {
			if k != name {
				nr[k] = v
			}
		}
		rows[i] = nr
	}

	return Dataset{Source: d.Source, Columns: cols, Rows: rows}
}

// Distinct returns the distinct non-empty stringified values of a column,
// in first-seen order.
func (d Dataset) Distinct(column string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range d.Rows {
		v := r[column]
		if IsEmpty(v) {
			continue
		}
		s := CellString(v)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// IsEmpty reports whether a cell holds no value.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case time.Time:
		return t.IsZero()
	default:
		return false
	}
}

// CellString renders a cell the way a spreadsheet would show it in a grid.
func CellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(t)
	}
}
