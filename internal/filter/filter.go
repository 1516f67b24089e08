// Package filter implements the composable row filters every page applies.
//
// A Filter is a pure function over a dataset: it never mutates its input and
// always preserves source row order. Filters compose by conjunction, so the
// set of surviving rows does not depend on the order they are applied in.
package filter

import (
	"strings"
	"time"

	"github.com/Veraticus/painel/internal/model"
	"github.com/Veraticus/painel/internal/normalize"
)

// Filter narrows a dataset.
type Filter func(model.Dataset) model.Dataset

// Apply runs the filters in order. With no filters the dataset is returned
// unchanged.
func Apply(ds model.Dataset, filters ...Filter) model.Dataset {
	for _, f := range filters {
		if f == nil {
			continue
		}
		ds = f(ds)
	}
	return ds
}

// Predicate builds a filter from a per-row test.
func Predicate(keep func(model.Row) bool) Filter {
	return func(ds model.Dataset) model.Dataset {
		return ds.Select(keep)
	}
}

// None is the filter that removes every row.
func None() Filter {
	return func(ds model.Dataset) model.Dataset {
		return ds.WithRows([]model.Row{})
	}
}

// Category keeps rows whose column equals value after folding.
// An empty value is a pass-through.
func Category(column, value string) Filter {
	want := normalize.FoldString(value)
	if want == "" {
		return nil
	}
	return Predicate(func(r model.Row) bool {
		return normalize.Fold(r[column]) == want
	})
}

// Equals keeps rows whose stringified column value equals value exactly.
func Equals(column, value string) Filter {
	return Predicate(func(r model.Row) bool {
		return model.CellString(r[column]) == value
	})
}

// Text keeps rows where any cell contains term, ignoring case and accents.
// An empty term is a pass-through.
func Text(term string) Filter {
	needle := normalize.FoldString(term)
	if needle == "" {
		return nil
	}
	return Predicate(func(r model.Row) bool {
		for _, v := range r {
			if v == nil {
				continue
			}
			if strings.Contains(normalize.Fold(v), needle) {
				return true
			}
		}
		return false
	})
}

// Contains keeps rows whose column contains term, ignoring case and accents.
// An empty term is a pass-through.
func Contains(column, term string) Filter {
	needle := normalize.FoldString(term)
	if needle == "" {
		return nil
	}
	return Predicate(func(r model.Row) bool {
		v := r[column]
		if v == nil {
			return false
		}
		return strings.Contains(normalize.Fold(v), needle)
	})
}

// ContainsAny keeps rows whose column contains any of the terms.
func ContainsAny(column string, terms ...string) Filter {
	needles := make([]string, 0, len(terms))
	for _, t := range terms {
		if n := normalize.FoldString(t); n != "" {
			needles = append(needles, n)
		}
	}
	if len(needles) == 0 {
		return nil
	}
	return Predicate(func(r model.Row) bool {
		v := normalize.Fold(r[column])
		for _, n := range needles {
			if strings.Contains(v, n) {
				return true
			}
		}
		return false
	})
}

// NotEmpty keeps rows with a value in column.
func NotEmpty(column string) Filter {
	return Predicate(func(r model.Row) bool {
		return !model.IsEmpty(r[column])
	})
}

// AnyOf keeps rows whose folded column value is one of values.
func AnyOf(column string, values ...string) Filter {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[normalize.FoldString(v)] = true
	}
	return Predicate(func(r model.Row) bool {
		return set[normalize.Fold(r[column])]
	})
}

// Range is an inclusive date interval. A zero bound is open.
type Range struct {
	Start time.Time
	End   time.Time
	// ByDay compares calendar days instead of instants.
	ByDay bool
}

// IsZero reports whether both bounds are open.
func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether t lies within the range.
func (r Range) Contains(t time.Time) bool {
	start, end := r.Start, r.End
	if r.ByDay {
		t = normalize.Day(t)
		if !start.IsZero() {
			start = normalize.Day(start)
		}
		if !end.IsZero() {
			end = normalize.Day(end)
		}
	}
	if !start.IsZero() && t.Before(start) {
		return false
	}
	if !end.IsZero() && t.After(end) {
		return false
	}
	return true
}

// DateRange keeps rows whose column parses to a date inside r.
// Rows with unparseable dates are excluded. A fully open range is a
// pass-through.
func DateRange(column string, r Range) Filter {
	if r.IsZero() {
		return nil
	}
	return Predicate(func(row model.Row) bool {
		d, ok := normalize.ParseDate(row[column])
		if !ok {
			return false
		}
		return r.Contains(d)
	})
}

// DateEquals keeps rows whose column falls on the same calendar day as day.
func DateEquals(column string, day time.Time) Filter {
	if day.IsZero() {
		return nil
	}
	return DateRange(column, Range{Start: day, End: day, ByDay: true})
}
