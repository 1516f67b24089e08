// Package schema infers which source column backs each logical field of a page.
//
// Source spreadsheets do not have a stable header layout: casing, accents
// and padding vary between exports. Resolution is therefore fuzzy, and the
// tie-break is a committed contract: the first column in source order whose
// folded name matches any candidate wins, whatever the candidate order.
package schema

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/painel/internal/common"
	"github.com/Veraticus/painel/internal/normalize"
)

// Resolve returns the first column whose folded name contains any of the
// folded candidates.
func Resolve(columns []string, candidates ...string) (string, bool) {
	folded := foldAll(candidates)
	for _, col := range columns {
		name := normalize.FoldString(col)
		for _, cand := range folded {
			if cand != "" && strings.Contains(name, cand) {
				return col, true
			}
		}
	}
	return "", false
}

// ResolveExact returns the first column whose folded name equals any of the
// folded candidates.
func ResolveExact(columns []string, candidates ...string) (string, bool) {
	folded := foldAll(candidates)
	for _, col := range columns {
		name := normalize.FoldString(col)
		for _, cand := range folded {
			if name == cand {
				return col, true
			}
		}
	}
	return "", false
}

func foldAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = normalize.FoldString(v)
	}
	return out
}

// FieldSpec describes how a logical field is found among source columns.
type FieldSpec struct {
	Field      string
	Label      string // shown to the user when the field is missing
	Candidates []string
	Exact      bool
	Required   bool
}

// Resolution maps logical field names to actual column names.
// A field absent from the map was not found.
type Resolution map[string]string

// Column returns the resolved column for a field.
func (r Resolution) Column(field string) (string, bool) {
	col, ok := r[field]
	return col, ok
}

// Has reports whether a field resolved.
func (r Resolution) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// MissingColumnError reports a required field that matched no column.
type MissingColumnError struct {
	Field      string
	Label      string
	Candidates []string
}

func (e *MissingColumnError) Error() string {
	label := e.Label
	if label == "" {
		label = e.Field
	}
	return fmt.Sprintf("%s %q (candidates: %s)", common.ErrMissingColumn, label, strings.Join(e.Candidates, ", "))
}

func (e *MissingColumnError) Unwrap() error {
	return common.ErrMissingColumn
}

// Infer resolves every spec against the columns. Specs are resolved
// independently. The first required spec that fails stops inference.
func Infer(columns []string, specs []FieldSpec) (Resolution, error) {
	res := make(Resolution, len(specs))
	for _, spec := range specs {
		var (
			col string
			ok  bool
		)
		if spec.Exact {
			col, ok = ResolveExact(columns, spec.Candidates...)
		} else {
			col, ok = Resolve(columns, spec.Candidates...)
		}

		if !ok {
			if spec.Required {
				return nil, &MissingColumnError{
					Field:      spec.Field,
					Label:      spec.Label,
					Candidates: spec.Candidates,
				}
			}
			slog.Debug("Optional column not found", "field", spec.Field, "candidates", spec.Candidates)
			continue
		}

		slog.Debug("Resolved column", "field", spec.Field, "column", col)
		res[spec.Field] = col
	}
	return res, nil
}
