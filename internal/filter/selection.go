package filter

import (
	"github.com/Veraticus/painel/internal/model"
	"github.com/Veraticus/painel/internal/normalize"
)

// SelectionMode distinguishes "no filter chosen" from "nothing chosen".
type SelectionMode int

const (
	// SelectionAll keeps every row.
	SelectionAll SelectionMode = iota
	// SelectionNone keeps no row. Only the transfers page offers it.
	SelectionNone
	// SelectionSet keeps rows whose value is in the set.
	SelectionSet
)

// Selection is the state of a multi-choice widget.
type Selection struct {
	Values []string
	Mode   SelectionMode
}

// SelectAll is the pass-through selection.
func SelectAll() Selection {
	return Selection{Mode: SelectionAll}
}

// SelectNone is the explicit "exclude all" selection.
func SelectNone() Selection {
	return Selection{Mode: SelectionNone}
}

// SelectOf selects the given values. An empty list behaves like SelectAll.
func SelectOf(values ...string) Selection {
	if len(values) == 0 {
		return SelectAll()
	}
	return Selection{Mode: SelectionSet, Values: values}
}

// IsAll reports whether the selection filters nothing.
func (s Selection) IsAll() bool {
	return s.Mode == SelectionAll || (s.Mode == SelectionSet && len(s.Values) == 0)
}

// Canon canonicalises a cell before set membership is checked.
type Canon func(any) string

// Folded compares on the folded value.
func Folded(v any) string {
	return normalize.Fold(v)
}

// Status keeps rows whose folded column value is selected.
func Status(column string, sel Selection) Filter {
	return Membership(column, sel, Folded)
}

// Membership keeps rows whose canonical column value is in the selection.
func Membership(column string, sel Selection, canon Canon) Filter {
	switch {
	case sel.Mode == SelectionNone:
		return None()
	case sel.IsAll():
		return nil
	}

	if canon == nil {
		canon = Folded
	}

	set := make(map[string]bool, len(sel.Values))
	for _, v := range sel.Values {
		set[canon(v)] = true
	}

	return Predicate(func(r model.Row) bool {
		return set[canon(r[column])]
	})
}
