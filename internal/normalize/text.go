// Package normalize turns raw spreadsheet cells into comparable text, numbers
// and dates, and formats values using the Brazilian locale.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Veraticus/painel/internal/model"
)

// Fold returns the case-folded, accent-stripped, trimmed form of a cell.
// Missing cells fold to the empty string.
func Fold(v any) string {
	if v == nil {
		return ""
	}
	return FoldString(model.CellString(v))
}

// FoldString is Fold for values already known to be strings.
func FoldString(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.ReplaceAll(out, "\u00a0", " ")
	return strings.ToLower(strings.TrimSpace(out))
}

// Capitalize upper-cases the first letter and lower-cases the rest,
// matching how status labels are written in the exports ("Pendente").
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
