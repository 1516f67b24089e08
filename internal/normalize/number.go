package normalize

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseNumber converts a raw cell into a float64.
//
// Numeric cells pass through unchanged. Strings follow the Brazilian
// convention: "." groups thousands and "," separates decimals, so
// "R$ 1.234,56" is 1234.56. A currency prefix, spaces, parentheses and a
// trailing minus are tolerated. Unparseable or empty cells return false.
func ParseNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		return parseNumberString(t)
	default:
		return 0, false
	}
}

// Number is ParseNumber treating failures as zero.
func Number(v any) float64 {
	f, _ := ParseNumber(v)
	return f
}

func parseNumberString(raw string) (float64, bool) {
	s := stripSpaces(raw)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	if strings.HasSuffix(s, "-") {
		negative = true
		s = strings.TrimSuffix(s, "-")
	}
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = strings.TrimPrefix(s, "-")
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "R$"), "r$")
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = strings.TrimPrefix(s, "-")
	}
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return 0, false
	}

	s, ok := canonicalDecimal(s)
	if !ok {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		f = -f
	}
	return f, true
}

// stripSpaces drops every Unicode space, including the NBSP and narrow NBSP
// spreadsheets put between "R$" and the digits.
func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// canonicalDecimal rewrites a locale-formatted number into strconv syntax.
func canonicalDecimal(s string) (string, bool) {
	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")

	switch {
	case dots > 0 && commas > 0:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			// 1.234,56
			if commas > 1 {
				return "", false
			}
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1), true
		}
		// 1,234.56 exported from an en-US sheet
		if dots > 1 {
			return "", false
		}
		return strings.ReplaceAll(s, ",", ""), true
	case commas == 1:
		return strings.Replace(s, ",", ".", 1), true
	case commas > 1:
		return "", false
	case dots > 1:
		return strings.ReplaceAll(s, ".", ""), true
	case dots == 1 && isThousandsGroup(s):
		return strings.Replace(s, ".", "", 1), true
	default:
		return s, true
	}
}

// isThousandsGroup reports whether a single-dot value reads as "1.234".
func isThousandsGroup(s string) bool {
	i := strings.Index(s, ".")
	head, tail := s[:i], s[i+1:]
	if len(tail) != 3 || len(head) == 0 || len(head) > 3 {
		return false
	}
	return head != "0"
}
