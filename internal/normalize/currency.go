package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount as "R$ 1.234,56" regardless of platform locale.
func FormatBRL(d decimal.Decimal) string {
	return "R$ " + FormatDecimal(d, 2)
}

// FormatFloatBRL is FormatBRL for float inputs.
func FormatFloatBRL(f float64) string {
	return FormatBRL(decimal.NewFromFloat(f))
}

// FormatDecimal groups thousands with "." and separates decimals with ",".
func FormatDecimal(d decimal.Decimal, places int32) string {
	fixed := d.StringFixed(places)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}

// FormatPercent renders a ratio as a whole percentage ("25%").
// NaN renders as "-".
func FormatPercent(ratio float64) string {
	return FormatPercentPrec(ratio, 0)
}

// FormatPercentPrec renders a ratio as a percentage with the given decimals.
func FormatPercentPrec(ratio float64, places int) string {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return "-"
	}
	s := strconv.FormatFloat(ratio*100, 'f', places, 64)
	return strings.Replace(s, ".", ",", 1) + "%"
}
