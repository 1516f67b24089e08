package normalize

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "nil", input: nil, want: ""},
		{name: "accents and case", input: "  Conta Bancária ", want: "conta bancaria"},
		{name: "cedilla", input: "PP PARTICIPAÇÕES", want: "pp participacoes"},
		{name: "non-breaking space", input: "Data\u00a0Pagamento", want: "data pagamento"},
		{name: "number", input: 12.5, want: "12.5"},
		{name: "already folded", input: "valor", want: "valor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.input))
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Pendente", Capitalize("PENDENTE"))
	assert.Equal(t, "Efetuado", Capitalize(" efetuado "))
	assert.Equal(t, "", Capitalize("  "))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   float64
		wantOK bool
	}{
		{name: "brl currency", input: "R$ 1.234,56", want: 1234.56, wantOK: true},
		{name: "brl without symbol", input: "1.234,56", want: 1234.56, wantOK: true},
		{name: "nbsp after symbol", input: "R$\u00a01.234,56", want: 1234.56, wantOK: true},
		{name: "narrow nbsp grouping", input: "R$ 1\u202f234,56", want: 1234.56, wantOK: true},
		{name: "padded with tabs", input: "\tR$  40,00 \n", want: 40, wantOK: true},
		{name: "space between sign and digits", input: "- 12,50", want: -12.5, wantOK: true},
		{name: "comma decimal", input: "40,5", want: 40.5, wantOK: true},
		{name: "negative brl", input: "-R$ 40,00", want: -40, wantOK: true},
		{name: "symbol before sign", input: "R$ -40,00", want: -40, wantOK: true},
		{name: "parenthesised", input: "(1.000,00)", want: -1000, wantOK: true},
		{name: "trailing minus", input: "250,00-", want: -250, wantOK: true},
		{name: "thousands only", input: "1.234.567", want: 1234567, wantOK: true},
		{name: "single thousands group", input: "1.234", want: 1234, wantOK: true},
		{name: "dot decimal", input: "1234.5", want: 1234.5, wantOK: true},
		{name: "leading zero dot", input: "0.125", want: 0.125, wantOK: true},
		{name: "en-US grouping", input: "1,234.56", want: 1234.56, wantOK: true},
		{name: "float passes through", input: 99.9, want: 99.9, wantOK: true},
		{name: "int passes through", input: 7, want: 7, wantOK: true},
		{name: "empty", input: "  ", want: 0, wantOK: false},
		{name: "nil", input: nil, want: 0, wantOK: false},
		{name: "text", input: "abc", want: 0, wantOK: false},
		{name: "two commas", input: "1,2,3", want: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestNumberTreatsFailuresAsZero(t *testing.T) {
	assert.Zero(t, Number("n/a"))
	assert.InDelta(t, 1234.56, Number("R$ 1.234,56"), 1e-9)
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		input  any
		want   time.Time
		wantOK bool
	}{
		{name: "brazilian", input: "15/03/2024", want: want, wantOK: true},
		{name: "brazilian with time", input: "15/03/2024 10:30", want: want.Add(10*time.Hour + 30*time.Minute), wantOK: true},
		{name: "iso", input: "2024-03-15", want: want, wantOK: true},
		{name: "time value", input: want, want: want, wantOK: true},
		{name: "excel serial", input: 45366.0, want: want, wantOK: true},
		{name: "garbage", input: "amanhã", wantOK: false},
		{name: "empty", input: "", wantOK: false},
		{name: "nil", input: nil, wantOK: false},
		{name: "negative serial", input: -3.0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
			}
		})
	}
}

func TestDay(t *testing.T) {
	d := Day(time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		input decimal.Decimal
		want  string
	}{
		{decimal.RequireFromString("1234.56"), "R$ 1.234,56"},
		{decimal.RequireFromString("-40"), "R$ -40,00"},
		{decimal.RequireFromString("0"), "R$ 0,00"},
		{decimal.RequireFromString("1234567.891"), "R$ 1.234.567,89"},
		{decimal.RequireFromString("999.999"), "R$ 1.000,00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBRL(tt.input))
		})
	}

	assert.Equal(t, "R$ 130,00", FormatFloatBRL(130))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "25%", FormatPercent(0.25))
	assert.Equal(t, "125%", FormatPercent(1.25))
	assert.Equal(t, "-", FormatPercent(math.NaN()))
	assert.Equal(t, "12,5%", FormatPercentPrec(0.125, 1))
}
