// Package extract finds dates, amounts and Brazilian tax ids in free text.
package extract

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/painel/internal/normalize"
)

var (
	datePattern   = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	amountPattern = regexp.MustCompile(`R\$[\s\x{00a0}]*\d{1,3}(?:\.\d{3})*,\d{2}`)
	cpfPattern    = regexp.MustCompile(`\d{3}\.\d{3}\.\d{3}-\d{2}`)
	cnpjPattern   = regexp.MustCompile(`\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}`)
)

// Kind names one family of findings.
type Kind string

// Finding kinds, in report order.
const (
	KindDate   Kind = "datas"
	KindAmount Kind = "valores"
	KindCPF    Kind = "cpfs"
	KindCNPJ   Kind = "cnpjs"
)

// Kinds lists every kind in report order.
func Kinds() []Kind {
	return []Kind{KindDate, KindAmount, KindCPF, KindCNPJ}
}

// Label is the heading of the kind's section.
func (k Kind) Label() string {
	switch k {
	case KindDate:
		return "Datas encontradas"
	case KindAmount:
		return "Valores monetários encontrados"
	case KindCPF:
		return "CPFs encontrados"
	case KindCNPJ:
		return "CNPJs encontrados"
	default:
		return string(k)
	}
}

// Missing is the message shown when the kind has no match.
func (k Kind) Missing() string {
	switch k {
	case KindDate:
		return "Nenhuma data encontrada no formato DD/MM/AAAA."
	case KindAmount:
		return "Nenhum valor monetário encontrado no formato R$ X.XXX,XX."
	case KindCPF:
		return "Nenhum CPF encontrado."
	case KindCNPJ:
		return "Nenhum CNPJ encontrado."
	default:
		return ""
	}
}

// Findings holds every match in text order, duplicates included.
type Findings struct {
	Dates   []string `json:"datas"`
	Amounts []string `json:"valores"`
	CPFs    []string `json:"cpfs"`
	CNPJs   []string `json:"cnpjs"`
}

// Of returns the matches of one kind.
func (f Findings) Of(k Kind) []string {
	switch k {
	case KindDate:
		return f.Dates
	case KindAmount:
		return f.Amounts
	case KindCPF:
		return f.CPFs
	case KindCNPJ:
		return f.CNPJs
	default:
		return nil
	}
}

// Text scans text for the four patterns. Kinds without a match hold an
// empty, non-nil slice.
func Text(text string) Findings {
	return Findings{
		Dates:   findAll(datePattern, text),
		Amounts: findAll(amountPattern, text),
		CPFs:    findAll(cpfPattern, text),
		CNPJs:   findAll(cnpjPattern, text),
	}
}

// AmountTotal sums the monetary matches.
func (f Findings) AmountTotal() decimal.Decimal {
	total := decimal.Zero
	for _, a := range f.Amounts {
		total = total.Add(decimal.NewFromFloat(normalize.Number(a)))
	}
	return total
}

func findAll(re *regexp.Regexp, text string) []string {
	found := re.FindAllString(text, -1)
	if found == nil {
		return []string{}
	}
	return found
}
