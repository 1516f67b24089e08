package pages

import (
	"strings"
	"time"

	"github.com/Veraticus/painel/internal/filter"
	"github.com/Veraticus/painel/internal/model"
	"github.com/Veraticus/painel/internal/schema"
)

// ReceivablesCriteria are the receivables filters. Zero dates and empty
// terms are not applied.
type ReceivablesCriteria struct {
	PaidOn   time.Time
	DueOn    time.Time
	IssuedOn time.Time
	Bank     string
	Store    string
	Category string
}

// Receivables narrows the newest receivables export to the session's
// payment form, then applies the single-day date pickers and the
// bank/store/category substring filters.
func Receivables(ds model.Dataset, s Session, c ReceivablesCriteria) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}

	out := filter.Apply(ds, paymentForm(ds, s))

	// Each filter resolves its column against the already narrowed set, in
	// column order. The payment date alone prefers its longer names so a
	// "Forma Pagamento" column listed first is not mistaken for it.
	steps := []struct {
		build      func(col string) filter.Filter
		resolve    func(columns []string, candidates ...string) (string, bool)
		candidates []string
	}{
		{func(col string) filter.Filter { return filter.DateEquals(col, c.PaidOn) }, resolvePreferred, []string{"data pagamento", "dt pagamento", "pagamento"}},
		{func(col string) filter.Filter { return filter.DateEquals(col, c.DueOn) }, schema.Resolve, []string{"venc"}},
		{func(col string) filter.Filter { return filter.DateEquals(col, c.IssuedOn) }, schema.Resolve, []string{"emi"}},
		{func(col string) filter.Filter { return filter.Contains(col, c.Bank) }, schema.Resolve, []string{"banco", "caixa"}},
		{func(col string) filter.Filter { return filter.Contains(col, c.Store) }, schema.Resolve, []string{"loja"}},
		{func(col string) filter.Filter { return filter.Contains(col, c.Category) }, schema.Resolve, []string{"categ"}},
	}
	for _, step := range steps {
		if col, ok := step.resolve(out.Columns, step.candidates...); ok {
			out = filter.Apply(out, step.build(col))
		}
	}

	return Result{Page: PageReceivables, Filtered: out, Total: ds.Len()}, nil
}

// paymentForm restricts rows to the chosen payment form. Cash tabs keep
// rows with a value in the quebra or sangria column; other tabs match the
// sub-option inside the payment form column.
func paymentForm(ds model.Dataset, s Session) filter.Filter {
	form, ok := resolvePreferred(ds.Columns, "forma", "pagamento")
	if !ok {
		return nil
	}

	if s.PaymentType == PaymentCash {
		var keyword string
		switch s.SubOption {
		case SubCashBreak:
			keyword = "quebra"
		case SubCashDrain:
			keyword = "sangria"
		default:
			return filter.ContainsAny(form, "caixa", "dinheiro")
		}
		if col, ok := schema.Resolve(ds.Columns, keyword); ok {
			return filter.NotEmpty(col)
		}
		return nil
	}

	return filter.Contains(form, strings.ToLower(s.SubOption))
}

// resolvePreferred tries each candidate in turn, so an earlier candidate
// beats a column that appears first but only matches a later one.
func resolvePreferred(columns []string, candidates ...string) (string, bool) {
	for _, c := range candidates {
		if col, ok := schema.Resolve(columns, c); ok {
			return col, true
		}
	}
	return "", false
}
