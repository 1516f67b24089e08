package pages

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"

	"github.com/Veraticus/painel/internal/aggregate"
	"github.com/Veraticus/painel/internal/common"
	"github.com/Veraticus/painel/internal/filter"
	"github.com/Veraticus/painel/internal/model"
	"github.com/Veraticus/painel/internal/schema"
	"github.com/Veraticus/painel/internal/source"
)

// Payment types offered by the payables and receivables pages.
const (
	PaymentCash   = "caixa"
	PaymentCard   = "debito_credito_pix"
	PaymentBoleto = "boleto"
)

// Sub-options of each payment type.
const (
	SubCashBreak  = "QUEBRA DE CAIXA"
	SubCashDrain  = "SANGRIA"
	SubDebit      = "DÉBITO"
	SubCredit     = "CRÉDITO"
	SubPix        = "PIX"
	SubBoletoPaid = "PAGO"
	SubBoletoOpen = "PENDENTE"
)

// SubOptions lists the sub-options of each payment type in display order.
var SubOptions = map[string][]string{
	PaymentCash:   {SubCashBreak, SubCashDrain},
	PaymentCard:   {SubDebit, SubCredit, SubPix},
	PaymentBoleto: {SubBoletoPaid, SubBoletoOpen},
}

// PaymentLabels are the card captions of each payment type.
var PaymentLabels = map[string]string{
	PaymentCash:   "CAIXA",
	PaymentCard:   "DÉBITO OU CRÉDITO E PIX",
	PaymentBoleto: "BOLETO",
}

// Session is the payment type and sub-option chosen on the payables or
// receivables page. Both are required before any filter is shown.
type Session struct {
	PaymentType string `validate:"required,oneof=caixa debito_credito_pix boleto"`
	SubOption   string `validate:"required"`
}

var sessionValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate returns common.ErrSelectionRequired until both choices are made
// and the sub-option belongs to the payment type.
func (s Session) Validate() error {
	if err := sessionValidator.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "oneof" {
			return common.NewUserError(
				fmt.Sprintf("Tipo de pagamento desconhecido: %s", s.PaymentType),
				fmt.Errorf("%w: %v", common.ErrSelectionRequired, err),
			)
		}
		return common.NewUserError(
			"Selecione uma opção para exibir os filtros.",
			fmt.Errorf("%w: %v", common.ErrSelectionRequired, err),
		)
	}
	if !slices.Contains(SubOptions[s.PaymentType], s.SubOption) {
		return common.NewUserError(
			fmt.Sprintf("Opção %q não pertence a %s", s.SubOption, PaymentLabels[s.PaymentType]),
			fmt.Errorf("%w: sub-option %q of %q", common.ErrSelectionRequired, s.SubOption, s.PaymentType),
		)
	}
	return nil
}

// IsCashBreak reports the CAIXA / QUEBRA DE CAIXA tab.
func (s Session) IsCashBreak() bool {
	return s.PaymentType == PaymentCash && s.SubOption == SubCashBreak
}

// IsCashDrain reports the CAIXA / SANGRIA tab.
func (s Session) IsCashDrain() bool {
	return s.PaymentType == PaymentCash && s.SubOption == SubCashDrain
}

// Fixed payables files for the cash tabs, relative to the payables folder.
var (
	CashBreakFile = filepath.Join("caixa", "quebra de caixa", "quebra-de-caixa.xlsx")
	CashDrainFile = filepath.Join("caixa", "sangria", "sangria.xlsx")
)

// PayablesSource returns the file the payables page reads for a session:
// the fixed cash files for the two cash tabs, otherwise the newest export.
func PayablesSource(fs afero.Fs, dir string, s Session) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	switch {
	case s.IsCashBreak():
		return source.Exact(fs, dir, CashBreakFile)
	case s.IsCashDrain():
		return source.Exact(fs, dir, CashDrainFile)
	default:
		return source.MostRecent(fs, dir, source.ExtXLSX)
	}
}

// PayablesCriteria are the payables filters. Empty lists select everything.
type PayablesCriteria struct {
	Period Period
	Status []string
	Cash   []string
	Unit   []string
}

// Metric labels of the payables cash tabs.
const (
	MetricCashBreak = "Total Quebra de Caixa"
	MetricSurplus   = "Sobra"
	MetricShortage  = "Falta"
	MetricCashDrain = "Total Sangria"
)

var payablesSpecs = []schema.FieldSpec{
	{Field: "status", Candidates: []string{"status"}, Exact: true},
	{Field: "cash", Candidates: []string{"caixa"}, Exact: true},
	{Field: "unit", Candidates: []string{"un. negocio"}, Exact: true},
	{Field: "date", Candidates: []string{"data e hora inicial"}, Exact: true},
	{Field: "break", Candidates: []string{"quebra de caixa"}, Exact: true},
	{Field: "value", Candidates: []string{"valor"}, Exact: true},
}

// Payables filters the payables export chosen for the session by status,
// cash register, business unit and the day of "Data e Hora Inicial".
func Payables(ds model.Dataset, s Session, c PayablesCriteria) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}

	res, err := schema.Infer(ds.Columns, payablesSpecs)
	if err != nil {
		return Result{}, err
	}

	status, hasStatus := res.Column("status")
	cash, hasCash := res.Column("cash")
	unit, hasUnit := res.Column("unit")

	var byDay filter.Filter
	if col, ok := res.Column("date"); ok {
		byDay = filter.DateRange(col, c.Period.rangeOf(true))
	}

	out := filter.Apply(ds,
		exactMembership(status, hasStatus, c.Status),
		exactMembership(cash, hasCash, c.Cash),
		exactMembership(unit, hasUnit, c.Unit),
		byDay,
	)

	result := Result{Page: PagePayables, Filtered: out, Total: ds.Len()}
	switch {
	case s.IsCashBreak():
		if col, ok := res.Column("break"); ok {
			sum := aggregate.Summarize(out, col)
			result.Metrics = []Metric{
				{Label: MetricCashBreak, Value: sum.Total},
				{Label: MetricSurplus, Value: sum.Positive},
				{Label: MetricShortage, Value: sum.Negative},
			}
		}
	case s.IsCashDrain():
		if col, ok := res.Column("value"); ok {
			result.Metrics = []Metric{{Label: MetricCashDrain, Value: aggregate.SumColumn(out, col)}}
		}
	}
	return result, nil
}

// PayablesOptions returns the choices offered by the payables multiselects,
// sorted, as the page shows them.
func PayablesOptions(ds model.Dataset) map[string][]string {
	res, _ := schema.Infer(ds.Columns, payablesSpecs)
	out := make(map[string][]string, 3)
	for field, label := range map[string]string{"status": "Status", "cash": "Caixa", "unit": "Un. Negócio"} {
		col, ok := res.Column(field)
		if !ok {
			continue
		}
		values := ds.Distinct(col)
		slices.Sort(values)
		out[label] = values
	}
	return out
}
