package pages

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"

	"github.com/Veraticus/painel/internal/aggregate"
	"github.com/Veraticus/painel/internal/classification"
	"github.com/Veraticus/painel/internal/common"
	"github.com/Veraticus/painel/internal/filter"
	"github.com/Veraticus/painel/internal/model"
	"github.com/Veraticus/painel/internal/schema"
	"github.com/Veraticus/painel/internal/source"
)

// Analysis is one of the three bank statement analyses of the finance menu.
type Analysis string

// Finance menu entries.
const (
	AnalysisReconciliation Analysis = PageReconciliation
	AnalysisMovements      Analysis = PageMovements
	AnalysisTransfers      Analysis = PageTransfers
)

var analysisKeywords = map[Analysis][]string{
	AnalysisReconciliation: {"concil", "extrato"},
	AnalysisMovements:      {"mov", "corrente"},
	AnalysisTransfers:      {"transf", "transfer"},
}

// analysisFiles are the export names the ERP writes for each analysis.
var analysisFiles = map[Analysis]string{
	AnalysisReconciliation: "Conciliaçao de Extrato Bancario.xlsx",
	AnalysisMovements:      "Movimentação de Conta Corrente.xlsx",
	AnalysisTransfers:      "Transferencia entre  Contas Correntes.xlsx",
}

var analysisLabels = map[Analysis]string{
	AnalysisReconciliation: "Conciliação de extrato bancário",
	AnalysisMovements:      "Movimentação de conta corrente",
	AnalysisTransfers:      "Transferências entre contas correntes",
}

// Analyses lists the finance menu in display order.
func Analyses() []Analysis {
	return []Analysis{AnalysisReconciliation, AnalysisMovements, AnalysisTransfers}
}

// Label is the menu text of the analysis.
func (a Analysis) Label() string {
	return analysisLabels[a]
}

// Keywords are the file name fragments that identify the analysis' export,
// in priority order.
func (a Analysis) Keywords() []string {
	return analysisKeywords[a]
}

// Locate returns the analysis' export in dir: the file with the ERP's
// default name when present, otherwise the newest one matching its keywords.
func Locate(fs afero.Fs, dir string, a Analysis) (string, error) {
	keywords := a.Keywords()
	if len(keywords) == 0 {
		return "", common.NewUserError(
			fmt.Sprintf("Análise desconhecida: %s", a),
			fmt.Errorf("%w: analysis %q", common.ErrInvalidConfig, a),
		)
	}
	if path, err := source.Exact(fs, dir, analysisFiles[a]); err == nil {
		return path, nil
	}
	path, err := source.ByKeywords(fs, dir, source.ExtXLSX, keywords...)
	if err != nil {
		return "", common.NewUserError(
			fmt.Sprintf("Nenhum arquivo correspondente ao filtro %q encontrado.", a.Label()),
			err,
		)
	}
	return path, nil
}

// Reconciled is the state of the "Conciliado" picker.
type Reconciled int

// Conciliado picker options.
const (
	ReconciledAny Reconciled = iota
	ReconciledYes
	ReconciledNo
)

var (
	reconciledYes = []string{"sim", "conciliado", "true", "1"}
	reconciledNo  = []string{"não", "nao", "false", "0", "n"}
)

// ReconciliationCriteria are the bank reconciliation filters.
type ReconciliationCriteria struct {
	Period     Period
	Company    string // "" or "Todas" for every company
	Search     string
	Reconciled Reconciled
}

// Metric labels of the bank reconciliation page.
const (
	MetricRevenue  = "Total de Receitas"
	MetricExpenses = "Total de Despesas"
)

var reconciliationSpecs = []schema.FieldSpec{
	{Field: "account", Label: "Conta Bancária", Candidates: []string{"conta bancaria"}, Exact: true, Required: true},
}

// BankReconciliation derives the company of every row from its bank
// account, then filters by company, text, period and reconciliation state.
func BankReconciliation(ds model.Dataset, c ReconciliationCriteria, detector *classification.Detector) (Result, error) {
	res, err := schema.Infer(ds.Columns, reconciliationSpecs)
	if err != nil {
		return Result{}, missingColumns(err, `Coluna "Conta Bancária" não encontrada.`)
	}
	if detector == nil {
		detector = classification.MustDefault()
	}

	account, _ := res.Column("account")
	annotated := detector.Annotate(ds, account, CompanyColumn)

	company := c.Company
	if company == "Todas" {
		company = ""
	}

	var reconciled filter.Filter
	if col, ok := schema.Resolve(annotated.Columns, "conciliado"); ok {
		switch c.Reconciled {
		case ReconciledYes:
			reconciled = filter.AnyOf(col, reconciledYes...)
		case ReconciledNo:
			reconciled = filter.AnyOf(col, reconciledNo...)
		}
	}

	out := filter.Apply(annotated,
		filter.Category(CompanyColumn, company),
		filter.Text(c.Search),
		dateFilter(annotated, c.Period),
		reconciled,
	)

	result := Result{Page: PageReconciliation, Filtered: out, Total: ds.Len()}
	if col, ok := schema.Resolve(out.Columns, "valor"); ok {
		s := aggregate.Summarize(out, col)
		result.Metrics = []Metric{
			{Label: MetricRevenue, Value: s.Positive},
			{Label: MetricExpenses, Value: s.Negative},
		}
	}
	return result, nil
}

// MovementTypes are the exact "Tipo" values a movement export carries.
var MovementTypes = []string{
	"Entrada de Transferência",
	"Estorno de Pagamento de Conta",
	"Estorno Entrada de Transferencia",
	"Lançamento de Entrada",
	"Lançamento de Saída",
	"Pagamento de Conta",
	"Saída de Transferência",
}

// StatusOptions are the fixed status choices of the movement and transfer pages.
var StatusOptions = []string{"Pendente", "Efetuado", "Cancelado", "Estornado"}

// MovementCriteria are the current account movement filters.
type MovementCriteria struct {
	Period Period
	Type   string // "" or "Todos" for every type
	Search string
	Status []string
}

// Metric labels of the movements page.
const (
	MetricDebit           = "Débito"
	MetricCredit          = "Crédito"
	MetricBalance         = "Saldo"
	MetricPreviousBalance = "Saldo Anterior"
)

// Movements filters a current account movement export by type, text,
// period and status.
func Movements(ds model.Dataset, c MovementCriteria) (Result, error) {
	var byType filter.Filter
	if c.Type != "" && c.Type != OptionAll {
		if !slices.Contains(MovementTypes, c.Type) {
			return Result{}, common.NewUserError(
				fmt.Sprintf("Tipo desconhecido: %s", c.Type),
				fmt.Errorf("%w: movement type %q", common.ErrInvalidConfig, c.Type),
			)
		}
		col, ok := schema.ResolveExact(ds.Columns, "tipo")
		if !ok {
			return Result{}, missingColumns(
				&schema.MissingColumnError{Field: "type", Label: "Tipo", Candidates: []string{"tipo"}},
				`Coluna "Tipo" não encontrada.`,
			)
		}
		byType = filter.Equals(col, c.Type)
	}

	var byStatus filter.Filter
	if col, ok := schema.Resolve(ds.Columns, "status"); ok {
		byStatus = filter.Membership(col, filter.SelectOf(c.Status...), capitalized)
	}

	out := filter.Apply(ds,
		byType,
		filter.Text(c.Search),
		dateFilter(ds, c.Period),
		byStatus,
	)

	result := Result{Page: PageMovements, Total: ds.Len(), Metrics: movementMetrics(out)}

	if col, ok := schema.ResolveExact(out.Columns, "conta bancaria"); ok {
		out = out.DropColumn(col)
	}
	result.Filtered = out
	return result, nil
}

func movementMetrics(ds model.Dataset) []Metric {
	valor, hasValor := schema.Resolve(ds.Columns, "valor")
	var signed aggregate.Summary
	if hasValor {
		signed = aggregate.Summarize(ds, valor)
	}

	debit, credit := decimal.Zero, decimal.Zero
	if col, ok := schema.ResolveExact(ds.Columns, "debito"); ok {
		debit = aggregate.SumColumn(ds, col)
	} else if hasValor {
		debit = signed.Positive
	}
	if col, ok := schema.ResolveExact(ds.Columns, "credito"); ok {
		credit = aggregate.SumColumn(ds, col)
	} else if hasValor {
		credit = signed.Negative
	}

	balance, previous := decimal.Zero, decimal.Zero
	if col, ok := schema.ResolveExact(ds.Columns, "saldo"); ok {
		balance = aggregate.LastNumber(ds, col)
	}
	if col, ok := schema.ResolveExact(ds.Columns, "saldo anterior"); ok {
		previous = aggregate.LastNumber(ds, col)
	}

	return []Metric{
		{Label: MetricDebit, Value: debit},
		{Label: MetricCredit, Value: credit},
		{Label: MetricBalance, Value: balance},
		{Label: MetricPreviousBalance, Value: previous},
	}
}

// TransferCriteria are the transfer filters. Status is "Todos", "Nenhum"
// or one of StatusOptions.
type TransferCriteria struct {
	Period Period
	Status string
	Search string
}

// MetricTransferTotal labels the transfers page total.
const MetricTransferTotal = "Total do Valor"

// TransferSelection maps the single-choice status picker to a selection.
// "Nenhum" is an explicit exclude-all choice, unlike an empty multiselect.
func TransferSelection(status string) (filter.Selection, error) {
	switch status {
	case "", OptionAll:
		return filter.SelectAll(), nil
	case OptionNone:
		return filter.SelectNone(), nil
	}
	if !slices.Contains(StatusOptions, status) {
		return filter.Selection{}, common.NewUserError(
			fmt.Sprintf("Status desconhecido: %s", status),
			fmt.Errorf("%w: transfer status %q", common.ErrInvalidConfig, status),
		)
	}
	return filter.SelectOf(status), nil
}

// Transfers filters a transfer export by status, text and period.
func Transfers(ds model.Dataset, c TransferCriteria) (Result, error) {
	sel, err := TransferSelection(c.Status)
	if err != nil {
		return Result{}, err
	}

	var byStatus filter.Filter
	if col, ok := schema.Resolve(ds.Columns, "status"); ok {
		byStatus = filter.Membership(col, sel, capitalized)
	}

	out := filter.Apply(ds,
		byStatus,
		filter.Text(c.Search),
		dateFilter(ds, c.Period),
	)

	result := Result{Page: PageTransfers, Filtered: out, Total: ds.Len()}
	if col, ok := schema.ResolveExact(out.Columns, "valor"); ok {
		result.Metrics = []Metric{{Label: MetricTransferTotal, Value: aggregate.SumColumn(out, col)}}
	}
	return result, nil
}
