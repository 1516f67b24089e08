package pages

import (
	"slices"

	"github.com/Veraticus/painel/internal/aggregate"
	"github.com/Veraticus/painel/internal/budget"
	"github.com/Veraticus/painel/internal/filter"
	"github.com/Veraticus/painel/internal/model"
	"github.com/Veraticus/painel/internal/schema"
)

// BudgetCriteria are the account and type multiselects. Empty lists keep
// every account or type.
type BudgetCriteria struct {
	Accounts []string
	Types    []string
}

// Metric labels of the budget page.
const (
	MetricBudgeted = "Total Orçado"
	MetricForecast = "Total Previsto"
	MetricActual   = "Total Realizado"
)

var budgetSpecs = []schema.FieldSpec{
	{Field: "account", Label: "Conta", Candidates: []string{"conta"}, Required: true},
	{Field: "budgeted", Label: "Orçado", Candidates: []string{"orçado", "orcado"}, Required: true},
	{Field: "forecast", Label: "Previsto", Candidates: []string{"previsto"}, Required: true},
	{Field: "actual", Label: "Realizado", Candidates: []string{"realizado"}, Required: true},
	{Field: "type", Label: "Tipo", Candidates: []string{"tipo", "grupo", "classe"}},
}

// BudgetColumns resolves the budget sheet's columns.
func BudgetColumns(columns []string) (budget.Columns, schema.Resolution, error) {
	res, err := schema.Infer(columns, budgetSpecs)
	if err != nil {
		return budget.Columns{}, nil, missingColumns(err,
			"Sua planilha precisa ter colunas de Conta, Orçado, Previsto e Realizado (pode ter nomes ou acentos diferentes).")
	}
	return budget.Columns{
		Account:  res["account"],
		Budgeted: res["budgeted"],
		Forecast: res["forecast"],
		Actual:   res["actual"],
	}, res, nil
}

// Budget filters the budget sheet by account and type, then appends the
// AH and AV ratios computed over the remaining lines.
func Budget(ds model.Dataset, c BudgetCriteria) (Result, error) {
	cols, res, err := BudgetColumns(ds.Columns)
	if err != nil {
		return Result{}, err
	}
	typeCol, hasType := res.Column("type")

	out := filter.Apply(ds,
		exactMembership(cols.Account, true, c.Accounts),
		exactMembership(typeCol, hasType, c.Types),
	)
	out = budget.Annotate(out, cols)

	return Result{
		Page:     PageBudget,
		Filtered: out,
		Total:    ds.Len(),
		Metrics: []Metric{
			{Label: MetricBudgeted, Value: aggregate.SumColumn(out, cols.Budgeted)},
			{Label: MetricForecast, Value: aggregate.SumColumn(out, cols.Forecast)},
			{Label: MetricActual, Value: aggregate.SumColumn(out, cols.Actual)},
		},
	}, nil
}

// BudgetAccounts returns the sorted distinct accounts, the default
// selection of the account picker.
func BudgetAccounts(ds model.Dataset) []string {
	cols, _, err := BudgetColumns(ds.Columns)
	if err != nil {
		return nil
	}
	values := ds.Distinct(cols.Account)
	slices.Sort(values)
	return values
}
