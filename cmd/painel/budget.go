package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/painel/internal/budget"
	"github.com/Veraticus/painel/internal/pages"
	"github.com/Veraticus/painel/internal/source"
)

// budgetKeyword picks the default sheet of the budget folder.
const budgetKeyword = "orc"

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   pages.PageBudget,
		Short: "Orçamento: budgeted, forecast and actual per account",
		Long: `Shows the budget sheet of the orcamento folder (the first one whose name
contains "orc") with horizontal (AH = realizado / orçado) and vertical
(AV = orçado / orçado de Faturamento) analysis. Lists default to every
account and type.`,
		Args: cobra.NoArgs,
		RunE: runBudget,
	}
	addSourceFlag(cmd)
	addOutputFlags(cmd, true)
	cmd.Flags().StringSlice("account", nil, "accounts to keep")
	cmd.Flags().StringSlice("type", nil, "types/groups to keep")
	cmd.Flags().Bool("list-accounts", false, "print the accounts of the sheet and exit")
	return cmd
}

func runBudget(cmd *cobra.Command, _ []string) error {
	path, err := sourcePath(cmd, func() (string, error) {
		return source.FirstMatching(appFs, appConfig.Data.OrcamentoDir(), source.ExtXLSX, budgetKeyword)
	})
	if err != nil {
		return err
	}
	ds, err := loadDataset(path)
	if err != nil {
		return err
	}

	if list, _ := cmd.Flags().GetBool("list-accounts"); list {
		if _, _, err := pages.BudgetColumns(ds.Columns); err != nil {
			return err
		}
		for _, account := range pages.BudgetAccounts(ds) {
			fmt.Fprintln(cmd.OutOrStdout(), account)
		}
		return nil
	}

	accounts, _ := cmd.Flags().GetStringSlice("account")
	types, _ := cmd.Flags().GetStringSlice("type")
	result, err := pages.Budget(ds, pages.BudgetCriteria{Accounts: accounts, Types: types})
	if err != nil {
		return err
	}
	return present(cmd, result, presentOptions{
		title:   "Orçamento",
		percent: []string{budget.ColumnAH, budget.ColumnAV},
	})
}
