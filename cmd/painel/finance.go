package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/painel/internal/cli"
	"github.com/Veraticus/painel/internal/common"
	"github.com/Veraticus/painel/internal/normalize"
	"github.com/Veraticus/painel/internal/pages"
)

func financeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "financeiro [conciliacao|movimentacao|transferencias]",
		Short: "Financeiro: choose one of the bank statement analyses",
		Long: `Opens one of the three analyses of the financeiro folder. Without an
argument the analysis is chosen from a menu.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{pages.PageReconciliation, pages.PageMovements, pages.PageTransfers},
		RunE:      runFinance,
	}
	addPeriodFlags(cmd)
	addOutputFlags(cmd, true)
	cmd.Flags().String("search", "", "text searched in every column")
	return cmd
}

func runFinance(cmd *cobra.Command, args []string) error {
	var analysis pages.Analysis
	if len(args) == 1 {
		analysis = pages.Analysis(args[0])
	} else {
		options := make([]string, 0, len(pages.Analyses()))
		for _, a := range pages.Analyses() {
			options = append(options, a.Label())
		}
		idx, err := cli.NewMenu(cmd.InOrStdin(), cmd.OutOrStdout()).
			Choose(cmd.Context(), "Selecione o tipo de análise", options)
		if err != nil {
			return selectionRequired(err)
		}
		analysis = pages.Analyses()[idx]
	}

	var sub *cobra.Command
	switch analysis {
	case pages.AnalysisReconciliation:
		sub = reconciliationCmd()
	case pages.AnalysisMovements:
		sub = movementsCmd()
	case pages.AnalysisTransfers:
		sub = transfersCmd()
	default:
		return common.NewUserError(
			fmt.Sprintf("Análise desconhecida: %s", analysis),
			fmt.Errorf("%w: analysis %q", common.ErrInvalidConfig, analysis),
		)
	}

	// Shared flags carry over to the chosen analysis.
	for _, name := range []string{"from", "to", "current-month", "search", "format", "max-rows", "export"} {
		if !cmd.Flags().Changed(name) {
			continue
		}
		if err := sub.Flags().Set(name, cmd.Flags().Lookup(name).Value.String()); err != nil {
			return fmt.Errorf("failed to forward --%s: %w", name, err)
		}
	}
	sub.SetContext(cmd.Context())
	sub.SetIn(cmd.InOrStdin())
	sub.SetOut(cmd.OutOrStdout())
	sub.SetErr(cmd.ErrOrStderr())
	return sub.RunE(sub, nil)
}

func reconciliationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   pages.PageReconciliation,
		Short: "Conciliação de extrato bancário",
		Long: `Shows the newest bank reconciliation export of the financeiro folder with
the company derived from each bank account, and totals revenue and expenses.`,
		Args: cobra.NoArgs,
		RunE: runReconciliation,
	}
	addSourceFlag(cmd)
	addPeriodFlags(cmd)
	addOutputFlags(cmd, true)
	cmd.Flags().String("search", "", "text searched in every column")
	cmd.Flags().String("company", "", "company (PP PARTICIPAÇÕES, XBROTHERS, TEMPREÇO, OUTROS)")
	cmd.Flags().String("reconciled", "", "reconciliation state (sim, nao)")
	return cmd
}

func runReconciliation(cmd *cobra.Command, _ []string) error {
	path, err := sourcePath(cmd, func() (string, error) {
		return pages.Locate(appFs, appConfig.Data.FinanceiroDir(), pages.AnalysisReconciliation)
	})
	if err != nil {
		return err
	}
	ds, err := loadDataset(path)
	if err != nil {
		return err
	}

	period, err := periodFromFlags(cmd)
	if err != nil {
		return err
	}
	reconciledFlag, _ := cmd.Flags().GetString("reconciled")
	reconciled, err := parseReconciled(reconciledFlag)
	if err != nil {
		return err
	}
	detector, err := appConfig.Classification.Detector()
	if err != nil {
		return err
	}

	search, _ := cmd.Flags().GetString("search")
	company, _ := cmd.Flags().GetString("company")
	result, err := pages.BankReconciliation(ds, pages.ReconciliationCriteria{
		Period:     period,
		Company:    company,
		Search:     search,
		Reconciled: reconciled,
	}, detector)
	if err != nil {
		return err
	}
	return present(cmd, result, presentOptions{title: pages.AnalysisReconciliation.Label()})
}

func parseReconciled(value string) (pages.Reconciled, error) {
	switch normalize.FoldString(value) {
	case "", "todos":
		return pages.ReconciledAny, nil
	case "sim":
		return pages.ReconciledYes, nil
	case "nao":
		return pages.ReconciledNo, nil
	default:
		return pages.ReconciledAny, common.NewUserError(
			fmt.Sprintf("Valor inválido para --reconciled: %s (use sim ou nao)", value),
			fmt.Errorf("%w: reconciled %q", common.ErrInvalidConfig, value),
		)
	}
}

func movementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   pages.PageMovements,
		Short: "Movimentação de conta corrente",
		Long: `Shows the newest current account movement export with debit, credit and
balance totals.`,
		Args: cobra.NoArgs,
		RunE: runMovements,
	}
	addSourceFlag(cmd)
	addPeriodFlags(cmd)
	addOutputFlags(cmd, true)
	cmd.Flags().String("search", "", "text searched in every column")
	cmd.Flags().String("type", pages.OptionAll, "movement type (Todos or an exact Tipo value)")
	cmd.Flags().StringSlice("status", nil, "statuses to keep (Pendente, Efetuado, Cancelado, Estornado)")
	return cmd
}

func runMovements(cmd *cobra.Command, _ []string) error {
	path, err := sourcePath(cmd, func() (string, error) {
		return pages.Locate(appFs, appConfig.Data.FinanceiroDir(), pages.AnalysisMovements)
	})
	if err != nil {
		return err
	}
	ds, err := loadDataset(path)
	if err != nil {
		return err
	}
	period, err := periodFromFlags(cmd)
	if err != nil {
		return err
	}

	search, _ := cmd.Flags().GetString("search")
	movementType, _ := cmd.Flags().GetString("type")
	status, _ := cmd.Flags().GetStringSlice("status")
	result, err := pages.Movements(ds, pages.MovementCriteria{
		Period: period,
		Type:   movementType,
		Search: search,
		Status: status,
	})
	if err != nil {
		return err
	}
	return present(cmd, result, presentOptions{title: pages.AnalysisMovements.Label()})
}

func transfersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   pages.PageTransfers,
		Short: "Transferências entre contas correntes",
		Long: `Shows the newest transfer export. --status Nenhum hides every row,
--status Todos keeps them all.`,
		Args: cobra.NoArgs,
		RunE: runTransfers,
	}
	addSourceFlag(cmd)
	addPeriodFlags(cmd)
	addOutputFlags(cmd, true)
	cmd.Flags().String("search", "", "text searched in every column")
	cmd.Flags().String("status", pages.OptionAll, "Todos, Nenhum, Pendente, Efetuado, Cancelado or Estornado")
	return cmd
}

func runTransfers(cmd *cobra.Command, _ []string) error {
	path, err := sourcePath(cmd, func() (string, error) {
		return pages.Locate(appFs, appConfig.Data.FinanceiroDir(), pages.AnalysisTransfers)
	})
	if err != nil {
		return err
	}
	ds, err := loadDataset(path)
	if err != nil {
		return err
	}
	period, err := periodFromFlags(cmd)
	if err != nil {
		return err
	}

	search, _ := cmd.Flags().GetString("search")
	status, _ := cmd.Flags().GetString("status")
	result, err := pages.Transfers(ds, pages.TransferCriteria{
		Period: period,
		Status: status,
		Search: search,
	})
	if err != nil {
		return err
	}
	return present(cmd, result, presentOptions{title: pages.AnalysisTransfers.Label()})
}
