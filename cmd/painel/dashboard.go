package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/painel/internal/cli"
	"github.com/Veraticus/painel/internal/pages"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   pages.PageDashboard,
		Short: "Dashboard: current, paid, payable, received and receivable balances",
		Long: `Sums the "valor" column of each summary file of the dashboard folder
(saldo_atual, saldo_pago, saldo_a_pagar, saldo_recebido, saldo_a_receber,
saldo_pendente) and projects the balance as received + paid - pending.
A missing file counts as zero.`,
		Args: cobra.NoArgs,
		RunE: runDashboard,
	}
	addOutputFlags(cmd, false)
	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	var opts pages.DashboardOptions
	if format, _ := cmd.Flags().GetString("format"); format == cli.FormatTable {
		bar := cli.NewLoadProgress(cmd.ErrOrStderr(), len(pages.KPIs()), "Carregando indicadores...")
		opts.OnLoad = func(pages.KPI) { cli.Step(bar) }
	}

	result, err := pages.Dashboard(appFs, appConfig.Data.DashboardDir(), opts)
	if err != nil {
		return err
	}
	return present(cmd, result, presentOptions{title: "Dashboard", metricsOnly: true})
}
