package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Veraticus/painel/internal/cli"
	"github.com/Veraticus/painel/internal/common"
	"github.com/Veraticus/painel/internal/normalize"
	"github.com/Veraticus/painel/internal/pages"
	"github.com/Veraticus/painel/internal/source"
)

var paymentTypes = []string{pages.PaymentCash, pages.PaymentCard, pages.PaymentBoleto}

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().String("payment", "", "payment type (caixa, debito_credito_pix, boleto)")
	cmd.Flags().String("option", "", "sub-option of the payment type (e.g. \"QUEBRA DE CAIXA\", PIX, PAGO)")
}

// sessionFromFlags builds the payment session, asking on the terminal for
// whatever the flags leave out.
func sessionFromFlags(cmd *cobra.Command) (pages.Session, error) {
	payment, _ := cmd.Flags().GetString("payment")
	option, _ := cmd.Flags().GetString("option")

	var menu *cli.Menu
	ask := func(title string, options []string) (int, error) {
		if menu == nil {
			menu = cli.NewMenu(cmd.InOrStdin(), cmd.OutOrStdout())
		}
		return menu.Choose(cmd.Context(), title, options)
	}

	if payment == "" {
		labels := make([]string, 0, len(paymentTypes))
		for _, p := range paymentTypes {
			labels = append(labels, pages.PaymentLabels[p])
		}
		idx, err := ask("Tipo de pagamento", labels)
		if err != nil {
			return pages.Session{}, selectionRequired(err)
		}
		payment = paymentTypes[idx]
	}

	if option == "" {
		options := pages.SubOptions[payment]
		if len(options) > 0 {
			idx, err := ask(pages.PaymentLabels[payment], options)
			if err != nil {
				return pages.Session{}, selectionRequired(err)
			}
			option = options[idx]
		}
	} else {
		option = matchSubOption(payment, option)
	}

	s := pages.Session{PaymentType: payment, SubOption: option}
	return s, s.Validate()
}

// matchSubOption maps a typed sub-option ("debito", "quebra de caixa") to
// its canonical spelling; unknown values are returned unchanged.
func matchSubOption(payment, value string) string {
	want := normalize.FoldString(value)
	if i := slices.IndexFunc(pages.SubOptions[payment], func(o string) bool {
		return normalize.FoldString(o) == want
	}); i >= 0 {
		return pages.SubOptions[payment][i]
	}
	return value
}

func selectionRequired(err error) error {
	if errors.Is(err, cli.ErrInputCancelled) {
		return err
	}
	return common.NewUserError(
		"Selecione uma opção para exibir os filtros.",
		fmt.Errorf("%w: %v", common.ErrSelectionRequired, err),
	)
}

func sessionTitle(page string, s pages.Session) string {
	return fmt.Sprintf("%s: %s / %s", page, pages.PaymentLabels[s.PaymentType], s.SubOption)
}

func payablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   pages.PagePayables,
		Short: "Contas a pagar",
		Long: `Shows the payables export chosen by payment type. CAIXA / QUEBRA DE CAIXA
and CAIXA / SANGRIA read their fixed files under caixa/; every other
option reads the newest export of the contas_pagar folder.`,
		Args: cobra.NoArgs,
		RunE: runPayables,
	}
	addSessionFlags(cmd)
	addSourceFlag(cmd)
	addPeriodFlags(cmd)
	addOutputFlags(cmd, true)
	cmd.Flags().StringSlice("status", nil, "statuses to keep")
	cmd.Flags().StringSlice("cash", nil, "cash registers to keep")
	cmd.Flags().StringSlice("unit", nil, "business units to keep")
	return cmd
}

func runPayables(cmd *cobra.Command, _ []string) error {
	session, err := sessionFromFlags(cmd)
	if err != nil {
		return err
	}
	path, err := sourcePath(cmd, func() (string, error) {
		return pages.PayablesSource(appFs, appConfig.Data.ContasPagarDir(), session)
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

	status, _ := cmd.Flags().GetStringSlice("status")
	cash, _ := cmd.Flags().GetStringSlice("cash")
	unit, _ := cmd.Flags().GetStringSlice("unit")
	result, err := pages.Payables(ds, session, pages.PayablesCriteria{
		Period: period,
		Status: status,
		Cash:   cash,
		Unit:   unit,
	})
	if err != nil {
		return err
	}
	return present(cmd, result, presentOptions{title: sessionTitle("Contas a Pagar", session)})
}

func receivablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   pages.PageReceivables,
		Short: "Contas a receber",
		Long: `Shows the newest receivables export narrowed to the chosen payment form,
with single-day filters on payment, due and issue dates.`,
		Args: cobra.NoArgs,
		RunE: runReceivables,
	}
	addSessionFlags(cmd)
	addSourceFlag(cmd)
	addOutputFlags(cmd, true)
	cmd.Flags().String("paid-on", "", "payment day (DD/MM/AAAA)")
	cmd.Flags().String("due-on", "", "due day (DD/MM/AAAA)")
	cmd.Flags().String("issued-on", "", "issue day (DD/MM/AAAA)")
	cmd.Flags().String("bank", "", "text in the bank/cash column")
	cmd.Flags().String("store", "", "text in the store column")
	cmd.Flags().String("category", "", "text in the category column")
	return cmd
}

func runReceivables(cmd *cobra.Command, _ []string) error {
	session, err := sessionFromFlags(cmd)
	if err != nil {
		return err
	}
	path, err := sourcePath(cmd, func() (string, error) {
		return source.MostRecent(appFs, appConfig.Data.ContasReceberDir(), source.ExtXLSX)
	})
	if err != nil {
		return err
	}
	ds, err := loadDataset(path)
	if err != nil {
		return err
	}

	var criteria pages.ReceivablesCriteria
	if criteria.PaidOn, err = dayFlag(cmd, "paid-on"); err != nil {
		return err
	}
	if criteria.DueOn, err = dayFlag(cmd, "due-on"); err != nil {
		return err
	}
	if criteria.IssuedOn, err = dayFlag(cmd, "issued-on"); err != nil {
		return err
	}
	criteria.Bank, _ = cmd.Flags().GetString("bank")
	criteria.Store, _ = cmd.Flags().GetString("store")
	criteria.Category, _ = cmd.Flags().GetString("category")

	result, err := pages.Receivables(ds, session, criteria)
	if err != nil {
		return err
	}
	return present(cmd, result, presentOptions{title: sessionTitle("Contas a Receber", session)})
}
