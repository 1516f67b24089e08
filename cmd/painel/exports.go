package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/Veraticus/painel/internal/cli"
	"github.com/Veraticus/painel/internal/model"
	"github.com/Veraticus/painel/internal/storage"
)

func exportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exports",
		Short: "List the exported views recorded in the journal",
		Args:  cobra.NoArgs,
		RunE:  runExports,
	}
	cmd.Flags().String("page", "", "only exports of this page")
	cmd.Flags().Int("limit", 20, "maximum entries (0 for all)")
	cmd.Flags().String("format", cli.FormatTable, "output format (table, json)")
	return cmd
}

func runExports(cmd *cobra.Command, _ []string) error {
	journal, closeJournal, err := openJournal(cmd.Context())
	if err != nil {
		return err
	}
	defer closeJournal()

	out := cmd.OutOrStdout()
	if journal == nil {
		fmt.Fprintln(out, cli.FormatWarning("Histórico de exportações desativado (history.enabled=false)."))
		return nil
	}

	page, _ := cmd.Flags().GetString("page")
	limit, _ := cmd.Flags().GetInt("limit")
	records, err := journal.ListExports(cmd.Context(), storage.ExportFilter{Page: page, Limit: limit})
	if err != nil {
		return err
	}

	if format, _ := cmd.Flags().GetString("format"); format == cli.FormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode exports: %w", err)
		}
		return nil
	}

	if len(records) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("Nenhuma exportação registrada."))
		return nil
	}
	fmt.Fprintln(out, cli.RenderGrid(exportsDataset(records), cli.GridOptions{MaxRows: -1}))
	return nil
}

// exportsDataset lays the journal out as a grid.
func exportsDataset(records []model.ExportRecord) model.Dataset {
	ds := model.Dataset{Columns: []string{"ID", "Data", "Página", "Arquivo", "Linhas", "Filtros"}}
	for _, r := range records {
		filters := make([]string, 0, len(r.Filters))
		for k, v := range r.Filters {
			filters = append(filters, k+"="+v)
		}
		slices.Sort(filters)

		ds.Rows = append(ds.Rows, model.Row{
			"ID":      r.ID,
			"Data":    r.CreatedAt.Local().Format("02/01/2006 15:04"),
			"Página":  r.Page,
			"Arquivo": r.Path,
			"Linhas":  fmt.Sprintf("%d de %d", r.Rows, r.TotalRows),
			"Filtros": strings.Join(filters, " "),
		})
	}
	return ds
}
