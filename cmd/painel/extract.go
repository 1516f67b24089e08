package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/Veraticus/painel/internal/cli"
	"github.com/Veraticus/painel/internal/common"
	"github.com/Veraticus/painel/internal/config"
	"github.com/Veraticus/painel/internal/extract"
	"github.com/Veraticus/painel/internal/normalize"
	"github.com/Veraticus/painel/internal/source"
)

// extraction is the JSON shape of the extrair command.
type extraction struct {
	File     string           `json:"arquivo"`
	Type     string           `json:"tipo"`
	Size     int64            `json:"tamanho"`
	Text     string           `json:"texto,omitempty"`
	Findings extract.Findings `json:"encontrados"`
	Total    string           `json:"total_valores"`
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extrair <arquivo>",
		Short: "Extract dates, amounts, CPFs and CNPJs from a .pdf, .docx or .txt file",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}
	cmd.Flags().String("format", cli.FormatTable, "output format (table, json)")
	cmd.Flags().Bool("show-text", true, "print the extracted text")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if !slices.Contains(cli.Formats(), format) {
		return common.NewUserError(
			fmt.Sprintf("Formato desconhecido: %s", format),
			fmt.Errorf("%w: format %q", common.ErrInvalidConfig, format),
		)
	}

	doc, err := source.LoadText(appFs, config.ExpandPath(args[0]))
	if err != nil {
		return err
	}
	found := extract.Text(doc.Text)
	slog.Info("Extracted document", "path", doc.Path,
		"dates", len(found.Dates), "amounts", len(found.Amounts),
		"cpfs", len(found.CPFs), "cnpjs", len(found.CNPJs))

	showText, _ := cmd.Flags().GetBool("show-text")
	out := cmd.OutOrStdout()

	if format == cli.FormatJSON {
		result := extraction{
			File:     filepath.Base(doc.Path),
			Type:     doc.Type,
			Size:     doc.Size,
			Findings: found,
			Total:    found.AmountTotal().StringFixed(2),
		}
		if showText {
			result.Text = doc.Text
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode extraction: %w", err)
		}
		return nil
	}

	fmt.Fprintln(out, cli.FormatTitle("Extração de Dados"))
	fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Arquivo: %s | Tipo: %s | Tamanho: %.1f KB",
		filepath.Base(doc.Path), doc.Type, float64(doc.Size)/1024)))

	if showText {
		fmt.Fprintln(out)
		fmt.Fprintln(out, cli.TitleStyle.Render("Texto extraído"))
		if strings.TrimSpace(doc.Text) == "" {
			fmt.Fprintln(out, cli.FormatWarning("Nenhum texto encontrado no arquivo."))
		} else {
			fmt.Fprintln(out, doc.Text)
		}
	}

	printFindings(out, found)
	return nil
}

func printFindings(out io.Writer, found extract.Findings) {
	for _, k := range extract.Kinds() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, cli.TitleStyle.Render(k.Label()))
		matches := found.Of(k)
		if len(matches) == 0 {
			fmt.Fprintln(out, cli.FormatWarning(k.Missing()))
			continue
		}
		for _, m := range matches {
			fmt.Fprintln(out, "  • "+m)
		}
		if k == extract.KindAmount {
			fmt.Fprintln(out, cli.SubtleStyle.Render("Total: "+normalize.FormatBRL(found.AmountTotal())))
		}
	}
}
