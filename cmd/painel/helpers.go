package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Veraticus/painel/internal/cli"
	"github.com/Veraticus/painel/internal/common"
	"github.com/Veraticus/painel/internal/config"
	"github.com/Veraticus/painel/internal/export"
	"github.com/Veraticus/painel/internal/model"
	"github.com/Veraticus/painel/internal/normalize"
	"github.com/Veraticus/painel/internal/pages"
	"github.com/Veraticus/painel/internal/source"
	"github.com/Veraticus/painel/internal/storage"
)

var (
	appConfig *config.Config
	appFs     afero.Fs = afero.NewOsFs()
	clock              = time.Now

	// openJournal opens the export journal. It returns a nil journal when
	// history is disabled.
	openJournal = openSQLiteJournal
)

func openSQLiteJournal(ctx context.Context) (*storage.SQLiteStorage, func(), error) {
	if !appConfig.History.Enabled {
		return nil, func() {}, nil
	}

	journal, err := storage.NewSQLiteStorage(config.ExpandPath(appConfig.History.Path))
	if err != nil {
		return nil, nil, err
	}
	closeJournal := func() {
		if err := journal.Close(); err != nil {
			slog.Warn("Failed to close journal", "error", err)
		}
	}

	if err := journal.Migrate(ctx); err != nil {
		closeJournal()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return journal, closeJournal, nil
}

// addSourceFlag lets a page read an explicit file instead of locating one.
func addSourceFlag(cmd *cobra.Command) {
	cmd.Flags().String("file", "", "read this file (.xlsx, .csv or .ofx) instead of the newest export")
}

func addPeriodFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "first day (DD/MM/AAAA)")
	cmd.Flags().String("to", "", "last day (DD/MM/AAAA)")
	cmd.Flags().Bool("current-month", false, "from the first day of this month to today")
}

func addOutputFlags(cmd *cobra.Command, exportable bool) {
	cmd.Flags().String("format", cli.FormatTable, "output format (table, json)")
	cmd.Flags().Int("max-rows", 0, "rows shown in the grid (0 uses display.max_rows, -1 shows all)")
	if exportable {
		cmd.Flags().Bool("export", false, "write the filtered rows to a new .xlsx file")
	}
}

// sourcePath returns --file when given, otherwise what locate finds.
func sourcePath(cmd *cobra.Command, locate func() (string, error)) (string, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		return config.ExpandPath(path), nil
	}
	return locate()
}

func loadDataset(path string) (model.Dataset, error) {
	ds, err := source.Load(appFs, path)
	if err != nil {
		return model.Dataset{}, err
	}
	slog.Info("Loaded source", "path", path, "rows", ds.Len(), "columns", len(ds.Columns))
	return ds, nil
}

func parseDay(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	d, ok := normalize.ParseDate(value)
	if !ok {
		return time.Time{}, common.NewUserError(
			fmt.Sprintf("Data inválida em --%s: %s (use DD/MM/AAAA)", flag, value),
			fmt.Errorf("%w: --%s=%q", common.ErrInvalidConfig, flag, value),
		)
	}
	return normalize.Day(d), nil
}

func dayFlag(cmd *cobra.Command, name string) (time.Time, error) {
	value, _ := cmd.Flags().GetString(name)
	return parseDay(name, value)
}

func periodFromFlags(cmd *cobra.Command) (pages.Period, error) {
	if current, _ := cmd.Flags().GetBool("current-month"); current {
		return pages.CurrentMonth(clock()), nil
	}
	start, err := dayFlag(cmd, "from")
	if err != nil {
		return pages.Period{}, err
	}
	end, err := dayFlag(cmd, "to")
	if err != nil {
		return pages.Period{}, err
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return pages.Period{}, common.NewUserError(
			"A data final é anterior à data inicial.",
			fmt.Errorf("%w: --to before --from", common.ErrInvalidConfig),
		)
	}
	return pages.Period{Start: start, End: end}, nil
}

// presentOptions tunes how a page result is printed.
type presentOptions struct {
	title   string
	percent []string
	// metricsOnly skips the grid for pages without rows.
	metricsOnly bool
}

func present(cmd *cobra.Command, r pages.Result, opts presentOptions) error {
	format, _ := cmd.Flags().GetString("format")
	if !slices.Contains(cli.Formats(), format) {
		return common.NewUserError(
			fmt.Sprintf("Formato desconhecido: %s", format),
			fmt.Errorf("%w: format %q", common.ErrInvalidConfig, format),
		)
	}

	out := cmd.OutOrStdout()
	if format == cli.FormatJSON {
		if err := cli.WriteJSON(out, r); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, cli.FormatTitle(opts.title))
		if r.Filtered.Source != "" && !opts.metricsOnly {
			fmt.Fprintln(out, cli.FormatInfo("Arquivo carregado: "+filepath.Base(r.Filtered.Source)))
		}
		if metrics := cli.RenderMetrics(r.Metrics); metrics != "" {
			fmt.Fprintln(out, metrics)
		}
		if !opts.metricsOnly {
			maxRows, _ := cmd.Flags().GetInt("max-rows")
			if maxRows == 0 {
				maxRows = appConfig.Display.MaxRows
			}
			fmt.Fprintln(out, cli.RenderGrid(r.Filtered, cli.GridOptions{MaxRows: maxRows, Percent: opts.percent}))
			fmt.Fprintln(out, cli.SubtleStyle.Render(cli.RowCounter(r.Shown(), r.Total)))
		}
	}

	if exportFlag, err := cmd.Flags().GetBool("export"); err == nil && exportFlag {
		return exportResult(cmd, r)
	}
	return nil
}

func exportResult(cmd *cobra.Command, r pages.Result) error {
	now := clock()
	path, err := export.ToFile(appFs, appConfig.Export.Dir, r.Filtered, now)
	if err != nil {
		return common.NewUserError("Não foi possível exportar o resultado.", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess("Resultado exportado para "+path))

	rec := &model.ExportRecord{
		Page:      r.Page,
		FileName:  filepath.Base(path),
		Path:      path,
		Rows:      r.Shown(),
		TotalRows: r.Total,
		Filters:   changedFlags(cmd),
		CreatedAt: now,
	}
	// The file is already written; journal problems only cost history.
	if err := recordExport(cmd.Context(), rec); err != nil {
		slog.Warn("Failed to record export", "path", path, "error", err)
	}
	return nil
}

func recordExport(ctx context.Context, rec *model.ExportRecord) error {
	journal, closeJournal, err := openJournal(ctx)
	if err != nil {
		return err
	}
	defer closeJournal()
	if journal == nil {
		return nil
	}
	return journal.RecordExport(ctx, rec)
}

// changedFlags returns the flags set on the command line, minus the output
// flags, as the filters of an export.
func changedFlags(cmd *cobra.Command) map[string]string {
	skip := map[string]bool{"export": true, "format": true, "max-rows": true}
	filters := make(map[string]string)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if skip[f.Name] {
			return
		}
		value := f.Value.String()
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			value = strings.Join(sv.GetSlice(), ",")
		}
		filters[f.Name] = value
	})
	return filters
}
