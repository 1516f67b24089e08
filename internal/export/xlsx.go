// Package export writes a filtered dataset to a single-sheet workbook.
package export

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/painel/internal/model"
)

// SheetName is the name of the only sheet in an exported workbook.
const SheetName = "Resultado"

// FileName returns the timestamped export name, e.g. resultado_20240315_143005.xlsx.
func FileName(now time.Time) string {
	return "resultado_" + now.Format("20060102_150405") + ".xlsx"
}

// Write encodes ds as a workbook with a header row followed by one row per
// record. Cell values keep their types.
func Write(w io.Writer, ds model.Dataset) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(ds.Columns))
	for i, c := range ds.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range ds.Rows {
		values := make([]any, len(ds.Columns))
		for j, c := range ds.Columns {
			values[j] = r[c]
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(SheetName, axis, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	return nil
}

// ToFile writes ds to dir under FileName(now) and returns the path.
func ToFile(fs afero.Fs, dir string, ds model.Dataset, now time.Time) (string, error) {
	if err := fs.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(now))
	out, err := fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := Write(out, ds); err != nil {
		_ = out.Close()
		if rmErr := fs.Remove(path); rmErr != nil {
			slog.Warn("Failed to remove partial export", "path", path, "error", rmErr)
		}
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	slog.Info("Exported dataset", "path", path, "rows", ds.Len())
	return path, nil
}
