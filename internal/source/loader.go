package source

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/Veraticus/painel/internal/common"
	"github.com/Veraticus/painel/internal/model"
)

// Load opens path on fs and parses it according to its extension.
func Load(fs afero.Fs, path string) (model.Dataset, error) {
	f, err := fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Dataset{}, notFound(path, err)
		}
		return model.Dataset{}, unreadable(path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close source file", "path", path, "error", closeErr)
		}
	}()

	var ds model.Dataset
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		ds, err = ReadXLSX(f)
	case ".csv":
		ds, err = ReadCSV(f)
	case ".ofx", ".qfx":
		ds, err = ReadOFX(f)
	default:
		return model.Dataset{}, common.NewUserError(
			fmt.Sprintf("Formato de arquivo não suportado: %s", filepath.Base(path)),
			fmt.Errorf("%w: extension %q", common.ErrUnreadableSource, ext),
		)
	}
	if err != nil {
		return model.Dataset{}, unreadable(path, err)
	}

	ds.Source = path
	slog.Debug("Loaded source", "path", path, "rows", ds.Len(), "columns", len(ds.Columns))
	return ds, nil
}

// Headers trims header cells, names blank ones Column_N (1-based) and
// suffixes repeated names with .1, .2 and so on.
func Headers(raw []string) []string {
	out := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = "Column_" + strconv.Itoa(i+1)
		}
		if n, dup := seen[h]; dup {
			seen[h] = n + 1
			h = h + "." + strconv.Itoa(n+1)
		} else {
			seen[h] = 0
		}
		out[i] = h
	}
	return out
}

// fromRecords builds a dataset from a header record and value records.
// Rows with no values are dropped; short rows are padded with nil.
func fromRecords(header []string, records [][]any) model.Dataset {
	cols := Headers(header)
	rows := make([]model.Row, 0, len(records))
	for _, rec := range records {
		r := make(model.Row, len(cols))
		empty := true
		for i, col := range cols {
			var v any
			if i < len(rec) {
				v = rec[i]
			}
			if !model.IsEmpty(v) {
				empty = false
			}
			r[col] = v
		}
		if !empty {
			rows = append(rows, r)
		}
	}
	return model.Dataset{Columns: cols, Rows: rows}
}

func unreadable(path string, err error) error {
	return common.NewUserError(
		fmt.Sprintf("Não foi possível ler o arquivo %s", filepath.Base(path)),
		fmt.Errorf("%w: %v", common.ErrUnreadableSource, err),
	)
}

func readAll(r io.Reader) (string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read source: %w", err)
	}
	return string(content), nil
}
