package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/painel/internal/common"
	"github.com/Veraticus/painel/internal/model"
)

// ReadCSV parses a delimited export. The delimiter is ';' when the header
// line has more semicolons than commas, otherwise ','. Cells stay strings.
func ReadCSV(r io.Reader) (model.Dataset, error) {
	content, err := readAll(r)
	if err != nil {
		return model.Dataset{}, err
	}
	content = strings.TrimPrefix(content, "\ufeff")

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = Delimiter(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return model.Dataset{}, common.ErrEmptySource
	}

	values := make([][]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]any, len(rec))
		for i, cell := range rec {
			if strings.TrimSpace(cell) != "" {
				row[i] = cell
			}
		}
		values = append(values, row)
	}
	return fromRecords(records[0], values), nil
}

// Delimiter guesses the field separator from the first line.
func Delimiter(content string) rune {
	first, _, _ := strings.Cut(content, "\n")
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}
