package source

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/painel/internal/common"
	"github.com/Veraticus/painel/internal/model"
)

// ReadXLSX parses the first sheet of a workbook. The first row is the
// header. Text cells stay strings so the normalizer can read Brazilian
// notation; numeric cells become float64 and date-formatted numeric cells
// become time.Time.
func ReadXLSX(r io.Reader) (model.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return model.Dataset{}, fmt.Errorf("%w: no sheets in workbook", common.ErrEmptySource)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return model.Dataset{}, fmt.Errorf("%w: sheet %s is empty", common.ErrEmptySource, sheet)
	}

	reader := &cellReader{file: f, sheet: sheet, dateStyles: make(map[int]bool)}
	values := make([][]any, 0, len(rows)-1)
	for i, raw := range rows[1:] {
		row := make([]any, len(raw))
		for j, cell := range raw {
			row[j] = reader.value(j+1, i+2, cell)
		}
		values = append(values, row)
	}

	slog.Debug("Read workbook", "sheet", sheet, "rows", len(values))
	return fromRecords(rows[0], values), nil
}

type cellReader struct {
	file       *excelize.File
	sheet      string
	dateStyles map[int]bool
}

// value converts a raw cell to its typed form. Any lookup failure falls
// back to the raw text.
func (c *cellReader) value(col, row int, raw string) any {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}
	typ, err := c.file.GetCellType(c.sheet, axis)
	if err != nil {
		return raw
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return raw
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	if typ == excelize.CellTypeDate || c.isDate(axis) {
		if t, err := excelize.ExcelDateToTime(f, false); err == nil {
			return t
		}
	}
	return f
}

func (c *cellReader) isDate(axis string) bool {
	idx, err := c.file.GetCellStyle(c.sheet, axis)
	if err != nil || idx == 0 {
		return false
	}
	if known, ok := c.dateStyles[idx]; ok {
		return known
	}

	isDate := false
	if style, err := c.file.GetStyle(idx); err == nil && style != nil {
		isDate = dateFormat(style.NumFmt, style.CustomNumFmt)
	}
	c.dateStyles[idx] = isDate
	return isDate
}

// dateFormat reports whether a number format renders a date. Built-in ids
// 14-22 and 45-47 are the date and time formats; custom formats count when
// they mention a day, month or year token outside quoted literals.
func dateFormat(id int, custom *string) bool {
	if (id >= 14 && id <= 22) || (id >= 45 && id <= 47) {
		return true
	}
	if custom == nil {
		return false
	}

	inQuote := false
	for _, ch := range strings.ToLower(*custom) {
		switch {
		case ch == '"':
			inQuote = !inQuote
		case inQuote:
		case ch == 'd' || ch == 'm' || ch == 'y':
			return true
		}
	}
	return false
}
