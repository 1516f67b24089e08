package normalize

import (
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var dateLayouts = []string{
	"02/01/2006",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02-01-2006",
	"02/01/06",
}

// Largest serial excelize accepts (9999-12-31).
const maxExcelSerial = 2958465

// ParseDate converts a raw cell into a time.
//
// time.Time values pass through, strings are tried against the Brazilian
// and ISO layouts the exports use, and numbers are treated as Excel serial
// dates. Anything else is reported as unparseable.
func ParseDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case float64:
		return fromSerial(t)
	case int:
		return fromSerial(float64(t))
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if d, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return d, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// Day truncates a time to its calendar day in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func fromSerial(serial float64) (time.Time, bool) {
	if serial <= 0 || serial > maxExcelSerial {
		return time.Time{}, false
	}
	d, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
