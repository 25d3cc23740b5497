package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNothingToExport is returned for an empty collection; the caller should
// tell the user and skip producing a file.
var ErrNothingToExport = errors.New("nothing to export")

// Export serializes rows to CSV text with the schema's header in field
// order. Quoting and escaping follow encoding/csv (fields containing the
// delimiter, quotes or newlines are quoted, embedded quotes doubled).
func Export(schema Schema, rows []Record) (string, error) {
	if len(rows) == 0 {
		return "", ErrNothingToExport
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(schema.FieldNames()); err != nil {
		return "", err
	}
	for _, row := range rows {
		cells := make([]string, len(schema.Fields))
		for i, f := range schema.Fields {
			cells[i] = formatCell(row[f.Name])
		}
		if err := w.Write(cells); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case decimal.Decimal:
		return val.String()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
