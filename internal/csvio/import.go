package csvio

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError reports an import file that cannot be accepted: no data
// rows, or a header missing expected fields. It is meant to be shown to the
// user as-is, never treated as fatal.
type ValidationError struct {
	Collection string
	Missing    []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("%s import: file is empty or contains no valid data rows", e.Collection)
	}
	return fmt.Sprintf("%s import: missing expected headers: %s", e.Collection, strings.Join(e.Missing, ", "))
}

// Import parses csvText with the first row as the header and returns one
// coerced Record per data row. Header order does not need to match the
// schema; columns outside the schema pass through as text. The caller
// decides what to do with the records (typically upsert by id).
func Import(schema Schema, csvText string) ([]Record, error) {
	r := csv.NewReader(strings.NewReader(csvText))
	r.FieldsPerRecord = -1 // ragged rows tolerated; short rows read as blanks
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s import: %w", schema.Collection, err)
	}
	return coerceRows(schema, rows)
}

// coerceRows applies header validation and the per-field coercion table to
// raw cell rows (shared by the CSV and XLSX paths).
func coerceRows(schema Schema, rows [][]string) ([]Record, error) {
	if len(rows) < 2 {
		return nil, &ValidationError{Collection: schema.Collection}
	}

	header := rows[0]
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, f := range schema.Fields {
		if _, ok := col[f.Name]; !ok {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Collection: schema.Collection, Missing: missing}
	}

	kinds := make(map[string]Kind, len(schema.Fields))
	for _, f := range schema.Fields {
		kinds[f.Name] = f.Kind
	}

	records := make([]Record, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		if blankRow(cells) {
			continue
		}
		rec := make(Record, len(header))
		for name, idx := range col {
			raw := ""
			if idx < len(cells) {
				raw = cells[idx]
			}
			switch kinds[name] {
			case KindNumber:
				rec[name] = parseNumber(raw)
			default:
				// KindID and KindText both stay strings; unknown extra
				// columns are carried through untouched.
				rec[name] = raw
			}
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, &ValidationError{Collection: schema.Collection}
	}
	return records, nil
}

// parseNumber coerces a numeric cell; blank or garbage becomes zero rather
// than failing the whole file.
func parseNumber(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
