package csvio

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ImportXLSX reads the first sheet of an Excel workbook and runs it through
// the same header validation and coercion as the CSV path, so spreadsheet
// uploads behave identically to CSV uploads.
func ImportXLSX(schema Schema, r io.Reader) ([]Record, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s import: open workbook: %w", schema.Collection, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ValidationError{Collection: schema.Collection}
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%s import: read sheet: %w", schema.Collection, err)
	}
	return coerceRows(schema, rows)
}
