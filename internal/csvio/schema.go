// Package csvio is the transfer bridge between the three record collections
// and CSV/XLSX files. Each collection has a fixed schema: an ordered field
// list with an explicit per-field coercion rule, so a cell is never guessed
// into a type by inspection.
package csvio

import (
	"github.com/shopspring/decimal"
)

// Kind selects how a cell is coerced on import.
type Kind int

const (
	// KindID passes through as a string, always — ids are opaque.
	KindID Kind = iota
	// KindNumber parses as a decimal; blank or unparseable cells become 0.
	KindNumber
	// KindText passes through unchanged.
	KindText
)

// Field is one column of a collection schema.
type Field struct {
	Name string
	Kind Kind
}

// Schema describes a collection's transfer format. Export writes columns in
// field order; import requires every field to be present in the header
// (order-insensitive) and ignores extras.
type Schema struct {
	Collection string
	Fields     []Field
}

// FieldNames returns the expected header names in export order.
func (s Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Collection schemas. The numeric field set is fixed: costs, prices,
// quantities and total amounts — everything else is plain text.
var (
	StockSchema = Schema{
		Collection: "stock",
		Fields: []Field{
			{Name: "id", Kind: KindID},
			{Name: "name", Kind: KindText},
			{Name: "sku", Kind: KindText},
			{Name: "unit_cost", Kind: KindNumber},
			{Name: "unit_price", Kind: KindNumber},
			{Name: "quantity", Kind: KindNumber},
			{Name: "category", Kind: KindText},
		},
	}

	SalesSchema = Schema{
		Collection: "sales",
		Fields: []Field{
			{Name: "id", Kind: KindID},
			{Name: "date", Kind: KindText},
			{Name: "product", Kind: KindText},
			{Name: "quantity_sold", Kind: KindNumber},
			{Name: "unit_price", Kind: KindNumber},
			{Name: "unit_cost", Kind: KindNumber},
			{Name: "total_sale", Kind: KindNumber},
		},
	}

	PendingSchema = Schema{
		Collection: "pending",
		Fields: []Field{
			{Name: "id", Kind: KindID},
			{Name: "date", Kind: KindText},
			{Name: "product", Kind: KindText},
			{Name: "quantity_sent", Kind: KindNumber},
			{Name: "unit_price", Kind: KindNumber},
			{Name: "unit_cost", Kind: KindNumber},
			{Name: "status", Kind: KindText},
		},
	}
)

// Record is one imported/exported row keyed by field name. Values are
// string for ID/text fields and decimal.Decimal for numeric fields.
type Record map[string]any

// Text returns the field as a string ("" when absent).
func (r Record) Text(name string) string {
	s, _ := r[name].(string)
	return s
}

// Number returns the field as a decimal (zero when absent or non-numeric).
func (r Record) Number(name string) decimal.Decimal {
	d, ok := r[name].(decimal.Decimal)
	if !ok {
		return decimal.Zero
	}
	return d
}

// Int returns the field's integer part (zero when absent).
func (r Record) Int(name string) int {
	return int(r.Number(name).IntPart())
}
