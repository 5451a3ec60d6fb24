// Package model provides domain model for ostatki
package model

// Row is one row of a fetched table, cells in column order.
type Row []string

// NewRow create new Row.
func NewRow(r []string) Row {
	return Row(r)
}

// Equal compare Row.
func (r Row) Equal(r2 Row) bool {
	if len(r) != len(r2) {
		return false
	}
	for i, v := range r {
		if v != r2[i] {
			return false
		}
	}
	return true
}

// Cell returns the cell at index and whether the row is long enough to hold it.
// Negative indexes and short rows report false, never panic.
func (r Row) Cell(index int) (string, bool) {
	if index < 0 || index >= len(r) {
		return "", false
	}
	return r[index], true
}

// Field is a logical inventory column.
type Field int

const (
	// FieldName is the product name column
	FieldName Field = iota
	// FieldProducer is the producer (factory) column
	FieldProducer
	// FieldQuantity is the quantity column, kept as text
	FieldQuantity
	// FieldMaterial is the material column
	FieldMaterial
	// FieldLength is the length (mm) column
	FieldLength
	// FieldWidth is the width (mm) column
	FieldWidth
	// FieldHeight is the height (mm) column
	FieldHeight

	fieldCount
)

// Fields lists every logical field in declaration order.
func Fields() []Field {
	fields := make([]Field, 0, fieldCount)
	for f := FieldName; f < fieldCount; f++ {
		fields = append(fields, f)
	}
	return fields
}

// String returns the field name used in configuration and logs
func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldProducer:
		return "producer"
	case FieldQuantity:
		return "quantity"
	case FieldMaterial:
		return "material"
	case FieldLength:
		return "length"
	case FieldWidth:
		return "width"
	case FieldHeight:
		return "height"
	default:
		return "unknown"
	}
}
