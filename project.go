package ostatki

import (
	"strings"

	"github.com/sklad/ostatki/domain/model"
)

// Project turns one data row into a Record.
//
// It reports false when the schema lacks the name or quantity column, the
// row is too short to hold either, or the quantity cell is blank. Optional
// cells that are missing or blank leave their field empty.
func (e *Engine) Project(row model.Row, schema model.Schema) (model.Record, bool) {
	nameIdx, ok := schema.Column(model.FieldName)
	if !ok {
		return model.Record{}, false
	}
	qtyIdx, ok := schema.Column(model.FieldQuantity)
	if !ok {
		return model.Record{}, false
	}

	name, ok := row.Cell(nameIdx)
	if !ok {
		return model.Record{}, false
	}
	quantity, ok := row.Cell(qtyIdx)
	if !ok || strings.TrimSpace(quantity) == "" {
		return model.Record{}, false
	}

	record := model.Record{
		Name:     name,
		Quantity: quantity,
		Material: optionalCell(row, schema, model.FieldMaterial),
		Dimensions: model.Dimensions{
			Length: optionalCell(row, schema, model.FieldLength),
			Width:  optionalCell(row, schema, model.FieldWidth),
			Height: optionalCell(row, schema, model.FieldHeight),
		},
	}
	if producer := optionalCell(row, schema, model.FieldProducer); producer != "" {
		record.Producer = e.producers.Canonicalize(producer)
	}
	return record, true
}

// optionalCell returns the verbatim cell of field, or "" when it is unresolved, out of range or blank.
func optionalCell(row model.Row, schema model.Schema, field model.Field) string {
	idx, ok := schema.Column(field)
	if !ok {
		return ""
	}
	cell, ok := row.Cell(idx)
	if !ok || strings.TrimSpace(cell) == "" {
		return ""
	}
	return cell
}
