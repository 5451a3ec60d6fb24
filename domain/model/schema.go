package model

// absentColumn marks a field that no header column resolved to.
const absentColumn = -1

// Schema maps every logical field to a column index, or to "absent".
// It is built from one header row and is only valid for that table.
type Schema struct {
	columns [fieldCount]int
}

// NewSchema returns a schema with every field absent.
func NewSchema() Schema {
	var s Schema
	for i := range s.columns {
		s.columns[i] = absentColumn
	}
	return s
}

// With returns a copy of the schema with field bound to column index.
// A negative index marks the field absent.
func (s Schema) With(field Field, index int) Schema {
	if field < 0 || field >= fieldCount {
		return s
	}
	if index < 0 {
		index = absentColumn
	}
	s.columns[field] = index
	return s
}

// Column returns the column index of field and whether it was resolved.
func (s Schema) Column(field Field) (int, bool) {
	if field < 0 || field >= fieldCount {
		return absentColumn, false
	}
	idx := s.columns[field]
	return idx, idx != absentColumn
}

// Has reports whether field was resolved.
func (s Schema) Has(field Field) bool {
	_, ok := s.Column(field)
	return ok
}

// Missing returns the fields among required that were not resolved, in the given order.
func (s Schema) Missing(required ...Field) []Field {
	var missing []Field
	for _, f := range required {
		if !s.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}
