package ostatki

import (
	"strings"

	"github.com/sklad/ostatki/domain/model"
	"golang.org/x/text/unicode/norm"
)

// Labels is the header vocabulary used to locate inventory columns.
//
// Every field except the producer matches a header cell exactly (after
// normalization). The producer column is looser: the first header that
// contains any of ProducerKeywords wins, because spreadsheet authors label
// it "Тег производства", "Завод-изготовитель" and so on.
type Labels struct {
	Name     []string `mapstructure:"name"`
	Quantity []string `mapstructure:"quantity"`
	Material []string `mapstructure:"material"`
	Length   []string `mapstructure:"length"`
	Width    []string `mapstructure:"width"`
	Height   []string `mapstructure:"height"`
	// ProducerKeywords are substrings, checked in order for every header cell.
	ProducerKeywords []string `mapstructure:"producer_keywords"`
}

// DefaultLabels returns the labels of the warehouse spreadsheet.
func DefaultLabels() Labels {
	return Labels{
		Name:             []string{"наименование"},
		Quantity:         []string{"количество"},
		Material:         []string{"материал"},
		Length:           []string{"длина (мм)"},
		Width:            []string{"ширина (мм)"},
		Height:           []string{"высота (мм)"},
		ProducerKeywords: []string{"производство", "производитель", "тег", "завод", "производства"},
	}
}

// exact returns the exact-match labels of field; producer has none.
func (l Labels) exact(field model.Field) []string {
	switch field {
	case model.FieldName:
		return l.Name
	case model.FieldQuantity:
		return l.Quantity
	case model.FieldMaterial:
		return l.Material
	case model.FieldLength:
		return l.Length
	case model.FieldWidth:
		return l.Width
	case model.FieldHeight:
		return l.Height
	default:
		return nil
	}
}

// normalizeHeader folds a header cell or label for comparison.
func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

// SchemaResolver maps a header row to column indexes.
// It holds only the normalized labels and is safe for concurrent use.
type SchemaResolver struct {
	exact    map[model.Field][]string
	keywords []string
}

// NewSchemaResolver creates a resolver for labels. Labels are normalized once here.
func NewSchemaResolver(labels Labels) *SchemaResolver {
	r := &SchemaResolver{
		exact: make(map[model.Field][]string),
	}
	for _, f := range model.Fields() {
		for _, label := range labels.exact(f) {
			if n := normalizeHeader(label); n != "" {
				r.exact[f] = append(r.exact[f], n)
			}
		}
	}
	for _, kw := range labels.ProducerKeywords {
		if n := normalizeHeader(kw); n != "" {
			r.keywords = append(r.keywords, n)
		}
	}
	return r
}

// Resolve builds the schema for one header row. Unmatched fields stay absent.
func (r *SchemaResolver) Resolve(header model.Row) model.Schema {
	schema := model.NewSchema()
	normalized := make([]string, len(header))
	for i, cell := range header {
		normalized[i] = normalizeHeader(cell)
	}

	for _, f := range model.Fields() {
		if f == model.FieldProducer {
			schema = schema.With(f, r.findProducer(normalized))
			continue
		}
		schema = schema.With(f, findExact(normalized, r.exact[f]))
	}
	return schema
}

func findExact(header, labels []string) int {
	if len(labels) == 0 {
		return -1
	}
	for i, cell := range header {
		for _, label := range labels {
			if cell == label {
				return i
			}
		}
	}
	return -1
}

// findProducer scans headers left to right; the first header containing any keyword wins.
func (r *SchemaResolver) findProducer(header []string) int {
	for i, cell := range header {
		if cell == "" {
			continue
		}
		for _, kw := range r.keywords {
			if strings.Contains(cell, kw) {
				return i
			}
		}
	}
	return -1
}
