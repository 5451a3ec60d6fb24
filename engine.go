package ostatki

import (
	"slices"
	"strings"

	"github.com/sklad/ostatki/domain/model"
)

// Config is the data that drives the engine: header labels and producer rules.
type Config struct {
	Labels    Labels         `mapstructure:"labels"`
	Producers []ProducerRule `mapstructure:"producers"`
}

// DefaultConfig returns the configuration of the warehouse spreadsheet.
func DefaultConfig() Config {
	return Config{
		Labels:    DefaultLabels(),
		Producers: DefaultProducerRules(),
	}
}

// Engine executes inventory queries over a fetched table.
//
// An Engine holds only immutable configuration. Every Execute call resolves
// the schema afresh from the table it is given, so concurrent calls over
// different tables need no coordination.
type Engine struct {
	resolver  *SchemaResolver
	producers *ProducerNormalizer
}

// NewEngine validates cfg and creates an Engine.
func NewEngine(cfg Config) (*Engine, error) {
	if err := newValidator().validateConfig(cfg); err != nil {
		return nil, err
	}
	return &Engine{
		resolver:  NewSchemaResolver(cfg.Labels),
		producers: NewProducerNormalizer(cfg.Producers),
	}, nil
}

// Resolver returns the schema resolver used by the engine.
func (e *Engine) Resolver() *SchemaResolver {
	return e.resolver
}

// Normalizer returns the producer normalizer used by the engine.
func (e *Engine) Normalizer() *ProducerNormalizer {
	return e.producers
}

// requiredFields lists the columns a query kind cannot run without, in report order.
func requiredFields(kind model.QueryKind) []model.Field {
	if kind == model.QueryByProducer {
		return []model.Field{model.FieldName, model.FieldQuantity, model.FieldProducer}
	}
	return []model.Field{model.FieldName, model.FieldQuantity}
}

// Execute runs q against t.
//
// Tables with fewer than two rows yield OutcomeNoData. When a column the
// query needs is unresolved the outcome is OutcomeMissingColumns and no row
// is scanned. Otherwise the outcome holds the matching records in row order.
func (e *Engine) Execute(q model.Query, t *model.RawTable) model.Outcome {
	if t.Len() < 2 {
		return model.NoData(q)
	}

	schema := e.resolver.Resolve(t.Header())
	if missing := schema.Missing(requiredFields(q.Kind)...); len(missing) > 0 {
		return model.MissingColumns(q, missing...)
	}

	match := e.matcher(q, schema)
	records := make([]model.Record, 0)
	skipped := 0
	for _, row := range t.DataRows() {
		if !match(row) {
			continue
		}
		record, ok := e.Project(row, schema)
		if !ok {
			skipped++
			continue
		}
		records = append(records, record)
	}
	return model.Results(q, records, skipped)
}

// matcher returns the row filter for q. Filters read raw cells, before projection.
func (e *Engine) matcher(q model.Query, schema model.Schema) func(model.Row) bool {
	switch q.Kind {
	case model.QueryByName:
		term := foldText(q.Term)
		nameIdx, _ := schema.Column(model.FieldName)
		return func(row model.Row) bool {
			name, ok := row.Cell(nameIdx)
			if !ok {
				return false
			}
			return strings.Contains(foldText(name), term)
		}
	case model.QueryByProducer:
		target := foldText(e.producers.Canonicalize(q.Term))
		prodIdx, _ := schema.Column(model.FieldProducer)
		return func(row model.Row) bool {
			if target == "" {
				return false
			}
			cell, ok := row.Cell(prodIdx)
			if !ok || strings.TrimSpace(cell) == "" {
				return false
			}
			return foldText(e.producers.Canonicalize(cell)) == target
		}
	default:
		return func(model.Row) bool { return true }
	}
}

// Producers lists the distinct canonical producers found in t, sorted.
// Only the producer column is required; rows with a blank producer cell are ignored.
func (e *Engine) Producers(t *model.RawTable) ([]string, model.Outcome) {
	q := model.ByProducer("")
	if t.Len() < 2 {
		return nil, model.NoData(q)
	}

	schema := e.resolver.Resolve(t.Header())
	prodIdx, ok := schema.Column(model.FieldProducer)
	if !ok {
		return nil, model.MissingColumns(q, model.FieldProducer)
	}

	seen := make(map[string]struct{})
	producers := make([]string, 0)
	for _, row := range t.DataRows() {
		cell, ok := row.Cell(prodIdx)
		if !ok || strings.TrimSpace(cell) == "" {
			continue
		}
		canonical := e.producers.Canonicalize(cell)
		key := foldText(canonical)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		producers = append(producers, canonical)
	}
	slices.Sort(producers)
	return producers, model.Results(q, nil, 0)
}
