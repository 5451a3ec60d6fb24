package ostatki

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sklad/ostatki/domain/model"
)

// Source supplies the inventory table. Fetch is called once per query;
// implementations must not cache the table between calls.
type Source interface {
	Fetch(ctx context.Context) (*model.RawTable, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (*model.RawTable, error)

// Fetch calls f(ctx).
func (f SourceFunc) Fetch(ctx context.Context) (*model.RawTable, error) {
	return f(ctx)
}

// Inventory answers queries by fetching, filtering and rendering the stock table.
//
// Each call fetches the table again and resolves the schema again, so an
// Inventory can serve concurrent callers without locking.
type Inventory struct {
	source Source
	engine *Engine
	render RenderOptions
	logger *slog.Logger
}

// New creates an Inventory. A nil logger means slog.Default().
func New(src Source, cfg Config, opts RenderOptions, logger *slog.Logger) (*Inventory, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	engine, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	opts.Messages = opts.Messages.withDefaults()
	return &Inventory{
		source: src,
		engine: engine,
		render: opts,
		logger: logger,
	}, nil
}

// Open creates an Inventory over a spreadsheet file with the default configuration.
//
// Example usage:
//
//	inv, err := ostatki.Open(ctx, "stock.xlsx")
//	if err != nil {
//		log.Fatal(err)
//	}
//	chunks, err := inv.Ask(ctx, model.ByProducer("техногаббро"))
func Open(ctx context.Context, path string) (*Inventory, error) {
	src, err := NewSourceBuilder().AddPath(path).Build(ctx)
	if err != nil {
		return nil, err
	}
	return New(src, DefaultConfig(), NewRenderOptions(), nil)
}

// Engine returns the query engine.
func (inv *Inventory) Engine() *Engine {
	return inv.engine
}

// RenderOptions returns the options used to render answers.
func (inv *Inventory) RenderOptions() RenderOptions {
	return inv.render
}

// Execute fetches the table and runs q without rendering.
func (inv *Inventory) Execute(ctx context.Context, q model.Query) (model.Outcome, error) {
	table, err := inv.source.Fetch(ctx)
	if err != nil {
		return model.Outcome{}, err
	}
	return inv.engine.Execute(q, table), nil
}

// Ask answers q with display-ready chunks.
//
// Missing data, missing columns and empty results are answers, not errors.
// An error means the table could not be fetched; transports usually reply
// with RenderOptions().FetchFailed() then.
func (inv *Inventory) Ask(ctx context.Context, q model.Query) ([]string, error) {
	logger := inv.logger.With(
		slog.String("query_id", uuid.NewString()),
		slog.String("kind", q.Kind.String()),
	)
	if q.Term != "" {
		logger = logger.With(slog.String("term", q.Term))
	}

	start := time.Now()
	outcome, err := inv.Execute(ctx, q)
	if err != nil {
		logger.ErrorContext(ctx, "fetch failed", slog.Any("error", err))
		return nil, err
	}

	chunks := Render(outcome, inv.render.Header(q), inv.render)
	logger.InfoContext(ctx, "query answered",
		slog.String("outcome", outcome.Kind.String()),
		slog.Int("records", len(outcome.Records)),
		slog.Int("skipped", outcome.Skipped),
		slog.Int("chunks", len(chunks)),
		slog.Duration("duration", time.Since(start)),
	)
	if outcome.Kind == model.OutcomeMissingColumns {
		missing := make([]string, len(outcome.Missing))
		for i, f := range outcome.Missing {
			missing[i] = f.String()
		}
		logger.WarnContext(ctx, "required columns not found", slog.Any("missing", missing))
	}
	return chunks, nil
}

// Producers lists the distinct canonical producers in the current table.
// The outcome reports NoData or MissingColumns when the list could not be built.
func (inv *Inventory) Producers(ctx context.Context) ([]string, model.Outcome, error) {
	table, err := inv.source.Fetch(ctx)
	if err != nil {
		inv.logger.ErrorContext(ctx, "fetch failed", slog.Any("error", err))
		return nil, model.Outcome{}, err
	}
	producers, outcome := inv.engine.Producers(table)
	inv.logger.DebugContext(ctx, "producers listed",
		slog.String("outcome", outcome.Kind.String()),
		slog.Int("producers", len(producers)),
	)
	return producers, outcome, nil
}
