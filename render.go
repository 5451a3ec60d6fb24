package ostatki

import (
	"html"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/sklad/ostatki/domain/model"
)

const (
	bullet       = "▪️"
	ellipsis     = "…"
	iconAll      = "📦"
	iconByName   = "🔍"
	iconProducer = "🏭"
)

// escape makes cell text safe for the markup.
func (m Markup) escape(s string) string {
	if m == MarkupHTML {
		return html.EscapeString(s)
	}
	return s
}

// bold wraps already escaped text.
func (m Markup) bold(s string) string {
	switch m {
	case MarkupHTML:
		return "<b>" + s + "</b>"
	case MarkupPlain:
		return s
	default:
		return "**" + s + "**"
	}
}

// FormatRecord renders one record as a single display line:
//
//	▪️ **name** [material] (Д: Lмм, Ш: Wмм, В: Hмм) - Q шт (producer)
//
// Bracketed segments are omitted when their data is absent.
func FormatRecord(r model.Record, markup Markup) string {
	var b strings.Builder
	b.WriteString(bullet)
	b.WriteString(" ")
	b.WriteString(markup.bold(markup.escape(r.Name)))

	if r.HasMaterial() {
		b.WriteString(" [")
		b.WriteString(markup.escape(r.Material))
		b.WriteString("]")
	}

	var dims []string
	if r.Dimensions.Length != "" {
		dims = append(dims, "Д: "+markup.escape(r.Dimensions.Length)+"мм")
	}
	if r.Dimensions.Width != "" {
		dims = append(dims, "Ш: "+markup.escape(r.Dimensions.Width)+"мм")
	}
	if r.Dimensions.Height != "" {
		dims = append(dims, "В: "+markup.escape(r.Dimensions.Height)+"мм")
	}
	if len(dims) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(dims, ", "))
		b.WriteString(")")
	}

	b.WriteString(" - ")
	b.WriteString(markup.escape(r.Quantity))
	b.WriteString(" шт")

	if r.HasProducer() {
		b.WriteString(" (")
		b.WriteString(markup.escape(r.Producer))
		b.WriteString(")")
	}
	return b.String()
}

// DefaultHeader returns the header line for q with default options.
func DefaultHeader(q model.Query) string {
	return NewRenderOptions().Header(q)
}

// Header returns the header line that opens the first chunk of a result listing.
func (o RenderOptions) Header(q model.Query) string {
	msgs := o.Messages.withDefaults()
	switch q.Kind {
	case model.QueryByName:
		return iconByName + " " + o.Markup.bold(o.fill(msgs.HeaderByName, q.Term))
	case model.QueryByProducer:
		return iconProducer + " " + o.Markup.bold(o.fill(msgs.HeaderByProducer, q.Term))
	default:
		return iconAll + " " + o.Markup.bold(msgs.HeaderAll)
	}
}

// NotFound returns the message for a query that matched nothing.
func (o RenderOptions) NotFound(q model.Query) string {
	msgs := o.Messages.withDefaults()
	switch q.Kind {
	case model.QueryByName:
		return o.fill(msgs.NotFoundByName, q.Term)
	case model.QueryByProducer:
		return o.fill(msgs.NotFoundByProducer, q.Term)
	default:
		return msgs.NotFoundAll
	}
}

// FetchFailed returns the message shown when the source could not supply a table.
func (o RenderOptions) FetchFailed() string {
	return o.Messages.withDefaults().FetchFailed
}

// NoProducers returns the message shown when no producer is listed.
func (o RenderOptions) NoProducers() string {
	return o.Messages.withDefaults().NoProducers
}

func (o RenderOptions) fill(template, term string) string {
	return strings.ReplaceAll(template, "{term}", o.Markup.escape(term))
}

// failure returns the single-chunk message for a non-result outcome.
func (o RenderOptions) failure(out model.Outcome) string {
	msgs := o.Messages.withDefaults()
	if out.Kind == model.OutcomeNoData {
		return msgs.NoData
	}
	if len(out.Missing) == 1 && out.Missing[0] == model.FieldProducer {
		return msgs.MissingProducerColumn
	}
	return msgs.MissingColumns
}

// Render serializes an outcome into chunks of at most opts.MaxChunkLength runes.
//
// The first chunk opens with header and a blank line. A chunk that cannot
// take the next record line is closed and the next chunk starts with that
// line; lines are never split. A line longer than the bound on its own is
// cut and ends with an ellipsis.
func Render(out model.Outcome, header string, opts RenderOptions) []string {
	if out.Kind != model.OutcomeResults {
		return []string{opts.failure(out)}
	}
	if len(out.Records) == 0 {
		return []string{opts.NotFound(out.Query)}
	}

	p := newPaginator(opts.limit())
	p.add(header + "\n\n")
	for _, r := range out.Records {
		p.add(FormatRecord(r, opts.Markup) + "\n")
	}
	return p.finish()
}

// RenderProducers serializes a producer listing the same way Render serializes records.
func RenderProducers(producers []string, out model.Outcome, opts RenderOptions) []string {
	if out.Kind != model.OutcomeResults {
		return []string{opts.failure(out)}
	}
	if len(producers) == 0 {
		return []string{opts.NoProducers()}
	}

	p := newPaginator(opts.limit())
	p.add(iconProducer + " " + opts.Markup.bold(opts.Messages.withDefaults().HeaderProducers) + "\n\n")
	for _, name := range producers {
		p.add(bullet + " " + opts.Markup.escape(name) + "\n")
	}
	return p.finish()
}

// paginator accumulates text pieces into bounded chunks.
type paginator struct {
	limit  int
	chunks []string
	cur    strings.Builder
	size   int
}

func newPaginator(limit int) *paginator {
	return &paginator{limit: limit}
}

func (p *paginator) add(piece string) {
	n := utf8.RuneCountInString(piece)
	if n > p.limit {
		piece = truncateLine(piece, p.limit)
		n = utf8.RuneCountInString(piece)
	}
	if p.size > 0 && p.size+n > p.limit {
		p.flush()
	}
	p.cur.WriteString(piece)
	p.size += n
}

func (p *paginator) flush() {
	p.chunks = append(p.chunks, p.cur.String())
	p.cur.Reset()
	p.size = 0
}

func (p *paginator) finish() []string {
	if p.size > 0 {
		p.flush()
	}
	return slices.Clip(p.chunks)
}

// truncateLine cuts piece to limit runes, keeping its trailing line breaks and marking the cut.
func truncateLine(piece string, limit int) string {
	body := strings.TrimRight(piece, "\n")
	tail := piece[len(body):]
	keep := limit - utf8.RuneCountInString(tail) - utf8.RuneCountInString(ellipsis)
	if keep < 0 {
		keep = 0
	}
	runes := []rune(body)
	if keep > len(runes) {
		keep = len(runes)
	}
	out := string(runes[:keep]) + ellipsis + tail
	if utf8.RuneCountInString(out) > limit {
		return string([]rune(out)[:limit])
	}
	return out
}
