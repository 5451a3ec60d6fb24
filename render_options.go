package ostatki

import (
	"fmt"
	"strings"
)

// DefaultMaxChunkLength is the largest message a chat transport accepts, in characters.
const DefaultMaxChunkLength = 4000

// Markup represents how bold text is embedded in rendered chunks
type Markup int

const (
	// MarkupMarkdown wraps bold text in double asterisks
	MarkupMarkdown Markup = iota
	// MarkupHTML wraps bold text in <b> tags and escapes cell text
	MarkupHTML
	// MarkupPlain emits no markup at all
	MarkupPlain
)

// String returns the string representation of Markup
func (m Markup) String() string {
	switch m {
	case MarkupMarkdown:
		return "markdown"
	case MarkupHTML:
		return "html"
	case MarkupPlain:
		return "plain"
	default:
		return "markdown"
	}
}

// ParseMarkup parses a markup name as used in configuration files
func ParseMarkup(s string) (Markup, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return MarkupMarkdown, nil
	case "html":
		return MarkupHTML, nil
	case "plain", "text":
		return MarkupPlain, nil
	default:
		return MarkupMarkdown, fmt.Errorf("unknown markup %q", s)
	}
}

// Messages holds every fixed text the renderer emits.
// "{term}" in a template is replaced by the query term.
type Messages struct {
	HeaderAll        string `mapstructure:"header_all"`
	HeaderByName     string `mapstructure:"header_by_name"`
	HeaderByProducer string `mapstructure:"header_by_producer"`
	HeaderProducers  string `mapstructure:"header_producers"`

	NotFoundAll        string `mapstructure:"not_found_all"`
	NotFoundByName     string `mapstructure:"not_found_by_name"`
	NotFoundByProducer string `mapstructure:"not_found_by_producer"`

	NoData                string `mapstructure:"no_data"`
	MissingColumns        string `mapstructure:"missing_columns"`
	MissingProducerColumn string `mapstructure:"missing_producer_column"`
	NoProducers           string `mapstructure:"no_producers"`
	FetchFailed           string `mapstructure:"fetch_failed"`
}

// DefaultMessages returns the Russian texts of the warehouse bot.
func DefaultMessages() Messages {
	return Messages{
		HeaderAll:        "Товары на складе:",
		HeaderByName:     "Результаты по запросу '{term}':",
		HeaderByProducer: "Товары производителя '{term}':",
		HeaderProducers:  "Выберите производителя:",

		NotFoundAll:        "❌ Товары не найдены",
		NotFoundByName:     "❌ Товары по запросу '{term}' не найдены",
		NotFoundByProducer: "❌ Товары производителя '{term}' не найдены",

		NoData:                "❌ Данные не найдены",
		MissingColumns:        "❌ Не найдены необходимые столбцы в таблице",
		MissingProducerColumn: "❌ Столбец производителя не найден",
		NoProducers:           "❌ Данные о производителях не найдены",
		FetchFailed:           "❌ Ошибка при получении данных",
	}
}

// withDefaults fills blank messages from DefaultMessages.
func (m Messages) withDefaults() Messages {
	d := DefaultMessages()
	fill := func(dst *string, def string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = def
		}
	}
	fill(&m.HeaderAll, d.HeaderAll)
	fill(&m.HeaderByName, d.HeaderByName)
	fill(&m.HeaderByProducer, d.HeaderByProducer)
	fill(&m.HeaderProducers, d.HeaderProducers)
	fill(&m.NotFoundAll, d.NotFoundAll)
	fill(&m.NotFoundByName, d.NotFoundByName)
	fill(&m.NotFoundByProducer, d.NotFoundByProducer)
	fill(&m.NoData, d.NoData)
	fill(&m.MissingColumns, d.MissingColumns)
	fill(&m.MissingProducerColumn, d.MissingProducerColumn)
	fill(&m.NoProducers, d.NoProducers)
	fill(&m.FetchFailed, d.FetchFailed)
	return m
}

// RenderOptions configures how query outcomes are turned into chat messages.
//
// Example:
//
//	options := NewRenderOptions().
//		WithMarkup(MarkupHTML).
//		WithMaxChunkLength(4096)
//
//	chunks := Render(outcome, options.Header(query), options)
type RenderOptions struct {
	// MaxChunkLength bounds every chunk, counted in runes
	MaxChunkLength int
	// Markup selects how bold text is written
	Markup Markup
	// Messages holds the fixed texts
	Messages Messages
}

// NewRenderOptions creates default render options (4000 runes, Markdown, Russian texts).
//
// Modify with:
//   - WithMaxChunkLength(): Change the chunk bound
//   - WithMarkup(): Switch to HTML or plain text
//   - WithMessages(): Replace the fixed texts
func NewRenderOptions() RenderOptions {
	return RenderOptions{
		MaxChunkLength: DefaultMaxChunkLength,
		Markup:         MarkupMarkdown,
		Messages:       DefaultMessages(),
	}
}

// WithMaxChunkLength sets the chunk bound. Values below one fall back to the default.
func (o RenderOptions) WithMaxChunkLength(n int) RenderOptions {
	if n < 1 {
		n = DefaultMaxChunkLength
	}
	o.MaxChunkLength = n
	return o
}

// WithMarkup sets how bold text is written.
//
// Options:
//   - MarkupMarkdown: **bold** (default)
//   - MarkupHTML: <b>bold</b>, cell text escaped
//   - MarkupPlain: no markup
func (o RenderOptions) WithMarkup(m Markup) RenderOptions {
	o.Markup = m
	return o
}

// WithMessages replaces the fixed texts. Blank entries keep their defaults.
func (o RenderOptions) WithMessages(m Messages) RenderOptions {
	o.Messages = m.withDefaults()
	return o
}

// limit returns the effective chunk bound
func (o RenderOptions) limit() int {
	if o.MaxChunkLength < 1 {
		return DefaultMaxChunkLength
	}
	return o.MaxChunkLength
}
