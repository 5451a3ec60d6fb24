package ostatki

import (
	"strings"
)

// ProducerRule maps every producer text containing Marker to Canonical.
type ProducerRule struct {
	Marker    string `mapstructure:"marker"`
	Canonical string `mapstructure:"canonical"`
}

// DefaultProducerRules returns the known factories, in priority order.
func DefaultProducerRules() []ProducerRule {
	return []ProducerRule{
		{Marker: "карелия", Canonical: "Карелия Гранит"},
		{Marker: "техногаббро", Canonical: "Техногаббро"},
		{Marker: "евромодул", Canonical: "Евромодуль"},
	}
}

// ProducerNormalizer canonicalizes free-text producer names.
type ProducerNormalizer struct {
	rules []ProducerRule
}

// NewProducerNormalizer creates a normalizer. Markers are folded once here;
// rules with an empty marker are ignored.
func NewProducerNormalizer(rules []ProducerRule) *ProducerNormalizer {
	n := &ProducerNormalizer{rules: make([]ProducerRule, 0, len(rules))}
	for _, rule := range rules {
		marker := foldText(rule.Marker)
		if marker == "" {
			continue
		}
		n.rules = append(n.rules, ProducerRule{
			Marker:    marker,
			Canonical: strings.TrimSpace(rule.Canonical),
		})
	}
	return n
}

// Canonicalize returns the canonical name for raw, or raw trimmed when no rule matches.
func (n *ProducerNormalizer) Canonicalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	folded := foldText(trimmed)
	for _, rule := range n.rules {
		if strings.Contains(folded, rule.Marker) {
			return rule.Canonical
		}
	}
	return trimmed
}

// Equal reports whether a and b name the same producer.
func (n *ProducerNormalizer) Equal(a, b string) bool {
	return foldText(n.Canonicalize(a)) == foldText(n.Canonicalize(b))
}

// foldText is the case folding used by every text comparison of the engine.
func foldText(s string) string {
	return normalizeHeader(s)
}
