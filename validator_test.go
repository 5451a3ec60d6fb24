package ostatki

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_validateTableName(t *testing.T) {
	t.Parallel()

	v := newValidator()
	tests := []struct {
		name    string
		table   string
		wantErr bool
	}{
		{name: "plain", table: "stock"},
		{name: "cyrillic with spaces", table: "Общий склад"},
		{name: "schema qualified", table: "public.stock"},
		{name: "empty", table: "", wantErr: true},
		{name: "blank", table: "  ", wantErr: true},
		{name: "nul byte", table: "st\x00ock", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := v.validateTableName(tt.table)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidTableName), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidator_validateLabels(t *testing.T) {
	t.Parallel()

	v := newValidator()

	assert.NoError(t, v.validateLabels(DefaultLabels()))
	assert.NoError(t, v.validateLabels(Labels{
		Name:             []string{"товар"},
		Quantity:         []string{"остаток"},
		ProducerKeywords: []string{"фабрика"},
	}))

	err := v.validateLabels(Labels{})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), `"name"`)
		assert.Contains(t, err.Error(), `"quantity"`)
		assert.Contains(t, err.Error(), "no producer keywords")
	}
}

func TestValidator_validateProducerRules(t *testing.T) {
	t.Parallel()

	v := newValidator()

	tests := []struct {
		name    string
		rules   []ProducerRule
		wantErr string
	}{
		{name: "defaults", rules: DefaultProducerRules()},
		{name: "none", rules: nil},
		{
			name:    "empty marker",
			rules:   []ProducerRule{{Marker: " ", Canonical: "Урал"}},
			wantErr: "empty marker",
		},
		{
			name:    "empty canonical",
			rules:   []ProducerRule{{Marker: "урал", Canonical: ""}},
			wantErr: "empty canonical name",
		},
		{
			name:  "canonical without its own marker",
			rules: []ProducerRule{{Marker: "урал", Canonical: "Мрамор"}},
		},
		{
			name: "canonical captured by an earlier rule",
			rules: []ProducerRule{
				{Marker: "гранит", Canonical: "Гранит"},
				{Marker: "карелия", Canonical: "Карелия Гранит"},
			},
			wantErr: `canonical name "Карелия Гранит" maps to "Гранит"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := v.validateProducerRules(tt.rules)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidator_validateConfig(t *testing.T) {
	t.Parallel()

	v := newValidator()
	assert.NoError(t, v.validateConfig(DefaultConfig()))

	err := v.validateConfig(Config{Producers: []ProducerRule{{Marker: "", Canonical: ""}}})
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "no producer keywords")
	assert.Contains(t, err.Error(), "empty marker")
}
