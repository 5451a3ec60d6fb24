package ostatki

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/sklad/ostatki/domain/model"
)

// validator handles validation logic for SourceBuilder and Engine configuration
type validator struct{}

// newValidator creates a new validator instance
func newValidator() *validator {
	return &validator{}
}

// validatePath validates a single file path
func (v *validator) validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("failed to stat path %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a spreadsheet: %s", path)
	}
	if !isSupportedFile(path) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return nil
}

// validateFSEntry validates a named file inside an fs.FS
func (v *validator) validateFSEntry(fsys fs.FS, name string) error {
	if fsys == nil {
		return errors.New("filesystem cannot be nil")
	}
	if !fs.ValidPath(name) {
		return fmt.Errorf("invalid path in filesystem: %q", name)
	}
	info, err := fs.Stat(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return fmt.Errorf("failed to stat %s: %w", name, err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a spreadsheet: %s", name)
	}
	if !isSupportedFile(name) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	return nil
}

// validateTableName rejects table names that cannot address a SQL table
func (v *validator) validateTableName(table string) error {
	if strings.TrimSpace(table) == "" {
		return ErrInvalidTableName
	}
	if strings.ContainsRune(table, 0) {
		return fmt.Errorf("%w: contains NUL", ErrInvalidTableName)
	}
	return nil
}

// validateLabels requires the name and quantity labels, and at least one producer keyword
func (v *validator) validateLabels(labels Labels) error {
	var errs []error
	for _, f := range []model.Field{model.FieldName, model.FieldQuantity} {
		if !hasNonBlank(labels.exact(f)) {
			errs = append(errs, fmt.Errorf("no label for required column %q", f))
		}
	}
	if !hasNonBlank(labels.ProducerKeywords) {
		errs = append(errs, errors.New("no producer keywords"))
	}
	return errors.Join(errs...)
}

// validateProducerRules checks that every canonical name canonicalizes to itself.
// A canonical name containing an earlier rule's marker would break idempotency.
func (v *validator) validateProducerRules(rules []ProducerRule) error {
	var errs []error
	normalizer := NewProducerNormalizer(rules)
	for i, rule := range rules {
		if strings.TrimSpace(rule.Marker) == "" {
			errs = append(errs, fmt.Errorf("producer rule %d: empty marker", i))
			continue
		}
		if strings.TrimSpace(rule.Canonical) == "" {
			errs = append(errs, fmt.Errorf("producer rule %d: empty canonical name", i))
			continue
		}
		canonical := strings.TrimSpace(rule.Canonical)
		if got := normalizer.Canonicalize(canonical); got != canonical {
			errs = append(errs, fmt.Errorf("producer rule %d: canonical name %q maps to %q", i, canonical, got))
		}
	}
	return errors.Join(errs...)
}

// validateConfig validates an engine configuration
func (v *validator) validateConfig(cfg Config) error {
	err := errors.Join(v.validateLabels(cfg.Labels), v.validateProducerRules(cfg.Producers))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func hasNonBlank(values []string) bool {
	for _, s := range values {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}
