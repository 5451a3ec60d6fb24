package ostatki

import (
	"errors"
	"fmt"
	"strings"
)

// Standard error messages and error creation functions for consistency
var (
	// ErrEmptyData indicates that the data source contains no rows at all
	ErrEmptyData = errors.New("ostatki: empty data source")

	// ErrUnsupportedFormat indicates an unsupported file format
	ErrUnsupportedFormat = errors.New("ostatki: unsupported file format")

	// ErrFileNotFound indicates file not found
	ErrFileNotFound = errors.New("ostatki: file not found")

	// ErrSheetNotFound indicates the requested worksheet does not exist in the workbook
	ErrSheetNotFound = errors.New("ostatki: sheet not found")

	// ErrInvalidTableName indicates an empty or unusable SQL table name
	ErrInvalidTableName = errors.New("ostatki: invalid table name")

	// ErrInvalidConfig indicates engine labels or producer rules are unusable
	ErrInvalidConfig = errors.New("ostatki: invalid config")

	// ErrNoSource indicates a builder or inventory without any data source
	ErrNoSource = errors.New("ostatki: no data source")
)

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	Source    string
	TableName string
	Details   string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation, source string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		Source:    source,
	}
}

// WithTable adds table (or sheet) context to the error
func (ec *ErrorContext) WithTable(tableName string) *ErrorContext {
	ec.TableName = tableName
	return ec
}

// WithDetails adds details to the error context
func (ec *ErrorContext) WithDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Error creates a formatted error with context
func (ec *ErrorContext) Error(baseErr error) error {
	parts := []string{fmt.Sprintf("ostatki: %s failed", ec.Operation)}

	if ec.Source != "" {
		parts = append(parts, "source: "+ec.Source)
	}
	if ec.TableName != "" {
		parts = append(parts, "table: "+ec.TableName)
	}
	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}

	context := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%s: %w", context, baseErr)
	}
	return fmt.Errorf("%s", context)
}
