package ostatki

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// SourceBuilder configures a FileSource before it is used.
// Use NewSourceBuilder to create a new instance, then chain method calls to configure it.
//
// The typical usage pattern is:
//
//	src, err := ostatki.NewSourceBuilder().
//		AddPath("stock.xlsx").
//		Sheet("Общий склад").
//		Build(ctx)
//	if err != nil {
//		return err
//	}
//	table, err := src.Fetch(ctx)
type SourceBuilder struct {
	// path is a regular file path
	path string
	// fsys and fsName address a file inside an fs.FS
	fsys   fs.FS
	fsName string
	// sheet selects the XLSX worksheet
	sheet string
	// inputs counts AddPath/AddFS calls; exactly one is allowed
	inputs int
}

// NewSourceBuilder creates a new builder for a spreadsheet source.
func NewSourceBuilder() *SourceBuilder {
	return &SourceBuilder{}
}

// AddPath sets a regular spreadsheet file as the source.
//
// Supported file extensions: .csv, .tsv, .ltsv, .parquet, .xlsx
// Supported compression: .gz, .bz2, .xz, .zst
//
// Returns the builder for method chaining.
func (b *SourceBuilder) AddPath(path string) *SourceBuilder {
	b.path = path
	b.inputs++
	return b
}

// AddFS sets a spreadsheet file inside fsys as the source.
// This method is particularly useful for embedded filesystems using go:embed.
//
// Returns the builder for method chaining.
func (b *SourceBuilder) AddFS(fsys fs.FS, name string) *SourceBuilder {
	b.fsys = fsys
	b.fsName = name
	b.inputs++
	return b
}

// Sheet selects the worksheet of an XLSX workbook. The first sheet is used when unset.
//
// Returns the builder for method chaining.
func (b *SourceBuilder) Sheet(name string) *SourceBuilder {
	b.sheet = strings.TrimSpace(name)
	return b
}

// Build validates the configuration and returns the source.
// The file must exist and have a supported extension; its content is read on Fetch.
func (b *SourceBuilder) Build(ctx context.Context) (*FileSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch {
	case b.inputs == 0:
		return nil, ErrNoSource
	case b.inputs > 1:
		return nil, errors.New("ostatki: exactly one spreadsheet source must be configured")
	}

	v := newValidator()
	if b.fsys != nil {
		if err := v.validateFSEntry(b.fsys, b.fsName); err != nil {
			return nil, fmt.Errorf("invalid source: %w", err)
		}
		return newFileSource(b.fsys, b.fsName, b.sheet), nil
	}

	if err := v.validatePath(b.path); err != nil {
		return nil, fmt.Errorf("invalid source: %w", err)
	}
	return newFileSource(nil, b.path, b.sheet), nil
}
