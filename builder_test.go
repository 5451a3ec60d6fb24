package ostatki

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSourceBuilder(t *testing.T) {
	t.Parallel()

	builder := NewSourceBuilder()
	if builder == nil {
		t.Fatal("NewSourceBuilder() returned nil")
	}
	if builder.inputs != 0 {
		t.Errorf("NewSourceBuilder() inputs = %d, want 0", builder.inputs)
	}
}

func TestSourceBuilder_Build(t *testing.T) {
	t.Parallel()

	csvPath := writeTestFile(t, "stock.csv", []byte(stockCSVContent))
	fsys := fstest.MapFS{
		"stock.xlsx": &fstest.MapFile{Data: []byte("x")},
		"notes.txt":  &fstest.MapFile{Data: []byte("x")},
		"dir/a.csv":  &fstest.MapFile{Data: []byte("x")},
	}

	tests := []struct {
		name    string
		builder *SourceBuilder
		wantErr error
		errText string
	}{
		{
			name:    "path",
			builder: NewSourceBuilder().AddPath(csvPath),
		},
		{
			name:    "path with sheet",
			builder: NewSourceBuilder().AddPath(csvPath).Sheet("  Склад "),
		},
		{
			name:    "filesystem entry",
			builder: NewSourceBuilder().AddFS(fsys, "stock.xlsx"),
		},
		{
			name:    "no input",
			builder: NewSourceBuilder(),
			wantErr: ErrNoSource,
		},
		{
			name:    "two inputs",
			builder: NewSourceBuilder().AddPath(csvPath).AddFS(fsys, "stock.xlsx"),
			errText: "exactly one spreadsheet source",
		},
		{
			name:    "missing file",
			builder: NewSourceBuilder().AddPath(filepath.Join(t.TempDir(), "missing.csv")),
			wantErr: ErrFileNotFound,
		},
		{
			name:    "unsupported extension",
			builder: NewSourceBuilder().AddPath(writeTestFile(t, "stock.txt", []byte("x"))),
			wantErr: ErrUnsupportedFormat,
		},
		{
			name:    "directory",
			builder: NewSourceBuilder().AddPath(t.TempDir()),
			errText: "is a directory",
		},
		{
			name:    "empty path",
			builder: NewSourceBuilder().AddPath(" "),
			errText: "path cannot be empty",
		},
		{
			name:    "filesystem entry missing",
			builder: NewSourceBuilder().AddFS(fsys, "missing.csv"),
			wantErr: ErrFileNotFound,
		},
		{
			name:    "filesystem entry unsupported",
			builder: NewSourceBuilder().AddFS(fsys, "notes.txt"),
			wantErr: ErrUnsupportedFormat,
		},
		{
			name:    "filesystem directory",
			builder: NewSourceBuilder().AddFS(fsys, "dir"),
			errText: "is a directory",
		},
		{
			name:    "filesystem invalid name",
			builder: NewSourceBuilder().AddFS(fsys, "../stock.xlsx"),
			errText: "invalid path",
		},
		{
			name:    "nil filesystem",
			builder: NewSourceBuilder().AddFS(nil, "stock.xlsx"),
			errText: "invalid source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := tt.builder.Build(context.Background())
			if tt.wantErr == nil && tt.errText == "" {
				require.NoError(t, err)
				require.NotNil(t, src)
				return
			}
			require.Error(t, err)
			assert.Nil(t, src)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
			}
			if tt.errText != "" {
				assert.Contains(t, err.Error(), tt.errText)
			}
		})
	}
}

func TestSourceBuilder_SheetIsTrimmed(t *testing.T) {
	t.Parallel()

	csvPath := writeTestFile(t, "stock.csv", []byte(stockCSVContent))
	src, err := NewSourceBuilder().AddPath(csvPath).Sheet("  Склад ").Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Склад", src.Sheet())
	assert.Equal(t, csvPath, src.Path())
}

func TestSourceBuilder_BuildCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSourceBuilder().AddPath("stock.csv").Build(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
