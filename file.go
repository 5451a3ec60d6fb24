package ostatki

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sklad/ostatki/domain/model"
)

// FileType represents a supported spreadsheet format, regardless of compression
type FileType int

const (
	// FileTypeCSV represents CSV file type
	FileTypeCSV FileType = iota
	// FileTypeTSV represents TSV file type
	FileTypeTSV
	// FileTypeLTSV represents LTSV file type
	FileTypeLTSV
	// FileTypeParquet represents Parquet file type
	FileTypeParquet
	// FileTypeXLSX represents Excel XLSX file type
	FileTypeXLSX
	// FileTypeUnsupported represents unsupported file type
	FileTypeUnsupported
)

// File extensions
const (
	extCSV     = ".csv"
	extTSV     = ".tsv"
	extLTSV    = ".ltsv"
	extParquet = ".parquet"
	extXLSX    = ".xlsx"
	extGZ      = ".gz"
	extBZ2     = ".bz2"
	extXZ      = ".xz"
	extZSTD    = ".zst"
)

// String returns the string representation of FileType
func (ft FileType) String() string {
	switch ft {
	case FileTypeCSV:
		return "csv"
	case FileTypeTSV:
		return "tsv"
	case FileTypeLTSV:
		return "ltsv"
	case FileTypeParquet:
		return "parquet"
	case FileTypeXLSX:
		return "xlsx"
	default:
		return "unsupported"
	}
}

// detectFileType detects the base file type from extension, ignoring compression
func detectFileType(path string) FileType {
	basePath := removeCompressionExtension(path)
	switch strings.ToLower(filepath.Ext(basePath)) {
	case extCSV:
		return FileTypeCSV
	case extTSV:
		return FileTypeTSV
	case extLTSV:
		return FileTypeLTSV
	case extParquet:
		return FileTypeParquet
	case extXLSX:
		return FileTypeXLSX
	default:
		return FileTypeUnsupported
	}
}

// isSupportedFile checks if the file has a supported extension
func isSupportedFile(fileName string) bool {
	return detectFileType(fileName) != FileTypeUnsupported
}

// SupportedExtensions returns every accepted file extension, compressed variants included.
func SupportedExtensions() []string {
	baseExts := []string{extCSV, extTSV, extLTSV, extParquet, extXLSX}
	compressionExts := []string{"", extGZ, extBZ2, extXZ, extZSTD}

	exts := make([]string, 0, len(baseExts)*len(compressionExts))
	for _, baseExt := range baseExts {
		for _, compressionExt := range compressionExts {
			exts = append(exts, baseExt+compressionExt)
		}
	}
	return exts
}

// FileSource fetches the inventory table from a spreadsheet file.
// The file is reopened and reparsed on every Fetch.
type FileSource struct {
	// path is the file path, or the name inside fsys
	path string
	// fsys is nil for regular files
	fsys fs.FS
	// sheet selects the XLSX worksheet; empty means the first sheet
	sheet       string
	fileType    FileType
	compression CompressionType
}

// newFileSource creates a FileSource for a path on disk or inside fsys
func newFileSource(fsys fs.FS, path, sheet string) *FileSource {
	return &FileSource{
		path:        path,
		fsys:        fsys,
		sheet:       sheet,
		fileType:    detectFileType(path),
		compression: detectCompressionType(path),
	}
}

// Path returns the file path the source reads.
func (f *FileSource) Path() string {
	return f.path
}

// Sheet returns the configured worksheet name, empty for the first sheet.
func (f *FileSource) Sheet() string {
	return f.sheet
}

// FileType returns the detected base format.
func (f *FileSource) FileType() FileType {
	return f.fileType
}

// Compression returns the detected compression.
func (f *FileSource) Compression() CompressionType {
	return f.compression
}

// open opens the underlying file
func (f *FileSource) open() (io.ReadCloser, error) {
	if f.fsys != nil {
		return f.fsys.Open(f.path)
	}
	return os.Open(f.path) //nolint:gosec // User-provided path is necessary for file operations
}

// Fetch reads and parses the whole file into a RawTable.
func (f *FileSource) Fetch(ctx context.Context) (_ *model.RawTable, err error) {
	errCtx := NewErrorContext("fetch", f.path).WithTable(f.sheet)
	if err := ctx.Err(); err != nil {
		return nil, errCtx.Error(err)
	}

	file, err := f.open()
	if err != nil {
		return nil, errCtx.Error(err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = errCtx.Error(closeErr)
		}
	}()

	reader, cleanup, err := decompress(file, f.compression)
	if err != nil {
		return nil, errCtx.Error(err)
	}
	defer func() {
		_ = cleanup() // Ignore cleanup error
	}()

	p := &parser{
		fileType:  f.fileType,
		tableName: model.TableFromFilePath(f.path),
		sheet:     f.sheet,
	}
	table, err := p.parse(ctx, reader)
	if err != nil {
		return nil, errCtx.WithDetails(f.fileType.String()).Error(err)
	}
	return table, nil
}

// String describes the source for logs.
func (f *FileSource) String() string {
	if f.sheet != "" {
		return fmt.Sprintf("%s#%s", f.path, f.sheet)
	}
	return f.path
}
