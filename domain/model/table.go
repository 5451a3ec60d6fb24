package model

import (
	"path/filepath"
	"strings"
)

// Compression extensions stripped when deriving a table name from a path.
var compressionExts = []string{".gz", ".bz2", ".xz", ".zst"}

// RawTable is the 2D text grid fetched from a data source.
// Row 0 is the header row; the remaining rows are data rows.
// Data rows may be shorter or longer than the header.
type RawTable struct {
	// name is the table name derived from the source (file name, sheet, SQL table).
	name string
	// rows holds the header row followed by the data rows.
	rows []Row
}

// NewRawTable create new RawTable from a header and data rows.
func NewRawTable(name string, header Row, rows []Row) *RawTable {
	all := make([]Row, 0, len(rows)+1)
	all = append(all, header)
	all = append(all, rows...)
	return &RawTable{
		name: name,
		rows: all,
	}
}

// NewRawTableFromGrid create new RawTable from a grid whose first row is the header.
// An empty grid yields a table with no rows at all.
func NewRawTableFromGrid(name string, grid [][]string) *RawTable {
	rows := make([]Row, 0, len(grid))
	for _, r := range grid {
		rows = append(rows, NewRow(r))
	}
	return &RawTable{
		name: name,
		rows: rows,
	}
}

// Name return table name.
func (t *RawTable) Name() string {
	return t.name
}

// Len returns the total number of rows including the header row.
func (t *RawTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Header return the header row, nil when the table has no rows.
func (t *RawTable) Header() Row {
	if t.Len() == 0 {
		return nil
	}
	return t.rows[0]
}

// DataRows return every row after the header.
func (t *RawTable) DataRows() []Row {
	if t.Len() < 2 {
		return nil
	}
	return t.rows[1:]
}

// Equal compare RawTable.
func (t *RawTable) Equal(t2 *RawTable) bool {
	if t.Name() != t2.Name() {
		return false
	}
	if len(t.rows) != len(t2.rows) {
		return false
	}
	for i, row := range t.rows {
		if !row.Equal(t2.rows[i]) {
			return false
		}
	}
	return true
}

// TableFromFilePath creates table name from file path
func TableFromFilePath(filePath string) string {
	fileName := filepath.Base(filePath)
	// Remove compression extensions first
	for _, ext := range compressionExts {
		if strings.HasSuffix(strings.ToLower(fileName), ext) {
			fileName = fileName[:len(fileName)-len(ext)]
			break
		}
	}
	// Then remove the file type extension
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
