package ostatki

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/sklad/ostatki/domain/model"
	"github.com/xuri/excelize/v2"
)

const (
	csvDelimiter = ','
	tsvDelimiter = '\t'
	utf8BOM      = "\ufeff"
	// parquetBatchSize is the number of rows converted per arrow record batch
	parquetBatchSize = 1024
)

// parser turns a decompressed stream into a RawTable
type parser struct {
	fileType  FileType
	tableName string
	sheet     string
}

// parse dispatches on the base file type
func (p *parser) parse(ctx context.Context, reader io.Reader) (*model.RawTable, error) {
	switch p.fileType {
	case FileTypeCSV:
		return p.parseDelimited(reader, csvDelimiter, "CSV")
	case FileTypeTSV:
		return p.parseDelimited(reader, tsvDelimiter, "TSV")
	case FileTypeLTSV:
		return p.parseLTSV(reader)
	case FileTypeParquet:
		return p.parseParquet(ctx, reader)
	case FileTypeXLSX:
		return p.parseXLSX(reader)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// parseDelimited parses CSV or TSV. Rows may have differing lengths.
func (p *parser) parseDelimited(reader io.Reader, delimiter rune, fileTypeName string) (*model.RawTable, error) {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fileTypeName, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty %s data", ErrEmptyData, fileTypeName)
	}

	// Spreadsheet exports often start with a byte order mark
	if len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], utf8BOM)
	}
	return model.NewRawTableFromGrid(p.tableName, records), nil
}

// parseLTSV parses LTSV. Labels become header columns in first-seen order.
func (p *parser) parseLTSV(reader io.Reader) (*model.RawTable, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read LTSV: %w", err)
	}

	var header model.Row
	var records []map[string]string
	for line := range strings.SplitSeq(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		recordMap := make(map[string]string)
		for pair := range strings.SplitSeq(line, "\t") {
			key, value, ok := strings.Cut(pair, ":")
			if !ok {
				continue
			}
			key = strings.TrimSpace(key)
			if !slices.Contains(header, key) {
				header = append(header, key)
			}
			recordMap[key] = strings.TrimSpace(value)
		}
		if len(recordMap) > 0 {
			records = append(records, recordMap)
		}
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no valid LTSV records found", ErrEmptyData)
	}

	rows := make([]model.Row, 0, len(records))
	for _, recordMap := range records {
		row := make(model.Row, len(header))
		for i, key := range header {
			row[i] = recordMap[key]
		}
		rows = append(rows, row)
	}
	return model.NewRawTable(p.tableName, header, rows), nil
}

// parseXLSX reads one worksheet. Leading empty rows are skipped so the
// first non-empty row is the header.
func (p *parser) parseXLSX(reader io.Reader) (*model.RawTable, error) {
	xlsxFile, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer func() {
		_ = xlsxFile.Close() // Ignore close error
	}()

	sheetNames := xlsxFile.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, errors.New("no sheets found in XLSX file")
	}

	sheetName := sheetNames[0]
	if p.sheet != "" {
		if !slices.Contains(sheetNames, p.sheet) {
			return nil, fmt.Errorf("%w: %q (available: %s)", ErrSheetNotFound, p.sheet, strings.Join(sheetNames, ", "))
		}
		sheetName = p.sheet
	}

	rows, err := xlsxFile.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}
	for len(rows) > 0 && len(rows[0]) == 0 {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty", ErrEmptyData, sheetName)
	}
	return model.NewRawTableFromGrid(sheetName, rows), nil
}

// parseParquet reads every column as text. Null values become empty cells.
func (p *parser) parseParquet(ctx context.Context, reader io.Reader) (*model.RawTable, error) {
	// Parquet requires random access
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty parquet file", ErrEmptyData)
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	defer table.Release()

	schema := table.Schema()
	header := make(model.Row, schema.NumFields())
	for i, field := range schema.Fields() {
		header[i] = field.Name
	}

	tableReader := array.NewTableReader(table, parquetBatchSize)
	defer tableReader.Release()

	rows := make([]model.Row, 0, table.NumRows())
	for tableReader.Next() {
		batch := tableReader.Record()
		numRows := int(batch.NumRows())
		for i := range numRows {
			row := make(model.Row, batch.NumCols())
			for j, col := range batch.Columns() {
				if col.IsNull(i) {
					continue
				}
				row[j] = col.ValueStr(i)
			}
			rows = append(rows, row)
		}
	}
	if err := tableReader.Err(); err != nil {
		return nil, fmt.Errorf("error reading table records: %w", err)
	}

	return model.NewRawTable(p.tableName, header, rows), nil
}
