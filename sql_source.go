package ostatki

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sklad/ostatki/domain/model"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// SQLSource fetches the inventory table from a SQL table through database/sql.
// Column names become the header row and every value is read as text.
type SQLSource struct {
	db    *sql.DB
	table string
	owned bool
}

// NewSQLSource reads table from an already opened database. The caller keeps ownership of db.
func NewSQLSource(db *sql.DB, table string) (*SQLSource, error) {
	if db == nil {
		return nil, errors.New("ostatki: nil database")
	}
	if err := newValidator().validateTableName(table); err != nil {
		return nil, err
	}
	return &SQLSource{db: db, table: table}, nil
}

// OpenSQLite opens a SQLite database file and reads table from it.
// Close releases the database.
func OpenSQLite(path, table string) (*SQLSource, error) {
	if err := newValidator().validateTableName(table); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, NewErrorContext("open sqlite", path).Error(err)
	}
	return &SQLSource{db: db, table: table, owned: true}, nil
}

// Close closes the database when the source opened it.
func (s *SQLSource) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

// quoteIdentifier quotes a SQL identifier (table name) for the SQLite dialect
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Fetch selects every row of the table.
func (s *SQLSource) Fetch(ctx context.Context) (_ *model.RawTable, err error) {
	errCtx := NewErrorContext("fetch", "sql").WithTable(s.table)

	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+quoteIdentifier(s.table)) //nolint:gosec // identifier is quoted
	if err != nil {
		return nil, errCtx.Error(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = errCtx.Error(closeErr)
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errCtx.Error(err)
	}

	var data []model.Row
	values := make([]sql.NullString, len(columns))
	scanArgs := make([]any, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, errCtx.Error(err)
		}
		row := make(model.Row, len(columns))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			}
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errCtx.Error(err)
	}

	return model.NewRawTable(s.table, model.NewRow(columns), data), nil
}

// String describes the source for logs.
func (s *SQLSource) String() string {
	return fmt.Sprintf("sql:%s", s.table)
}
