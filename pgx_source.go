package ostatki

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sklad/ostatki/domain/model"
)

// pgQuerier is the subset of *pgxpool.Pool used by PgxSource.
type pgQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PgxSource fetches the inventory table from a PostgreSQL table.
type PgxSource struct {
	conn  pgQuerier
	table pgx.Identifier
	close func()
}

// OpenPostgres connects a pgx pool to dsn and reads table, which may be schema-qualified.
// Close releases the pool.
func OpenPostgres(ctx context.Context, dsn, table string) (*PgxSource, error) {
	if err := newValidator().validateTableName(table); err != nil {
		return nil, err
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, NewErrorContext("open postgres", "pgx").WithTable(table).Error(err)
	}
	return &PgxSource{conn: pool, table: splitFQN(table), close: pool.Close}, nil
}

// NewPgxSource reads table through an existing pool. The caller keeps ownership of pool.
func NewPgxSource(pool *pgxpool.Pool, table string) (*PgxSource, error) {
	if pool == nil {
		return nil, errors.New("ostatki: nil pool")
	}
	return newPgxSource(pool, table)
}

func newPgxSource(conn pgQuerier, table string) (*PgxSource, error) {
	if err := newValidator().validateTableName(table); err != nil {
		return nil, err
	}
	return &PgxSource{conn: conn, table: splitFQN(table), close: func() {}}, nil
}

// Close releases the pool when the source opened it.
func (s *PgxSource) Close() error {
	s.close()
	return nil
}

// splitFQN converts "schema.table" into a pgx.Identifier {"schema","table"}.
func splitFQN(fqn string) pgx.Identifier {
	parts := strings.Split(fqn, ".")
	id := make(pgx.Identifier, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			id = append(id, p)
		}
	}
	return id
}

// Fetch selects every row of the table, converting each value to display text.
func (s *PgxSource) Fetch(ctx context.Context) (*model.RawTable, error) {
	errCtx := NewErrorContext("fetch", "postgres").WithTable(strings.Join(s.table, "."))

	rows, err := s.conn.Query(ctx, "SELECT * FROM "+s.table.Sanitize())
	if err != nil {
		return nil, errCtx.Error(err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	header := make(model.Row, len(fields))
	for i, fd := range fields {
		header[i] = fd.Name
	}

	var data []model.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, errCtx.Error(err)
		}
		row := make(model.Row, len(values))
		for i, v := range values {
			row[i] = cellText(v)
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errCtx.Error(err)
	}

	return model.NewRawTable(strings.Join(s.table, "."), header, data), nil
}

// cellText renders a decoded database value the way a spreadsheet shows it.
func cellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.RFC3339)
	case driver.Valuer:
		inner, err := val.Value()
		if err != nil {
			return ""
		}
		if _, again := inner.(driver.Valuer); again {
			return fmt.Sprint(inner)
		}
		return cellText(inner)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// String describes the source for logs.
func (s *PgxSource) String() string {
	return "postgres:" + strings.Join(s.table, ".")
}
