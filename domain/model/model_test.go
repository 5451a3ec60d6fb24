package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_Cell(t *testing.T) {
	t.Parallel()

	row := NewRow([]string{"Плита", "5"})

	tests := []struct {
		name   string
		index  int
		want   string
		wantOK bool
	}{
		{name: "first cell", index: 0, want: "Плита", wantOK: true},
		{name: "last cell", index: 1, want: "5", wantOK: true},
		{name: "past end", index: 2, want: "", wantOK: false},
		{name: "negative index", index: -1, want: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := row.Cell(tt.index)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestRawTable(t *testing.T) {
	t.Parallel()

	t.Run("header and data rows are split", func(t *testing.T) {
		t.Parallel()
		table := NewRawTable("stock", Row{"Наименование", "Количество"}, []Row{{"Плита", "5"}, {"Бордюр", "3"}})

		assert.Equal(t, "stock", table.Name())
		assert.Equal(t, 3, table.Len())
		assert.Equal(t, Row{"Наименование", "Количество"}, table.Header())
		require.Len(t, table.DataRows(), 2)
		assert.Equal(t, Row{"Бордюр", "3"}, table.DataRows()[1])
	})

	t.Run("empty grid has no header", func(t *testing.T) {
		t.Parallel()
		table := NewRawTableFromGrid("empty", nil)

		assert.Equal(t, 0, table.Len())
		assert.Nil(t, table.Header())
		assert.Nil(t, table.DataRows())
	})

	t.Run("header only grid has no data rows", func(t *testing.T) {
		t.Parallel()
		table := NewRawTableFromGrid("header", [][]string{{"Наименование"}})

		assert.Equal(t, 1, table.Len())
		assert.Nil(t, table.DataRows())
	})

	t.Run("nil table reports zero length", func(t *testing.T) {
		t.Parallel()
		var table *RawTable
		assert.Equal(t, 0, table.Len())
	})

	t.Run("equal compares name and rows", func(t *testing.T) {
		t.Parallel()
		a := NewRawTableFromGrid("t", [][]string{{"a"}, {"1"}})
		b := NewRawTable("t", Row{"a"}, []Row{{"1"}})
		c := NewRawTable("t", Row{"a"}, []Row{{"2"}})

		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(c))
	})
}

func TestTableFromFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{path: "/data/stock.csv", want: "stock"},
		{path: "stock.xlsx", want: "stock"},
		{path: "dir/stock.tsv.gz", want: "stock"},
		{path: "stock.parquet.ZST", want: "stock"},
		{path: "stock", want: "stock"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TableFromFilePath(tt.path))
		})
	}
}

func TestSchema(t *testing.T) {
	t.Parallel()

	t.Run("new schema has every field absent", func(t *testing.T) {
		t.Parallel()
		s := NewSchema()
		for _, f := range Fields() {
			assert.False(t, s.Has(f), f.String())
		}
	})

	t.Run("with binds a column without mutating the receiver", func(t *testing.T) {
		t.Parallel()
		base := NewSchema()
		s := base.With(FieldQuantity, 0)

		idx, ok := s.Column(FieldQuantity)
		assert.True(t, ok)
		assert.Equal(t, 0, idx)
		assert.False(t, base.Has(FieldQuantity))
	})

	t.Run("missing keeps the requested order", func(t *testing.T) {
		t.Parallel()
		s := NewSchema().With(FieldQuantity, 1)
		assert.Equal(t, []Field{FieldName, FieldProducer}, s.Missing(FieldName, FieldQuantity, FieldProducer))
		assert.Nil(t, s.With(FieldName, 0).Missing(FieldName, FieldQuantity))
	})

	t.Run("out of range field is never resolved", func(t *testing.T) {
		t.Parallel()
		s := NewSchema().With(Field(99), 3)
		assert.False(t, s.Has(Field(99)))
	})
}

func TestField_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"name", "producer", "quantity", "material", "length", "width", "height"}, func() []string {
		var names []string
		for _, f := range Fields() {
			names = append(names, f.String())
		}
		return names
	}())
	assert.Equal(t, "unknown", Field(42).String())
}

func TestParseQueryKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   QueryKind
		wantOK bool
	}{
		{in: "", want: QueryListAll, wantOK: true},
		{in: "all", want: QueryListAll, wantOK: true},
		{in: "name", want: QueryByName, wantOK: true},
		{in: "producer", want: QueryByProducer, wantOK: true},
		{in: "sql", want: QueryListAll, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseQueryKind(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
			if ok && tt.in != "" {
				assert.Equal(t, tt.in, got.String())
			}
		})
	}
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	assert.True(t, Results(ListAll(), nil, 0).IsEmpty())
	assert.False(t, Results(ListAll(), []Record{{Name: "a", Quantity: "1"}}, 0).IsEmpty())
	assert.False(t, NoData(ListAll()).IsEmpty())

	missing := MissingColumns(ByProducer("x"), FieldProducer)
	assert.Equal(t, OutcomeMissingColumns, missing.Kind)
	assert.Equal(t, []Field{FieldProducer}, missing.Missing)
	assert.Equal(t, "missing_columns", missing.Kind.String())
}
