package ostatki

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sklad/ostatki/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticSource(table *model.RawTable) Source {
	return SourceFunc(func(context.Context) (*model.RawTable, error) {
		return table, nil
	})
}

func newTestInventory(t *testing.T, src Source, logs *bytes.Buffer) *Inventory {
	t.Helper()

	var logger *slog.Logger
	if logs != nil {
		logger = slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	} else {
		logger = slog.New(slog.DiscardHandler)
	}
	inv, err := New(src, DefaultConfig(), NewRenderOptions().WithMarkup(MarkupPlain), logger)
	require.NoError(t, err)
	return inv
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil source", func(t *testing.T) {
		t.Parallel()

		inv, err := New(nil, DefaultConfig(), NewRenderOptions(), nil)
		assert.Nil(t, inv)
		assert.True(t, errors.Is(err, ErrNoSource))
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()

		_, err := New(staticSource(nil), Config{}, NewRenderOptions(), nil)
		assert.True(t, errors.Is(err, ErrInvalidConfig))
	})

	t.Run("zero render options get default messages", func(t *testing.T) {
		t.Parallel()

		inv, err := New(staticSource(nil), DefaultConfig(), RenderOptions{}, nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultMessages(), inv.RenderOptions().Messages)
		assert.NotNil(t, inv.Engine())
	})
}

func TestInventory_Ask(t *testing.T) {
	t.Parallel()

	inv := newTestInventory(t, staticSource(stockTable()), nil)

	tests := []struct {
		name  string
		query model.Query
		want  []string
	}{
		{
			name:  "producer",
			query: model.ByProducer("ТЕХНОГАББРО-СЕРВИС"),
			want:  []string{"🏭 Товары производителя 'ТЕХНОГАББРО-СЕРВИС':\n\n▪️ Бордюр (Д: 1000мм) - 12 шт (Техногаббро)\n"},
		},
		{
			name:  "name",
			query: model.ByName("слэб"),
			want:  []string{"🔍 Результаты по запросу 'слэб':\n\n▪️ Слэб - 2 шт\n"},
		},
		{
			name:  "not found",
			query: model.ByName("мрамор"),
			want:  []string{"❌ Товары по запросу 'мрамор' не найдены"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			chunks, err := inv.Ask(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, chunks)
		})
	}
}

func TestInventory_Ask_HeaderOnlyTable(t *testing.T) {
	t.Parallel()

	inv := newTestInventory(t, staticSource(newTable([]string{"Наименование", "Количество"})), nil)

	for _, q := range []model.Query{model.ListAll(), model.ByName("плита"), model.ByProducer("карелия")} {
		chunks, err := inv.Ask(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, []string{"❌ Данные не найдены"}, chunks)
	}
}

func TestInventory_Ask_FetchFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("spreadsheet unavailable")
	var logs bytes.Buffer
	inv := newTestInventory(t, SourceFunc(func(context.Context) (*model.RawTable, error) {
		return nil, boom
	}), &logs)

	chunks, err := inv.Ask(context.Background(), model.ListAll())
	assert.Nil(t, chunks)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, logs.String(), `"msg":"fetch failed"`)
	assert.Contains(t, logs.String(), "spreadsheet unavailable")

	_, _, err = inv.Producers(context.Background())
	assert.True(t, errors.Is(err, boom))
}

func TestInventory_Ask_Logs(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	inv := newTestInventory(t, staticSource(newTable([]string{"Наименование"}, []string{"Плита"})), &logs)

	chunks, err := inv.Ask(context.Background(), model.ByName("плита"))
	require.NoError(t, err)
	assert.Equal(t, []string{"❌ Не найдены необходимые столбцы в таблице"}, chunks)

	out := logs.String()
	assert.Contains(t, out, `"query_id":"`)
	assert.Contains(t, out, `"kind":"name"`)
	assert.Contains(t, out, `"term":"плита"`)
	assert.Contains(t, out, `"outcome":"missing_columns"`)
	assert.Contains(t, out, `"msg":"required columns not found"`)
	assert.Contains(t, out, `"missing":["quantity"]`)
}

func TestInventory_FetchesEveryQuery(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	inv := newTestInventory(t, SourceFunc(func(context.Context) (*model.RawTable, error) {
		n := calls.Add(1)
		return newTable(
			[]string{"Наименование", "Количество"},
			[]string{"Плита", strings.Repeat("1", int(n))},
		), nil
	}), nil)

	first, err := inv.Execute(context.Background(), model.ListAll())
	require.NoError(t, err)
	second, err := inv.Execute(context.Background(), model.ListAll())
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "1", first.Records[0].Quantity)
	assert.Equal(t, "11", second.Records[0].Quantity)
}

func TestInventory_ConcurrentAsk(t *testing.T) {
	t.Parallel()

	inv := newTestInventory(t, staticSource(stockTable()), nil)
	want, err := inv.Ask(context.Background(), model.ByProducer("карелия"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := inv.Ask(context.Background(), model.ByProducer("Карелия Гранит ООО"))
			if err != nil {
				errs <- err
				return
			}
			if len(got) != 1 || got[0] != strings.Replace(want[0], "'карелия'", "'Карелия Гранит ООО'", 1) {
				errs <- errors.New("unexpected answer: " + strings.Join(got, "|"))
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestInventory_Producers(t *testing.T) {
	t.Parallel()

	inv := newTestInventory(t, staticSource(stockTable()), nil)

	producers, outcome, err := inv.Producers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeResults, outcome.Kind)
	assert.Equal(t, []string{"Евромодуль", "Карелия Гранит", "Техногаббро"}, producers)

	chunks := RenderProducers(producers, outcome, inv.RenderOptions())
	assert.Equal(t, []string{"🏭 Выберите производителя:\n\n▪️ Евромодуль\n▪️ Карелия Гранит\n▪️ Техногаббро\n"}, chunks)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "stock.csv.gz", []byte(stockCSVContent))
	inv, err := Open(context.Background(), path)
	require.NoError(t, err)

	chunks, err := inv.Ask(context.Background(), model.ByProducer("техногаббро"))
	require.NoError(t, err)
	assert.Equal(t, []string{"🏭 **Товары производителя 'техногаббро':**\n\n▪️ **Бордюр** - 12 шт (Техногаббро)\n"}, chunks)

	_, err = Open(context.Background(), "missing.csv")
	assert.True(t, errors.Is(err, ErrFileNotFound))
}
