package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/painel/internal/model"
	"github.com/Veraticus/painel/internal/pages"
	"github.com/Veraticus/painel/internal/testutil"
)

func TestFormatCell(t *testing.T) {
	tests := []struct {
		value any
		name  string
		want  string
	}{
		{name: "nil", value: nil, want: ""},
		{name: "date", value: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), want: "05/03/2024"},
		{name: "date and time", value: time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC), want: "05/03/2024 08:30"},
		{name: "integral float", value: 1500.0, want: "1.500"},
		{name: "fractional float", value: -1234.5, want: "-1.234,50"},
		{name: "text is trimmed", value: "  Pendente ", want: "Pendente"},
		{name: "bool", value: true, want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCell(tt.value))
		})
	}
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "25,0%", FormatRatio(0.25))
	assert.Equal(t, "-", FormatRatio(nil))
}

func TestRowCounter(t *testing.T) {
	assert.Equal(t, "Exibindo 3 de 10 registros", RowCounter(3, 10))
}

func TestRenderMetrics(t *testing.T) {
	out := RenderMetrics([]pages.Metric{
		{Label: "Total de Receitas", Value: decimal.RequireFromString("1234.56")},
		{Label: "Total de Despesas", Value: decimal.RequireFromString("-40")},
	})

	assert.Contains(t, out, "Total de Receitas")
	assert.Contains(t, out, "R$ 1.234,56")
	assert.Contains(t, out, "R$ -40,00")
	assert.Empty(t, RenderMetrics(nil))
}

func TestRenderGrid(t *testing.T) {
	ds := testutil.NewDataset(t, "Conta", "Valor", "AV").
		Row("Despesas", 250.0, 0.25).
		Row("Marketing", 100.0, nil).
		Build()

	out := RenderGrid(ds, GridOptions{Percent: []string{"AV"}})
	assert.Contains(t, out, "Conta")
	assert.Contains(t, out, "Despesas")
	assert.Contains(t, out, "25,0%")
	assert.Contains(t, out, "Marketing")

	limited := RenderGrid(ds, GridOptions{MaxRows: 1})
	assert.Contains(t, limited, "Despesas")
	assert.NotContains(t, limited, "Marketing")

	assert.Contains(t, RenderGrid(model.Dataset{}, GridOptions{}), "Nenhum dado")
}

func TestWriteJSON(t *testing.T) {
	ds := testutil.NewDataset(t, "Data", "Valor").
		Row(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 100.5).
		Build()
	result := pages.Result{
		Page:     pages.PageTransfers,
		Filtered: ds,
		Metrics:  []pages.Metric{{Label: pages.MetricTransferTotal, Value: decimal.RequireFromString("100.5")}},
		Total:    4,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, result))

	var decoded struct {
		Page    string           `json:"page"`
		Metrics []jsonMetric     `json:"metrics"`
		Rows    []map[string]any `json:"rows"`
		Shown   int              `json:"shown"`
		Total   int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, pages.PageTransfers, decoded.Page)
	assert.Equal(t, 1, decoded.Shown)
	assert.Equal(t, 4, decoded.Total)
	require.Len(t, decoded.Metrics, 1)
	assert.Equal(t, "100.50", decoded.Metrics[0].Value)
	require.Len(t, decoded.Rows, 1)
	assert.Equal(t, "2024-03-01", decoded.Rows[0]["Data"])
	assert.InDelta(t, 100.5, decoded.Rows[0]["Valor"], 1e-9)
}

func TestLineReader(t *testing.T) {
	r := NewLineReader(strings.NewReader("  primeira \nsegunda"))

	line, err := r.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "primeira", line)

	line, err = r.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "segunda", line)

	_, err = r.ReadLine(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineReader_Cancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() {
		_ = pw.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLineReader(pr).ReadLine(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestMenuChoose(t *testing.T) {
	var out bytes.Buffer
	menu := NewMenu(strings.NewReader("9\nabc\n2\n"), &out)

	idx, err := menu.Choose(context.Background(), "Financeiro", []string{"Conciliação", "Movimentação", "Transferências"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Contains(t, out.String(), "2. Movimentação")
	assert.Equal(t, 2, strings.Count(out.String(), "Opção inválida"))
}

func TestMenuChoose_InputEnds(t *testing.T) {
	menu := NewMenu(strings.NewReader("x\n"), io.Discard)

	_, err := menu.Choose(context.Background(), "Financeiro", []string{"a"})
	assert.ErrorIs(t, err, io.EOF)

	_, err = menu.Choose(context.Background(), "Vazio", nil)
	assert.Error(t, err)
}

func TestInterruptHandler(t *testing.T) {
	var out bytes.Buffer
	h := NewInterruptHandler(&out)
	assert.False(t, h.WasInterrupted())

	h.interrupt()
	h.interrupt()

	assert.True(t, h.WasInterrupted())
	assert.Equal(t, 1, strings.Count(out.String(), "Operação interrompida."))
}

func TestHandleInterrupts_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx := NewInterruptHandler(io.Discard).HandleInterrupts(parent)

	cancel()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled with its parent")
	}
}

func TestNewLoadProgress(t *testing.T) {
	var out bytes.Buffer
	bar := NewLoadProgress(&out, 2, "Carregando")
	Step(bar)
	Step(bar)
	Step(nil)

	assert.True(t, bar.IsFinished())
	assert.NotEmpty(t, out.String())
}
