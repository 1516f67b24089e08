package filter

import (
	"testing"
	"time"

	"github.com/Veraticus/painel/internal/classification"
	"github.com/Veraticus/painel/internal/model"
	"github.com/Veraticus/painel/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func reconciliationDataset(t *testing.T) model.Dataset {
	t.Helper()
	ds := testutil.NewDataset(t, "Data", "Conta Bancária", "Histórico", "Valor", "Status").
		Row("01/03/2024", "PP Participações Ltda", "Aluguel", 100.0, "Pendente").
		Row("05/03/2024", "Loja XBrother's Matriz", "Venda balcão", -40.0, "EFETUADO").
		Row("10/03/2024", "Tempreço Centro", "Pix recebido", 30.0, "cancelado").
		Row("data inválida", "PP Participações Ltda", "Ajuste", 5.0, "Pendente").
		Row("31/03/2024 18:00", "Banco X", "Tarifa", -2.5, "Estornado").
		Build()
	return classification.MustDefault().Annotate(ds, "Conta Bancária", "EMPRESA")
}

func TestApply_NoFiltersIsIdentity(t *testing.T) {
	ds := reconciliationDataset(t)

	out := Apply(ds)
	require.Equal(t, ds.Len(), out.Len())
	for i := range ds.Rows {
		assert.Equal(t, ds.Rows[i], out.Rows[i])
	}

	// nil filters, like pass-through criteria, change nothing either
	out = Apply(ds, nil, Text(""), Category("EMPRESA", ""), Status("Status", SelectAll()))
	assert.Equal(t, ds.Rows, out.Rows)
	assert.Equal(t, ds.Columns, out.Columns)
}

func TestApply_IsCommutative(t *testing.T) {
	ds := reconciliationDataset(t)
	byCompany := Category("EMPRESA", "PP PARTICIPAÇÕES")
	byDate := DateRange("Data", Range{Start: day(2024, 3, 1), End: day(2024, 3, 31)})
	byText := Text("aluguel")

	a := Apply(ds, byCompany, byDate)
	b := Apply(ds, byDate, byCompany)
	assert.Equal(t, a.Rows, b.Rows)
	require.Equal(t, 1, a.Len())

	c := Apply(ds, byText, byDate, byCompany)
	d := Apply(ds, byCompany, byText, byDate)
	assert.Equal(t, c.Rows, d.Rows)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	ds := reconciliationDataset(t)
	before := ds.Len()
	_ = Apply(ds, None())
	assert.Equal(t, before, ds.Len())
}

func TestCategory(t *testing.T) {
	ds := reconciliationDataset(t)

	out := Apply(ds, Category("EMPRESA", "xbrothers"))
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "Loja XBrother's Matriz", out.Rows[0]["Conta Bancária"])

	out = Apply(ds, Category("EMPRESA", "Tempreço"))
	require.Equal(t, 1, out.Len())

	out = Apply(ds, Category("EMPRESA", "OUTROS"))
	assert.Equal(t, 1, out.Len())
}

func TestText(t *testing.T) {
	ds := reconciliationDataset(t)

	tests := []struct {
		term string
		want int
	}{
		{"ALUGUEL", 1},
		{"balcao", 1},
		{"participações", 2},
		{"-40", 1},
		{"2024", 4},
		{"nada disso", 0},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(ds, Text(tt.term)).Len())
		})
	}
}

func TestDateRange(t *testing.T) {
	ds := reconciliationDataset(t)

	t.Run("inclusive bounds", func(t *testing.T) {
		out := Apply(ds, DateRange("Data", Range{Start: day(2024, 3, 1), End: day(2024, 3, 10)}))
		assert.Equal(t, 3, out.Len())
	})

	t.Run("unparseable dates are excluded", func(t *testing.T) {
		out := Apply(ds, DateRange("Data", Range{Start: day(2000, 1, 1), End: day(2100, 1, 1)}))
		assert.Equal(t, 4, out.Len())
		for _, r := range out.Rows {
			assert.NotEqual(t, "data inválida", r["Data"])
		}
	})

	t.Run("end only", func(t *testing.T) {
		out := Apply(ds, DateRange("Data", Range{End: day(2024, 3, 5)}))
		assert.Equal(t, 2, out.Len())
	})

	t.Run("instant bound excludes later time on same day", func(t *testing.T) {
		out := Apply(ds, DateRange("Data", Range{Start: day(2024, 3, 31), End: day(2024, 3, 31)}))
		assert.Equal(t, 0, out.Len())
	})

	t.Run("by day includes whole end day", func(t *testing.T) {
		out := Apply(ds, DateRange("Data", Range{Start: day(2024, 3, 31), End: day(2024, 3, 31), ByDay: true}))
		assert.Equal(t, 1, out.Len())
	})

	t.Run("open range passes through", func(t *testing.T) {
		assert.Nil(t, DateRange("Data", Range{}))
	})
}

func TestDateEquals(t *testing.T) {
	ds := reconciliationDataset(t)
	out := Apply(ds, DateEquals("Data", day(2024, 3, 5)))
	require.Equal(t, 1, out.Len())
	assert.Nil(t, DateEquals("Data", time.Time{}))
}

func TestSelection(t *testing.T) {
	ds := reconciliationDataset(t)

	tests := []struct {
		name string
		sel  Selection
		want int
	}{
		{name: "all", sel: SelectAll(), want: 5},
		{name: "empty set behaves as all", sel: SelectOf(), want: 5},
		{name: "none excludes everything", sel: SelectNone(), want: 0},
		{name: "single", sel: SelectOf("Pendente"), want: 2},
		{name: "case insensitive", sel: SelectOf("efetuado", "CANCELADO"), want: 2},
		{name: "unknown", sel: SelectOf("Arquivado"), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(ds, Status("Status", tt.sel)).Len())
		})
	}

	assert.True(t, SelectOf().IsAll())
	assert.False(t, SelectNone().IsAll())
}

func TestMembershipWithExactCanon(t *testing.T) {
	ds := testutil.NewDataset(t, "Caixa").
		Row("Caixa 1").
		Row("caixa 1").
		Row("Caixa 2").
		Build()

	out := Apply(ds, Membership("Caixa", SelectOf("Caixa 1"), model.CellString))
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "Caixa 1", out.Rows[0]["Caixa"])
}

func TestColumnPredicates(t *testing.T) {
	ds := testutil.NewDataset(t, "Tipo", "Forma", "Quebra", "Conciliado").
		Row("Pagamento de Conta", "Dinheiro", nil, "Sim").
		Row("Lançamento de Entrada", "Cartão de Débito", 12.5, "nao").
		Row("Pagamento de Conta", "PIX", "  ", "1").
		Build()

	assert.Equal(t, 2, Apply(ds, Equals("Tipo", "Pagamento de Conta")).Len())
	assert.Equal(t, 0, Apply(ds, Equals("Tipo", "pagamento de conta")).Len())
	assert.Equal(t, 1, Apply(ds, Contains("Forma", "débito")).Len())
	assert.Equal(t, 2, Apply(ds, ContainsAny("Forma", "caixa", "dinheiro", "pix")).Len())
	assert.Nil(t, ContainsAny("Forma"))
	assert.Equal(t, 1, Apply(ds, NotEmpty("Quebra")).Len())
	assert.Equal(t, 2, Apply(ds, AnyOf("Conciliado", "sim", "conciliado", "true", "1")).Len())
	assert.Equal(t, 1, Apply(ds, AnyOf("Conciliado", "não", "nao", "false", "0", "n")).Len())
}
