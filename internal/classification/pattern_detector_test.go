package classification

import (
	"testing"

	"github.com/Veraticus/painel/internal/model"
	"github.com/Veraticus/painel/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDetector(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		rules   []Rule
		wantErr bool
	}{
		{
			name:  "default rules",
			rules: DefaultRules(),
		},
		{
			name: "invalid regex",
			rules: []Rule{
				{Company: model.CompanyPP, Regex: `[invalid regex`},
			},
			wantErr: true,
			errMsg:  "failed to compile rule",
		},
		{
			name:  "empty rules",
			rules: []Rule{},
		},
		{
			name: "rules sorted by priority",
			rules: []Rule{
				{Company: model.CompanyTempreco, Keyword: "low", Priority: 10},
				{Company: model.CompanyPP, Keyword: "high", Priority: 100},
				{Company: model.CompanyXBrothers, Keyword: "medium", Priority: 50},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDetector(tt.rules)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, d)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, d)
			assert.Equal(t, len(tt.rules), d.RuleCount())

			for i := 0; i < len(d.rules)-1; i++ {
				assert.GreaterOrEqual(t, d.rules[i].Priority, d.rules[i+1].Priority)
			}
		})
	}
}

func TestDetector_Classify(t *testing.T) {
	d := MustDefault()

	tests := []struct {
		description any
		want        model.Company
	}{
		{"PP Participações Ltda", model.CompanyPP},
		{"Loja XBrother's Matriz", model.CompanyXBrothers},
		{"XBROTHERS FILIAL 2", model.CompanyXBrothers},
		{"Supermercado Tempreço - Centro", model.CompanyTempreco},
		{"TEMPRECO", model.CompanyTempreco},
		{"Banco do Brasil 1234-5", model.CompanyOther},
		{"", model.CompanyOther},
		{nil, model.CompanyOther},
		{12345.0, model.CompanyOther},
	}

	for _, tt := range tests {
		name, _ := tt.description.(string)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Classify(tt.description))
		})
	}
}

func TestDetector_ClassifyIsTotalAndDeterministic(t *testing.T) {
	d := MustDefault()
	allowed := make(map[model.Company]bool)
	for _, c := range model.Companies() {
		allowed[c] = true
	}

	inputs := []string{
		"PP Participações Ltda", "pp participacoes xbrother", "tempreço xbrothers",
		"???", "   ", "Conta Corrente 0001", "XBRÒTHER", "Tem preço",
	}
	for _, in := range inputs {
		first := d.Classify(in)
		assert.True(t, allowed[first], "unexpected company %q for %q", first, in)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, d.Classify(in))
		}
	}
}

func TestDetector_FirstMatchingRuleWins(t *testing.T) {
	d := MustDefault()
	// PP has the highest priority among the defaults.
	assert.Equal(t, model.CompanyPP, d.Classify("PP PARTICIPACOES / XBROTHERS"))
	assert.Equal(t, model.CompanyXBrothers, d.Classify("xbrothers tempreco"))

	equal, err := NewDetector([]Rule{
		{Company: model.CompanyTempreco, Keyword: "loja"},
		{Company: model.CompanyXBrothers, Keyword: "loja"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.CompanyTempreco, equal.Classify("Loja 1"))
}

func TestDetector_ZeroValue(t *testing.T) {
	var d *Detector
	assert.Equal(t, model.CompanyOther, d.Classify("PP Participações"))
	assert.Equal(t, model.CompanyOther, (&Detector{}).Classify("anything"))
}

func TestDetector_Annotate(t *testing.T) {
	ds := testutil.NewDataset(t, "Conta Bancária", "Valor").
		Row("PP Participações Ltda", 10.0).
		Row("Loja XBrother's Matriz", -5.0).
		Build()

	out := MustDefault().Annotate(ds, "Conta Bancária", "EMPRESA")

	require.Len(t, out.Rows, 2)
	assert.Equal(t, []string{"Conta Bancária", "Valor", "EMPRESA"}, out.Columns)
	assert.Equal(t, "PP PARTICIPAÇÕES", out.Rows[0]["EMPRESA"])
	assert.Equal(t, "XBROTHERS", out.Rows[1]["EMPRESA"])
	assert.NotContains(t, ds.Rows[0], "EMPRESA")
}
