package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/painel/internal/common"
	"github.com/Veraticus/painel/internal/model"
)

func newViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	if yaml != "" {
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	}
	return v
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", "/home/painel")

	cfg, err := Load(newViper(t, ""))
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Data.Root)
	assert.Equal(t, filepath.Join(".", "financeiro"), cfg.Data.FinanceiroDir())
	assert.Equal(t, "exports", cfg.Export.Dir)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "/home/painel/.local/share/painel/painel.db", cfg.History.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 50, cfg.Display.MaxRows)
	assert.Empty(t, cfg.Classification.Rules)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("DADOS", "/srv/dados")

	cfg, err := Load(newViper(t, `
data:
  root: $DADOS
  orcamento: /mnt/orcamento
history:
  enabled: false
  path: ""
logging:
  level: debug
  format: json
  file: /var/log/painel.log
classification:
  rules:
    - company: XBROTHERS
      keyword: xbro
      priority: 5
`))
	require.NoError(t, err)

	assert.Equal(t, "/srv/dados", cfg.Data.Root)
	assert.Equal(t, "/srv/dados/contas_pagar", cfg.Data.ContasPagarDir())
	assert.Equal(t, "/srv/dados/contas_receber", cfg.Data.ContasReceberDir())
	assert.Equal(t, "/srv/dados/dashboard", cfg.Data.DashboardDir())
	assert.Equal(t, "/mnt/orcamento", cfg.Data.OrcamentoDir())
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "/var/log/painel.log", cfg.Logging.File)
	require.Len(t, cfg.Classification.Rules, 1)
	assert.Equal(t, RuleConfig{Company: "XBROTHERS", Keyword: "xbro", Priority: 5}, cfg.Classification.Rules[0])
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{
			name:  "log level",
			yaml:  "logging:\n  level: verbose\n",
			field: "Level",
		},
		{
			name:  "log format",
			yaml:  "logging:\n  format: xml\n",
			field: "Format",
		},
		{
			name:  "history without path",
			yaml:  "history:\n  enabled: true\n  path: \"\"\n",
			field: "Path",
		},
		{
			name:  "rule without keyword",
			yaml:  "classification:\n  rules:\n    - company: PP\n",
			field: "Keyword",
		},
		{
			name:  "empty export dir",
			yaml:  "export:\n  dir: \"\"\n",
			field: "Dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newViper(t, tt.yaml))
			require.ErrorIs(t, err, common.ErrInvalidConfig)
			assert.Contains(t, common.UserMessage(err), tt.field)
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/painel")
	t.Setenv("PASTA", "dados")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", "/home/painel"},
		{"~/painel.db", "/home/painel/painel.db"},
		{"$HOME/$PASTA", "/home/painel/dados"},
		{"/abs/path", "/abs/path"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandPath(tt.in), tt.in)
	}
}

func TestClassificationDetector(t *testing.T) {
	d, err := ClassificationConfig{}.Detector()
	require.NoError(t, err)
	assert.Equal(t, model.CompanyXBrothers, d.Classify("Bradesco XBrothers"))

	custom, err := ClassificationConfig{Rules: []RuleConfig{
		{Company: "LOJA NOVA", Keyword: "nova", Priority: 1},
	}}.Detector()
	require.NoError(t, err)
	assert.Equal(t, model.Company("LOJA NOVA"), custom.Classify("Itaú Loja Nova"))
	assert.Equal(t, model.CompanyOther, custom.Classify("Bradesco XBrothers"))

	_, err = ClassificationConfig{Rules: []RuleConfig{{Company: "X", Regex: "("}}}.Detector()
	require.ErrorIs(t, err, common.ErrInvalidConfig)
}
