package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/Veraticus/painel/internal/classification"
	"github.com/Veraticus/painel/internal/common"
	"github.com/Veraticus/painel/internal/model"
)

// Config is the full application configuration.
type Config struct {
	Data           DataConfig           `mapstructure:"data"`
	Export         ExportConfig         `mapstructure:"export"`
	History        HistoryConfig        `mapstructure:"history"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	Classification ClassificationConfig `mapstructure:"classification"`
	Display        DisplayConfig        `mapstructure:"display"`
}

// DataConfig locates the export folders. Relative folders are resolved
// against Root.
type DataConfig struct {
	Root          string `mapstructure:"root" validate:"required"`
	Financeiro    string `mapstructure:"financeiro" validate:"required"`
	ContasPagar   string `mapstructure:"contas_pagar" validate:"required"`
	ContasReceber string `mapstructure:"contas_receber" validate:"required"`
	Orcamento     string `mapstructure:"orcamento" validate:"required"`
	Dashboard     string `mapstructure:"dashboard" validate:"required"`
}

// ExportConfig controls where filtered views are written.
type ExportConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// HistoryConfig controls the export journal.
type HistoryConfig struct {
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
	Enabled bool   `mapstructure:"enabled"`
}

// LoggingConfig mirrors the --log-* flags plus the optional rotating file.
type LoggingConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=console json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
}

// ClassificationConfig overrides the company rules of the reconciliation
// page. An empty list keeps the built-in rules.
type ClassificationConfig struct {
	Rules []RuleConfig `mapstructure:"rules" validate:"dive"`
}

// RuleConfig is one company rule; Regex takes precedence over Keyword.
type RuleConfig struct {
	Company  string `mapstructure:"company" validate:"required"`
	Keyword  string `mapstructure:"keyword" validate:"required_without=Regex"`
	Regex    string `mapstructure:"regex"`
	Priority int    `mapstructure:"priority"`
}

// Detector compiles the configured rules, or returns the built-in detector
// when none are configured.
func (c ClassificationConfig) Detector() (*classification.Detector, error) {
	if len(c.Rules) == 0 {
		return classification.MustDefault(), nil
	}
	rules := make([]classification.Rule, 0, len(c.Rules))
	for _, r := range c.Rules {
		rules = append(rules, classification.Rule{
			Company:  model.Company(r.Company),
			Keyword:  r.Keyword,
			Regex:    r.Regex,
			Priority: r.Priority,
		})
	}
	d, err := classification.NewDetector(rules)
	if err != nil {
		return nil, common.NewUserError(
			"Regras de classificação inválidas",
			fmt.Errorf("%w: %v", common.ErrInvalidConfig, err),
		)
	}
	return d, nil
}

// DisplayConfig controls terminal rendering.
type DisplayConfig struct {
	MaxRows int `mapstructure:"max_rows"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.root", ".")
	v.SetDefault("data.financeiro", "financeiro")
	v.SetDefault("data.contas_pagar", "contas_pagar")
	v.SetDefault("data.contas_receber", "contas_receber")
	v.SetDefault("data.orcamento", "orcamento")
	v.SetDefault("data.dashboard", "dashboard")
	v.SetDefault("export.dir", "exports")
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "$HOME/.local/share/painel/painel.db")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)
	v.SetDefault("display.max_rows", 50)
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Load unmarshals and validates the configuration held by v, expanding
// every path.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	cfg.Data.Root = ExpandPath(cfg.Data.Root)
	cfg.Export.Dir = ExpandPath(cfg.Export.Dir)
	cfg.History.Path = ExpandPath(cfg.History.Path)
	cfg.Logging.File = ExpandPath(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags and reports every failing key.
func (c *Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return common.NewUserError(
		"Configuração inválida: "+strings.Join(fields, ", "),
		fmt.Errorf("%w: %v", common.ErrInvalidConfig, err),
	)
}

// Folder returns one of the data folders resolved against Root.
func (d DataConfig) Folder(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.Root, name)
}

// FinanceiroDir is the bank statement folder.
func (d DataConfig) FinanceiroDir() string { return d.Folder(ExpandPath(d.Financeiro)) }

// ContasPagarDir is the payables folder.
func (d DataConfig) ContasPagarDir() string { return d.Folder(ExpandPath(d.ContasPagar)) }

// ContasReceberDir is the receivables folder.
func (d DataConfig) ContasReceberDir() string { return d.Folder(ExpandPath(d.ContasReceber)) }

// OrcamentoDir is the budget folder.
func (d DataConfig) OrcamentoDir() string { return d.Folder(ExpandPath(d.Orcamento)) }

// DashboardDir is the KPI folder.
func (d DataConfig) DashboardDir() string { return d.Folder(ExpandPath(d.Dashboard)) }
