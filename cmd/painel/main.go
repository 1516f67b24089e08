package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/painel/internal/cli"
	"github.com/Veraticus/painel/internal/common"
	"github.com/Veraticus/painel/internal/config"
)

var (
	cfgFile   string
	version   = "dev"
	logCloser io.Closer
	rootCmd   = &cobra.Command{
		Use:   "painel",
		Short: "📊 Painel de gestão a partir das planilhas do ERP",
		Long: `painel reads the spreadsheet exports of the ERP (bank statements, payables,
receivables, budget and dashboard summaries), filters them and shows the
totals of each page. Any filtered view can be exported to a new .xlsx file.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/painel/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("data-root", ".", "folder holding the export folders")
	rootCmd.PersistentFlags().String("export-dir", "exports", "folder receiving exported views")
	rootCmd.PersistentFlags().Bool("history", true, "record exports in the journal")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("data.root", rootCmd.PersistentFlags().Lookup("data-root"))
	_ = viper.BindPFlag("export.dir", rootCmd.PersistentFlags().Lookup("export-dir"))
	_ = viper.BindPFlag("history.enabled", rootCmd.PersistentFlags().Lookup("history"))

	// Add commands
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(financeCmd())
	rootCmd.AddCommand(reconciliationCmd())
	rootCmd.AddCommand(movementsCmd())
	rootCmd.AddCommand(transfersCmd())
	rootCmd.AddCommand(payablesCmd())
	rootCmd.AddCommand(receivablesCmd())
	rootCmd.AddCommand(budgetCmd())
	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(exportsCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx := cli.NewInterruptHandler(os.Stderr).HandleInterrupts(context.Background())

	err := rootCmd.ExecuteContext(ctx)
	if logCloser != nil {
		_ = logCloser.Close()
	}

	if err != nil {
		if errors.Is(err, cli.ErrInputCancelled) || errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, cli.FormatError(common.UserMessage(err)))
		slog.Debug("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(fmt.Sprintf("%s/.config/painel", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("PAINEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	appConfig = cfg

	// Set up logging
	closer, err := common.SetupLogger(common.LogOptions{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	logCloser = closer

	slog.Debug("Configuration loaded", "file", viper.ConfigFileUsed(), "data_root", cfg.Data.Root)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "painel %s\n", version)
		},
	}
}
