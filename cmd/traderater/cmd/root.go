package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/traderater/config"
	"github.com/rustyeddy/traderater/internal/logging"
	"github.com/rustyeddy/traderater/journal"
)

var rootCmd = &cobra.Command{
	Use:   "traderater",
	Short: "Score trade setups and keep a weekly trade journal",
	Long: `Traderater rates a trading setup from a fixed questionnaire and keeps
a journal of every rated setup.

It provides tools for:
  - Scoring a setup with the structure or bonus slider policy
  - Saving scored setups to Google Sheets, CSV, SQLite or Postgres
  - Marking trades as taken and recording their result
  - Weekly dashboards with ranking, score stats and win rates
  - Exporting and importing the journal as an xz archive`,
	SilenceUsage: true,
}

var (
	cfgFile      string
	logLevelFlag string
	journalFlag  string
	policyFlag   string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&journalFlag, "journal", "j", "", "journal backend: sheets, csv, sqlite, postgres")
	rootCmd.PersistentFlags().StringVarP(&policyFlag, "policy", "p", "", "scoring policy: structure_slider or bonus_sliders")
}

// loadConfig reads the config file and environment, then applies the
// global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Read(cfgFile)
	if err != nil {
		return nil, err
	}
	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
	}
	if journalFlag != "" {
		cfg.Journal.Type = journalFlag
	}
	if policyFlag != "" {
		cfg.Scoring.Policy = policyFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openJournal loads the configuration and opens the configured ledger.
// The returned cleanup closes the ledger and flushes the logger.
func openJournal(ctx context.Context) (*config.Config, journal.Ledger, *zap.Logger, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("logger: %w", err)
	}

	l, err := journal.Open(ctx, cfg.Journal, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, nil, fmt.Errorf("open journal: %w", err)
	}
	log.Debug("journal opened", zap.String("type", cfg.Journal.Type))

	cleanup := func() {
		if err := l.Close(); err != nil {
			log.Warn("close journal", zap.Error(err))
		}
		_ = log.Sync()
	}
	return cfg, l, log, cleanup, nil
}
