package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/traderater/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the default configuration. The format follows the file
extension: .yaml/.yml, .toml or .json.

Examples:
  traderater config init -o traderater.yaml
  traderater config init -o traderater.toml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if err := cfg.SaveToFile(configOutput); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote default config to %s\n", configOutput)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromFile(configInput)
		if err != nil {
			return fmt.Errorf("config invalid: %w", err)
		}
		policy, err := cfg.Policy()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Config %s is valid (journal %s, policy %s)\n", configInput, cfg.Journal.Type, policy)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration with secrets masked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), cfg.Pretty())
		return nil
	},
}

var (
	configOutput string
	configInput  string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().StringVarP(&configOutput, "output", "o", "traderater.yaml", "output file")
	configValidateCmd.Flags().StringVarP(&configInput, "file", "f", "", "config file to validate (required)")
	_ = configValidateCmd.MarkFlagRequired("file")
}
