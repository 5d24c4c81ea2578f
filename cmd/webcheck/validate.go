package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"webcheck/config"
	"webcheck/internal/checker"
)

// validateCmd validates a config file without probing anything.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a webcheck configuration file without checking anything.

This command parses the YAML, expands environment variables, validates the
engine configuration, and counts syntactically valid and malformed targets.
No network requests are made. Useful for CI/CD pipelines.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  webcheck validate -c config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := config.BuildCheckerConfig(cfg).Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	urls, err := config.BuildTargets(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	valid, malformed := 0, 0
	for _, u := range urls {
		if checker.ValidateTarget(u) != nil {
			malformed++
		} else {
			valid++
		}
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Workers: %d\n", cfg.Workers)
	fmt.Printf("  Timeout: %s\n", cfg.Timeout.Duration())
	fmt.Printf("  Retries: %d\n", cfg.Retries)
	fmt.Printf("  Output:  %s\n", cfg.Output)
	fmt.Printf("  Targets: %d valid + %d malformed = %d total\n",
		valid, malformed, valid+malformed)

	return nil
}
