package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"webcheck/config"
	"webcheck/internal/checker"
	"webcheck/internal/report"
)

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// runCmd performs one availability pass and writes the report.
var runCmd = &cobra.Command{
	Use:   "run [url ...]",
	Short: "Check all targets once and write the JSON report",
	Long: `Run one availability pass over the configured targets.

Targets may come from positional arguments, a newline-delimited file
(--file), a YAML config file (--config), or any combination. Every target
produces exactly one record in the JSON report, including malformed URLs
(recorded as "invalid input" without touching the network).

The run exits non-zero only on configuration errors or if the report
cannot be written; unreachable targets are reported, not fatal.

Examples:
  webcheck run https://example.com https://example.org
  webcheck run -f urls.txt -w 8 -t 5s -r 2 -o status.json
  webcheck run -c config.yaml`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "path to YAML config file")
	runCmd.Flags().IntP("workers", "w", 0, "number of concurrent workers (default: number of CPUs)")
	runCmd.Flags().DurationP("timeout", "t", 5*time.Second, "per-attempt probe timeout")
	runCmd.Flags().IntP("retries", "r", 0, "additional attempts after a failed probe")
	runCmd.Flags().StringP("file", "f", "", "newline-delimited target URL file")
	runCmd.Flags().StringP("output", "o", "status.json", "report output path")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	// .env values feed ${VAR} expansion in the config file; a missing .env
	// is not an error
	_ = godotenv.Load()

	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	urls, err := config.BuildTargets(cfg)
	if err != nil {
		return err
	}
	urls = append(urls, args...)

	if len(urls) == 0 {
		return fmt.Errorf("no targets provided (pass URLs, --file, or a config file)")
	}

	chk, err := checker.New(config.BuildCheckerConfig(cfg), logger)
	if err != nil {
		return err
	}
	defer chk.Close()

	// cancel in-flight probes on SIGINT/SIGTERM; every target still gets
	// an outcome
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting check",
		"targets", len(urls),
		"workers", cfg.Workers,
		"timeout", cfg.Timeout.Duration().String(),
		"retries", cfg.Retries,
	)

	start := time.Now()
	rep := chk.Run(ctx, urls)
	summary := report.Summarize(rep)

	logger.Info("check complete",
		"total", summary.Total,
		"reachable", summary.Reachable,
		"unreachable", summary.Unreachable,
		"elapsed", time.Since(start).String(),
	)

	if err := report.WriteFile(cfg.Output, rep); err != nil {
		return err
	}
	logger.Info("report written", "path", cfg.Output)

	return nil
}

// loadRunConfig builds the effective configuration: file config (or
// defaults when no --config is given) with explicitly-set flags layered
// on top.
func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Parse(nil) // defaults only
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("workers") {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("timeout") {
		d, _ := cmd.Flags().GetDuration("timeout")
		cfg.Timeout = config.Duration(d)
	}
	if cmd.Flags().Changed("retries") {
		cfg.Retries, _ = cmd.Flags().GetInt("retries")
	}
	if cmd.Flags().Changed("file") {
		cfg.TargetsFile, _ = cmd.Flags().GetString("file")
	}
	if cmd.Flags().Changed("output") {
		cfg.Output, _ = cmd.Flags().GetString("output")
	}

	return cfg, nil
}
