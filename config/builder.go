package config

import (
	"fmt"

	"webcheck/internal/checker"
	"webcheck/internal/target"
)

// BuildTargets assembles the full ordered target list for a run.
//
// Direct targets come first, in config order, followed by the entries of
// TargetsFile (if set) in file order. The ordering matters: report slots
// are addressed by input position.
func BuildTargets(cfg *Config) ([]string, error) {
	urls := make([]string, 0, len(cfg.Targets))
	urls = append(urls, cfg.Targets...)

	if cfg.TargetsFile != "" {
		fromFile, err := target.Load(cfg.TargetsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load targets file: %w", err)
		}
		urls = append(urls, fromFile...)
	}

	return urls, nil
}

// BuildCheckerConfig converts the file configuration into the engine's
// explicit [checker.Config].
func BuildCheckerConfig(cfg *Config) checker.Config {
	return checker.Config{
		Workers: cfg.Workers,
		Timeout: cfg.Timeout.Duration(),
		Retries: cfg.Retries,
	}
}
