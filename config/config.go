// Package config provides YAML configuration parsing for webcheck.
//
// This package enables running webcheck with a configuration file as an
// alternative to passing everything on the command line.
//
// Example configuration:
//
//	workers: 8
//	timeout: 5s
//	retries: 2
//	output: status.json
//
//	targets:
//	  - https://example.com
//	  - https://example.org/health
//
//	targets_file: urls.txt
package config

import (
	"fmt"
	"os"
	"regexp"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for webcheck.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Workers is the number of concurrent probe workers.
	// Defaults to the number of CPUs.
	Workers int `yaml:"workers"`

	// Timeout is the per-attempt probe timeout.
	// Accepts duration strings like "5s", "500ms". Defaults to 5s.
	Timeout Duration `yaml:"timeout"`

	// Retries is the number of additional attempts after a failed probe.
	// Defaults to 0 (a single attempt per target).
	Retries int `yaml:"retries"`

	// Output is the path the JSON report is written to.
	// Defaults to "status.json".
	Output string `yaml:"output"`

	// Targets lists URLs to check directly.
	// Values support environment variable substitution: ${VAR} or ${VAR:-default}
	Targets []string `yaml:"targets"`

	// TargetsFile is an optional newline-delimited URL file whose entries
	// are appended after Targets. Supports environment variable substitution.
	TargetsFile string `yaml:"targets_file"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		// submatches[2] is ":-..." (non-empty if default syntax was used)
		// submatches[3] is the actual default value (may be empty for ${VAR:-})
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before parsing.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in Targets, TargetsFile, and Output.
// Defaults are applied for Workers (number of CPUs), Timeout (5s), and
// Output ("status.json").
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = Duration(5 * time.Second)
	}
	if cfg.Output == "" {
		cfg.Output = "status.json"
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
//
// Target URL syntax is deliberately not validated here: a malformed target
// must surface in the final report as an "invalid input" outcome, not abort
// the whole run as a configuration error.
func (c *Config) expandAndValidate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Timeout.Duration() <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout.Duration())
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries cannot be negative, got %d", c.Retries)
	}

	for i, t := range c.Targets {
		expanded, err := expandEnvVars(t)
		if err != nil {
			return fmt.Errorf("targets[%d]: %w", i, err)
		}
		c.Targets[i] = expanded
	}

	if c.TargetsFile != "" {
		expanded, err := expandEnvVars(c.TargetsFile)
		if err != nil {
			return fmt.Errorf("targets_file: %w", err)
		}
		c.TargetsFile = expanded
	}

	expanded, err := expandEnvVars(c.Output)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	c.Output = expanded

	return nil
}
