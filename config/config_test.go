package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// TestParse_Defaults verifies that an empty config gets the documented
// defaults.
func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("expected default workers %d, got %d", runtime.NumCPU(), cfg.Workers)
	}
	if cfg.Timeout.Duration() != 5*time.Second {
		t.Errorf("expected default timeout 5s, got %s", cfg.Timeout.Duration())
	}
	if cfg.Retries != 0 {
		t.Errorf("expected default retries 0, got %d", cfg.Retries)
	}
	if cfg.Output != "status.json" {
		t.Errorf("expected default output status.json, got %s", cfg.Output)
	}
}

// TestParse_FullConfig verifies a complete config round-trips correctly.
func TestParse_FullConfig(t *testing.T) {
	yaml := `
workers: 8
timeout: 2s
retries: 3
output: out.json
targets:
  - https://example.com
  - https://example.org/health
targets_file: urls.txt
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Workers)
	}
	if cfg.Timeout.Duration() != 2*time.Second {
		t.Errorf("expected 2s timeout, got %s", cfg.Timeout.Duration())
	}
	if cfg.Retries != 3 {
		t.Errorf("expected 3 retries, got %d", cfg.Retries)
	}
	if cfg.Output != "out.json" {
		t.Errorf("expected output out.json, got %s", cfg.Output)
	}
	if len(cfg.Targets) != 2 {
		t.Errorf("expected 2 targets, got %d", len(cfg.Targets))
	}
	if cfg.TargetsFile != "urls.txt" {
		t.Errorf("expected targets_file urls.txt, got %s", cfg.TargetsFile)
	}
}

// TestParse_InvalidDuration verifies duration parse errors are surfaced.
func TestParse_InvalidDuration(t *testing.T) {
	_, err := Parse([]byte("timeout: banana\n"))
	if err == nil {
		t.Fatal("expected error for invalid duration")
	}
	if !strings.Contains(err.Error(), "banana") {
		t.Errorf("expected error to name the bad value, got %v", err)
	}
}

// TestParse_Validation verifies range validation of the numeric fields.
func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"negative workers", "workers: -2\n", "workers"},
		{"negative timeout", "timeout: -5s\n", "timeout"},
		{"negative retries", "retries: -1\n", "retries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error about %s, got %v", tt.want, err)
			}
		})
	}
}

// TestParse_MalformedTargetsAccepted verifies that target URL syntax is not
// a config error; malformed targets must become "invalid input" outcomes.
func TestParse_MalformedTargetsAccepted(t *testing.T) {
	cfg, err := Parse([]byte("targets:\n  - not a url\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(cfg.Targets) != 1 || cfg.Targets[0] != "not a url" {
		t.Errorf("expected malformed target preserved, got %v", cfg.Targets)
	}
}

// TestParse_EnvExpansion verifies ${VAR} and ${VAR:-default} substitution
// in targets, targets_file, and output.
func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("WEBCHECK_HOST", "example.com")

	yaml := `
output: ${WEBCHECK_OUT:-status.json}
targets:
  - https://${WEBCHECK_HOST}/health
targets_file: ${WEBCHECK_FILE:-}
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Targets[0] != "https://example.com/health" {
		t.Errorf("expected expanded target, got %s", cfg.Targets[0])
	}
	if cfg.Output != "status.json" {
		t.Errorf("expected default-expanded output, got %s", cfg.Output)
	}
	if cfg.TargetsFile != "" {
		t.Errorf("expected empty targets_file, got %s", cfg.TargetsFile)
	}
}

// TestParse_MissingEnvVar verifies that an unset variable without a default
// is an error.
func TestParse_MissingEnvVar(t *testing.T) {
	_, err := Parse([]byte("targets:\n  - https://${WEBCHECK_DEFINITELY_UNSET}/x\n"))
	if err == nil {
		t.Fatal("expected error for unset environment variable")
	}
	if !strings.Contains(err.Error(), "WEBCHECK_DEFINITELY_UNSET") {
		t.Errorf("expected error to name the variable, got %v", err)
	}
}

// TestLoad_File verifies loading from disk.
func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "workers: 2\ntargets:\n  - https://example.com\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.Workers)
	}
}

// TestLoad_MissingFile verifies a clear error for a missing config file.
func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
