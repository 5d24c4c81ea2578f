package checker

import (
	"fmt"
	"net/url"
	"time"
)

// invalidInputPrefix tags outcomes for targets rejected before dispatch.
const invalidInputPrefix = "invalid input"

// Attempt holds the result of a single probe of one target.
//
// An Attempt is created per probe invocation and folded into an [Outcome]
// by the retry policy. StatusCode is zero if the request failed before a
// response was received.
type Attempt struct {
	// StatusCode is the HTTP status code (e.g., 200, 404, 500).
	StatusCode int

	// Latency is the time taken by this single probe.
	Latency time.Duration

	// Err describes why the attempt failed, with a stable category prefix
	// ("timeout:", "dns:", "connection:", "tls:", "http status NNN").
	// nil means the attempt succeeded.
	Err error
}

// OK reports whether the attempt succeeded.
func (a Attempt) OK() bool {
	return a.Err == nil
}

// Outcome is the final, immutable result for one target.
//
// Exactly one Outcome exists per submitted target, whether the target was
// probed successfully, failed every attempt, or was rejected as malformed
// before touching the network.
type Outcome struct {
	// URL is the target as it appeared in the input.
	URL string

	// Reachable is true if any attempt succeeded.
	Reachable bool

	// StatusCode is the last HTTP status observed, zero if none was.
	StatusCode int

	// Attempts is the number of probes performed. Zero for targets rejected
	// as malformed before dispatch.
	Attempts int

	// Err describes the last failure. Empty when Reachable is true.
	Err string

	// Elapsed is the total time spent on this target across all attempts.
	Elapsed time.Duration

	// CheckedAt is the timestamp when the outcome was finalized.
	CheckedAt time.Time
}

// Report is the ordered collection of all outcomes for one run.
//
// Outcomes appear in input order: Report[i] corresponds to the i-th
// submitted target, regardless of which worker finished first.
type Report []Outcome

// Config carries the knobs for one checking pass.
//
// Config is passed explicitly into [New] rather than read from ambient
// state, so the engine can be exercised with varied configurations in the
// same test process.
type Config struct {
	// Workers is the number of concurrent probe workers. Must be >= 1.
	Workers int

	// Timeout bounds each individual probe attempt. Must be positive.
	Timeout time.Duration

	// Retries is the number of additional attempts after a failed probe,
	// so a target sees at most Retries+1 attempts. Must be >= 0.
	Retries int

	// Delay determines the pause inserted before each retry.
	// nil means retry immediately.
	Delay DelayStrategy
}

// Validate checks the configuration and returns the first problem found.
// A run must not start with an invalid configuration.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries cannot be negative, got %d", c.Retries)
	}
	return nil
}

// ValidateTarget checks that raw is a well-formed absolute HTTP or HTTPS URL.
// Malformed targets are rejected before dispatch and never probed.
func ValidateTarget(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("unparseable url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url must have a host")
	}
	return nil
}
