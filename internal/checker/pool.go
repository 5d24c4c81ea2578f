package checker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Checker is the worker-pool dispatcher for one availability pass.
//
// A Checker owns a fixed set of workers that pull targets from a shared
// queue, run each through the retry policy, and record exactly one
// [Outcome] per target. At most [Config.Workers] probes are in flight at
// any moment. A Checker is safe to reuse for multiple runs, one at a time
// or concurrently; each run has its own queue and collector.
type Checker struct {
	cfg    Config
	client *Client
	runner *Runner
	logger *slog.Logger
}

// job pairs a target with its input position so the worker that handles it
// can write the outcome to the right report slot.
type job struct {
	index int
	url   string
}

// New creates a [Checker], validating the configuration first.
//
// A nil logger discards all log output. Configuration errors are returned
// before any probing infrastructure is set up.
func New(cfg Config, logger *slog.Logger) (*Checker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	client := NewClient()
	return &Checker{
		cfg:    cfg,
		client: client,
		runner: NewRunner(client, cfg.Timeout, cfg.Retries, cfg.Delay),
		logger: logger,
	}, nil
}

// Run performs one availability pass over urls and returns the completed
// [Report], one outcome per input URL in input order.
//
// Malformed URLs are rejected before dispatch with an "invalid input"
// outcome and never touch the network. Valid targets are distributed
// dynamically across the worker pool: workers pull from a shared queue, so
// fast targets are not stalled behind slow ones. Run returns only after
// every target has produced an outcome.
func (c *Checker) Run(ctx context.Context, urls []string) Report {
	collector := NewCollector(len(urls))

	jobs := make(chan job, len(urls))
	for i, raw := range urls {
		if err := ValidateTarget(raw); err != nil {
			c.logger.Debug("rejected malformed target", "url", raw, "reason", err.Error())
			collector.Put(i, Outcome{
				URL:       raw,
				Err:       fmt.Sprintf("%s: %v", invalidInputPrefix, err),
				CheckedAt: time.Now().UTC(),
			})
			continue
		}
		jobs <- job{index: i, url: raw}
	}
	close(jobs)

	var wg sync.WaitGroup
	for i := 0; i < c.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				collector.Put(j.index, c.safeCheck(ctx, j))
			}
		}()
	}
	wg.Wait()

	return collector.Report()
}

// Close releases the underlying HTTP client's idle connections.
// The checker remains usable after Close.
func (c *Checker) Close() {
	c.client.Close()
}

// safeCheck runs one target through the retry policy with panic recovery.
// If a check panics, the full stack trace is logged with a correlation ID
// and a failure outcome carrying the ID is recorded, so a misbehaving check
// never drops a target or takes down the run.
func (c *Checker) safeCheck(ctx context.Context, j job) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			c.logger.Error("check panic",
				"correlation_id", correlationID,
				"url", j.url,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)

			out = Outcome{
				URL:       j.url,
				Err:       fmt.Sprintf("internal error (correlation_id: %s)", correlationID),
				CheckedAt: time.Now().UTC(),
			}
		}
	}()
	return c.runner.Run(ctx, j.url)
}
