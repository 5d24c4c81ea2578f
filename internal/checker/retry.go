package checker

import (
	"context"
	"time"
)

// Prober performs a single availability probe of one target URL.
//
// [Client] is the production implementation; tests substitute fakes with
// scripted attempt sequences.
type Prober interface {
	Fetch(ctx context.Context, target string, timeout time.Duration) Attempt
}

// DelayStrategy returns the pause to insert before the given retry.
// attempt is the number of attempts already made, so the first call sees 1.
//
// A strategy returning 0 retries immediately. The strategy only shapes the
// pacing of retries; it never changes how many attempts are made.
type DelayStrategy func(attempt int) time.Duration

// NoDelay retries immediately. This is the default strategy.
func NoDelay(int) time.Duration { return 0 }

// FixedDelay returns a [DelayStrategy] that pauses d before every retry.
func FixedDelay(d time.Duration) DelayStrategy {
	return func(int) time.Duration { return d }
}

// Runner applies a bounded retry policy around a [Prober].
//
// Runner re-invokes the prober until an attempt succeeds or the retry
// budget is exhausted, then folds the attempts into exactly one [Outcome].
// A target sees at most retries+1 attempts.
type Runner struct {
	prober  Prober
	timeout time.Duration
	retries int
	delay   DelayStrategy
}

// NewRunner creates a retry [Runner]. A nil delay means [NoDelay].
func NewRunner(prober Prober, timeout time.Duration, retries int, delay DelayStrategy) *Runner {
	if delay == nil {
		delay = NoDelay
	}
	return &Runner{
		prober:  prober,
		timeout: timeout,
		retries: retries,
		delay:   delay,
	}
}

// Run probes target until an attempt succeeds or retries are exhausted and
// returns the single final [Outcome].
//
// The outcome carries the last attempt's status code and error detail, the
// total number of attempts made, and the total elapsed time across all
// attempts including retry delays. Cancelling ctx stops further retries;
// the outcome then reflects the attempts made so far.
func (r *Runner) Run(ctx context.Context, target string) Outcome {
	start := time.Now()

	var last Attempt
	attempts := 0
	for {
		attempts++
		last = r.prober.Fetch(ctx, target, r.timeout)
		if last.OK() || attempts > r.retries {
			break
		}
		if !r.wait(ctx, attempts) {
			break
		}
	}

	out := Outcome{
		URL:        target,
		Reachable:  last.OK(),
		StatusCode: last.StatusCode,
		Attempts:   attempts,
		Elapsed:    time.Since(start),
		CheckedAt:  time.Now().UTC(),
	}
	if last.Err != nil {
		out.Err = last.Err.Error()
	}
	return out
}

// wait pauses for the configured delay before the next retry, honoring
// context cancellation. Returns false if the context was cancelled.
func (r *Runner) wait(ctx context.Context, attempt int) bool {
	d := r.delay(attempt)
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
