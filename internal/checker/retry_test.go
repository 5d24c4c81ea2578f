package checker

import (
	"context"
	"errors"
	"testing"
	"time"
)

// scriptedProber returns a scripted sequence of attempts, repeating the
// last one once the script is exhausted. It records how often it was called.
type scriptedProber struct {
	script []Attempt
	calls  int
}

func (p *scriptedProber) Fetch(ctx context.Context, target string, timeout time.Duration) Attempt {
	i := p.calls
	p.calls++
	if i >= len(p.script) {
		i = len(p.script) - 1
	}
	return p.script[i]
}

func failure(msg string) Attempt { return Attempt{Err: errors.New(msg)} }
func success(code int) Attempt   { return Attempt{StatusCode: code} }

// TestRunner_FirstAttemptSucceeds verifies that a success on the first
// attempt produces a reachable outcome with a single attempt counted.
func TestRunner_FirstAttemptSucceeds(t *testing.T) {
	prober := &scriptedProber{script: []Attempt{success(200)}}
	runner := NewRunner(prober, time.Second, 3, nil)

	out := runner.Run(context.Background(), "https://example.com")

	if !out.Reachable {
		t.Fatalf("expected reachable outcome, got error %q", out.Err)
	}
	if out.Attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", out.Attempts)
	}
	if out.StatusCode != 200 {
		t.Errorf("expected status 200, got %d", out.StatusCode)
	}
	if out.Err != "" {
		t.Errorf("expected empty error on success, got %q", out.Err)
	}
}

// TestRunner_SucceedsAfterRetries verifies that a target succeeding on
// attempt k reports exactly k attempts.
func TestRunner_SucceedsAfterRetries(t *testing.T) {
	prober := &scriptedProber{script: []Attempt{
		failure("connection: refused"),
		failure("timeout: deadline exceeded"),
		success(204),
	}}
	runner := NewRunner(prober, time.Second, 5, nil)

	out := runner.Run(context.Background(), "https://example.com")

	if !out.Reachable {
		t.Fatalf("expected reachable outcome, got error %q", out.Err)
	}
	if out.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", out.Attempts)
	}
}

// TestRunner_ExhaustsRetries verifies that a target failing every attempt
// is probed exactly retries+1 times and keeps the last error detail.
func TestRunner_ExhaustsRetries(t *testing.T) {
	prober := &scriptedProber{script: []Attempt{
		failure("dns: no such host"),
		failure("dns: no such host"),
		failure("connection: refused"),
	}}
	runner := NewRunner(prober, time.Second, 2, nil)

	out := runner.Run(context.Background(), "https://example.com")

	if out.Reachable {
		t.Fatal("expected unreachable outcome")
	}
	if out.Attempts != 3 {
		t.Errorf("expected retries+1 = 3 attempts, got %d", out.Attempts)
	}
	if prober.calls != 3 {
		t.Errorf("expected prober called 3 times, got %d", prober.calls)
	}
	if out.Err != "connection: refused" {
		t.Errorf("expected last attempt's error detail, got %q", out.Err)
	}
}

// TestRunner_ZeroRetries verifies that R=0 means a single attempt whose
// failure immediately becomes the final outcome.
func TestRunner_ZeroRetries(t *testing.T) {
	prober := &scriptedProber{script: []Attempt{failure("timeout: deadline exceeded")}}
	runner := NewRunner(prober, time.Second, 0, nil)

	out := runner.Run(context.Background(), "https://example.com")

	if out.Reachable {
		t.Fatal("expected unreachable outcome")
	}
	if out.Attempts != 1 {
		t.Errorf("expected exactly 1 attempt with zero retries, got %d", out.Attempts)
	}
	if prober.calls != 1 {
		t.Errorf("expected prober called once, got %d", prober.calls)
	}
}

// TestRunner_DelayStrategy verifies that the delay strategy is consulted
// before each retry, but never after the final attempt.
func TestRunner_DelayStrategy(t *testing.T) {
	prober := &scriptedProber{script: []Attempt{failure("connection: refused")}}

	var delayCalls []int
	delay := func(attempt int) time.Duration {
		delayCalls = append(delayCalls, attempt)
		return 0
	}
	runner := NewRunner(prober, time.Second, 2, delay)

	out := runner.Run(context.Background(), "https://example.com")

	if out.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", out.Attempts)
	}
	if len(delayCalls) != 2 {
		t.Fatalf("expected 2 delay consultations, got %d", len(delayCalls))
	}
	if delayCalls[0] != 1 || delayCalls[1] != 2 {
		t.Errorf("expected delay called with attempts 1 and 2, got %v", delayCalls)
	}
}

// TestRunner_FixedDelayPaces verifies that FixedDelay actually spaces out
// retries.
func TestRunner_FixedDelayPaces(t *testing.T) {
	prober := &scriptedProber{script: []Attempt{failure("connection: refused")}}
	runner := NewRunner(prober, time.Second, 2, FixedDelay(20*time.Millisecond))

	start := time.Now()
	out := runner.Run(context.Background(), "https://example.com")
	elapsed := time.Since(start)

	if out.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", out.Attempts)
	}
	if elapsed < 40*time.Millisecond {
		t.Errorf("expected at least two 20ms delays, run took %s", elapsed)
	}
}

// TestRunner_CancelledContextStopsRetries verifies that a cancelled context
// stops further retries while still yielding an outcome for the target.
func TestRunner_CancelledContextStopsRetries(t *testing.T) {
	prober := &scriptedProber{script: []Attempt{failure("connection: refused")}}
	runner := NewRunner(prober, time.Second, 10, FixedDelay(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := runner.Run(ctx, "https://example.com")

	if out.Reachable {
		t.Fatal("expected unreachable outcome")
	}
	if out.Attempts != 1 {
		t.Errorf("expected retries to stop after cancellation, got %d attempts", out.Attempts)
	}
}
