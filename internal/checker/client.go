package checker

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"
)

// maxDrainSize bounds how much of a response body is read before closing.
// Draining a small amount lets the transport reuse the connection.
const maxDrainSize = 64 << 10 // 64KB

// connection pooling limits to prevent resource exhaustion when checking many targets
const (
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultMaxConnsPerHost     = 10
	defaultIdleConnTimeout     = 60 * time.Second
)

// Client is an HTTP client wrapper that performs one availability probe
// per [Client.Fetch] call.
//
// Client uses per-request timeouts via context rather than a global client
// timeout, so the same client can serve attempts with different deadlines.
// When a probe's deadline fires, the in-flight request is abandoned through
// context cancellation and the connection is released.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new probe [Client].
//
// The client is configured with connection pooling limits so a large target
// list does not exhaust sockets:
//   - MaxIdleConns: 100 total idle connections
//   - MaxIdleConnsPerHost: 10 idle connections per host
//   - MaxConnsPerHost: 10 concurrent connections per host
//   - IdleConnTimeout: 60 seconds before closing idle connections
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			// no default timeout - per-attempt timeouts are applied via context
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				MaxConnsPerHost:     defaultMaxConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
				DisableKeepAlives:   false, // explicitly enable connection reuse
			},
		},
	}
}

// Fetch performs one GET probe of target and returns a structured [Attempt].
//
// The timeout is enforced via context cancellation: if no response arrives
// in time, the attempt fails with a "timeout:" error and the underlying
// request is abandoned rather than left running. A 2xx or 3xx status is a
// success; any other status, DNS failure, connection refusal, or TLS failure
// is a failure whose error detail categorizes the cause.
//
// Fetch always returns an Attempt; errors are captured in the Err field
// rather than returned separately. This simplifies handling in the retry
// policy and the worker pool.
func (c *Client) Fetch(ctx context.Context, target string, timeout time.Duration) Attempt {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Attempt{
			Latency: time.Since(start),
			Err:     fmt.Errorf("failed to create request: %w", err),
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Attempt{
			Latency: time.Since(start),
			Err:     categorize(err),
		}
	}

	// drain a bounded amount of the body so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainSize))
	_ = resp.Body.Close()

	attempt := Attempt{
		StatusCode: resp.StatusCode,
		Latency:    time.Since(start),
	}
	if resp.StatusCode >= 400 {
		attempt.Err = fmt.Errorf("http status %d", resp.StatusCode)
	}
	return attempt
}

// Close closes all idle connections in the client's connection pool.
//
// Safe to call multiple times and on a nil receiver. After Close, the
// client remains usable; new connections are established as needed.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}

// categorize wraps a transport error with a stable category prefix so the
// final report can distinguish timeouts, DNS failures, refused connections,
// and TLS problems without parsing library-specific messages.
func categorize(err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("dns: %w", err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("timeout: %w", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("timeout: %w", err)
	}

	var certErr *tls.CertificateVerificationError
	var recordErr tls.RecordHeaderError
	if errors.As(err, &certErr) || errors.As(err, &recordErr) {
		return fmt.Errorf("tls: %w", err)
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return fmt.Errorf("connection: %w", err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("connection: %w", err)
	}

	return err
}
