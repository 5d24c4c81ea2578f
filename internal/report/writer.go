// Package report serializes a finished checker run to JSON.
//
// The checker core has no file-system dependency; this package is the
// boundary that turns a [checker.Report] into the on-disk JSON document.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"webcheck/internal/checker"
)

// Entry is the JSON representation of one outcome.
//
// StatusCode and Error are pointers so that outcomes without a status code
// (DNS failures, rejected input) or without an error (successes) omit the
// field entirely instead of emitting a zero value.
type Entry struct {
	URL        string    `json:"url"`
	Reachable  bool      `json:"reachable"`
	StatusCode *int      `json:"status_code,omitempty"`
	Attempts   int       `json:"attempts"`
	Error      *string   `json:"error,omitempty"`
	ElapsedMS  int64     `json:"elapsed_ms"`
	CheckedAt  time.Time `json:"checked_at"`
}

// Summary aggregates a run for end-of-run logging.
type Summary struct {
	Total       int
	Reachable   int
	Unreachable int
}

// FromOutcomes converts a checker report into serializable entries,
// preserving order.
func FromOutcomes(rep checker.Report) []Entry {
	entries := make([]Entry, 0, len(rep))
	for _, out := range rep {
		e := Entry{
			URL:       out.URL,
			Reachable: out.Reachable,
			Attempts:  out.Attempts,
			ElapsedMS: out.Elapsed.Milliseconds(),
			CheckedAt: out.CheckedAt,
		}
		if out.StatusCode != 0 {
			code := out.StatusCode
			e.StatusCode = &code
		}
		if out.Err != "" {
			msg := out.Err
			e.Error = &msg
		}
		entries = append(entries, e)
	}
	return entries
}

// Summarize counts reachable and unreachable outcomes.
func Summarize(rep checker.Report) Summary {
	s := Summary{Total: len(rep)}
	for _, out := range rep {
		if out.Reachable {
			s.Reachable++
		} else {
			s.Unreachable++
		}
	}
	return s
}

// Write serializes the report as indented JSON to w.
func Write(w io.Writer, rep checker.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromOutcomes(rep)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteFile serializes the report as indented JSON to the given path,
// creating or truncating the file.
func WriteFile(path string, rep checker.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if err := Write(f, rep); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}
