// Package target loads target URL lists for the checker.
//
// Target files are newline-delimited URLs. Blank lines and lines starting
// with '#' are skipped, so files can carry comments. The loader performs no
// URL validation; malformed entries flow through to the checker, which
// records them as "invalid input" outcomes rather than dropping them.
package target

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads a target file and returns its URLs in file order.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open target file: %w", err)
	}
	defer func() { _ = f.Close() }()

	urls, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read target file %s: %w", path, err)
	}
	return urls, nil
}

// Parse reads newline-delimited URLs from r, skipping blank lines and
// '#' comments. Order is preserved.
func Parse(r io.Reader) ([]string, error) {
	var urls []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}
