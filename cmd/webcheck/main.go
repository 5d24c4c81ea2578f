// Package main is the entry point for the webcheck CLI.
//
// webcheck performs one concurrent availability pass over a list of website
// URLs and writes a JSON report with one record per input URL.
//
// Usage:
//
//	webcheck run https://example.com https://example.org
//	webcheck run -f urls.txt -w 8 -t 5s -r 2
//	webcheck run -c config.yaml
//	webcheck validate -c config.yaml
//	webcheck version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "webcheck",
	Short: "Concurrent website availability checker",
	Long: `webcheck checks the availability of many website URLs concurrently.

It performs one pass over a fixed input list with a bounded worker pool,
a per-attempt timeout, and a bounded retry policy, then writes a JSON
report with exactly one record per input URL.

Quick start:
  1. Put one URL per line in a file (lines starting with # are skipped)
  2. Run: webcheck run -f urls.txt
  3. Read status.json

Or pass URLs directly:
  webcheck run https://example.com https://example.org`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this webcheck binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("webcheck %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
