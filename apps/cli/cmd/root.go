package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "specview",
	Short: "Readable console reports for browser test runs.",
	Long: `specview turns the event stream of a browser test run into a
streaming, colorized console report: per-file result blocks as each
file finishes, failure diagnostics with captured console and network
context, and a final summary table.`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(tailCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}
