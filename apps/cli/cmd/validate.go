package cmd

import (
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/specview/packages/replay"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <events.jsonl>",
	Short: "Validate an event stream against the schema",
	Long: `Validate a recorded event stream against the event schema without
rendering a report.

Examples:
  specview validate run.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening event stream: %w", err)
	}
	defer f.Close()

	count, errs := replay.Validate(f)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(cmd.OutOrStderr(), "Error in %s: %v\n", args[0], e)
		}
		return fmt.Errorf("validation failed")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s (%d events)\n", args[0], count)
	return nil
}
