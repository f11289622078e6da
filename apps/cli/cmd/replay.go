package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/specview/packages/core/config"
	"github.com/abdul-hamid-achik/specview/packages/core/reporter"
	"github.com/abdul-hamid-achik/specview/packages/replay"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <events.jsonl>",
	Short: "Render a report from a recorded run event stream",
	Long: `Render a full console report from a recorded run event stream.

Examples:
  specview replay run.jsonl
  specview replay run.jsonl --no-color --verbose
  specview replay run.jsonl --empty-sections placeholder
  specview replay run.jsonl --strict`,
	Args: cobra.ExactArgs(1),
	RunE: replayCommand,
}

var (
	configFlag        string
	outputFlag        string
	emptySectionsFlag string
	pendingSplitFlag  string
	minFileColumnFlag int
	noColorFlag       bool
	verboseFlag       bool
	strictFlag        bool
)

func init() {
	for _, c := range []*cobra.Command{replayCmd, tailCmd} {
		c.Flags().StringVar(&configFlag, "config", "", "path to a config file")
		c.Flags().StringVarP(&outputFlag, "output", "o", "", "write the report to a file instead of stdout")
		c.Flags().StringVar(&emptySectionsFlag, "empty-sections", "", "empty failure sections: omit or placeholder")
		c.Flags().StringVar(&pendingSplitFlag, "pending-split", "", "fixme-annotated skips: none or fixme-as-pending")
		c.Flags().IntVar(&minFileColumnFlag, "min-file-column", 0, "floor for the summary table filename column")
		c.Flags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
		c.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "include the timing summary")
		c.Flags().BoolVar(&strictFlag, "strict", false, "validate every event line against the schema")
	}
}

func replayCommand(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	rep, closer, err := buildReporter(cfg)
	if err != nil {
		return err
	}
	defer closer()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening event stream: %w", err)
	}
	defer f.Close()

	player, err := replay.NewPlayer(rep, replay.WithStrict(strictFlag))
	if err != nil {
		return err
	}
	if err := player.Play(f); err != nil {
		return err
	}

	if rep.HasFailures() {
		os.Exit(1)
	}
	return nil
}

// resolveConfig layers command-line flags over any config file.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	fileCfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, err
	}

	override := &config.Config{
		EmptySections: emptySectionsFlag,
		PendingSplit:  pendingSplitFlag,
		MinFileColumn: minFileColumnFlag,
		Output:        outputFlag,
	}
	if cmd.Flags().Changed("no-color") {
		override.NoColor = config.BoolPtr(noColorFlag)
	}
	if cmd.Flags().Changed("verbose") {
		override.Verbose = config.BoolPtr(verboseFlag)
	}
	return fileCfg.Merge(override), nil
}

// buildReporter constructs the engine and its destination. The returned
// closer is a no-op for stdout.
func buildReporter(cfg *config.Config) (*reporter.Reporter, func(), error) {
	var w io.Writer = os.Stdout
	closer := func() {}
	if cfg.Output != "" && cfg.Output != "-" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return nil, nil, fmt.Errorf("creating report file: %w", err)
		}
		w = f
		closer = func() { _ = f.Close() }
	}

	opts := []reporter.Option{
		reporter.WithWriter(w),
		reporter.WithNoColor(cfg.GetNoColor()),
		reporter.WithVerbose(cfg.GetVerbose()),
		reporter.WithMinFileColumn(cfg.MinFileColumn),
	}
	if cfg.EmptySections == config.EmptySectionsPlaceholder {
		opts = append(opts, reporter.WithEmptySectionPolicy(reporter.EmptySectionPlaceholder))
	}
	if cfg.PendingSplit == config.PendingSplitNone {
		opts = append(opts, reporter.WithPendingSplitPolicy(reporter.PendingSplitNone))
	}
	return reporter.New(opts...), closer, nil
}
