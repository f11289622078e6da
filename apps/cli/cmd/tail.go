package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/specview/packages/core/events"
	"github.com/abdul-hamid-achik/specview/packages/replay"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var tailCmd = &cobra.Command{
	Use:   "tail <events.jsonl>",
	Short: "Follow a live event stream and render incrementally",
	Long: `Follow an event stream file as the run writes it, rendering each
file's block as soon as it completes. Exits when the stream's end event
arrives, or on interrupt after flushing whatever was seen.

Examples:
  specview tail run.jsonl
  specview tail run.jsonl --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: tailCommand,
}

// tailRedrawInterval caps how often bursts of writes trigger a re-read.
const tailRedrawInterval = 200 * time.Millisecond

func tailCommand(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	rep, closer, err := buildReporter(cfg)
	if err != nil {
		return err
	}
	defer closer()

	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening event stream: %w", err)
	}
	defer f.Close()

	player, err := replay.NewPlayer(rep, replay.WithStrict(strictFlag))
	if err != nil {
		return err
	}

	// Partial trailing lines stay buffered until their newline arrives.
	var pending bytes.Buffer
	drain := func() error {
		if _, err := io.Copy(&pending, f); err != nil {
			return err
		}
		for {
			idx := bytes.IndexByte(pending.Bytes(), '\n')
			if idx < 0 {
				return nil
			}
			line := pending.Next(idx + 1)
			if err := player.Feed(line); err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
		}
	}

	if err := drain(); err != nil {
		return err
	}
	if rep.Ended() {
		return tailExit(rep.HasFailures())
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := rate.NewLimiter(rate.Every(tailRedrawInterval), 1)

	for {
		select {
		case <-ctx.Done():
			// Flush whatever we saw before the interrupt.
			rep.OnEnd(events.RunInterrupted)
			return tailExit(rep.HasFailures())

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path || !event.Has(fsnotify.Write) {
				continue
			}
			if err := limiter.Wait(ctx); err != nil {
				continue
			}
			if err := drain(); err != nil {
				return err
			}
			if rep.Ended() {
				return tailExit(rep.HasFailures())
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "warning: watcher: %v\n", err)
		}
	}
}

func tailExit(failed bool) error {
	if failed {
		os.Exit(1)
	}
	return nil
}
