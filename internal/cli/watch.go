// Package cli provides the command-line interface for spectree.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mrz1836/spectree/internal/config"
	"github.com/mrz1836/spectree/internal/constants"
	"github.com/mrz1836/spectree/internal/ctxutil"
	"github.com/mrz1836/spectree/internal/errors"
	"github.com/mrz1836/spectree/internal/ingest"
	"github.com/mrz1836/spectree/internal/tui"
)

// watchProgramRunner runs the assembled watch model. It is a package-level
// variable so tests can stub out the interactive Bubble Tea program.
//
//nolint:gochecknoglobals // Test injection point
var watchProgramRunner = func(ctx context.Context, model *tui.WatchModel) error {
	p := tea.NewProgram(model, tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// watchOptions holds the resolved settings for one watch invocation.
type watchOptions struct {
	dir           string
	slowThreshold float64
	interval      time.Duration
	bell          bool
}

// AddWatchCommand adds the watch command to the root command.
func AddWatchCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch [run-dir]",
		Short: "Follow a run live in the terminal",
		Long: `Watch a run directory and re-render the test tree as results arrive.

Each refresh tails newly appended events from events.jsonl. When the
chains snapshot is rewritten in place by a new collection, the run is
reloaded from scratch. A terminal bell rings when a test newly fails,
unless disabled.

Press q or ctrl+c to quit.

Examples:
  spectree watch                    # Watch the default run directory
  spectree watch ./artifacts        # Watch a specific run directory
  spectree watch --interval 500ms   # Poll faster
  spectree watch --no-bell          # No audible alert on new failures`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd, args)
		},
	}

	cmd.Flags().Duration("interval", 0, "refresh interval (e.g. 500ms, 2s; defaults to config)")
	cmd.Flags().Bool("no-bell", false, "disable the terminal bell on new failures")

	parent.AddCommand(cmd)
}

// runWatch executes the watch command with production dependencies.
func runWatch(ctx context.Context, cmd *cobra.Command, args []string) error {
	// Check cancellation at entry
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	// Get flags
	output := cmd.Flag("output").Value.String()
	quiet := cmd.Flag("quiet").Value.String() == "true"

	// Respect NO_COLOR
	tui.CheckNoColor()

	opts, err := resolveWatchOptions(ctx, cmd, args)
	if err != nil {
		return err
	}

	opener := func(ctx context.Context) (tui.RunSession, error) {
		return ingest.LoadRun(ctx, opts.dir, opts.slowThreshold)
	}

	return runWatchWithDeps(ctx, output, quiet, opts, opener)
}

// resolveWatchOptions merges configuration with watch command flags.
func resolveWatchOptions(ctx context.Context, cmd *cobra.Command, args []string) (watchOptions, error) {
	overrides := &config.Config{}
	if cmd.Flags().Changed("interval") {
		interval, err := cmd.Flags().GetDuration("interval")
		if err != nil {
			return watchOptions{}, fmt.Errorf("failed to read interval flag: %w", err)
		}
		// Checked here because a zero duration would read as "not set"
		// once it goes through the config override layer.
		if interval < constants.MinWatchInterval {
			return watchOptions{}, errors.Wrapf(errors.ErrWatchIntervalTooShort,
				"interval must be at least %s, got %s", constants.MinWatchInterval, interval)
		}
		overrides.Watch.Interval = interval
	}

	cfg, err := config.LoadWithOverrides(ctx, overrides)
	if err != nil {
		return watchOptions{}, err
	}

	opts := watchOptions{
		dir:           cfg.Run.Dir,
		slowThreshold: cfg.Render.SlowThreshold,
		interval:      cfg.Watch.Interval,
		bell:          cfg.Watch.Bell,
	}
	if len(args) > 0 {
		opts.dir = args[0]
	}
	if cmd.Flags().Changed("no-bell") {
		opts.bell = cmd.Flag("no-bell").Value.String() != "true"
	}

	return opts, nil
}

// runWatchWithDeps executes the watch command with injected dependencies.
// This enables testing with mock implementations.
func runWatchWithDeps(
	ctx context.Context,
	output string,
	quiet bool,
	opts watchOptions,
	opener tui.SessionOpener,
) error {
	// Check cancellation at entry
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	// Watch mode is inherently interactive
	if output == OutputJSON {
		return fmt.Errorf("%w: use 'spectree render --output json' instead", errors.ErrWatchModeJSONUnsupported)
	}

	model := tui.NewWatchModel(ctx, opts.dir, opener, tui.WatchConfig{
		Interval:    opts.interval,
		BellEnabled: opts.bell,
		Quiet:       quiet,
	})

	logger := GetLogger()
	logger.Debug().
		Str("dir", opts.dir).
		Dur("interval", opts.interval).
		Bool("bell", opts.bell).
		Msg("starting watch mode")

	if err := watchProgramRunner(ctx, model); err != nil {
		// Context cancellation kills the program; report it as such
		if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("watch mode failed: %w", err)
	}
	return nil
}
