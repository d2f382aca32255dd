// Package cli provides the command-line interface for spectree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/spectree/internal/clock"
	"github.com/mrz1836/spectree/internal/config"
	"github.com/mrz1836/spectree/internal/ctxutil"
	"github.com/mrz1836/spectree/internal/ingest"
	"github.com/mrz1836/spectree/internal/report"
	"github.com/mrz1836/spectree/internal/tui"
)

// RunLoader loads a run directory into a reconstructed tree.
// Used for dependency injection in tests.
type RunLoader func(ctx context.Context, dir string, slowThreshold float64) (*ingest.Run, error)

// renderOptions holds the resolved settings for one render invocation,
// after merging config defaults with command-line flags.
type renderOptions struct {
	dir           string
	slowThreshold float64
	expand        bool
	showFixtures  bool
	failedOnly    bool
	details       bool
}

// AddRenderCommand adds the render command to the root command.
func AddRenderCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "render [run-dir]",
		Short: "Render the test tree for a run",
		Long: `Load the chains snapshot and result events from a run directory and
print the reconstructed describe/test tree with outcomes, durations,
and per-group statistics.

The run directory defaults to the configured run.dir (.spectree unless
overridden).

Examples:
  spectree render                   # Render the default run directory
  spectree render ./artifacts       # Render a specific run directory
  spectree render --expand          # Show docstrings and fixture lists
  spectree render --failed-only     # Prune to failing subtrees
  spectree render --details         # Include failure lines under tests
  spectree render --slow 1.5        # Mark tests above 1.5s as slow
  spectree render --output json     # Emit the JSON export instead`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), cmd, os.Stdout, args)
		},
	}

	cmd.Flags().Bool("expand", false, "expand docstrings and fixture lists")
	cmd.Flags().Bool("no-fixtures", false, "hide fixture lists in expand mode")
	cmd.Flags().Bool("failed-only", false, "show only subtrees containing failures")
	cmd.Flags().Bool("details", false, "show failure details beneath failing tests")
	cmd.Flags().Float64("slow", 0, "slow test threshold in seconds (overrides config)")

	parent.AddCommand(cmd)
}

// runRender executes the render command with production dependencies.
func runRender(ctx context.Context, cmd *cobra.Command, w io.Writer, args []string) error {
	// Check cancellation at entry
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	// Get flags
	output := cmd.Flag("output").Value.String()
	quiet := cmd.Flag("quiet").Value.String() == "true"

	// Respect NO_COLOR
	tui.CheckNoColor()

	opts, err := resolveRenderOptions(ctx, cmd, args)
	if err != nil {
		return err
	}

	return runRenderWithDeps(ctx, w, output, quiet, opts, ingest.LoadRun)
}

// resolveRenderOptions merges configuration with render command flags.
// Boolean flags cannot ride through config overrides because a false value
// is indistinguishable from "not set", so they apply only when the user
// actually passed the flag.
func resolveRenderOptions(ctx context.Context, cmd *cobra.Command, args []string) (renderOptions, error) {
	overrides := &config.Config{}
	if cmd.Flags().Changed("slow") {
		slow, err := cmd.Flags().GetFloat64("slow")
		if err != nil {
			return renderOptions{}, fmt.Errorf("failed to read slow flag: %w", err)
		}
		overrides.Render.SlowThreshold = slow
	}

	cfg, err := config.LoadWithOverrides(ctx, overrides)
	if err != nil {
		return renderOptions{}, err
	}

	opts := renderOptions{
		dir:           cfg.Run.Dir,
		slowThreshold: cfg.Render.SlowThreshold,
		expand:        cfg.Render.Expand,
		showFixtures:  cfg.Render.ShowFixtures,
		failedOnly:    cmd.Flag("failed-only").Value.String() == "true",
		details:       cmd.Flag("details").Value.String() == "true",
	}
	if len(args) > 0 {
		opts.dir = args[0]
	}
	if cmd.Flags().Changed("expand") {
		opts.expand = cmd.Flag("expand").Value.String() == "true"
	}
	if cmd.Flags().Changed("no-fixtures") {
		opts.showFixtures = cmd.Flag("no-fixtures").Value.String() != "true"
	}

	return opts, nil
}

// runRenderWithDeps executes the render command with injected dependencies.
// This enables testing with mock implementations.
func runRenderWithDeps(
	ctx context.Context,
	w io.Writer,
	output string,
	quiet bool,
	opts renderOptions,
	load RunLoader,
) error {
	// Check cancellation at entry
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	logger := GetLogger()
	logger.Debug().
		Str("dir", opts.dir).
		Float64("slow_threshold", opts.slowThreshold).
		Msg("loading run")

	run, err := load(ctx, opts.dir, opts.slowThreshold)
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	tree := run.Tree()

	if output == OutputJSON {
		return report.WriteJSON(w, tree, report.NewMeta(run.ID, clock.RealClock{}))
	}

	// Header (unless quiet)
	if !quiet {
		_, _ = fmt.Fprintln(w, tui.StyleBold.Render("Run "+run.ID))
		_, _ = fmt.Fprintln(w, tui.StyleDim.Render("collected "+tui.RelativeTime(run.Created)))
		_, _ = fmt.Fprintln(w)
	}

	if len(tree.Roots) == 0 {
		_, _ = fmt.Fprintln(w, "No tests collected yet.")
		return nil
	}

	err = tui.RenderTree(w, tree,
		tui.WithExpand(opts.expand),
		tui.WithFixtures(opts.showFixtures),
		tui.WithFailedOnly(opts.failedOnly),
		tui.WithFailureDetails(opts.details),
		tui.WithMaxWidth(tui.GetTerminalWidth()),
	)
	if err != nil {
		return err
	}

	// Footer summary (unless quiet)
	if !quiet {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, tui.FormatTotals(tree))
	}

	return nil
}
