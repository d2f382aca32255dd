// Package cli provides the command-line interface for spectree.
package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/mrz1836/spectree/internal/clock"
	"github.com/mrz1836/spectree/internal/config"
	"github.com/mrz1836/spectree/internal/ctxutil"
	"github.com/mrz1836/spectree/internal/errors"
	"github.com/mrz1836/spectree/internal/ingest"
	"github.com/mrz1836/spectree/internal/report"
	"github.com/mrz1836/spectree/internal/tui"
)

var (
	glamourRenderer     *glamour.TermRenderer //nolint:gochecknoglobals // cached renderer for performance
	glamourRendererOnce sync.Once             //nolint:gochecknoglobals // sync.Once for renderer initialization
)

// getGlamourRenderer returns a cached glamour renderer for markdown rendering.
// The renderer is initialized once and reused across all calls.
func getGlamourRenderer() *glamour.TermRenderer {
	glamourRendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			glamourRenderer = r
		}
	})
	return glamourRenderer
}

// viewOptions holds the resolved settings for one view invocation.
type viewOptions struct {
	dir           string
	slowThreshold float64
}

// AddViewCommand adds the view command to the root command.
func AddViewCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "view [run-dir]",
		Short: "View the run summary as rendered Markdown",
		Long: `Build the Markdown summary for a run and render it in the terminal.

The summary contains the overall totals, a plain-text tree per file,
and the failure representations of failing tests.

Examples:
  spectree view                # View the default run directory
  spectree view ./artifacts    # View a specific run directory`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), cmd, os.Stdout, args)
		},
	}

	parent.AddCommand(cmd)
}

// runView executes the view command with production dependencies.
func runView(ctx context.Context, cmd *cobra.Command, w io.Writer, args []string) error {
	// Check cancellation at entry
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	// Get flags
	output := cmd.Flag("output").Value.String()

	// Respect NO_COLOR
	tui.CheckNoColor()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	opts := viewOptions{
		dir:           cfg.Run.Dir,
		slowThreshold: cfg.Render.SlowThreshold,
	}
	if len(args) > 0 {
		opts.dir = args[0]
	}

	return runViewWithDeps(ctx, w, output, opts, ingest.LoadRun)
}

// runViewWithDeps executes the view command with injected dependencies.
// This enables testing with mock implementations.
func runViewWithDeps(
	ctx context.Context,
	w io.Writer,
	output string,
	opts viewOptions,
	load RunLoader,
) error {
	// Check cancellation at entry
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	// The rendered summary is terminal output by definition
	if output == OutputJSON {
		return fmt.Errorf("%w: view renders to the terminal, use 'spectree report --json' for machine output",
			errors.ErrInvalidArgument)
	}

	run, err := load(ctx, opts.dir, opts.slowThreshold)
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	var markdown bytes.Buffer
	meta := report.NewMeta(run.ID, clock.RealClock{})
	if err := report.WriteMarkdown(&markdown, run.Tree(), meta); err != nil {
		return err
	}

	renderMarkdownSummary(w, markdown.String())
	return nil
}

// renderMarkdownSummary renders the summary using glamour, falling back to
// the raw Markdown when no renderer is available.
func renderMarkdownSummary(w io.Writer, markdown string) {
	if renderer := getGlamourRenderer(); renderer != nil {
		if rendered, err := renderer.Render(markdown); err == nil {
			_, _ = fmt.Fprint(w, rendered)
			return
		}
	}
	// Fallback to plain text
	_, _ = fmt.Fprint(w, markdown)
}
