// Package cli provides the command-line interface for spectree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/spectree/internal/clock"
	"github.com/mrz1836/spectree/internal/config"
	"github.com/mrz1836/spectree/internal/ctxutil"
	"github.com/mrz1836/spectree/internal/domain"
	"github.com/mrz1836/spectree/internal/errors"
	"github.com/mrz1836/spectree/internal/ingest"
	"github.com/mrz1836/spectree/internal/report"
	"github.com/mrz1836/spectree/internal/tui"
)

// reportOptions holds the resolved settings for one report invocation.
// Artifact paths are already resolved against the run directory; an empty
// path means that artifact is disabled.
type reportOptions struct {
	dir           string
	slowThreshold float64
	htmlPath      string
	markdownPath  string
	jsonPath      string
}

// reportSink describes one artifact to write.
type reportSink struct {
	label string
	path  string
	write func(w io.Writer) error
}

// reportResult is the JSON payload emitted when --output json is used.
type reportResult struct {
	RunID    string `json:"run_id"`
	HTML     string `json:"html,omitempty"`
	Markdown string `json:"markdown,omitempty"`
	JSON     string `json:"json,omitempty"`
}

// AddReportCommand adds the report command to the root command.
func AddReportCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "report [run-dir]",
		Short: "Write report artifacts for a run",
		Long: `Load a run and write its report artifacts: a self-contained HTML page,
a Markdown summary, and a machine-readable JSON export.

Artifact paths default to the report section of the configuration
(report.html and report.md in the run directory; JSON disabled).
Passing a flag with an empty value disables that artifact. Relative
paths are resolved against the run directory. At least one artifact
must remain enabled.

Examples:
  spectree report                          # HTML + Markdown with defaults
  spectree report --json tree.json         # Also write the JSON export
  spectree report --html "" --json t.json  # JSON only
  spectree report /tmp/run --markdown ""   # HTML only, explicit run dir`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), cmd, os.Stdout, args)
		},
	}

	cmd.Flags().String("html", "", "HTML report path (empty disables; defaults to config)")
	cmd.Flags().String("markdown", "", "Markdown summary path (empty disables; defaults to config)")
	cmd.Flags().String("json", "", "JSON export path (empty disables; defaults to config)")

	parent.AddCommand(cmd)
}

// runReport executes the report command with production dependencies.
func runReport(ctx context.Context, cmd *cobra.Command, w io.Writer, args []string) error {
	// Check cancellation at entry
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	// Get flags
	output := cmd.Flag("output").Value.String()

	// Respect NO_COLOR
	tui.CheckNoColor()

	opts, err := resolveReportOptions(ctx, cmd, args)
	if err != nil {
		return err
	}

	return runReportWithDeps(ctx, w, output, opts, ingest.LoadRun)
}

// resolveReportOptions merges configuration with report command flags.
// A path flag that was explicitly passed wins over the configured value,
// including an explicit empty value, which disables the artifact.
func resolveReportOptions(ctx context.Context, cmd *cobra.Command, args []string) (reportOptions, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return reportOptions{}, err
	}

	opts := reportOptions{
		dir:           cfg.Run.Dir,
		slowThreshold: cfg.Render.SlowThreshold,
		htmlPath:      cfg.Report.HTML,
		markdownPath:  cfg.Report.Markdown,
		jsonPath:      cfg.Report.JSON,
	}
	if len(args) > 0 {
		opts.dir = args[0]
	}
	if cmd.Flags().Changed("html") {
		opts.htmlPath = cmd.Flag("html").Value.String()
	}
	if cmd.Flags().Changed("markdown") {
		opts.markdownPath = cmd.Flag("markdown").Value.String()
	}
	if cmd.Flags().Changed("json") {
		opts.jsonPath = cmd.Flag("json").Value.String()
	}

	opts.htmlPath = resolveArtifactPath(opts.dir, opts.htmlPath)
	opts.markdownPath = resolveArtifactPath(opts.dir, opts.markdownPath)
	opts.jsonPath = resolveArtifactPath(opts.dir, opts.jsonPath)

	return opts, nil
}

// resolveArtifactPath resolves a configured artifact path against the run
// directory. Absolute paths and disabled (empty) paths pass through as-is.
func resolveArtifactPath(runDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(runDir, path)
}

// runReportWithDeps executes the report command with injected dependencies.
// This enables testing with mock implementations.
func runReportWithDeps(
	ctx context.Context,
	w io.Writer,
	output string,
	opts reportOptions,
	load RunLoader,
) error {
	// Check cancellation at entry
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	if opts.htmlPath == "" && opts.markdownPath == "" && opts.jsonPath == "" {
		return fmt.Errorf("%w: pass --html, --markdown, or --json", errors.ErrNoReportOutputs)
	}

	run, err := load(ctx, opts.dir, opts.slowThreshold)
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	tree := run.Tree()
	meta := report.NewMeta(run.ID, clock.RealClock{})
	sinks := buildReportSinks(tree, meta, opts)

	logger := GetLogger()
	logger.Debug().
		Str("run_id", run.ID).
		Int("artifacts", len(sinks)).
		Msg("writing report artifacts")

	// Write all artifacts concurrently; they only read the shared tree.
	g, gctx := errgroup.WithContext(ctx)
	for _, sink := range sinks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return writeReportArtifact(sink)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := tui.NewOutput(w, output)
	for _, sink := range sinks {
		out.Success(sink.label + " report generated: " + sink.path)
	}
	if output == OutputJSON {
		return out.JSON(reportResult{
			RunID:    run.ID,
			HTML:     opts.htmlPath,
			Markdown: opts.markdownPath,
			JSON:     opts.jsonPath,
		})
	}

	return nil
}

// buildReportSinks assembles the enabled artifacts for a run.
func buildReportSinks(tree *domain.Tree, meta report.Meta, opts reportOptions) []reportSink {
	var sinks []reportSink
	if opts.htmlPath != "" {
		sinks = append(sinks, reportSink{
			label: "HTML",
			path:  opts.htmlPath,
			write: func(w io.Writer) error { return report.WriteHTML(w, tree) },
		})
	}
	if opts.markdownPath != "" {
		sinks = append(sinks, reportSink{
			label: "Markdown",
			path:  opts.markdownPath,
			write: func(w io.Writer) error { return report.WriteMarkdown(w, tree, meta) },
		})
	}
	if opts.jsonPath != "" {
		sinks = append(sinks, reportSink{
			label: "JSON",
			path:  opts.jsonPath,
			write: func(w io.Writer) error { return report.WriteJSON(w, tree, meta) },
		})
	}
	return sinks
}

// writeReportArtifact creates the artifact file and writes one report into it.
func writeReportArtifact(sink reportSink) error {
	f, err := os.Create(sink.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", sink.path, err)
	}
	if err := sink.write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", sink.path, err)
	}
	return nil
}
