// Package cli provides the command-line interface for spectree.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/spectree/internal/config"
	"github.com/mrz1836/spectree/internal/constants"
	"github.com/mrz1836/spectree/internal/ctxutil"
	"github.com/mrz1836/spectree/internal/errors"
	"github.com/mrz1836/spectree/internal/tui"
)

// InitFlags holds flags specific to the init command.
type InitFlags struct {
	// NoInteractive skips all prompts and uses default values.
	NoInteractive bool
	// Global forces configuration to be saved to global config only.
	Global bool
	// Project forces configuration to be saved to project config only.
	Project bool
	// Force overwrites an existing project configuration file.
	Force bool
}

// fileConfig mirrors config.Config with YAML-friendly field types for
// writing. The watch interval is a string so the file reads "2s" rather
// than a nanosecond count.
type fileConfig struct {
	Render fileRenderConfig `yaml:"render"`
	Run    fileRunConfig    `yaml:"run"`
	Report fileReportConfig `yaml:"report"`
	Watch  fileWatchConfig  `yaml:"watch"`
}

// fileRenderConfig holds the render section of a written config file.
type fileRenderConfig struct {
	SlowThreshold float64 `yaml:"slow_threshold"`
	Expand        bool    `yaml:"expand"`
	ShowFixtures  bool    `yaml:"show_fixtures"`
}

// fileRunConfig holds the run section of a written config file.
type fileRunConfig struct {
	Dir string `yaml:"dir"`
}

// fileReportConfig holds the report section of a written config file.
type fileReportConfig struct {
	HTML     string `yaml:"html"`
	Markdown string `yaml:"markdown"`
	JSON     string `yaml:"json,omitempty"`
}

// fileWatchConfig holds the watch section of a written config file.
type fileWatchConfig struct {
	Interval string `yaml:"interval"`
	Bell     bool   `yaml:"bell"`
}

// newFileConfig converts a runtime configuration into its file form.
func newFileConfig(cfg *config.Config) fileConfig {
	return fileConfig{
		Render: fileRenderConfig{
			SlowThreshold: cfg.Render.SlowThreshold,
			Expand:        cfg.Render.Expand,
			ShowFixtures:  cfg.Render.ShowFixtures,
		},
		Run: fileRunConfig{
			Dir: cfg.Run.Dir,
		},
		Report: fileReportConfig{
			HTML:     cfg.Report.HTML,
			Markdown: cfg.Report.Markdown,
			JSON:     cfg.Report.JSON,
		},
		Watch: fileWatchConfig{
			Interval: cfg.Watch.Interval.String(),
			Bell:     cfg.Watch.Bell,
		},
	}
}

// initStyles contains styling for the init command output.
// Using a struct avoids global variables while keeping styles reusable.
type initStyles struct {
	header  lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	info    lipgloss.Style
	dim     lipgloss.Style
}

// newInitStyles creates the styles for init command output.
func newInitStyles() *initStyles {
	return &initStyles{
		header:  lipgloss.NewStyle().Bold(true).Foreground(tui.ColorPrimary).MarginBottom(1),
		success: lipgloss.NewStyle().Foreground(tui.ColorSuccess).Bold(true),
		warn:    lipgloss.NewStyle().Foreground(tui.ColorWarning),
		info:    lipgloss.NewStyle().Foreground(tui.ColorPrimary),
		dim:     lipgloss.NewStyle().Foreground(tui.ColorMuted),
	}
}

// newInitCmd creates the init command for setting up spectree.
func newInitCmd(flags *InitFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize spectree configuration",
		Long: `Initialize spectree with a guided setup wizard.

The wizard walks you through the rendering and watch-mode settings:
  - Slow test threshold
  - Expand mode and fixture display defaults
  - Watch refresh interval and bell notifications

Configuration can be saved to:
  - Global: ~/.spectree/config.yaml (applies everywhere)
  - Project: .spectree.yaml in the current directory (overrides global)

Use --no-interactive for automated setups with the built-in defaults.
Use --global or --project to skip the location prompt.
Use --force to overwrite an existing project configuration file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.Context(), cmd.OutOrStdout(), flags)
		},
		SilenceUsage: true,
	}

	// Add init-specific flags
	cmd.Flags().BoolVar(&flags.NoInteractive, "no-interactive", false, "skip all prompts and use default values")
	cmd.Flags().BoolVar(&flags.Global, "global", false, "save to global config only (~/.spectree/config.yaml)")
	cmd.Flags().BoolVar(&flags.Project, "project", false, "save to project config only (.spectree.yaml)")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "overwrite an existing project config")
	cmd.MarkFlagsMutuallyExclusive("global", "project")

	return cmd
}

// AddInitCommand adds the init command to the root command.
func AddInitCommand(rootCmd *cobra.Command) {
	flags := &InitFlags{}
	rootCmd.AddCommand(newInitCmd(flags))
}

// runInit executes the init wizard.
func runInit(ctx context.Context, w io.Writer, flags *InitFlags) error {
	// Check cancellation at entry
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	// Respect NO_COLOR
	tui.CheckNoColor()

	styles := newInitStyles()
	displayInitHeader(w, styles)

	cfg := config.DefaultConfig()

	if !flags.NoInteractive {
		// The wizard needs a terminal to prompt on
		if !tui.IsInteractive() {
			return fmt.Errorf("%w: run 'spectree init --no-interactive' to write the defaults",
				errors.ErrInteractiveRequired)
		}
		if err := runInitWizard(ctx, cfg); err != nil {
			return err
		}
	}

	saveToProject, saveToGlobal := determineSaveTargets(w, flags, styles)

	fileCfg := newFileConfig(cfg)

	var configPaths []string
	if saveToProject {
		path, err := saveProjectConfig(fileCfg, flags.Force)
		if err != nil {
			return err
		}
		configPaths = append(configPaths, path)
	}
	if saveToGlobal {
		path, err := saveGlobalConfig(fileCfg)
		if err != nil {
			return err
		}
		configPaths = append(configPaths, path)
	}

	displayInitSuccess(w, styles, configPaths, saveToProject, flags.NoInteractive)
	return nil
}

// displayInitHeader shows the spectree banner.
func displayInitHeader(w io.Writer, styles *initStyles) {
	header := `
    ╔══════════════════════════════════════╗
    ║             S P E C T R E E          ║
    ║      Behavior-style test trees       ║
    ╚══════════════════════════════════════╝`

	_, _ = fmt.Fprintln(w, styles.header.Render(header))
	_, _ = fmt.Fprintln(w)
}

// runInitWizard collects configuration values interactively, mutating cfg
// in place. Canceling the wizard leaves cfg untouched.
func runInitWizard(ctx context.Context, cfg *config.Config) error {
	// Check cancellation
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	// Numeric and duration inputs go through strings so validation can
	// show a message instead of silently rejecting keystrokes.
	slowThreshold := strconv.FormatFloat(cfg.Render.SlowThreshold, 'g', -1, 64)
	interval := cfg.Watch.Interval.String()
	expand := cfg.Render.Expand
	showFixtures := cfg.Render.ShowFixtures
	bell := cfg.Watch.Bell

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Slow test threshold (seconds)").
				Description("Tests slower than this get the slow marker in every output").
				Value(&slowThreshold).
				Validate(validateSlowThresholdInput),
			huh.NewConfirm().
				Title("Expand docstrings by default?").
				Description("Expand mode appends docstrings and fixture lists to tree lines").
				Affirmative("Yes").
				Negative("No").
				Value(&expand),
			huh.NewConfirm().
				Title("Show fixture lists in expand mode?").
				Affirmative("Yes").
				Negative("No").
				Value(&showFixtures),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Watch refresh interval").
				Description("How often watch mode polls for new events (e.g. 500ms, 2s)").
				Value(&interval).
				Validate(validateIntervalInput),
			huh.NewConfirm().
				Title("Ring the terminal bell on new failures?").
				Affirmative("Yes").
				Negative("No").
				Value(&bell),
		),
	).WithTheme(tui.Theme())

	if err := form.Run(); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return errors.ErrOperationCanceled
		}
		return fmt.Errorf("configuration wizard failed: %w", err)
	}

	parsedThreshold, err := strconv.ParseFloat(strings.TrimSpace(slowThreshold), 64)
	if err != nil {
		return errors.Wrap(err, "parse slow threshold")
	}
	parsedInterval, err := time.ParseDuration(strings.TrimSpace(interval))
	if err != nil {
		return errors.Wrap(err, "parse watch interval")
	}

	cfg.Render.SlowThreshold = parsedThreshold
	cfg.Render.Expand = expand
	cfg.Render.ShowFixtures = showFixtures
	cfg.Watch.Interval = parsedInterval
	cfg.Watch.Bell = bell

	return nil
}

// validateSlowThresholdInput validates the wizard's slow threshold field.
func validateSlowThresholdInput(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return stderrors.New("enter a number of seconds, e.g. 0.5")
	}
	if v < 0 {
		return stderrors.New("threshold must not be negative")
	}
	return nil
}

// validateIntervalInput validates the wizard's watch interval field.
func validateIntervalInput(s string) error {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return stderrors.New("enter a duration like 500ms or 2s")
	}
	if d < constants.MinWatchInterval {
		return fmt.Errorf("interval must be at least %s", constants.MinWatchInterval)
	}
	return nil
}

// determineSaveTargets decides whether to save to project and/or global
// config. Returns (saveToProject, saveToGlobal).
func determineSaveTargets(w io.Writer, flags *InitFlags, styles *initStyles) (bool, bool) {
	if flags.Project {
		return true, false
	}
	if flags.Global {
		return false, true
	}
	if flags.NoInteractive {
		return false, true
	}

	saveToProject, err := promptProjectConfigCreation(w, styles)
	if err != nil {
		// On prompt error, fall back to global only
		return false, true
	}
	if saveToProject {
		return true, false
	}
	return false, true
}

// promptProjectConfigCreation prompts the user to create project-specific config.
func promptProjectConfigCreation(w io.Writer, styles *initStyles) (bool, error) {
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.dim.Render("  A project configuration overrides the global one for this directory."))
	_, _ = fmt.Fprintln(w, styles.dim.Render("  Recommended for shared projects with team settings."))
	_, _ = fmt.Fprintln(w)

	var createProjectConfig bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Create project-specific configuration?").
				Description("Creates .spectree.yaml in the current directory").
				Affirmative("Yes (project)").
				Negative("No (global config only)").
				Value(&createProjectConfig),
		),
	).WithTheme(tui.Theme())

	if err := form.Run(); err != nil {
		return false, err
	}

	return createProjectConfig, nil
}

// saveProjectConfig writes the configuration to .spectree.yaml in the
// current directory and returns the written path. An existing file is only
// replaced when force is set.
func saveProjectConfig(cfg fileConfig, force bool) (string, error) {
	path := constants.ProjectConfigName
	if _, err := os.Stat(path); err == nil && !force {
		return "", errors.Wrapf(errors.ErrProjectConfigExists,
			"%s already exists, use --force to overwrite", path)
	}

	header := fmt.Sprintf("# spectree project configuration\n# Generated by spectree init on %s\n# This file overrides ~/.spectree/config.yaml for this project.\n\n",
		time.Now().Format(time.RFC3339))

	if err := writeConfigFile(path, header, cfg); err != nil {
		return "", fmt.Errorf("failed to write project config: %w", err)
	}
	return path, nil
}

// saveGlobalConfig writes the configuration to ~/.spectree/config.yaml and
// returns the written path. An existing file is backed up first.
func saveGlobalConfig(cfg fileConfig) (string, error) {
	dir, err := config.GlobalConfigDir()
	if err != nil {
		return "", err
	}

	// Create ~/.spectree with restrictive permissions
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, constants.GlobalConfigName)

	// Back up an existing config before overwriting, best effort
	if _, statErr := os.Stat(path); statErr == nil {
		backupPath := path + ".backup"
		if copyErr := copyFile(path, backupPath); copyErr != nil {
			logger := GetLogger()
			logger.Warn().
				Err(copyErr).
				Str("backup_path", backupPath).
				Msg("failed to create config backup")
		}
	}

	header := fmt.Sprintf("# spectree configuration\n# Generated by spectree init on %s\n\n",
		time.Now().Format(time.RFC3339))

	if err := writeConfigFile(path, header, cfg); err != nil {
		return "", fmt.Errorf("failed to write global config: %w", err)
	}
	return path, nil
}

// writeConfigFile marshals cfg to YAML and writes it with the given header.
func writeConfigFile(path, header string, cfg fileConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write config file with restrictive permissions
	return os.WriteFile(path, []byte(header+string(data)), 0o600)
}

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src) //nolint:gosec // Source is config file
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o600)
}

// displayInitSuccess shows the success message after configuration.
func displayInitSuccess(w io.Writer, styles *initStyles, configPaths []string, projectConfigCreated, nonInteractive bool) {
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.success.Render("✓ spectree configuration saved"))
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, styles.info.Render("Configuration saved to:"))
	for _, path := range configPaths {
		_, _ = fmt.Fprintln(w, styles.dim.Render("  "+path))
	}
	_, _ = fmt.Fprintln(w)

	// The run directory holds generated artifacts, not source
	if projectConfigCreated {
		_, _ = fmt.Fprintln(w, styles.warn.Render("Tip: add the run directory to .gitignore:"))
		_, _ = fmt.Fprintln(w, styles.dim.Render("  "+constants.SpectreeHome+"/"))
		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintln(w, styles.info.Render("Suggested next commands:"))
	_, _ = fmt.Fprintln(w, styles.dim.Render("  spectree render   - Render the latest run"))
	_, _ = fmt.Fprintln(w, styles.dim.Render("  spectree watch    - Follow a run live"))
	_, _ = fmt.Fprintln(w, styles.dim.Render("  spectree report   - Write HTML and Markdown artifacts"))
	_, _ = fmt.Fprintln(w)

	if nonInteractive {
		_, _ = fmt.Fprintln(w, styles.dim.Render("Note: Non-interactive mode used default values."))
		_, _ = fmt.Fprintln(w, styles.dim.Render("Edit the config file or run 'spectree init' interactively to customize."))
	}
}
