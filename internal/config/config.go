// Package config provides configuration management for spectree with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (SPECTREE_* prefix)
//  3. Project config (.spectree.yaml at the project root)
//  4. Global config (~/.spectree/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import "time"

// Config is the root configuration structure for spectree.
// It contains all configuration sections for the application.
type Config struct {
	// Render contains settings for terminal tree rendering.
	Render RenderConfig `yaml:"render" mapstructure:"render"`

	// Run contains settings for locating run data on disk.
	Run RunConfig `yaml:"run" mapstructure:"run"`

	// Report contains settings for generated report artifacts.
	Report ReportConfig `yaml:"report" mapstructure:"report"`

	// Watch contains settings for live watch mode.
	Watch WatchConfig `yaml:"watch" mapstructure:"watch"`
}

// RenderConfig contains settings for terminal tree rendering.
// These settings control how the reconstructed describe tree is displayed.
type RenderConfig struct {
	// SlowThreshold is the duration in seconds above which a test is
	// flagged as slow in rendered output.
	// Default: 0.5
	SlowThreshold float64 `yaml:"slow_threshold" mapstructure:"slow_threshold"`

	// Expand shows docstrings and fixture lists next to describe blocks
	// and tests without passing --expand on every invocation.
	// Default: false
	Expand bool `yaml:"expand" mapstructure:"expand"`

	// ShowFixtures includes fixture dependency lists in expanded output.
	// Set to false to keep expanded trees focused on docstrings.
	// Default: true
	ShowFixtures bool `yaml:"show_fixtures" mapstructure:"show_fixtures"`
}

// RunConfig contains settings for locating run data.
// Test runner adapters write chains.json and events.jsonl into the run directory.
type RunConfig struct {
	// Dir is the run directory to load when no directory is given on the
	// command line. Relative paths resolve against the working directory.
	// Default: ".spectree"
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// ReportConfig contains settings for generated report artifacts.
// Output paths are relative to the run directory unless absolute.
type ReportConfig struct {
	// HTML is the output path of the standalone HTML report.
	// An empty path disables HTML generation.
	// Default: "report.html"
	HTML string `yaml:"html" mapstructure:"html"`

	// Markdown is the output path of the Markdown summary.
	// An empty path disables Markdown generation.
	// Default: "report.md"
	Markdown string `yaml:"markdown" mapstructure:"markdown"`

	// JSON is the output path of the JSON tree export.
	// An empty path disables JSON generation.
	// Default: "" (disabled)
	JSON string `yaml:"json" mapstructure:"json"`
}

// WatchConfig contains settings for live watch mode.
type WatchConfig struct {
	// Interval is the poll interval between event file reads in watch mode.
	// Must be at least 100ms.
	// Default: 2s
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Bell rings the terminal bell when watch mode observes a new failure.
	// Users who find this disruptive can disable it in their config.
	// Default: true
	Bell bool `yaml:"bell" mapstructure:"bell"`
}
