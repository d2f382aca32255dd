package config

import (
	"github.com/mrz1836/spectree/internal/constants"
)

// DefaultConfig returns a new Config with sensible default values.
// These defaults are used as the base layer that can be overridden by
// config files, environment variables, and CLI flags.
//
// Default values are chosen to produce a useful report out of the box
// for a suite that writes into .spectree at the project root.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			// SlowThreshold: half a second is where most suites start
			// calling a unit test slow. Integration-heavy projects
			// should raise this in their config.
			SlowThreshold: constants.DefaultSlowThreshold,

			// Expand: false keeps the default tree compact.
			// Docstrings and fixtures appear on demand via --expand.
			Expand: false,

			// ShowFixtures: true because fixture lists only render in
			// expand mode anyway; opting into expand usually means
			// wanting the full picture.
			ShowFixtures: true,
		},
		Run: RunConfig{
			// Dir: adapters write into .spectree at the project root
			// unless configured otherwise.
			Dir: constants.SpectreeHome,
		},
		Report: ReportConfig{
			// HTML and Markdown are generated by default.
			HTML:     constants.DefaultHTMLReportName,
			Markdown: constants.DefaultMarkdownReportName,

			// JSON: opt-in, mostly consumed by tooling.
			JSON: "",
		},
		Watch: WatchConfig{
			// Interval: 2 seconds balances freshness against
			// re-reading the event file while a suite runs.
			Interval: constants.DefaultWatchInterval,

			// Bell: audible feedback on new failures so a suite can
			// run in a background terminal.
			Bell: true,
		},
	}
}
