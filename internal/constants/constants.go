// Package constants provides centralized constant values used throughout spectree.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// File names written by runner adapters into the run directory.
const (
	// ChainsFileName is the JSON file holding the naming chains captured at
	// collection time, one chain per discovered test.
	ChainsFileName = "chains.json"

	// EventsFileName is the JSON Lines file that adapters append phase
	// result events to while the run executes.
	EventsFileName = "events.jsonl"
)

// Directory names and paths used by spectree for organizing data.
const (
	// SpectreeHome is the hidden directory name where spectree stores its data.
	// Under the user's home directory it holds global config and logs; at a
	// project root it is the default run directory adapters write into.
	SpectreeHome = ".spectree"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// Log file and configuration file names.
const (
	// CLILogFileName is the global CLI log file for host operations.
	// This file is located in ~/.spectree/logs/spectree.log
	CLILogFileName = "spectree.log"

	// GlobalConfigName is the name of the global spectree configuration file.
	// This file is located in the spectree home directory.
	GlobalConfigName = "config.yaml"

	// ProjectConfigName is the name of the project-specific configuration file.
	// This file is located in the project root directory.
	ProjectConfigName = ".spectree.yaml"
)

// Default report artifact names, relative to the run directory.
const (
	// DefaultHTMLReportName is the default file name for the HTML report.
	DefaultHTMLReportName = "report.html"

	// DefaultMarkdownReportName is the default file name for the Markdown summary.
	DefaultMarkdownReportName = "report.md"
)

// Rendering and watch defaults.
const (
	// DefaultSlowThreshold is the duration in seconds above which a test is
	// marked as slow in rendered output.
	DefaultSlowThreshold = 0.5

	// DefaultWatchInterval is the refresh interval for watch mode.
	DefaultWatchInterval = 2 * time.Second

	// MinWatchInterval is the lowest refresh interval watch mode accepts.
	// Anything shorter burns CPU re-reading the event file for no benefit.
	MinWatchInterval = 100 * time.Millisecond
)

// Log rotation settings for the global CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before the log rotates.
	LogMaxSizeMB = 10

	// LogMaxBackups is the maximum number of rotated log files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum number of days to retain rotated logs.
	LogMaxAgeDays = 28

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true
)

// Schema version constants for data migration support.
const (
	// ChainsSchemaVersion is the current version of the chains.json schema.
	// This enables forward-compatible schema migrations.
	ChainsSchemaVersion = "1.0"
)

// DescribeBlockType is the runtime type name adapters report for a describe
// grouping block. Classification matches against this literal because only
// the type name survives serialization.
const DescribeBlockType = "DescribeBlock"
