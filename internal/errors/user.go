package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries is the pre-built mapping of sentinel errors to their user-facing messages.
// This single source of truth ensures UserMessage and Actionable stay in sync.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Run Data
	// ===================
	{
		err: ErrRunNotFound,
		info: ErrorInfo{
			Message: "No run data found in the run directory.",
			Action:  "Run your test suite with the collector enabled, or point --run-dir at an existing run.",
		},
	},
	{
		err: ErrChainsNotFound,
		info: ErrorInfo{
			Message: "The chains snapshot is missing from the run directory.",
			Action:  "Re-run the test session; the collector writes chains.json at collection time.",
		},
	},
	{
		err: ErrChainsCorrupted,
		info: ErrorInfo{
			Message: "The chains snapshot could not be decoded.",
			Action:  "Delete the run directory and re-run the test session to regenerate it.",
		},
	},
	{
		err: ErrUnsupportedSchemaVersion,
		info: ErrorInfo{
			Message: "The run data was written by an incompatible collector version.",
			Action:  "Upgrade spectree or regenerate the run data with a matching collector.",
		},
	},

	// ===================
	// Configuration
	// ===================
	{
		err: ErrConfigNotFound,
		info: ErrorInfo{
			Message: "No configuration file was found.",
			Action:  "Run 'spectree init' to create one, or rely on the built-in defaults.",
		},
	},
	{
		err: ErrInvalidSlowThreshold,
		info: ErrorInfo{
			Message: "The slow threshold must be a non-negative number of seconds.",
			Action:  "Adjust slow_threshold in your config or the --slow flag value.",
		},
	},
	{
		err: ErrInvalidDuration,
		info: ErrorInfo{
			Message: "A duration value could not be parsed.",
			Action:  "Use Go duration syntax, e.g. '500ms', '2s' or '1m30s'.",
		},
	},

	// ===================
	// CLI Usage
	// ===================
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "The requested output format is not supported.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrConflictingFlags,
		info: ErrorInfo{
			Message: "Mutually exclusive flags were combined.",
			Action:  "Check the command help for valid flag combinations.",
		},
	},
	{
		err: ErrInvalidArgument,
		info: ErrorInfo{
			Message: "An invalid argument was provided.",
			Action:  "Check the command help for valid arguments.",
		},
	},
	{
		err: ErrInteractiveRequired,
		info: ErrorInfo{
			Message: "This command needs an interactive terminal.",
			Action:  "Run from a terminal, or pass the required values as flags.",
		},
	},
	{
		err: ErrProjectConfigExists,
		info: ErrorInfo{
			Message: "A project configuration file already exists.",
			Action:  "Use --force to overwrite it.",
		},
	},
	{
		err: ErrOperationCanceled,
		info: ErrorInfo{
			Message: "Operation canceled.",
			Action:  "",
		},
	},

	// ===================
	// Watch & Reports
	// ===================
	{
		err: ErrWatchIntervalTooShort,
		info: ErrorInfo{
			Message: "The watch refresh interval is too short.",
			Action:  "Use an interval of at least 100ms.",
		},
	},
	{
		err: ErrWatchModeJSONUnsupported,
		info: ErrorInfo{
			Message: "Watch mode renders a live view and cannot emit JSON.",
			Action:  "Use 'spectree render --output json' for machine-readable output.",
		},
	},
	{
		err: ErrNoReportOutputs,
		info: ErrorInfo{
			Message: "No report outputs were selected.",
			Action:  "Pass at least one of --html, --markdown or --json.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
// Built once from errorInfoEntries during package initialization.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

// buildErrorInfoMap creates a map from the errorInfoEntries slice.
// This is called once during package init for O(1) direct lookups.
func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// It first tries O(1) direct map lookup for unwrapped sentinel errors,
// then falls back to errors.Is() traversal for wrapped errors.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	// Fast path: O(1) lookup for direct sentinel errors
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	// Slow path: errors.Is() for wrapped errors
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// This function maps sentinel errors to helpful, actionable messages
// that are suitable for display to end users.
//
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
//
// For errors that are not recoverable or have no clear action, the action
// string will be empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
