// Package errors provides centralized error handling for spectree.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrRunNotFound indicates that the run directory does not exist or
	// contains no run data.
	ErrRunNotFound = errors.New("run not found")

	// ErrChainsNotFound indicates that the chains snapshot file is missing
	// from the run directory.
	ErrChainsNotFound = errors.New("chains file not found")

	// ErrChainsCorrupted indicates that the chains snapshot file exists but
	// could not be decoded.
	ErrChainsCorrupted = errors.New("chains file corrupted")

	// ErrUnsupportedSchemaVersion indicates that the chains snapshot was
	// written by an incompatible producer version.
	ErrUnsupportedSchemaVersion = errors.New("unsupported chains schema version")

	// ErrEventMalformed indicates that a single event line could not be
	// decoded. Readers skip such lines; the sentinel exists so the skip
	// can be logged with a stable category.
	ErrEventMalformed = errors.New("malformed event line")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigNotFound indicates that the configuration file was not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidSlowThreshold indicates that the slow threshold is negative
	// or otherwise unusable.
	ErrInvalidSlowThreshold = errors.New("invalid slow threshold")

	// ErrValueOutOfRange indicates that a value is outside the allowed range.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrInvalidDuration indicates that a duration format is invalid.
	ErrInvalidDuration = errors.New("invalid duration format")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrJSONErrorOutput indicates that an error has already been output as JSON.
	// This ensures a non-zero exit code while preventing duplicate error messages.
	// Commands should silence cobra's error printing when this is returned.
	ErrJSONErrorOutput = errors.New("error output as JSON")

	// ErrInvalidArgument indicates that an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflictingFlags indicates that mutually exclusive flags were specified.
	ErrConflictingFlags = errors.New("conflicting flags specified")

	// ErrOperationCanceled indicates the user canceled an operation.
	ErrOperationCanceled = errors.New("operation canceled by user")

	// ErrInteractiveRequired indicates that interactive prompts are required
	// but no terminal is available.
	ErrInteractiveRequired = errors.New("interactive prompt required")

	// ErrProjectConfigExists indicates an attempt to initialize a project
	// that already has a configuration file.
	ErrProjectConfigExists = errors.New("project config already exists")

	// ErrWatchIntervalTooShort indicates that the watch interval is below minimum.
	ErrWatchIntervalTooShort = errors.New("watch interval too short")

	// ErrWatchModeJSONUnsupported indicates that watch mode does not support JSON output.
	ErrWatchModeJSONUnsupported = errors.New("watch mode does not support JSON output")

	// ErrNoReportOutputs indicates that a report was requested without
	// selecting any output format.
	ErrNoReportOutputs = errors.New("no report outputs selected")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}

// Wrap adds context to errors at package boundaries.
// It returns nil if err is nil, allowing for safe inline usage.
//
// The wrapped error preserves the original error chain, enabling
// errors.Is() checks to continue working:
//
//	if err := loadRun(dir); err != nil {
//	    return errors.Wrap(err, "failed to load run")
//	}
//
// Callers can still check for sentinel errors:
//
//	if errors.Is(err, errors.ErrChainsCorrupted) {
//	    // Handle corrupted snapshot
//	}
//
// IMPORTANT: Only wrap errors at package boundaries to avoid
// overly nested error messages.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf adds formatted context to errors at package boundaries.
// It returns nil if err is nil, allowing for safe inline usage.
//
// This is useful when the context message needs variable interpolation:
//
//	return errors.Wrapf(err, "failed to decode event %d", lineNo)
//
// Like Wrap, the wrapped error preserves the original error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}
