// Package testutil provides testing utilities for spectree.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockFileNotFound indicates a mock file was not found (used in tests).
	ErrMockFileNotFound = errors.New("file not found")

	// ErrMockLoadFailed indicates a mock run load failed (used in tests).
	ErrMockLoadFailed = errors.New("load failed")

	// ErrMockWriteFailed indicates a mock writer failed (used in tests).
	ErrMockWriteFailed = errors.New("write failed")

	// ErrMockNotFound indicates a mock resource was not found (used in tests).
	ErrMockNotFound = errors.New("not found")

	// ErrMockRefreshFailed indicates a mock session refresh failed (used in tests).
	ErrMockRefreshFailed = errors.New("refresh failed")

	// ErrMockProgramFailed indicates a mock terminal program failed (used in tests).
	ErrMockProgramFailed = errors.New("program failed")
)
