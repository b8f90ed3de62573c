package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrMissingColumn indicates a table lacks a required column
	ErrMissingColumn = errors.New("missing required column")

	// ErrAlignment indicates per-corpus tables could not be concatenated
	ErrAlignment = errors.New("table alignment mismatch")

	// ErrBadBoolean indicates a boolean column holds unconvertible values
	ErrBadBoolean = errors.New("boolean conversion failed")

	// ErrNotFound indicates a required resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")
)
