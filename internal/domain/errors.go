package domain

import "errors"

// Sentinel errors shared across repositories and services.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when the request is structurally invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTransition is returned when a broadcast status change is not
	// allowed by the lifecycle state machine.
	ErrInvalidTransition = errors.New("invalid status transition")
)
