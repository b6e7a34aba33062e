package application

import "errors"

// Sentinel errors returned by VaultService. Callers match them with errors.Is.
var (
	// ErrValidation indicates a required field was missing or empty.
	ErrValidation = errors.New("validation failed")

	// ErrStorage indicates the underlying store failed to read or write.
	ErrStorage = errors.New("storage failure")
)
