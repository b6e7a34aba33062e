package driven

import (
	"context"
	"errors"
)

// ErrUnexpectedStatus is returned by BreachClient when the range endpoint
// answers with a non-200 status code.
var ErrUnexpectedStatus = errors.New("unexpected status from breach range endpoint")

// BreachClient defines the driven port for a k-anonymity breach lookup service.
// Only the 5-character hash prefix ever leaves the process.
type BreachClient interface {
	// Range returns the raw response body listing hash suffixes for prefix.
	Range(ctx context.Context, prefix string) (string, error)
}
