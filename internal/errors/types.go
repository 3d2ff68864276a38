// Package errors classifies remote failures so the save executor can decide
// whether a job may be retried when retries are configured.
package errors

import "fmt"

// ErrorCategory determines how a failure is handled by retry policy.
type ErrorCategory int

const (
	// Recoverable failures may be retried with exponential backoff.
	// Examples: 5xx responses, network timeouts, connection resets.
	Recoverable ErrorCategory = iota

	// Irrecoverable failures must not be retried.
	// Examples: 400, 401, 403, 404 responses.
	Irrecoverable
)

func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// ClassifiedError wraps a failure with categorization metadata.
type ClassifiedError struct {
	Category   ErrorCategory
	StatusCode int    // HTTP status (0 for non-HTTP failures)
	Body       string // response body, kept for debugging
	Underlying error
}

func (e *ClassifiedError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %v", e.Category, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("[%s] %v", e.Category, e.Underlying)
}

func (e *ClassifiedError) Unwrap() error { return e.Underlying }

// IsIrrecoverable reports whether err must not be retried.
func IsIrrecoverable(err error) bool {
	if classified, ok := err.(*ClassifiedError); ok {
		return classified.Category == Irrecoverable
	}
	return false
}
