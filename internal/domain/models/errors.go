package models

import (
	"errors"
	"fmt"
)

// Terminal failure conditions for one analysis request. Every stage failure
// maps to exactly one of these; no partial results are returned and nothing
// is retried at this layer.
var (
	// ErrInvalidInput marks a request parameter outside its declared domain.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoReferenceData means the reference day resolved to zero complete
	// hours.
	ErrNoReferenceData = errors.New("no data found for reference day")

	// ErrNoCandidateData means the candidate pool is empty after reshaping.
	ErrNoCandidateData = errors.New("no complete candidate days in range")
)

// UpstreamError wraps a transport or non-success failure from a data source.
type UpstreamError struct {
	Source string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// InvalidInputf builds an ErrInvalidInput with detail.
func InvalidInputf(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, a...))
}
