package market

import "fmt"

// UpstreamError reports a failure from one provider: network error,
// malformed payload, a rate-limit marker embedded in a 200 response, or
// ticker not found. It is recovered locally by falling back to the next
// provider in the chain.
type UpstreamError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Reason)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError creates an UpstreamError without a wrapped cause.
func NewUpstreamError(provider, reason string) *UpstreamError {
	return &UpstreamError{Provider: provider, Reason: reason}
}

// WrapUpstreamError creates an UpstreamError wrapping an underlying error.
func WrapUpstreamError(provider, reason string, err error) *UpstreamError {
	return &UpstreamError{Provider: provider, Reason: reason, Err: err}
}

// NoDataError means every provider in the chain failed for a ticker.
// It wraps the last provider failure so the caller can surface its
// message as a hint.
type NoDataError struct {
	Ticker string
	Last   error
}

func (e *NoDataError) Error() string {
	if e.Last != nil {
		return fmt.Sprintf("no data available for %s: %v", e.Ticker, e.Last)
	}
	return fmt.Sprintf("no data available for %s", e.Ticker)
}

func (e *NoDataError) Unwrap() error {
	return e.Last
}
