package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Adapter errors. Each outward call failure is classified into one
	// of these by the adapter so the resilience executor can pick the
	// right retry strategy.

	// ErrRateLimited indicates the source rejected the call for quota
	// reasons. Retried after a long cooldown, not counted as an
	// ordinary failed attempt.
	ErrRateLimited = errors.New("rate limited")

	// ErrPermanent indicates a client error (bad request, not found on
	// a lookup endpoint). Never retried.
	ErrPermanent = errors.New("permanent source error")

	// ErrTransient indicates a connectivity problem worth retrying.
	ErrTransient = errors.New("transient source error")

	// Resilience errors.

	// ErrCircuitOpen indicates the breaker is open and the call was
	// rejected without invoking the protected function.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrRetriesExhausted indicates every attempt failed.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// Pipeline errors.

	// ErrUnsupportedSource indicates a raw record carries a source
	// system no normaliser is registered for.
	ErrUnsupportedSource = errors.New("unsupported source system")

	// ErrQuotaExceeded indicates the daily write budget is spent.
	ErrQuotaExceeded = errors.New("daily write quota exceeded")
)
