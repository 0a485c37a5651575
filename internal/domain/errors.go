package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	// Keeping this sentinel in domain allows adapters to map it consistently to 404/NOT_FOUND.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidCredentials hides whether email or password failed.
	// The reason is to prevent account-enumeration side channels.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRateLimited signals temporary lockout after repeated failed attempts.
	// It is never collapsed into ErrInvalidCredentials so clients can show retry timing.
	ErrRateLimited  = errors.New("rate limited")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	// ErrIdempotencyConflict is returned when an Idempotency-Key is replayed
	// with a different request body.
	ErrIdempotencyConflict = errors.New("idempotency conflict")
	// ErrPaymentIncomplete means the checkout session exists but has not been paid.
	ErrPaymentIncomplete = errors.New("payment not completed")
	// ErrDownloadExpired and ErrDownloadExhausted are distinct from ErrNotFound
	// so buyers receive an actionable message instead of a generic failure.
	ErrDownloadExpired   = errors.New("download link expired")
	ErrDownloadExhausted = errors.New("download limit exceeded")
	// ErrInvalidTransition guards the forward-only order lifecycle.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// RateLimitError carries the retry horizon so the transport can emit a
// Retry-After header. It unwraps to ErrRateLimited for errors.Is checks.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: retry after %s", e.RetryAfter.Round(time.Second))
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }
