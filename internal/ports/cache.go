package ports

import (
	"context"
	"time"
)

// LockoutState is the current rate-limit envelope for a login key.
// It is cache-backed to avoid hot writes on every failed login.
type LockoutState struct {
	FailedCount  int
	WindowStart  time.Time
	BlockedUntil *time.Time
}

// Remaining reports attempts left before the threshold trips.
func (s LockoutState) Remaining(threshold int) int {
	if n := threshold - s.FailedCount; n > 0 {
		return n
	}
	return 0
}

// LockoutStore handles short-lived brute-force protection state with
// sliding-window semantics: failures older than the window do not count.
type LockoutStore interface {
	Get(ctx context.Context, key string) (LockoutState, error)
	RecordFailure(ctx context.Context, key string, now time.Time, threshold int, window, blockFor time.Duration) (LockoutState, error)
	Clear(ctx context.Context, key string) error
}

// ProcessedSessionStore keeps short-lived replay markers for handled payment
// sessions. Losing a marker is safe: the order upsert is idempotent anyway,
// the marker only saves a Stripe round trip.
type ProcessedSessionStore interface {
	MarkProcessed(ctx context.Context, sessionID string, ttl time.Duration) error
	IsProcessed(ctx context.Context, sessionID string) (bool, error)
}
