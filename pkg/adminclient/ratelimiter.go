package adminclient

import (
	"sync"
	"time"
)

// AttemptLimiter is an advisory client-side mirror of the backend login
// limiter: 5 failures inside a 15 minute window. It saves a doomed round
// trip; the backend remains authoritative.
type AttemptLimiter struct {
	mu        sync.Mutex
	threshold int
	window    time.Duration
	attempts  map[string][]time.Time
	nowFn     func() time.Time
}

func NewAttemptLimiter(threshold int, window time.Duration) *AttemptLimiter {
	if threshold <= 0 {
		threshold = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &AttemptLimiter{
		threshold: threshold,
		window:    window,
		attempts:  make(map[string][]time.Time),
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
}

// Allow reports whether another attempt for key should be sent, and the wait
// until the oldest tracked failure leaves the window when it should not.
func (l *AttemptLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFn()
	recent := l.prune(key, now)
	if len(recent) < l.threshold {
		return true, 0
	}
	return false, recent[0].Add(l.window).Sub(now)
}

// Remaining reports how many attempts for key are left inside the window.
func (l *AttemptLimiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n := l.threshold - len(l.prune(key, l.nowFn())); n > 0 {
		return n
	}
	return 0
}

// RecordFailure tracks a failed attempt for key.
func (l *AttemptLimiter) RecordFailure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFn()
	l.attempts[key] = append(l.prune(key, now), now)
}

// Reset clears the window for key, typically after a successful login.
func (l *AttemptLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
}

func (l *AttemptLimiter) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	kept := l.attempts[key][:0]
	for _, at := range l.attempts[key] {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	if len(kept) == 0 {
		delete(l.attempts, key)
		return nil
	}
	l.attempts[key] = kept
	return kept
}
