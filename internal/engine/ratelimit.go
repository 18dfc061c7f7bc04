package engine

import (
	"sync"
	"time"
)

// RateLimiter bounds how often one user may hit the NLU path, with a
// per-user rolling window. It only guards the costly interpretation call;
// detectors and stage handlers are never limited.
type RateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	calls  map[string][]time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		calls:  make(map[string][]time.Time),
	}
}

// Allow records one call attempt for key at the given instant and reports
// whether it is within the limit.
func (l *RateLimiter) Allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-l.window)
	recent := l.calls[key][:0]
	for _, t := range l.calls[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.limit {
		l.calls[key] = recent
		return false
	}

	l.calls[key] = append(recent, now)
	return true
}
