package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is a process-local sliding-window limiter.
// State is held in memory and is NOT safe for multiple server instances
// sharing no common store; a multi-instance deployment needs RedisLimiter.
type MemoryLimiter struct {
	cfg     Config
	history map[string][]time.Time
	mu      sync.Mutex
	now     func() time.Time
}

// NewMemoryLimiter creates an in-memory limiter and starts a background
// sweep that drops keys whose entire history has aged out of the window.
func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	l := &MemoryLimiter{
		cfg:     cfg,
		history: make(map[string][]time.Time),
		now:     time.Now,
	}

	go l.cleanup()

	return l
}

// Check prunes stale timestamps from both keys, rejects if either key's
// remaining count has reached the maximum, and otherwise records the current
// timestamp under both keys.
func (l *MemoryLimiter) Check(_ context.Context, origin, actorID string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	ipKey := originKey(origin)
	ipHistory := l.prune(ipKey, now)
	if len(ipHistory) >= l.cfg.MaxRequests {
		return Decision{RetryAfter: l.retryAfter(ipHistory, now)}, nil
	}

	aKey := actorKey(origin, actorID)
	actorHistory := l.prune(aKey, now)
	if len(actorHistory) >= l.cfg.MaxRequests {
		return Decision{RetryAfter: l.retryAfter(actorHistory, now)}, nil
	}

	l.history[ipKey] = append(ipHistory, now)
	l.history[aKey] = append(actorHistory, now)

	return Decision{Allowed: true}, nil
}

// prune returns the key's timestamps still inside the window, updating the map.
func (l *MemoryLimiter) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-l.cfg.Window)

	kept := l.history[key][:0]
	for _, ts := range l.history[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) == 0 {
		delete(l.history, key)
		return nil
	}

	l.history[key] = kept
	return kept
}

// retryAfter is the time until the oldest retained timestamp exits the window.
func (l *MemoryLimiter) retryAfter(history []time.Time, now time.Time) time.Duration {
	oldest := history[0]
	return oldest.Add(l.cfg.Window).Sub(now)
}

// cleanup periodically drops fully-expired keys so idle origins don't leak.
func (l *MemoryLimiter) cleanup() {
	ticker := time.NewTicker(l.cfg.Window)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := l.now()
		cutoff := now.Add(-l.cfg.Window)
		for key, history := range l.history {
			if len(history) == 0 || !history[len(history)-1].After(cutoff) {
				delete(l.history, key)
			}
		}
		l.mu.Unlock()
	}
}
