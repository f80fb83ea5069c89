// Package ratelimiter implements per-identity token buckets.
package ratelimiter

import (
	"sync"
	"time"
)

type bucket struct {
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
}

// UserRateLimiter keeps one token bucket per identity. Buckets idle for longer
// than expirationTime are dropped on the next sweep.
type UserRateLimiter struct {
	mu             sync.Mutex
	buckets        map[string]*bucket
	rate           float64
	capacity       float64
	expirationTime time.Duration
	lastSweep      time.Time
	now            func() time.Time
}

// New creates a limiter refilling rate tokens per second up to capacity.
func New(rate, capacity float64, expirationTime time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		buckets:        make(map[string]*bucket),
		rate:           rate,
		capacity:       capacity,
		expirationTime: expirationTime,
		now:            time.Now,
	}
}

// Allow takes a token from identity's bucket if one is available.
func (l *UserRateLimiter) Allow(identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[identity]
	if !ok {
		b = &bucket{tokens: l.capacity, lastRefill: now}
		l.buckets[identity] = b
	}
	b.lastSeen = now

	b.tokens += now.Sub(b.lastRefill).Seconds() * l.rate
	if b.tokens > l.capacity {
		b.tokens = l.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

func (l *UserRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.expirationTime {
		return
	}
	for id, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.expirationTime {
			delete(l.buckets, id)
		}
	}
	l.lastSweep = now
}

// Len returns the number of tracked identities.
func (l *UserRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
