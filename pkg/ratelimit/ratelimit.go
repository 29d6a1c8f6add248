// Package ratelimit is an in-memory fixed-window attempt counter keyed by an
// arbitrary string (the login flow keys it by email). State lives for the
// process lifetime only; it does not survive restarts and is not shared
// between instances.
package ratelimit

import (
	"sync"
	"time"
)

const (
	// DefaultMaxAttempts is the number of attempts allowed per window.
	DefaultMaxAttempts = 5
	// DefaultWindow is the length of the attempt window.
	DefaultWindow = 15 * time.Minute
)

type entry struct {
	count int
	start time.Time
}

// Limiter counts attempts per key within a fixed window.
type Limiter struct {
	mu       sync.Mutex
	attempts map[string]*entry
	max      int
	window   time.Duration
	now      func() time.Time
}

type Option func(*Limiter)

// WithClock replaces the time source (used by tests).
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

func New(max int, window time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		attempts: map[string]*entry{},
		max:      max,
		window:   window,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewDefault returns a limiter with the login defaults: 5 attempts per
// 15 minutes.
func NewDefault() *Limiter {
	return New(DefaultMaxAttempts, DefaultWindow)
}

// Allow records an attempt for key and reports whether it is permitted.
// Once the limit is reached, further attempts are denied until the window
// elapses.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.attempts[key]
	if !ok || now.Sub(e.start) > l.window {
		l.attempts[key] = &entry{count: 1, start: now}
		return true
	}

	if e.count >= l.max {
		return false
	}

	e.count++
	return true
}

// Remaining returns how long key stays locked out, or zero when no limit is
// active for it.
func (l *Limiter) Remaining(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.attempts[key]
	if !ok || e.count < l.max {
		return 0
	}

	remaining := l.window - l.now().Sub(e.start)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Reset clears the counter for key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
}
