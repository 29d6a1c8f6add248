package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets tests advance time manually.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func TestAllow_FirstFiveThenDenied(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	l := New(5, 15*time.Minute, WithClock(clock.now))

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow("user@example.com"), "attempt %d should be allowed", i+1)
	}
	assert.False(t, l.Allow("user@example.com"), "sixth attempt should be denied")
}

func TestAllow_WindowElapses(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	l := New(5, 15*time.Minute, WithClock(clock.now))

	for i := 0; i < 6; i++ {
		l.Allow("user@example.com")
	}
	assert.False(t, l.Allow("user@example.com"))

	clock.advance(15*time.Minute + time.Second)
	assert.True(t, l.Allow("user@example.com"))
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	l := New(5, 15*time.Minute, WithClock(clock.now))

	for i := 0; i < 6; i++ {
		l.Allow("a@example.com")
	}
	assert.False(t, l.Allow("a@example.com"))
	assert.True(t, l.Allow("b@example.com"))
}

func TestRemaining(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	l := New(5, 15*time.Minute, WithClock(clock.now))

	assert.Equal(t, time.Duration(0), l.Remaining("user@example.com"))

	for i := 0; i < 5; i++ {
		l.Allow("user@example.com")
	}
	assert.Equal(t, 15*time.Minute, l.Remaining("user@example.com"))

	clock.advance(5 * time.Minute)
	assert.Equal(t, 10*time.Minute, l.Remaining("user@example.com"))

	clock.advance(11 * time.Minute)
	assert.Equal(t, time.Duration(0), l.Remaining("user@example.com"))
}

func TestReset(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	l := New(5, 15*time.Minute, WithClock(clock.now))

	for i := 0; i < 6; i++ {
		l.Allow("user@example.com")
	}
	assert.False(t, l.Allow("user@example.com"))

	l.Reset("user@example.com")
	assert.True(t, l.Allow("user@example.com"))
	assert.Equal(t, time.Duration(0), l.Remaining("user@example.com"))
}
