package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// counts receipts from a fixed list of timestamps
type fakeCounter struct {
	receipts []time.Time
	err      error

	lastSince time.Time
}

func (f *fakeCounter) CountRecentReceipts(_ context.Context, _ string, since time.Time) (int, error) {
	f.lastSince = since

	if f.err != nil {
		return 0, f.err
	}

	n := 0
	for _, at := range f.receipts {
		if !at.Before(since) {
			n++
		}
	}

	return n, nil
}

func receiptsAgo(now time.Time, ago ...time.Duration) []time.Time {
	out := make([]time.Time, 0, len(ago))
	for _, d := range ago {
		out = append(out, now.Add(-d))
	}

	return out
}

func repeat(d time.Duration, n int) []time.Duration {
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = d
	}

	return out
}

func TestLimiter_Allow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		ago     []time.Duration
		allowed bool
	}{
		{"no history", nil, true},
		{"nine in window", repeat(time.Minute, 9), true},
		{"ten in window", repeat(time.Minute, 10), false},
		{"eleven in window", repeat(time.Minute, 11), false},
		{"tenth just outside window", append(repeat(time.Minute, 9), 5*time.Minute+time.Second), true},
		{"tenth exactly at window start", append(repeat(time.Minute, 9), 5*time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := &fakeCounter{receipts: receiptsAgo(now, tt.ago...)}
			l := NewLimiter(counter, DefaultWindow, DefaultThreshold)

			d := l.Allow(context.Background(), "user-1", now)

			assert.Equal(t, tt.allowed, d.Allowed)
			assert.False(t, d.FailedOpen)
			assert.Equal(t, now.Add(-5*time.Minute), counter.lastSince)

			if !tt.allowed {
				assert.Equal(t, DefaultWindow, d.RetryAfter)
			}
		})
	}
}

func TestLimiter_FailsOpen(t *testing.T) {
	l := NewLimiter(&fakeCounter{err: errors.New("connection refused")}, time.Minute, 1)

	d := l.Allow(context.Background(), "user-1", time.Now())

	assert.True(t, d.Allowed)
	assert.True(t, d.FailedOpen)
}

func TestNewLimiter_Defaults(t *testing.T) {
	l := NewLimiter(&fakeCounter{}, 0, 0)

	assert.Equal(t, DefaultWindow, l.Window())
	assert.Equal(t, DefaultThreshold, l.Threshold())
}
