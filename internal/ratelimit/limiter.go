package ratelimit

import (
	"context"
	"time"

	"codeberg.org/codeweaver/server/internal/logger"
)

const (
	DefaultWindow    = 5 * time.Minute
	DefaultThreshold = 10
)

// counts generation receipts created at or after since
type ReceiptCounter interface {
	CountRecentReceipts(ctx context.Context, userID string, since time.Time) (int, error)
}

type Decision struct {
	Allowed bool

	// the count query failed and the request was let through
	FailedOpen bool

	// hint for the Retry-After header when denied
	RetryAfter time.Duration

	Count     int
	Threshold int
	Window    time.Duration
}

// trailing-window limiter over the receipt log, holds no state of its own
type Limiter struct {
	counter   ReceiptCounter
	window    time.Duration
	threshold int
}

func NewLimiter(counter ReceiptCounter, window time.Duration, threshold int) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}

	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	return &Limiter{
		counter:   counter,
		window:    window,
		threshold: threshold,
	}
}

func (l *Limiter) Window() time.Duration { return l.window }

func (l *Limiter) Threshold() int { return l.threshold }

// decides whether userID may generate at now; the evaluated request is not counted
func (l *Limiter) Allow(ctx context.Context, userID string, now time.Time) Decision {
	since := now.Add(-l.window)

	count, err := l.counter.CountRecentReceipts(ctx, userID, since)
	if err != nil {
		logger.FromContext(ctx).Warn("rate limit check failed, allowing request",
			"user_id", userID,
			"error", err,
		)

		return Decision{Allowed: true, FailedOpen: true}
	}

	if count >= l.threshold {
		return Decision{
			Allowed:    false,
			RetryAfter: l.window,
			Count:      count,
			Threshold:  l.threshold,
			Window:     l.window,
		}
	}

	return Decision{Allowed: true, Count: count, Threshold: l.threshold, Window: l.window}
}
