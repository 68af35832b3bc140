package codegen

import (
	"context"
	"time"

	"codeberg.org/codeweaver/server/internal/ratelimit"
)

// turns a validated prompt into source code
type Generator interface {
	GenerateCode(ctx context.Context, prompt string) (string, error)
}

type RateLimiter interface {
	Allow(ctx context.Context, userID string, now time.Time) ratelimit.Decision
}

type Request struct {
	Prompt string
	UserID string
	At     time.Time
}

type Result struct {
	Code string

	// balance after the debit, only meaningful when Unlimited is false
	CreditsRemaining int
	Unlimited        bool
}

type RunResult struct {
	Output string  `json:"output"`
	Error  *string `json:"error"`
}
