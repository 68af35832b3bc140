package ledger

import (
	"context"
	"time"

	"codeberg.org/codeweaver/server/codeweaver/profiles"
	"codeberg.org/codeweaver/server/codeweaver/receipts"
)

// plan and credit balance per user
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*profiles.Profile, error)

	// applies delta and returns the new balance; refuses to go below zero
	UpdateCredits(ctx context.Context, userID string, delta int) (int, error)

	// returns profiles.ErrInsufficientCredits when the balance is already zero
	DebitCredit(ctx context.Context, userID string) (int, error)
}

// append-only log of successful generations
type ReceiptLog interface {
	RecordReceipt(ctx context.Context, receipt receipts.Receipt) error
	CountRecentReceipts(ctx context.Context, userID string, since time.Time) (int, error)
}

// everything the generation pipeline persists
type Store interface {
	ProfileStore
	ReceiptLog
}
