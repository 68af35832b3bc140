package receipts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new receipt repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// builds a receipt with a fresh id
func New(userID string, at time.Time) Receipt {
	return Receipt{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: at.UTC(),
	}
}

// appends a receipt to the log
func (r *Repository) RecordReceipt(ctx context.Context, receipt Receipt) error {
	_, err := r.db.Exec(ctx, queryInsert, receipt.ID, receipt.UserID, receipt.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record receipt: %w", err)
	}

	return nil
}

// counts the user's receipts created at or after since
func (r *Repository) CountRecentReceipts(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int

	err := r.db.QueryRow(ctx, queryCountSince, userID, since.UTC()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count receipts: %w", err)
	}

	return count, nil
}
