package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new profile repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// finds a profile by user id
func (r *Repository) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var (
		profile  Profile
		fullName *string
	)

	err := r.db.QueryRow(ctx, queryFindByID, userID).Scan(
		&profile.ID,
		&profile.Plan,
		&profile.Credits,
		&fullName,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if fullName != nil {
		profile.FullName = *fullName
	}

	return &profile, nil
}

// adds delta to the credit balance, returns the stored value
func (r *Repository) UpdateCredits(ctx context.Context, userID string, delta int) (int, error) {
	var stored int

	err := r.db.QueryRow(ctx, queryUpdateCredits, delta, userID).Scan(&stored)

	// no row means either a missing profile or a balance that would go negative
	if errors.Is(err, pgx.ErrNoRows) {
		if _, lookupErr := r.GetProfile(ctx, userID); lookupErr != nil {
			return 0, lookupErr
		}

		return 0, ErrInsufficientCredits
	}

	if err != nil {
		return 0, fmt.Errorf("failed to update credits: %w", err)
	}

	return stored, nil
}

// takes one credit if the balance is positive and returns the new balance
func (r *Repository) DebitCredit(ctx context.Context, userID string) (int, error) {
	var remaining int

	err := r.db.QueryRow(ctx, queryDebitCredit, userID).Scan(&remaining)

	// no row means the profile is gone or another request took the last credit
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrInsufficientCredits
	}

	if err != nil {
		return 0, fmt.Errorf("failed to debit credit: %w", err)
	}

	return remaining, nil
}
