package profiles

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
)

// handles profile database operations
type Repository struct {
	db *pgxpool.Pool
}

type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// per-user plan and credit balance, created by the signup flow outside this server
type Profile struct {
	ID       string `json:"id"`
	Plan     Plan   `json:"plan"`
	Credits  int    `json:"credits"`
	FullName string `json:"full_name,omitempty"`
}

// pro users are never gated or debited
func (p *Profile) Unlimited() bool {
	return p.Plan == PlanPro
}

// free users need a positive balance to generate
func (p *Profile) HasCredits() bool {
	return p.Unlimited() || p.Credits > 0
}
