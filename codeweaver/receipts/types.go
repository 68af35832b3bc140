package receipts

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles receipt database operations
type Repository struct {
	db *pgxpool.Pool
}

// one successful generation, append-only
type Receipt struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
