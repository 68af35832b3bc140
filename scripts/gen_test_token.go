package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"codeberg.org/codeweaver/server/codeweaver/profiles"
	"codeberg.org/codeweaver/server/internal/auth"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// seeds a free-plan profile for local development and prints a bearer token for it
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	dbConnString := os.Getenv("DATABASE_URL")
	if dbConnString == "" {
		log.Fatal("DATABASE_URL not set")
	}

	verifier, err := auth.NewVerifier(os.Getenv("JWT_SECRET"))
	if err != nil {
		log.Fatalf("Failed to create verifier: %v", err)
	}

	ctx := context.Background()

	dbPool, err := pgxpool.New(ctx, dbConnString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	repo := profiles.NewRepository(dbPool)

	userID := os.Getenv("TEST_USER_ID")
	if userID == "" {
		userID = uuid.NewString()
	}

	testEmail := "test@codeweaver.dev"

	profile, err := repo.GetProfile(ctx, userID)

	switch {
	case errors.Is(err, profiles.ErrProfileNotFound):
		_, err = dbPool.Exec(ctx, `
			INSERT INTO profiles (id, plan, credits, full_name)
			VALUES ($1, 'free', 5, 'Test User')
		`, userID)

		if err != nil {
			log.Fatalf("Failed to create test profile: %v", err)
		}
		fmt.Printf("Created test profile %s with 5 credits\n", userID)

	case err != nil:
		log.Fatalf("Failed to look up test profile: %v", err)

	default:
		fmt.Printf("Using existing test profile %s (%s, %d credits)\n", profile.ID, profile.Plan, profile.Credits)
	}

	// TOPUP_CREDITS adds to (or, when negative, takes from) the test balance
	if raw := os.Getenv("TOPUP_CREDITS"); raw != "" {
		delta, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("TOPUP_CREDITS must be an integer: %v", err)
		}

		credits, err := repo.UpdateCredits(ctx, userID, delta)
		if err != nil {
			log.Fatalf("Failed to top up credits: %v", err)
		}
		fmt.Printf("Applied %+d credits, balance is now %d\n", delta, credits)
	}

	token, err := verifier.Issue(userID, testEmail, 24*time.Hour)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	fmt.Printf("\nTest token:\n%s\n\n", token)
	fmt.Printf("Export this token for the dashboard:\nexport CODEWEAVER_TOKEN=\"%s\"\n", token)
}
