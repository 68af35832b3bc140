package main

import (
	"fmt"

	"codeberg.org/codeweaver/server/codeweaver/profiles"
	"codeberg.org/codeweaver/server/codeweaver/receipts"
	"codeberg.org/codeweaver/server/internal/auth"
	"codeberg.org/codeweaver/server/internal/codegen"
	"codeberg.org/codeweaver/server/internal/config"
	"codeberg.org/codeweaver/server/internal/ledger"
	"codeberg.org/codeweaver/server/internal/llm"
	"codeberg.org/codeweaver/server/internal/logger"
	"codeberg.org/codeweaver/server/internal/prompt"
	"codeberg.org/codeweaver/server/internal/ratelimit"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// creates and configures all service clients; redisClient may be nil
func InitializeServices(cfg *config.Config, db *pgxpool.Pool, redisClient *redis.Client) (*Services, error) {
	verifier, err := auth.NewVerifier(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create token verifier: %w", err)
	}

	validator, err := prompt.NewValidator(cfg.PromptBlocklist...)
	if err != nil {
		return nil, fmt.Errorf("failed to compile prompt blocklist: %w", err)
	}

	store, err := newStore(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}

	gateway := llm.NewGateway(llm.Config{
		APIKey:  cfg.Gateway.APIKey,
		URL:     cfg.Gateway.URL,
		Model:   cfg.Gateway.Model,
		Timeout: cfg.Gateway.Timeout,
		RPS:     cfg.Gateway.RPS,
		Burst:   cfg.Gateway.Burst,
	})

	limiter := ratelimit.NewLimiter(store, cfg.Generation.RateWindow, cfg.Generation.RateLimit)

	ipGuard, err := ratelimit.NewIPGuard(cfg.IPRateLimit, redisClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create IP guard: %w", err)
	}

	logger.Info("services initialized",
		"model", gateway.Model(),
		"receipt_log", cfg.ReceiptLog,
		"rate_limit", limiter.Threshold(),
		"rate_window", limiter.Window().String(),
		"ip_rate_limit", cfg.IPRateLimit,
	)

	return &Services{
		Store:    store,
		Gateway:  gateway,
		Codegen:  codegen.NewService(validator, store, limiter, gateway),
		Verifier: verifier,
		IPGuard:  ipGuard,
	}, nil
}

// profiles always live in postgres; receipts go wherever RECEIPT_LOG says
func newStore(cfg *config.Config, db *pgxpool.Pool, redisClient *redis.Client) (ledger.Store, error) {
	profileRepo := profiles.NewRepository(db)

	switch cfg.ReceiptLog {
	case config.ReceiptLogRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("redis receipt log requires REDIS_URL")
		}

		// keep twice the window so boundary counts never miss entries
		return ledger.New(profileRepo, ledger.NewRedisReceiptLog(redisClient, 2*cfg.Generation.RateWindow)), nil
	default:
		return ledger.New(profileRepo, receipts.NewRepository(db)), nil
	}
}
