package config

import "time"

type Config struct {
	Port        string
	Environment string
	JWTSecret   string

	DatabaseURL string
	RedisURL    string
	ReceiptLog  string // "postgres" or "redis"

	Gateway    GatewayConfig
	Generation GenerationConfig

	// ulule formatted rate, e.g. "120-M"
	IPRateLimit string

	// extra disallowed prompt patterns appended to the built-in list
	PromptBlocklist []string
}

// settings for the upstream AI completion service
type GatewayConfig struct {
	APIKey  string
	URL     string
	Model   string
	Timeout time.Duration
	RPS     float64
	Burst   int
}

// per-user generation ceiling
type GenerationConfig struct {
	RateLimit  int
	RateWindow time.Duration
}

const (
	ReceiptLogPostgres = "postgres"
	ReceiptLogRedis    = "redis"
)
