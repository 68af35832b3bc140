package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultGatewayURL   = "https://ai.gateway.lovable.dev/v1/chat/completions"
	DefaultGatewayModel = "google/gemini-2.5-flash"

	// separates entries in PROMPT_BLOCKLIST (regexes may contain commas)
	blocklistSeparator = ";;"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	timeout, err := getEnvAsDuration("UPSTREAM_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	window, err := getEnvAsDuration("GENERATION_RATE_WINDOW", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	limit, err := getEnvAsInt("GENERATION_RATE_LIMIT", 10)
	if err != nil {
		return nil, err
	}

	burst, err := getEnvAsInt("UPSTREAM_BURST", 10)
	if err != nil {
		return nil, err
	}

	rps, err := getEnvAsFloat("UPSTREAM_RPS", 50)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		ReceiptLog:  strings.ToLower(getEnv("RECEIPT_LOG", ReceiptLogPostgres)),
		Gateway: GatewayConfig{
			APIKey:  os.Getenv("AI_GATEWAY_API_KEY"),
			URL:     getEnv("AI_GATEWAY_URL", DefaultGatewayURL),
			Model:   getEnv("AI_MODEL", DefaultGatewayModel),
			Timeout: timeout,
			RPS:     rps,
			Burst:   burst,
		},
		Generation: GenerationConfig{
			RateLimit:  limit,
			RateWindow: window,
		},
		IPRateLimit:     getEnv("IP_RATE_LIMIT", "120-M"),
		PromptBlocklist: splitBlocklist(os.Getenv("PROMPT_BLOCKLIST")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// reports the first missing or inconsistent setting
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if c.Gateway.APIKey == "" {
		return fmt.Errorf("AI_GATEWAY_API_KEY environment variable is required")
	}

	switch c.ReceiptLog {
	case ReceiptLogPostgres:
	case ReceiptLogRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when RECEIPT_LOG=redis")
		}
	default:
		return fmt.Errorf("unsupported RECEIPT_LOG %q (want postgres or redis)", c.ReceiptLog)
	}

	if c.Generation.RateLimit <= 0 {
		return fmt.Errorf("GENERATION_RATE_LIMIT must be positive")
	}

	if c.Generation.RateWindow <= 0 {
		return fmt.Errorf("GENERATION_RATE_WINDOW must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}

	return n, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}

	return f, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 30s or 5m: %w", key, err)
	}

	return d, nil
}

func splitBlocklist(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var patterns []string

	for _, p := range strings.Split(raw, blocklistSeparator) {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}

	return patterns
}
