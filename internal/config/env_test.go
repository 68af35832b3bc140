package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/codeweaver")
	t.Setenv("AI_GATEWAY_API_KEY", "gateway-key")
}

func TestLoadEnvironmentVariables_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadEnvironmentVariables()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ReceiptLogPostgres, cfg.ReceiptLog)
	assert.Equal(t, DefaultGatewayURL, cfg.Gateway.URL)
	assert.Equal(t, DefaultGatewayModel, cfg.Gateway.Model)
	assert.Equal(t, 60*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 10, cfg.Generation.RateLimit)
	assert.Equal(t, 5*time.Minute, cfg.Generation.RateWindow)
	assert.Equal(t, "120-M", cfg.IPRateLimit)
	assert.Empty(t, cfg.PromptBlocklist)
}

func TestLoadEnvironmentVariables_MissingSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	_, err := LoadEnvironmentVariables()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadEnvironmentVariables_RedisReceiptLogNeedsURL(t *testing.T) {
	setRequired(t)
	t.Setenv("RECEIPT_LOG", "redis")
	t.Setenv("REDIS_URL", "")

	_, err := LoadEnvironmentVariables()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}

func TestLoadEnvironmentVariables_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("GENERATION_RATE_WINDOW", "five minutes")

	_, err := LoadEnvironmentVariables()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GENERATION_RATE_WINDOW")
}

func TestLoadEnvironmentVariables_Blocklist(t *testing.T) {
	setRequired(t)
	t.Setenv("PROMPT_BLOCKLIST", `(?i)rm\s+-rf ;; (?i)drop\s+table;;`)

	cfg, err := LoadEnvironmentVariables()
	require.NoError(t, err)

	assert.Equal(t, []string{`(?i)rm\s+-rf`, `(?i)drop\s+table`}, cfg.PromptBlocklist)
}
