package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 60 * time.Second
	defaultRPS     = 50
	defaultBurst   = 10

	// cap on how much of an error body is kept for logs
	maxErrorBody = 2048
)

// OpenAI-compatible chat completions client for code generation
type Gateway struct {
	config     Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewGateway(config Config) *Gateway {
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}

	if config.RPS <= 0 {
		config.RPS = defaultRPS
	}

	if config.Burst <= 0 {
		config.Burst = defaultBurst
	}

	return &Gateway{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(config.RPS), config.Burst),
	}
}

func (g *Gateway) Model() string {
	return g.config.Model
}

// sends the prompt with the fixed system instruction and returns the first choice verbatim
func (g *Gateway) GenerateCode(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: g.config.Model,
		Messages: []message{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %w", ErrUpstreamFailure, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.config.APIKey)

	// rate limiting
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limiter error: %w", ErrUpstreamFailure, err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to send request: %w", ErrUpstreamFailure, err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)) //nolint:errcheck
		return "", &StatusError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        classifyStatus(resp.StatusCode),
		}
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %w", ErrUpstreamFailure, err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrUpstreamFailure)
	}

	return chatResp.Choices[0].Message.Content, nil
}

func classifyStatus(status int) error {
	switch status {
	case http.StatusTooManyRequests:
		return ErrUpstreamRateLimited
	case http.StatusPaymentRequired:
		return ErrUpstreamQuotaExhausted
	default:
		return ErrUpstreamFailure
	}
}
