package llm

import (
	"errors"
	"fmt"
	"time"
)

// instruction sent ahead of every user prompt
const SystemPrompt = "You are an expert code generator. Generate clean, production-ready code based on user prompts. Include comments and best practices. Return only the code without explanations."

var (
	ErrUpstreamRateLimited    = errors.New("upstream rate limited")
	ErrUpstreamQuotaExhausted = errors.New("upstream quota exhausted")
	ErrUpstreamFailure        = errors.New("upstream failure")
)

type Config struct {
	APIKey  string
	URL     string
	Model   string
	Timeout time.Duration

	// outbound pacing, process wide
	RPS   float64
	Burst int
}

// non-2xx answer from the gateway
type StatusError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway returned status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int     `json:"index"`
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}
