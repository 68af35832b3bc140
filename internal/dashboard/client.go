package dashboard

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultEndpoint = "http://localhost:8080"

	// generation waits on the upstream model, so the client allows as long as the server does
	requestTimeout = 60 * time.Second
)

// talks to the CodeWeaver REST API on behalf of one signed-in user
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// creates a client for the given API endpoint and bearer token
func NewClient(endpoint, token string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// fetches the caller's profile
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var profile Profile

	if err := c.do(ctx, http.MethodGet, "/api/v1/profile", nil, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// asks the server to generate code for a prompt
func (c *Client) GenerateCode(ctx context.Context, prompt string) (*GenerateResponse, error) {
	var result GenerateResponse

	if err := c.do(ctx, http.MethodPost, "/api/v1/generate-code", generateRequest{Prompt: prompt}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// packages code into a zip archive and returns the decoded bytes
func (c *Client) GenerateZip(ctx context.Context, code, filename, language string) ([]byte, error) {
	var result zipResponse

	payload := zipRequest{Code: code, Filename: filename, Language: language}
	if err := c.do(ctx, http.MethodPost, "/api/v1/generate-zip", payload, &result); err != nil {
		return nil, err
	}

	data, err := base64.StdEncoding.DecodeString(result.ZipBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode archive: %w", err)
	}

	return data, nil
}

// runs code through the server's execution stub
func (c *Client) RunCode(ctx context.Context, code, language string) (*RunResponse, error) {
	var result RunResponse

	if err := c.do(ctx, http.MethodPost, "/api/v1/run-code", runRequest{Code: code, Language: language}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) Upgrade(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/billing/upgrade", nil, nil)
}

func (c *Client) BuyCredits(ctx context.Context, amount int) error {
	return c.do(ctx, http.MethodPost, "/api/v1/billing/credits", creditsRequest{Amount: amount}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader

	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}

		body = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}

		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
			apiErr.Code = errResp.Code
			apiErr.Details = errResp.Details
		} else {
			apiErr.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}

		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
