package dashboard

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GenerateCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/generate-code", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "write a hello world", req.Prompt)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"console.log(1)","credits_remaining":2,"unlimited":false}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "tok")

	resp, err := client.GenerateCode(context.Background(), "write a hello world")
	require.NoError(t, err)

	assert.Equal(t, "console.log(1)", resp.Code)
	require.NotNil(t, resp.CreditsRemaining)
	assert.Equal(t, 2, *resp.CreditsRemaining)
}

func TestClient_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"Out of credits. Upgrade to Pro for unlimited credits.","code":"out_of_credits"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "tok").GenerateCode(context.Background(), "write a hello world")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "out_of_credits", apiErr.Code)
	assert.Equal(t, "Out of credits. Upgrade to Pro for unlimited credits.", apiErr.Error())
}

func TestClient_NonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "").Profile(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "request failed with status 502", apiErr.Message)
}

func TestClient_GenerateZipDecodes(t *testing.T) {
	payload := []byte("PK\x03\x04fake")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/generate-zip", r.URL.Path)

		var req zipRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "python", req.Language)
		assert.Empty(t, req.Filename)

		_ = json.NewEncoder(w).Encode(zipResponse{ZipBase64: base64.StdEncoding.EncodeToString(payload)})
	}))
	defer server.Close()

	data, err := NewClient(server.URL, "tok").GenerateZip(context.Background(), "print(1)", "", "python")
	require.NoError(t, err)

	assert.Equal(t, payload, data)
}

func TestClient_BillingComingSoon(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/billing/upgrade", r.URL.Path)
		w.WriteHeader(http.StatusNotImplemented)
		_, _ = w.Write([]byte(`{"error":"Coming Soon","code":"not_implemented","details":"Pro subscription will be available soon. Stay tuned!"}`))
	}))
	defer server.Close()

	err := NewClient(server.URL, "tok").Upgrade(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "not_implemented", apiErr.Code)
	assert.Equal(t, "Pro subscription will be available soon. Stay tuned!", apiErr.Details)
}

func TestNewClient_DefaultEndpoint(t *testing.T) {
	client := NewClient("", "")

	assert.Equal(t, DefaultEndpoint, client.endpoint)
}
