package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, deps map[string]Pinger) (int, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/health", Handler(deps))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return w.Code, resp
}

func TestHandler_Healthy(t *testing.T) {
	status, resp := serve(t, map[string]Pinger{
		"postgres": PingFunc(func(context.Context) error { return nil }),
	})

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "ok", resp.Checks["postgres"])
}

func TestHandler_Degraded(t *testing.T) {
	status, resp := serve(t, map[string]Pinger{
		"postgres": PingFunc(func(context.Context) error { return nil }),
		"redis":    PingFunc(func(context.Context) error { return errors.New("down") }),
	})

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unavailable", resp.Checks["redis"])
}

func TestPingHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/ping", PingHandler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}
