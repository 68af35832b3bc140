package run

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/codeweaver/server/internal/codegen"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockRunner struct {
	RunCodeFunc func(ctx context.Context, userID, code, language string) (*codegen.RunResult, error)
}

func (m *mockRunner) RunCode(ctx context.Context, userID, code, language string) (*codegen.RunResult, error) {
	return m.RunCodeFunc(ctx, userID, code, language)
}

func setupRouter(svc Runner) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), svc, func(c *gin.Context) {
		c.Set("user_id", "u1")
		c.Next()
	})

	return router
}

func post(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/run-code", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestHandler_Success(t *testing.T) {
	var gotUser, gotLanguage string

	router := setupRouter(&mockRunner{RunCodeFunc: func(_ context.Context, userID, _, language string) (*codegen.RunResult, error) {
		gotUser, gotLanguage = userID, language
		return &codegen.RunResult{Output: "HTML/CSS code is best viewed in the Preview tab"}, nil
	}})

	w := post(router, `{"code":"<h1>x</h1>","language":"html"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"output":"HTML/CSS code is best viewed in the Preview tab","error":null}`, w.Body.String())
	assert.Equal(t, "u1", gotUser)
	assert.Equal(t, "html", gotLanguage)
}

func TestHandler_MissingFields(t *testing.T) {
	router := setupRouter(&mockRunner{RunCodeFunc: func(context.Context, string, string, string) (*codegen.RunResult, error) {
		t.Error("runner should not be called")
		return nil, nil
	}})

	for _, body := range []string{`{"code":"x"}`, `{"language":"python"}`, `{}`, `nope`} {
		w := post(router, body)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), "Code and language are required")
	}
}

func TestHandler_InsufficientCredits(t *testing.T) {
	router := setupRouter(&mockRunner{RunCodeFunc: func(context.Context, string, string, string) (*codegen.RunResult, error) {
		return nil, codegen.ErrInsufficientCredits
	}})

	w := post(router, `{"code":"x","language":"python"}`)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient credits")
}

func TestHandler_MissingUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), &mockRunner{RunCodeFunc: func(context.Context, string, string, string) (*codegen.RunResult, error) {
		t.Error("runner should not be called")
		return nil, nil
	}}, func(c *gin.Context) { c.Next() })

	w := post(router, `{"code":"x","language":"python"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
