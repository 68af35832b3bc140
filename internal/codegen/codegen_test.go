package codegen

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"codeberg.org/codeweaver/server/codeweaver/profiles"
	"codeberg.org/codeweaver/server/codeweaver/receipts"
	apperrors "codeberg.org/codeweaver/server/internal/errors"
	"codeberg.org/codeweaver/server/internal/ledger"
	"codeberg.org/codeweaver/server/internal/llm"
	"codeberg.org/codeweaver/server/internal/prompt"
	"codeberg.org/codeweaver/server/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPrompt = "write a function that adds two numbers"

// records every call and answers with GenerateFunc
type fakeGenerator struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
	calls        []string
}

func (f *fakeGenerator) GenerateCode(ctx context.Context, prompt string) (string, error) {
	f.calls = append(f.calls, prompt)

	if f.GenerateFunc != nil {
		return f.GenerateFunc(ctx, prompt)
	}

	return "function add(a, b) { return a + b }", nil
}

// store whose debit always fails, to exercise the best-effort path
type failingDebitStore struct {
	*ledger.MemoryStore
}

func (s failingDebitStore) DebitCredit(context.Context, string) (int, error) {
	return 0, errors.New("connection reset")
}

type failingProfileStore struct {
	*ledger.MemoryStore
}

func (s failingProfileStore) GetProfile(context.Context, string) (*profiles.Profile, error) {
	return nil, errors.New("connection refused")
}

func newTestService(t *testing.T, store ledger.Store, gen Generator) *Service {
	t.Helper()

	validator, err := prompt.NewValidator()
	require.NoError(t, err)

	limiter := ratelimit.NewLimiter(store, ratelimit.DefaultWindow, ratelimit.DefaultThreshold)

	return NewService(validator, store, limiter, gen)
}

func credits(t *testing.T, store ledger.Store, userID string) int {
	t.Helper()

	p, err := store.GetProfile(context.Background(), userID)
	require.NoError(t, err)

	return p.Credits
}

func TestGenerate_DebitsFreePlan(t *testing.T) {
	store := ledger.NewMemoryStore(profiles.Profile{ID: "u1", Plan: profiles.PlanFree, Credits: 3})
	gen := &fakeGenerator{}
	svc := newTestService(t, store, gen)

	result, err := svc.Generate(context.Background(), Request{Prompt: "  " + validPrompt + "  ", UserID: "u1"})

	require.NoError(t, err)
	assert.Equal(t, "function add(a, b) { return a + b }", result.Code)
	assert.Equal(t, 2, result.CreditsRemaining)
	assert.False(t, result.Unlimited)
	assert.Equal(t, 2, credits(t, store, "u1"))
	assert.Equal(t, []string{validPrompt}, gen.calls, "gateway receives the trimmed prompt")
	assert.Len(t, store.Receipts(), 1)
}

func TestGenerate_ProNeverDebits(t *testing.T) {
	store := ledger.NewMemoryStore(profiles.Profile{ID: "u1", Plan: profiles.PlanPro, Credits: 0})
	svc := newTestService(t, store, &fakeGenerator{})

	for range 3 {
		result, err := svc.Generate(context.Background(), Request{Prompt: validPrompt, UserID: "u1"})
		require.NoError(t, err)
		assert.True(t, result.Unlimited)
	}

	assert.Equal(t, 0, credits(t, store, "u1"))
}

func TestGenerate_OutOfCreditsSkipsGateway(t *testing.T) {
	store := ledger.NewMemoryStore(profiles.Profile{ID: "u1", Plan: profiles.PlanFree, Credits: 0})
	gen := &fakeGenerator{}
	svc := newTestService(t, store, gen)

	_, err := svc.Generate(context.Background(), Request{Prompt: validPrompt, UserID: "u1"})

	require.Error(t, err)
	assert.True(t, apperrors.HasReason(err, apperrors.ReasonOutOfCredits))

	appErr, _ := apperrors.As(err)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPStatus())
	assert.Empty(t, gen.calls)
	assert.Equal(t, 0, credits(t, store, "u1"))
}

func TestGenerate_UpstreamFailureKeepsCredits(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason string
		status int
	}{
		{"rate limited", &llm.StatusError{StatusCode: 429, Err: llm.ErrUpstreamRateLimited}, apperrors.ReasonUpstreamRateLimited, http.StatusTooManyRequests},
		{"quota", &llm.StatusError{StatusCode: 402, Err: llm.ErrUpstreamQuotaExhausted}, apperrors.ReasonUpstreamQuotaExhausted, http.StatusPaymentRequired},
		{"other", llm.ErrUpstreamFailure, apperrors.ReasonUpstreamFailure, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := ledger.NewMemoryStore(profiles.Profile{ID: "u1", Plan: profiles.PlanFree, Credits: 3})
			gen := &fakeGenerator{GenerateFunc: func(context.Context, string) (string, error) {
				return "", tt.err
			}}
			svc := newTestService(t, store, gen)

			_, err := svc.Generate(context.Background(), Request{Prompt: validPrompt, UserID: "u1"})

			require.Error(t, err)
			assert.True(t, apperrors.HasReason(err, tt.reason))

			appErr, _ := apperrors.As(err)
			assert.Equal(t, tt.status, appErr.HTTPStatus())
			assert.Equal(t, 3, credits(t, store, "u1"))
			assert.Empty(t, store.Receipts())
		})
	}
}

func TestGenerate_InvalidPromptSkipsEverything(t *testing.T) {
	store := ledger.NewMemoryStore()
	gen := &fakeGenerator{}
	svc := newTestService(t, store, gen)

	_, err := svc.Generate(context.Background(), Request{Prompt: "hi", UserID: "missing"})

	assert.True(t, apperrors.HasReason(err, apperrors.ReasonTooShort))
	assert.Empty(t, gen.calls)
}

func TestGenerate_ProfileErrors(t *testing.T) {
	svc := newTestService(t, ledger.NewMemoryStore(), &fakeGenerator{})

	_, err := svc.Generate(context.Background(), Request{Prompt: validPrompt, UserID: "missing"})
	assert.True(t, apperrors.HasReason(err, apperrors.ReasonProfileNotFound))

	broken := failingProfileStore{ledger.NewMemoryStore()}
	svc = newTestService(t, broken, &fakeGenerator{})

	_, err = svc.Generate(context.Background(), Request{Prompt: validPrompt, UserID: "u1"})
	assert.True(t, apperrors.HasReason(err, apperrors.ReasonPersistenceFailure))
}

func TestGenerate_RateLimited(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	store := ledger.NewMemoryStore(profiles.Profile{ID: "u1", Plan: profiles.PlanPro})
	for range 10 {
		require.NoError(t, store.RecordReceipt(ctx, receipts.New("u1", now.Add(-time.Minute))))
	}

	gen := &fakeGenerator{}
	svc := newTestService(t, store, gen)

	_, err := svc.Generate(ctx, Request{Prompt: validPrompt, UserID: "u1", At: now})

	require.Error(t, err)
	assert.True(t, apperrors.HasReason(err, apperrors.ReasonRateLimited))
	assert.EqualError(t, errors.Unwrap(err), "Rate limit exceeded. Maximum 10 generations per 5 minutes.")

	var rlErr *RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, 5*time.Minute, rlErr.RetryAfter)
	assert.Empty(t, gen.calls)
}

func TestGenerate_OldReceiptsDoNotCount(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	store := ledger.NewMemoryStore(profiles.Profile{ID: "u1", Plan: profiles.PlanPro})
	for range 9 {
		require.NoError(t, store.RecordReceipt(ctx, receipts.New("u1", now.Add(-time.Minute))))
	}
	require.NoError(t, store.RecordReceipt(ctx, receipts.New("u1", now.Add(-5*time.Minute-time.Second))))

	svc := newTestService(t, store, &fakeGenerator{})

	_, err := svc.Generate(ctx, Request{Prompt: validPrompt, UserID: "u1", At: now})

	assert.NoError(t, err)
}

func TestGenerate_DebitFailureStillReturnsCode(t *testing.T) {
	store := failingDebitStore{ledger.NewMemoryStore(profiles.Profile{ID: "u1", Plan: profiles.PlanFree, Credits: 1})}
	svc := newTestService(t, store, &fakeGenerator{})

	result, err := svc.Generate(context.Background(), Request{Prompt: validPrompt, UserID: "u1"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Code)
	assert.Equal(t, 1, credits(t, store, "u1"))
}

func TestRunCode(t *testing.T) {
	ctx := context.Background()
	store := ledger.NewMemoryStore(
		profiles.Profile{ID: "free", Plan: profiles.PlanFree, Credits: 1},
		profiles.Profile{ID: "pro", Plan: profiles.PlanPro},
	)
	svc := newTestService(t, store, &fakeGenerator{})

	out, err := svc.RunCode(ctx, "free", "print(1)", "python")
	require.NoError(t, err)
	assert.Equal(t, "Python execution requires a Python runtime environment", out.Output)
	assert.Nil(t, out.Error)
	assert.Equal(t, 0, credits(t, store, "free"))

	_, err = svc.RunCode(ctx, "free", "print(1)", "python")
	require.Error(t, err)

	appErr, _ := apperrors.As(err)
	assert.Equal(t, http.StatusPaymentRequired, appErr.HTTPStatus())
	assert.Equal(t, "Insufficient credits", appErr.Message)

	_, err = svc.RunCode(ctx, "pro", "<h1/>", "html")
	require.NoError(t, err)
	assert.Equal(t, 0, credits(t, store, "pro"))

	_, err = svc.RunCode(ctx, "nobody", "x", "python")
	assert.True(t, apperrors.HasReason(err, apperrors.ReasonProfileNotFound))
}

func TestDescribeWindow(t *testing.T) {
	assert.Equal(t, "5 minutes", describeWindow(5*time.Minute))
	assert.Equal(t, "1 hour", describeWindow(time.Hour))
	assert.Equal(t, "90 seconds", describeWindow(90*time.Second))
}
