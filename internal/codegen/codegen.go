package codegen

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/codeweaver/server/codeweaver/profiles"
	"codeberg.org/codeweaver/server/codeweaver/receipts"
	"codeberg.org/codeweaver/server/internal/ledger"
	"codeberg.org/codeweaver/server/internal/logger"
	"codeberg.org/codeweaver/server/internal/metrics"
	"codeberg.org/codeweaver/server/internal/prompt"
	"codeberg.org/codeweaver/server/internal/runner"
)

// the generate and run pipelines: validate, gate, call out, debit
type Service struct {
	validator *prompt.Validator
	store     ledger.Store
	limiter   RateLimiter
	generator Generator
	now       func() time.Time
}

func NewService(
	validator *prompt.Validator,
	store ledger.Store,
	limiter RateLimiter,
	generator Generator,
) *Service {
	return &Service{
		validator: validator,
		store:     store,
		limiter:   limiter,
		generator: generator,
		now:       time.Now,
	}
}

// validates the prompt before any lookup so bad input costs nothing
func (s *Service) ValidatePrompt(raw string) (string, error) {
	return s.validator.Validate(raw)
}

func (s *Service) Profile(ctx context.Context, userID string) (*profiles.Profile, error) {
	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, profileError(err)
	}

	return profile, nil
}

// runs one generation; credits are only taken after the gateway succeeded
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	log := logger.FromContext(ctx).With("user_id", req.UserID)

	if req.At.IsZero() {
		req.At = s.now()
	}

	trimmed, err := s.validator.Validate(req.Prompt)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, err
	}

	profile, err := s.Profile(ctx, req.UserID)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeStoreError).Inc()
		return nil, err
	}

	if !profile.HasCredits() {
		metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeNoCredits).Inc()
		return nil, ErrOutOfCredits
	}

	decision := s.limiter.Allow(ctx, req.UserID, req.At)

	switch {
	case decision.FailedOpen:
		metrics.RateLimitDecisions.WithLabelValues("failed_open").Inc()
	case decision.Allowed:
		metrics.RateLimitDecisions.WithLabelValues("allowed").Inc()
	default:
		metrics.RateLimitDecisions.WithLabelValues("denied").Inc()
		metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeRateLimited).Inc()
		return nil, rateLimitedError(decision)
	}

	log.Info("calling generation gateway", "prompt_length", len(trimmed), "plan", profile.Plan)

	start := time.Now()
	code, err := s.generator.GenerateCode(ctx, trimmed)
	metrics.GatewayDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeUpstreamError).Inc()
		return nil, upstreamError(err)
	}

	result := &Result{
		Code:             code,
		CreditsRemaining: profile.Credits,
		Unlimited:        profile.Unlimited(),
	}

	if !profile.Unlimited() {
		if remaining, ok := s.debit(ctx, req.UserID, "generate-code"); ok {
			result.CreditsRemaining = remaining
		}
	}

	if err := s.store.RecordReceipt(ctx, receipts.New(req.UserID, req.At)); err != nil {
		metrics.ReceiptWriteFailures.Inc()
		log.Warn("failed to record receipt", "error", err)
	}

	metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Info("code generated successfully", "code_length", len(code))

	return result, nil
}

// gates and "runs" code; nothing is executed, see runner.Run
func (s *Service) RunCode(ctx context.Context, userID, code, language string) (*RunResult, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !profile.HasCredits() {
		return nil, ErrInsufficientCredits
	}

	out := runner.Run(code, language)

	if !profile.Unlimited() {
		s.debit(ctx, userID, "run-code")
	}

	return &RunResult{Output: out.Output, Error: out.Error}, nil
}

// best effort; the caller already has its result, so failures are only logged
func (s *Service) debit(ctx context.Context, userID, endpoint string) (int, bool) {
	remaining, err := s.store.DebitCredit(ctx, userID)
	if err != nil {
		metrics.CreditDebitsTotal.WithLabelValues(endpoint, "failed").Inc()
		logger.FromContext(ctx).Warn("credit debit failed",
			"user_id", userID,
			"endpoint", endpoint,
			"error", err,
		)

		return 0, false
	}

	metrics.CreditDebitsTotal.WithLabelValues(endpoint, "ok").Inc()
	return remaining, true
}

// denial carrying the retry hint for the Retry-After header
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%v (retry after %s)", e.Err, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}
