package codegen

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"codeberg.org/codeweaver/server/codeweaver/profiles"
	apperrors "codeberg.org/codeweaver/server/internal/errors"
	"codeberg.org/codeweaver/server/internal/llm"
	"codeberg.org/codeweaver/server/internal/ratelimit"
)

var (
	ErrOutOfCredits = apperrors.New(apperrors.KindQuota, apperrors.ReasonOutOfCredits,
		"Out of credits. Upgrade to Pro for unlimited credits.")

	// run-code answers 402 where generate-code answers 403
	ErrInsufficientCredits = apperrors.New(apperrors.KindQuota, apperrors.ReasonOutOfCredits,
		"Insufficient credits").WithStatus(http.StatusPaymentRequired)

	ErrRateLimited = apperrors.New(apperrors.KindRateLimit, apperrors.ReasonRateLimited,
		"Rate limit exceeded. Please try again later.")
)

func rateLimitedError(d ratelimit.Decision) *RateLimitError {
	err := ErrRateLimited

	if d.Threshold > 0 && d.Window > 0 {
		err = apperrors.New(apperrors.KindRateLimit, apperrors.ReasonRateLimited,
			fmt.Sprintf("Rate limit exceeded. Maximum %d generations per %s.", d.Threshold, describeWindow(d.Window)))
	}

	return &RateLimitError{Err: err, RetryAfter: d.RetryAfter}
}

// "5 minutes", "1 hour", "30 seconds"
func describeWindow(d time.Duration) string {
	unit, n := "second", int(d/time.Second)

	switch {
	case d >= time.Hour && d%time.Hour == 0:
		unit, n = "hour", int(d/time.Hour)
	case d >= time.Minute && d%time.Minute == 0:
		unit, n = "minute", int(d/time.Minute)
	}

	if n == 1 {
		return "1 " + unit
	}

	return fmt.Sprintf("%d %ss", n, unit)
}

func profileError(err error) error {
	if errors.Is(err, profiles.ErrProfileNotFound) {
		return apperrors.Wrap(apperrors.KindNotFound, apperrors.ReasonProfileNotFound, "Profile not found", err)
	}

	return apperrors.Wrap(apperrors.KindPersistence, apperrors.ReasonPersistenceFailure, "Failed to fetch profile", err)
}

func upstreamError(err error) error {
	switch {
	case errors.Is(err, llm.ErrUpstreamRateLimited):
		return apperrors.Wrap(apperrors.KindUpstream, apperrors.ReasonUpstreamRateLimited,
			"Rate limit exceeded. Please try again later.", err)
	case errors.Is(err, llm.ErrUpstreamQuotaExhausted):
		return apperrors.Wrap(apperrors.KindUpstream, apperrors.ReasonUpstreamQuotaExhausted,
			"AI credits exhausted. Please contact support.", err)
	default:
		return apperrors.Wrap(apperrors.KindUpstream, apperrors.ReasonUpstreamFailure,
			"Failed to generate code", err)
	}
}
