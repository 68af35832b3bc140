package generate

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"codeberg.org/codeweaver/server/internal/auth"
	"codeberg.org/codeweaver/server/internal/codegen"
	apperrors "codeberg.org/codeweaver/server/internal/errors"
	"codeberg.org/codeweaver/server/internal/prompt"
	"github.com/gin-gonic/gin"
)

type Generator interface {
	Generate(ctx context.Context, req codegen.Request) (*codegen.Result, error)
}

// Handler godoc
// @Summary Generate code from a prompt
// @Description Validates the prompt, checks plan, credits and the per-user rate limit, then asks the AI gateway for code. Free plans are debited one credit on success.
// @Tags generate
// @Accept json
// @Produce json
// @Param request body Request true "Prompt"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 402 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/generate-code [post]
// @Security BearerAuth
func Handler(svc Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			apperrors.Unauthorized(c, "user not authenticated")
			return
		}

		var req Request

		if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == nil {
			apperrors.Respond(c, prompt.ErrInvalidInput)
			return
		}

		result, err := svc.Generate(c.Request.Context(), codegen.Request{
			Prompt: *req.Prompt,
			UserID: userID,
		})

		if err != nil {
			var rlErr *codegen.RateLimitError
			if errors.As(err, &rlErr) && rlErr.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(rlErr.RetryAfter.Seconds())))
			}

			apperrors.Respond(c, err)
			return
		}

		resp := Response{
			Code:      result.Code,
			Unlimited: result.Unlimited,
		}

		if !result.Unlimited {
			remaining := result.CreditsRemaining
			resp.CreditsRemaining = &remaining
		}

		c.JSON(http.StatusOK, resp)
	}
}
