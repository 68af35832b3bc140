package run

import (
	"context"
	"net/http"

	"codeberg.org/codeweaver/server/internal/auth"
	"codeberg.org/codeweaver/server/internal/codegen"
	apperrors "codeberg.org/codeweaver/server/internal/errors"
	"github.com/gin-gonic/gin"
)

type Runner interface {
	RunCode(ctx context.Context, userID, code, language string) (*codegen.RunResult, error)
}

// Handler godoc
// @Summary Run code (stub)
// @Description Returns a fixed description per language family; nothing is executed. Free plans are debited one credit.
// @Tags run
// @Accept json
// @Produce json
// @Param request body Request true "Code and language"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 402 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/run-code [post]
// @Security BearerAuth
func Handler(svc Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			apperrors.Unauthorized(c, "user not authenticated")
			return
		}

		var req Request

		if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" || req.Language == "" {
			apperrors.BadRequest(c, "Code and language are required", nil)
			return
		}

		result, err := svc.RunCode(c.Request.Context(), userID, req.Code, req.Language)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, Response{
			Output: result.Output,
			Error:  result.Error,
		})
	}
}
