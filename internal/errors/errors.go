package errors

import (
	"net/http"

	"codeberg.org/codeweaver/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.Respond() for errors coming out of services; it picks the
//     status from the error Kind and logs server-side failures
//   - Use errors.InternalError(), errors.BadRequest(), etc. for handler-level failures
//   - Never call both logger.ErrorErr() and errors.Respond() for the same error
//
// For services/repositories/internal packages:
//   - Return *errors.Error for failures the client must see classified
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err) otherwise
//   - Do not log errors in non-handler code (avoid double logging), except for
//     best-effort steps whose failure is swallowed

// renders any error produced by a service
func Respond(c *gin.Context, err error) {
	appErr, ok := As(err)
	if !ok {
		InternalError(c, "an error occurred", err)
		return
	}

	status := appErr.HTTPStatus()
	response := ErrorResponse{
		Error: appErr.Message,
		Code:  appErr.Reason,
	}

	if status >= http.StatusInternalServerError || appErr.Kind == KindUpstream {
		logger.FromContext(c.Request.Context()).Error(appErr.Message,
			"error", appErr.Err,
			"kind", appErr.Kind.String(),
			"reason", appErr.Reason,
			"status", status,
			"user_id", c.GetString("user_id"),
		)

		if appErr.Err != nil && status >= http.StatusInternalServerError {
			response.Details = sanitizeError(appErr.Err)
		}
	}

	c.AbortWithStatusJSON(status, response)
}

// returns a 401 unauthorized error
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Error: message,
		Code:  ReasonUnauthenticated,
	})
}

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{
		Error: message,
		Code:  "not_found",
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error: message,
		Code:  ReasonInvalidInput,
	}

	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, response)
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	logger.FromContext(c.Request.Context()).Error(message,
		"error", err,
		"user_id", c.GetString("user_id"),
	)

	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:   message,
		Code:    "server_error",
		Details: sanitizeError(err),
	})
}

// returns a 429 too many requests error
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "too many requests"
	}

	c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
		Error: message,
		Code:  ReasonRateLimited,
	})
}

// returns a 501 for features that are announced but not available yet
func ComingSoon(c *gin.Context, details string) {
	c.AbortWithStatusJSON(http.StatusNotImplemented, ErrorResponse{
		Error:   "Coming Soon",
		Code:    ReasonNotImplemented,
		Details: details,
	})
}
