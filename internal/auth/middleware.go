package auth

import (
	"strings"

	apperrors "codeberg.org/codeweaver/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// validates bearer tokens and adds user info to context
func Middleware(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apperrors.Unauthorized(c, "Unauthorized")
			return
		}

		claims, err := v.Validate(token)
		if err != nil {
			apperrors.Unauthorized(c, "Unauthorized")
			return
		}

		c.Set("user_id", claims.UserID())
		c.Set("user_email", claims.Email)

		c.Next()
	}
}

// extracts user_id from context after Middleware
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	return userID, userID != ""
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
