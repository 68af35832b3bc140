package users

import (
	"context"
	"net/http"

	"codeberg.org/codeweaver/server/codeweaver/profiles"
	"codeberg.org/codeweaver/server/internal/auth"
	apperrors "codeberg.org/codeweaver/server/internal/errors"
	"github.com/gin-gonic/gin"
)

type ProfileReader interface {
	Profile(ctx context.Context, userID string) (*profiles.Profile, error)
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Description Returns plan and credit balance for the authenticated user
// @Tags users
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/profile [get]
// @Security BearerAuth
func GetProfile(svc ProfileReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			apperrors.Unauthorized(c, "user not authenticated")
			return
		}

		profile, err := svc.Profile(c.Request.Context(), userID)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, ProfileResponse{
			ID:        profile.ID,
			Plan:      string(profile.Plan),
			Credits:   profile.Credits,
			FullName:  profile.FullName,
			Unlimited: profile.Unlimited(),
		})
	}
}
