package billing

import (
	"fmt"

	apperrors "codeberg.org/codeweaver/server/internal/errors"
	"github.com/gin-gonic/gin"
)

const (
	MinCreditPurchase = 10

	// ten credits per dollar
	creditsPerDollar = 10
)

// formats the price of n credits in dollars
func Price(credits int) string {
	return fmt.Sprintf("%.2f", float64(credits)/creditsPerDollar)
}

// Upgrade godoc
// @Summary Upgrade to the Pro plan
// @Description Not available yet, always answers 501
// @Tags billing
// @Produce json
// @Failure 401 {object} errors.ErrorResponse
// @Failure 501 {object} errors.ErrorResponse
// @Router /api/v1/billing/upgrade [post]
// @Security BearerAuth
func Upgrade(c *gin.Context) {
	apperrors.ComingSoon(c, "Pro subscription will be available soon. Stay tuned!")
}

// BuyCredits godoc
// @Summary Buy credits
// @Description Validates the amount (minimum 10 credits, $1 per 10) then answers 501 until payments exist
// @Tags billing
// @Accept json
// @Produce json
// @Param request body CreditsRequest true "Credits to buy"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 501 {object} errors.ErrorResponse
// @Router /api/v1/billing/credits [post]
// @Security BearerAuth
func BuyCredits(c *gin.Context) {
	var req CreditsRequest

	if err := c.ShouldBindJSON(&req); err != nil || req.Amount < MinCreditPurchase {
		apperrors.BadRequest(c, fmt.Sprintf("Minimum purchase is %d credits ($%s)", MinCreditPurchase, Price(MinCreditPurchase)), nil)
		return
	}

	apperrors.ComingSoon(c, fmt.Sprintf("Credit purchase of %d credits ($%s) will be available soon!", req.Amount, Price(req.Amount)))
}
