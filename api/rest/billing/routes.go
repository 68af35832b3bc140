package billing

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	billing := rg.Group("/billing")
	billing.Use(requireAuth)

	billing.POST("/upgrade", Upgrade)
	billing.POST("/credits", BuyCredits)
}
