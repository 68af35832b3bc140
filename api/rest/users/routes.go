package users

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, svc ProfileReader, requireAuth gin.HandlerFunc) {
	rg.GET("/profile", requireAuth, GetProfile(svc))
}
