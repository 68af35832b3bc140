package generate

import (
	"github.com/gin-gonic/gin"
)

// registers code generation routes behind the given auth middleware
func RegisterRoutes(router *gin.RouterGroup, svc Generator, requireAuth gin.HandlerFunc) {
	router.POST("/generate-code", requireAuth, Handler(svc))
}
