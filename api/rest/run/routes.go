package run

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, svc Runner, requireAuth gin.HandlerFunc) {
	router.POST("/run-code", requireAuth, Handler(svc))
}
