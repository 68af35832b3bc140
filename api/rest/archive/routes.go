package archive

import (
	"github.com/gin-gonic/gin"
)

// registers packaging routes; no auth, the per-IP guard covers abuse
func RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/generate-zip", ZipHandler)
}
