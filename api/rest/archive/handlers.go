package archive

import (
	"encoding/base64"
	"net/http"
	"time"

	"codeberg.org/codeweaver/server/internal/archive"
	apperrors "codeberg.org/codeweaver/server/internal/errors"
	"codeberg.org/codeweaver/server/internal/logger"
	"codeberg.org/codeweaver/server/internal/metrics"
	"github.com/gin-gonic/gin"
)

// ZipHandler godoc
// @Summary Package code as a ZIP archive
// @Description Returns a base64 ZIP holding the code file (extension derived from language) and a README.
// @Tags archive
// @Accept json
// @Produce json
// @Param request body Request true "Code to package"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/generate-zip [post]
func ZipHandler(c *gin.Context) {
	var req Request

	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "invalid request body", err)
		return
	}

	if req.Code == "" {
		apperrors.BadRequest(c, "Code is required", nil)
		return
	}

	stem := archive.SanitizeStem(req.Filename)
	logger.FromContext(c.Request.Context()).Info("creating zip file", "filename", stem, "language", req.Language)

	data, err := archive.Build(req.Code, stem, req.Language, time.Now())
	if err != nil {
		apperrors.InternalError(c, "Failed to create ZIP", err)
		return
	}

	metrics.ArchiveSizeBytes.Observe(float64(len(data)))

	c.JSON(http.StatusOK, Response{
		ZipBase64: base64.StdEncoding.EncodeToString(data),
	})
}
