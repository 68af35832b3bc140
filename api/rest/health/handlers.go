package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	serviceName = "codeweaver"
	version     = "1.0.0"
)

// a dependency the health check pings, e.g. the database pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// adapts a plain function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Handler godoc
// @Summary Health check
// @Description Reports service health and the state of each dependency
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Failure 503 {object} Response
// @Router /health [get]
func Handler(deps map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		resp := Response{
			Status:  "healthy",
			Service: serviceName,
			Version: version,
		}

		if len(deps) > 0 {
			resp.Checks = make(map[string]string, len(deps))
		}

		for name, dep := range deps {
			if err := dep.Ping(ctx); err != nil {
				resp.Checks[name] = "unavailable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}

			resp.Checks[name] = "ok"
		}

		c.JSON(status, resp)
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
