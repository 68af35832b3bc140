package main

import (
	"context"
	"net/http"
	"time"

	"codeberg.org/codeweaver/server/api/rest/archive"
	"codeberg.org/codeweaver/server/api/rest/billing"
	"codeberg.org/codeweaver/server/api/rest/generate"
	"codeberg.org/codeweaver/server/api/rest/health"
	"codeberg.org/codeweaver/server/api/rest/run"
	"codeberg.org/codeweaver/server/api/rest/users"
	"codeberg.org/codeweaver/server/internal/auth"
	"codeberg.org/codeweaver/server/internal/logger"
	"codeberg.org/codeweaver/server/internal/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware())
	router.Use(logger.Middleware())
	router.Use(metrics.Middleware())

	router.GET("/health", health.Handler(server.healthChecks()))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := auth.Middleware(server.services.Verifier)

	v1 := router.Group("/api/v1")
	v1.Use(server.services.IPGuard)

	{
		v1.GET("/ping", health.PingHandler)

		generate.RegisterRoutes(v1, server.services.Codegen, requireAuth)
		archive.RegisterRoutes(v1)
		run.RegisterRoutes(v1, server.services.Codegen, requireAuth)
		users.RegisterRoutes(v1, server.services.Codegen, requireAuth)
		billing.RegisterRoutes(v1, requireAuth)
	}
}

// allows any origin with the headers browser clients of the auth platform send
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"authorization", "x-client-info", "apikey", "content-type"},
		ExposeHeaders:   []string{"Retry-After", "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:          12 * time.Hour,

		// preflight answers an empty 200
		OptionsResponseStatusCode: http.StatusOK,
	})
}

func (s *Server) healthChecks() map[string]health.Pinger {
	checks := map[string]health.Pinger{
		"postgres": s.db,
	}

	if s.redis != nil {
		checks["redis"] = health.PingFunc(func(ctx context.Context) error {
			return s.redis.Ping(ctx).Err()
		})
	}

	return checks
}
