package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/codeweaver/server/internal/config"
	"codeberg.org/codeweaver/server/internal/logger"
)

// @title CodeWeaver API
// @version 1.0
// @description AI-powered code generation from natural-language prompts
// @description
// @description Features:
// @description - Code generation through an AI chat-completions gateway
// @description - Credit-gated free plan and unlimited pro plan
// @description - ZIP packaging of generated code
// @description - Stubbed code runner

// @contact.name API Support
// @contact.url https://codeberg.org/codeweaver/server

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT issued by the auth platform. Format: Bearer {token}

func main() {
	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	logger.SetDefault(logger.New(cfg.Environment, os.Getenv("LOG_LEVEL")))
	logger.Info("starting codeweaver server", "environment", cfg.Environment)

	// create server with all dependencies
	srv, err := NewServer(context.Background(), cfg)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	// generation calls can take most of the upstream timeout
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Gateway.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// graceful shutdown with 10 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	srv.Close()

	logger.Info("server stopped")
}
