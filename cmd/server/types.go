package main

import (
	"codeberg.org/codeweaver/server/internal/auth"
	"codeberg.org/codeweaver/server/internal/codegen"
	"codeberg.org/codeweaver/server/internal/config"
	"codeberg.org/codeweaver/server/internal/ledger"
	"codeberg.org/codeweaver/server/internal/llm"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// holds all dependencies and state for the API server
type Server struct {
	db       *pgxpool.Pool
	redis    *redis.Client
	config   *config.Config
	services *Services
	router   *gin.Engine
}

// holds the clients and services the handlers call
type Services struct {
	Store    ledger.Store
	Gateway  *llm.Gateway
	Codegen  *codegen.Service
	Verifier *auth.Verifier
	IPGuard  gin.HandlerFunc
}
