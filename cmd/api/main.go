// Command api is the Fastbreak chat and stats API server.
//
// Usage:
//
//	fastbreak-api
//	API_PORT=8080 fastbreak-api

// @title Fastbreak API
// @version 1.0.0
// @description NBA fantasy stats and news backend with a model-driven chat endpoint. The chat assistant answers from the stats and news tables through a guarded SQL query tool.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Fastbreak
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/fastbreakhq/fastbreak/internal/api"
	"github.com/fastbreakhq/fastbreak/internal/api/handler"
	"github.com/fastbreakhq/fastbreak/internal/cache"
	"github.com/fastbreakhq/fastbreak/internal/chat"
	"github.com/fastbreakhq/fastbreak/internal/config"
	"github.com/fastbreakhq/fastbreak/internal/db"
	"github.com/fastbreakhq/fastbreak/internal/llm"
	"github.com/fastbreakhq/fastbreak/internal/query"
	"github.com/fastbreakhq/fastbreak/internal/sqlguard"
	"github.com/fastbreakhq/fastbreak/internal/store"

	_ "github.com/fastbreakhq/fastbreak/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	client, err := llm.New(cfg)
	if err != nil {
		logger.Error("Failed to create model client", "error", err)
		os.Exit(1)
	}
	logger.Info("Model client ready", "provider", cfg.LLMProvider)

	tool := chat.NewQueryTool(query.New(pool), sqlguard.ForMode(cfg.GuardStrict), logger)
	orchestrator := chat.NewOrchestrator(client, tool,
		cfg.ChatMaxToolRounds, cfg.ChatMaxTokens, logger)

	h := handler.New(pool,
		store.NewStats(pool), store.NewNews(pool),
		orchestrator, appCache, cfg, logger)
	router := api.NewRouter(h, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // chat turns stream for up to 30s
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting Fastbreak API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
