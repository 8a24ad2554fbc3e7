// Package handler provides HTTP handlers for all API endpoints. Handlers
// talk to the stores through narrow interfaces so they can be tested with
// fakes; the chat endpoint additionally streams over SSE.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fastbreakhq/fastbreak/internal/api/respond"
	"github.com/fastbreakhq/fastbreak/internal/cache"
	"github.com/fastbreakhq/fastbreak/internal/chat"
	"github.com/fastbreakhq/fastbreak/internal/config"
	"github.com/fastbreakhq/fastbreak/internal/store"
)

// StatStore is the stats surface the handlers use.
type StatStore interface {
	List(ctx context.Context, f store.StatFilter) ([]store.StatRecord, error)
	Teams(ctx context.Context, season int) ([]string, error)
	Positions(ctx context.Context) ([]string, error)
	SetDrafted(ctx context.Context, id int, drafted bool) (*store.StatRecord, error)
}

// NewsStore is the news surface the handlers use.
type NewsStore interface {
	List(ctx context.Context, f store.NewsFilter) ([]store.NewsItem, error)
	Status(ctx context.Context) (*store.NewsStatus, error)
}

// ChatRunner runs one chat turn.
type ChatRunner interface {
	Run(ctx context.Context, sess *chat.Session, userText string, onDelta func(string)) (*chat.Result, error)
}

// Pinger verifies database connectivity.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	db     Pinger
	stats  StatStore
	news   NewsStore
	runner ChatRunner
	cache  *cache.Cache
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(db Pinger, stats StatStore, news NewsStore, runner ChatRunner, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		db:     db,
		stats:  stats,
		news:   news,
		runner: runner,
		cache:  c,
		cfg:    cfg,
		logger: logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Fastbreak API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"chat": map[string]interface{}{
			"provider":        h.cfg.LLMProvider,
			"tool":            chat.ToolName,
			"max_tool_rounds": h.cfg.ChatMaxToolRounds,
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
