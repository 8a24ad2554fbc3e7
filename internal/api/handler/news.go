package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fastbreakhq/fastbreak/internal/api/respond"
	"github.com/fastbreakhq/fastbreak/internal/cache"
	"github.com/fastbreakhq/fastbreak/internal/store"
)

// GetNews lists classified news items, newest first.
// @Summary List news
// @Description Returns classified NBA news and injury reports with optional filters.
// @Tags news
// @Produce json
// @Param category query string false "Category" Enums(injury, trade, suspension, performance, roster, other)
// @Param player query string false "Case-insensitive player name match"
// @Param team query string false "Team abbreviation"
// @Param source query string false "Source" Enums(espn, espn_injuries)
// @Param active query bool false "Only active injuries"
// @Param limit query int false "Max rows (default 50, cap 200)"
// @Success 200 {array} store.NewsItem
// @Failure 400 {object} respond.ErrorResponse
// @Router /news [get]
func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.NewsFilter{
		Category:   q.Get("category"),
		PlayerName: q.Get("player"),
		Team:       q.Get("team"),
		Source:     q.Get("source"),
	}
	if a := q.Get("active"); a != "" {
		active, err := strconv.ParseBool(a)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidParam, "active must be a boolean")
			return
		}
		filter.ActiveOnly = active
	}
	if l := q.Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidParam, "limit must be an integer")
			return
		}
		filter.Limit = limit
	}

	cacheKey := "news:" + r.URL.RawQuery
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLNews, true)
		return
	}

	items, err := h.news.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list news", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, respond.CodeStoreError, "Failed to list news")
		return
	}

	data, err := json.Marshal(items)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, respond.CodeStoreError, "Failed to encode news")
		return
	}
	etag := h.cache.Set(cacheKey, data, cache.TTLNews)
	respond.WriteJSON(w, data, etag, cache.TTLNews, false)
}

// GetNewsStatus reports ingest freshness.
// @Summary News ingest status
// @Description Returns the article count and the latest publication timestamp.
// @Tags news
// @Produce json
// @Success 200 {object} store.NewsStatus
// @Router /news/status [get]
func (h *Handler) GetNewsStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.news.Status(r.Context())
	if err != nil {
		h.logger.Error("news status", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, respond.CodeStoreError, "Failed to read news status")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, status)
}
