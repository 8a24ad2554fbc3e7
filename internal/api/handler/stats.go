package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fastbreakhq/fastbreak/internal/api/respond"
	"github.com/fastbreakhq/fastbreak/internal/cache"
	"github.com/fastbreakhq/fastbreak/internal/store"
)

// GetStats lists player stat rows with filters.
// @Summary List player stats
// @Description Returns player season stats with optional filters, sorted by fantasy points by default.
// @Tags stats
// @Produce json
// @Param season query int false "Season year"
// @Param team query string false "Team abbreviation, e.g. LAL"
// @Param position query string false "Position" Enums(PG, SG, SF, PF, C)
// @Param drafted query bool false "Filter by draft flag"
// @Param search query string false "Case-insensitive player name match"
// @Param order_by query string false "Sort key" Enums(fpts_total, fpts, points, assists, rebounds, player)
// @Param order query string false "Sort direction" Enums(asc, desc)
// @Param limit query int false "Max rows (default 100, cap 500)"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} store.StatRecord
// @Failure 400 {object} respond.ErrorResponse
// @Router /stats [get]
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.StatFilter{
		Team:     q.Get("team"),
		Position: q.Get("position"),
		Search:   q.Get("search"),
		OrderBy:  q.Get("order_by"),
		Order:    q.Get("order"),
	}

	if s := q.Get("season"); s != "" {
		season, err := strconv.Atoi(s)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidParam, "season must be an integer")
			return
		}
		filter.Season = season
	}
	if d := q.Get("drafted"); d != "" {
		drafted, err := strconv.ParseBool(d)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidParam, "drafted must be a boolean")
			return
		}
		filter.Drafted = &drafted
	}
	if l := q.Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidParam, "limit must be an integer")
			return
		}
		filter.Limit = limit
	}
	if o := q.Get("offset"); o != "" {
		offset, err := strconv.Atoi(o)
		if err != nil || offset < 0 {
			respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidParam, "offset must be a non-negative integer")
			return
		}
		filter.Offset = offset
	}

	cacheKey := "stats:" + r.URL.RawQuery
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLStats, true)
		return
	}

	records, err := h.stats.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list stats", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, respond.CodeStoreError, "Failed to list stats")
		return
	}

	data, err := json.Marshal(records)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, respond.CodeStoreError, "Failed to encode stats")
		return
	}
	etag := h.cache.Set(cacheKey, data, cache.TTLStats)
	respond.WriteJSON(w, data, etag, cache.TTLStats, false)
}

// GetTeams lists the team abbreviations present in the stats table.
// @Summary List teams
// @Tags stats
// @Produce json
// @Param season query int false "Restrict to one season"
// @Success 200 {array} string
// @Router /stats/teams [get]
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	season := 0
	if s := r.URL.Query().Get("season"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidParam, "season must be an integer")
			return
		}
		season = n
	}
	h.statsDimension(w, r, fmt.Sprintf("teams:%d", season), func(ctx context.Context) ([]string, error) {
		return h.stats.Teams(ctx, season)
	})
}

// GetPositions lists the positions present in the stats table.
// @Summary List positions
// @Tags stats
// @Produce json
// @Success 200 {array} string
// @Router /stats/positions [get]
func (h *Handler) GetPositions(w http.ResponseWriter, r *http.Request) {
	h.statsDimension(w, r, "positions", h.stats.Positions)
}

// statsDimension serves a cached distinct-values listing.
func (h *Handler) statsDimension(w http.ResponseWriter, r *http.Request, name string, load func(ctx context.Context) ([]string, error)) {
	cacheKey := "dim:" + name
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLDimensions, true)
		return
	}

	values, err := load(r.Context())
	if err != nil {
		h.logger.Error("list "+name, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, respond.CodeStoreError, "Failed to list "+name)
		return
	}
	data, err := json.Marshal(values)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, respond.CodeStoreError, "Failed to encode "+name)
		return
	}
	etag := h.cache.Set(cacheKey, data, cache.TTLDimensions)
	respond.WriteJSON(w, data, etag, cache.TTLDimensions, false)
}

// SetDrafted toggles the draft flag on one stat row.
// @Summary Set draft flag
// @Description Marks a player row as drafted or undrafted. Idempotent.
// @Tags stats
// @Accept json
// @Produce json
// @Param id path int true "Stat row ID"
// @Param body body draftRequest true "Draft flag"
// @Success 200 {object} store.StatRecord
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /stats/{id}/draft [patch]
func (h *Handler) SetDrafted(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidParam, "ID must be an integer")
		return
	}

	var body draftRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidParam, "Body must be {\"drafted\": bool}")
		return
	}

	record, err := h.stats.SetDrafted(r.Context(), id, body.Drafted)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respond.WriteError(w, http.StatusNotFound, respond.CodeNotFound,
				fmt.Sprintf("No stat row with id %d", id))
			return
		}
		h.logger.Error("set drafted", "id", id, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, respond.CodeStoreError, "Failed to update draft flag")
		return
	}

	// The flag changed; stale listings would show the old value.
	h.cache.Invalidate("stats:")

	respond.WriteJSONObject(w, http.StatusOK, record)
}

// draftRequest is the PATCH body for SetDrafted.
type draftRequest struct {
	Drafted bool `json:"drafted"`
}
