package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbreakhq/fastbreak/internal/cache"
	"github.com/fastbreakhq/fastbreak/internal/chat"
	"github.com/fastbreakhq/fastbreak/internal/config"
	"github.com/fastbreakhq/fastbreak/internal/store"
)

type fakeStatStore struct {
	lastFilter store.StatFilter
	records    []store.StatRecord
	drafted    map[int]bool
	err        error
}

func (s *fakeStatStore) List(ctx context.Context, f store.StatFilter) ([]store.StatRecord, error) {
	s.lastFilter = f
	return s.records, s.err
}

func (s *fakeStatStore) Teams(ctx context.Context, season int) ([]string, error) {
	return []string{"DEN", "LAL"}, s.err
}

func (s *fakeStatStore) Positions(ctx context.Context) ([]string, error) {
	return []string{"C", "PF", "PG", "SF", "SG"}, s.err
}

func (s *fakeStatStore) SetDrafted(ctx context.Context, id int, drafted bool) (*store.StatRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	if id != 42 {
		return nil, store.ErrNotFound
	}
	if s.drafted == nil {
		s.drafted = make(map[int]bool)
	}
	s.drafted[id] = drafted
	return &store.StatRecord{ID: id, Player: "Nikola Jokic", Drafted: drafted}, nil
}

type fakeNewsStore struct {
	lastFilter store.NewsFilter
	items      []store.NewsItem
	status     *store.NewsStatus
	err        error
}

func (s *fakeNewsStore) List(ctx context.Context, f store.NewsFilter) ([]store.NewsItem, error) {
	s.lastFilter = f
	return s.items, s.err
}

func (s *fakeNewsStore) Status(ctx context.Context) (*store.NewsStatus, error) {
	return s.status, s.err
}

type fakePinger struct{ err error }

func (p *fakePinger) HealthCheck(ctx context.Context) error { return p.err }

type fakeRunner struct {
	deltas []string
	result *chat.Result
	err    error
}

func (r *fakeRunner) Run(ctx context.Context, sess *chat.Session, userText string, onDelta func(string)) (*chat.Result, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, d := range r.deltas {
		onDelta(d)
	}
	return r.result, nil
}

func testConfig() *config.Config {
	return &config.Config{
		LLMProvider:        config.ProviderOpenAI,
		ChatMaxToolRounds:  8,
		ChatRequestTimeout: 30 * time.Second,
		CacheEnabled:       true,
	}
}

func newTestHandler(stats *fakeStatStore, news *fakeNewsStore, runner *fakeRunner) *Handler {
	return New(&fakePinger{}, stats, news, runner, cache.New(true), testConfig(), nil)
}

func TestGetStatsParsesFilters(t *testing.T) {
	stats := &fakeStatStore{records: []store.StatRecord{{ID: 1, Player: "Nikola Jokic"}}}
	h := newTestHandler(stats, &fakeNewsStore{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats?season=2025&team=DEN&position=C&drafted=false&order_by=points&limit=25", nil)
	rec := httptest.NewRecorder()
	h.GetStats(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Nikola Jokic")

	f := stats.lastFilter
	assert.Equal(t, 2025, f.Season)
	assert.Equal(t, "DEN", f.Team)
	assert.Equal(t, "C", f.Position)
	require.NotNil(t, f.Drafted)
	assert.False(t, *f.Drafted)
	assert.Equal(t, "points", f.OrderBy)
	assert.Equal(t, 25, f.Limit)
}

func TestGetStatsBadParams(t *testing.T) {
	h := newTestHandler(&fakeStatStore{}, &fakeNewsStore{}, nil)

	for _, query := range []string{"season=next", "drafted=maybe", "limit=all"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stats?"+query, nil)
		rec := httptest.NewRecorder()
		h.GetStats(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
		assert.Contains(t, rec.Body.String(), "INVALID_PARAM")
	}
}

func TestGetStatsETag(t *testing.T) {
	stats := &fakeStatStore{records: []store.StatRecord{{ID: 1, Player: "Nikola Jokic"}}}
	h := newTestHandler(stats, &fakeNewsStore{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats?season=2025", nil)
	rec := httptest.NewRecorder()
	h.GetStats(rec, req)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/stats?season=2025", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.GetStats(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
}

func TestSetDrafted(t *testing.T) {
	stats := &fakeStatStore{}
	h := newTestHandler(stats, &fakeNewsStore{}, nil)

	patch := func(id, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/stats/"+id+"/draft", strings.NewReader(body))
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		rec := httptest.NewRecorder()
		h.SetDrafted(rec, req)
		return rec
	}

	rec := patch("42", `{"drafted": true}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"drafted":true`)

	// Same value again is idempotent at the contract level.
	rec = patch("42", `{"drafted": true}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"drafted":true`)

	rec = patch("42", `{"drafted": false}`)
	assert.Contains(t, rec.Body.String(), `"drafted":false`)

	rec = patch("999", `{"drafted": true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")

	rec = patch("abc", `{"drafted": true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = patch("42", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetNewsFilters(t *testing.T) {
	news := &fakeNewsStore{items: []store.NewsItem{{ID: 1, Title: "Ja Morant - Out", Category: "injury"}}}
	h := newTestHandler(&fakeStatStore{}, news, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/news?category=injury&player=morant&active=true&limit=10", nil)
	rec := httptest.NewRecorder()
	h.GetNews(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ja Morant")
	assert.Equal(t, "injury", news.lastFilter.Category)
	assert.Equal(t, "morant", news.lastFilter.PlayerName)
	assert.True(t, news.lastFilter.ActiveOnly)
	assert.Equal(t, 10, news.lastFilter.Limit)
}

func TestGetNewsStatus(t *testing.T) {
	latest := time.Date(2026, 1, 14, 18, 30, 0, 0, time.UTC)
	news := &fakeNewsStore{status: &store.NewsStatus{Articles: 120, LatestPublished: &latest}}
	h := newTestHandler(&fakeStatStore{}, news, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/news/status", nil)
	rec := httptest.NewRecorder()
	h.GetNewsStatus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"articles":120`)
}

func TestHealthCheckDB(t *testing.T) {
	h := New(&fakePinger{err: errors.New("down")}, &fakeStatStore{}, &fakeNewsStore{}, nil, cache.New(false), testConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health/db", nil)
	rec := httptest.NewRecorder()
	h.HealthCheckDB(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
