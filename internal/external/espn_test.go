package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestClient(serverURL string) *ESPNClient {
	c := NewESPNClient(nil)
	c.baseURL = serverURL
	c.limiter = rate.NewLimiter(rate.Inf, 1)
	c.retryDelay = 0
	return c
}

func TestFetchNews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/news", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		w.Write([]byte(`{
			"articles": [
				{
					"headline": "Morant out at least two weeks with ankle sprain",
					"description": "Grizzlies guard suffered the injury Tuesday.",
					"byline": "Staff",
					"published": "2026-01-14T18:30:00Z",
					"links": {"web": {"href": "https://www.espn.com/story/1"}}
				},
				{"headline": "", "description": "no headline, dropped"}
			]
		}`))
	}))
	defer srv.Close()

	articles, err := newTestClient(srv.URL).FetchNews(context.Background(), 20)

	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Morant out at least two weeks with ankle sprain", articles[0].Headline)
	assert.Equal(t, "https://www.espn.com/story/1", articles[0].URL)
	assert.Equal(t, 2026, articles[0].Published.Year())
}

func TestFetchInjuriesFlattens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/injuries", r.URL.Path)
		w.Write([]byte(`{
			"injuries": [
				{
					"displayName": "Memphis Grizzlies",
					"injuries": [
						{
							"status": "Out",
							"date": "2026-01-14T00:00:00Z",
							"athlete": {"displayName": "Ja Morant", "position": {"abbreviation": "PG"}},
							"details": {"type": "Ankle", "returnDate": "2026-01-28"},
							"shortComment": "Out at least two weeks."
						}
					]
				},
				{
					"displayName": "Denver Nuggets",
					"injuries": [
						{
							"status": "Day-To-Day",
							"athlete": {"displayName": "Jamal Murray", "position": {"abbreviation": "PG"}},
							"details": {"type": "Knee", "returnDate": ""},
							"longComment": "Questionable for Thursday."
						}
					]
				}
			]
		}`))
	}))
	defer srv.Close()

	reports, err := newTestClient(srv.URL).FetchInjuries(context.Background())

	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "Memphis Grizzlies", reports[0].Team)
	assert.Equal(t, "Ja Morant", reports[0].PlayerName)
	assert.Equal(t, "Out", reports[0].Status)
	assert.Equal(t, "2026-01-28", reports[0].ReturnDate)
	assert.Equal(t, "Out at least two weeks.", reports[0].Comment)
	assert.Equal(t, "Questionable for Thursday.", reports[1].Comment)
}

func TestGetRetriesOnServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "throttled", http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"articles": []}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchNews(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
