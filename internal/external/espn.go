// Package external provides HTTP clients for upstream news providers.
//
// ESPN's site API is unauthenticated but undocumented; requests are rate
// limited and retried because it throttles bursts without warning.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	espnBaseURL = "https://site.api.espn.com/apis/site/v2/sports/basketball/nba"

	maxAttempts = 3
)

// NewsArticle is one article from the ESPN news feed.
type NewsArticle struct {
	Headline    string
	Description string
	Byline      string
	URL         string
	Published   time.Time
}

// InjuryReport is one player entry from the ESPN injuries feed.
type InjuryReport struct {
	Team       string
	PlayerName string
	Position   string
	Status     string // e.g. "Out", "Day-To-Day", "Out For Season"
	Detail     string // injury type, e.g. "Ankle"
	Comment    string
	ReturnDate string // YYYY-MM-DD, may be empty
	Date       time.Time
}

// ESPNClient fetches NBA news and injury reports from the ESPN site API.
type ESPNClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewESPNClient creates an ESPN client with rate limiting.
func NewESPNClient(logger *slog.Logger) *ESPNClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &ESPNClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    espnBaseURL,
		limiter:    rate.NewLimiter(rate.Limit(1), 2),
		retryDelay: 2 * time.Second,
		logger:     logger,
	}
}

type espnNewsResponse struct {
	Articles []struct {
		Headline    string    `json:"headline"`
		Description string    `json:"description"`
		Byline      string    `json:"byline"`
		Published   time.Time `json:"published"`
		Links       struct {
			Web struct {
				Href string `json:"href"`
			} `json:"web"`
		} `json:"links"`
	} `json:"articles"`
}

type espnInjuriesResponse struct {
	Injuries []struct {
		DisplayName string `json:"displayName"`
		Injuries    []struct {
			Status  string    `json:"status"`
			Date    time.Time `json:"date"`
			Athlete struct {
				DisplayName string `json:"displayName"`
				Position    struct {
					Abbreviation string `json:"abbreviation"`
				} `json:"position"`
			} `json:"athlete"`
			Details struct {
				Type       string `json:"type"`
				ReturnDate string `json:"returnDate"`
			} `json:"details"`
			LongComment  string `json:"longComment"`
			ShortComment string `json:"shortComment"`
		} `json:"injuries"`
	} `json:"injuries"`
}

// FetchNews returns up to limit recent NBA news articles.
func (c *ESPNClient) FetchNews(ctx context.Context, limit int) ([]NewsArticle, error) {
	if limit <= 0 {
		limit = 20
	}
	body, err := c.get(ctx, fmt.Sprintf("/news?limit=%d", limit))
	if err != nil {
		return nil, err
	}

	var parsed espnNewsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}

	articles := make([]NewsArticle, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		if a.Headline == "" {
			continue
		}
		articles = append(articles, NewsArticle{
			Headline:    a.Headline,
			Description: a.Description,
			Byline:      a.Byline,
			URL:         a.Links.Web.Href,
			Published:   a.Published,
		})
	}
	return articles, nil
}

// FetchInjuries returns the current league-wide injury report, flattened to
// one entry per player.
func (c *ESPNClient) FetchInjuries(ctx context.Context) ([]InjuryReport, error) {
	body, err := c.get(ctx, "/injuries")
	if err != nil {
		return nil, err
	}

	var parsed espnInjuriesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode injuries response: %w", err)
	}

	var reports []InjuryReport
	for _, team := range parsed.Injuries {
		for _, inj := range team.Injuries {
			if inj.Athlete.DisplayName == "" {
				continue
			}
			comment := inj.LongComment
			if comment == "" {
				comment = inj.ShortComment
			}
			reports = append(reports, InjuryReport{
				Team:       team.DisplayName,
				PlayerName: inj.Athlete.DisplayName,
				Position:   inj.Athlete.Position.Abbreviation,
				Status:     inj.Status,
				Detail:     inj.Details.Type,
				Comment:    comment,
				ReturnDate: inj.Details.ReturnDate,
				Date:       inj.Date,
			})
		}
	}
	return reports, nil
}

// get performs a rate-limited GET with retries.
func (c *ESPNClient) get(ctx context.Context, path string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		body, err := c.doGet(ctx, path)
		if err == nil {
			return body, nil
		}
		lastErr = err
		c.logger.Warn("espn request failed", "path", path, "attempt", attempt, "error", err)

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * c.retryDelay):
			}
		}
	}
	return nil, fmt.Errorf("espn %s after %d attempts: %w", path, maxAttempts, lastErr)
}

func (c *ESPNClient) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("espn %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}
	return body, nil
}

func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
