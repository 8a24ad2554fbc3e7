package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fastbreakhq/fastbreak/internal/external"
	"github.com/fastbreakhq/fastbreak/internal/llm"
	"github.com/fastbreakhq/fastbreak/internal/store"
)

// retentionDays is the news table retention window.
const retentionDays = 30

const classifyInstruction = `You are an NBA news analyst for a fantasy basketball app.
Given one news article, respond with a single JSON object and nothing else:

{
  "player_name": "primary affected player, or null",
  "team": "three-letter team abbreviation, or null",
  "category": "injury" | "trade" | "suspension" | "performance" | "roster" | "other",
  "severity": "minor" | "moderate" | "severe" | "season_ending" | null,
  "impact_level": "low" | "medium" | "high" | "critical",
  "status": "active" | "resolved" | "monitoring" | null,
  "expected_return_date": "YYYY-MM-DD or null",
  "games_missed": estimated number or null,
  "tags": ["short", "tags"],
  "affected_stats": ["fantasy categories likely affected, e.g. points"],
  "fantasy_impact_note": "one sentence on what fantasy managers should do",
  "summary": "one sentence summary of the article"
}

Severity and status apply to injuries only. Use null when a field does not apply.`

// classification is the model's verdict on one article.
type classification struct {
	PlayerName         *string  `json:"player_name"`
	Team               *string  `json:"team"`
	Category           string   `json:"category"`
	Severity           *string  `json:"severity"`
	ImpactLevel        *string  `json:"impact_level"`
	Status             *string  `json:"status"`
	ExpectedReturnDate *string  `json:"expected_return_date"`
	GamesMissed        *int     `json:"games_missed"`
	Tags               []string `json:"tags"`
	AffectedStats      []string `json:"affected_stats"`
	FantasyImpactNote  *string  `json:"fantasy_impact_note"`
	Summary            *string  `json:"summary"`
}

// NewsSource fetches articles and injury reports.
type NewsSource interface {
	FetchNews(ctx context.Context, limit int) ([]external.NewsArticle, error)
	FetchInjuries(ctx context.Context) ([]external.InjuryReport, error)
}

// NewsWriter is the slice of the news store the pipeline uses.
type NewsWriter interface {
	Upsert(ctx context.Context, item store.NewsItem) (bool, error)
	Cleanup(ctx context.Context, days int) (int64, error)
}

// Pipeline ingests ESPN news and injuries. Articles go through the model for
// classification; injury reports are mapped mechanically because the feed is
// already structured.
type Pipeline struct {
	source NewsSource
	news   NewsWriter
	client llm.Client
	logger *slog.Logger
}

// NewPipeline creates a news ingestion pipeline. client may be nil when
// analysis is always skipped.
func NewPipeline(source NewsSource, news NewsWriter, client llm.Client, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{source: source, news: news, client: client, logger: logger}
}

// Run fetches up to limit articles plus the injury report, classifies,
// upserts and sweeps old rows. Per-article failures are recorded and the run
// continues; only fetch failures abort.
func (p *Pipeline) Run(ctx context.Context, limit int, skipAnalysis bool) (*Result, error) {
	var result Result

	articles, err := p.source.FetchNews(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	result.ArticlesFetched = len(articles)

	for _, article := range articles {
		item := p.articleItem(ctx, article, skipAnalysis, &result)
		inserted, err := p.news.Upsert(ctx, item)
		if err != nil {
			result.AddErrorf("upsert article %q: %v", article.Headline, err)
			continue
		}
		if inserted {
			result.ArticlesInserted++
		}
	}

	reports, err := p.source.FetchInjuries(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch injuries: %w", err)
	}
	result.InjuriesFetched = len(reports)

	for _, report := range reports {
		inserted, err := p.news.Upsert(ctx, injuryItem(report))
		if err != nil {
			result.AddErrorf("upsert injury %q: %v", report.PlayerName, err)
			continue
		}
		if inserted {
			result.ArticlesInserted++
		}
	}

	cleaned, err := p.news.Cleanup(ctx, retentionDays)
	if err != nil {
		result.AddErrorf("cleanup: %v", err)
	}
	result.ArticlesCleaned = cleaned

	p.logger.Info("news ingest complete", "summary", result.Summary())
	return &result, nil
}

// articleItem builds the row for one article, classifying it with the model
// unless analysis is skipped or fails. Either way the article lands; an
// unclassified row beats a dropped one.
func (p *Pipeline) articleItem(ctx context.Context, article external.NewsArticle, skipAnalysis bool, result *Result) store.NewsItem {
	item := store.NewsItem{
		Title:       article.Headline,
		Content:     strPtr(article.Description),
		Category:    "other",
		Source:      "espn",
		SourceURL:   strPtr(article.URL),
		Author:      strPtr(article.Byline),
		PublishedAt: article.Published,
	}
	if skipAnalysis || p.client == nil {
		return item
	}

	verdict, err := p.classify(ctx, article)
	if err != nil {
		result.AddErrorf("classify %q: %v", article.Headline, err)
		return item
	}

	item.PlayerName = verdict.PlayerName
	item.Team = upperPtr(verdict.Team)
	if verdict.Category != "" {
		item.Category = strings.ToLower(verdict.Category)
	}
	item.Severity = verdict.Severity
	item.ImpactLevel = verdict.ImpactLevel
	item.Status = verdict.Status
	item.ExpectedReturnDate = parseDate(verdict.ExpectedReturnDate)
	item.GamesMissed = verdict.GamesMissed
	item.Tags = verdict.Tags
	item.AffectedStats = verdict.AffectedStats
	item.FantasyImpactNote = verdict.FantasyImpactNote
	item.Summary = verdict.Summary
	return item
}

// classify asks the model for a JSON verdict on one article.
func (p *Pipeline) classify(ctx context.Context, article external.NewsArticle) (*classification, error) {
	resp, err := p.client.Complete(ctx, llm.Request{
		System: classifyInstruction,
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: fmt.Sprintf("Headline: %s\n\n%s", article.Headline, article.Description),
		}},
		MaxTokens: 512,
	}, nil)
	if err != nil {
		return nil, err
	}

	var verdict classification
	if err := json.Unmarshal([]byte(llm.CleanJSONResponse(resp.Text)), &verdict); err != nil {
		return nil, fmt.Errorf("decode classification: %w", err)
	}
	return &verdict, nil
}

// injuryItem maps one structured injury report to a news row. No model call:
// the feed already names the player, status and injury type.
func injuryItem(report external.InjuryReport) store.NewsItem {
	severity, impact := mapInjurySeverity(report.Status)
	published := report.Date
	if published.IsZero() {
		published = time.Now().UTC().Truncate(24 * time.Hour)
	}

	title := fmt.Sprintf("%s - %s", report.PlayerName, report.Status)
	content := report.Comment
	if content == "" {
		content = fmt.Sprintf("%s (%s) is listed as %s with a %s injury.",
			report.PlayerName, report.Team, report.Status, strings.ToLower(report.Detail))
	}

	return store.NewsItem{
		PlayerName:         strPtr(report.PlayerName),
		Team:               strPtr(teamAbbrev(report.Team)),
		Title:              title,
		Content:            strPtr(content),
		Category:           "injury",
		Severity:           &severity,
		ImpactLevel:        &impact,
		Status:             strPtr("active"),
		ExpectedReturnDate: parseDate(strPtr(report.ReturnDate)),
		Source:             "espn_injuries",
		PublishedAt:        published,
		Tags:               []string{"injury", strings.ToLower(report.Detail)},
	}
}

// mapInjurySeverity converts an ESPN status string to the severity and
// impact_level enums. Unrecognized statuses default low.
func mapInjurySeverity(status string) (severity, impact string) {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "season"):
		return "season_ending", "critical"
	case strings.Contains(s, "out"):
		return "moderate", "high"
	case strings.Contains(s, "doubtful"):
		return "moderate", "high"
	case strings.Contains(s, "day-to-day"), strings.Contains(s, "questionable"):
		return "minor", "low"
	default:
		return "minor", "medium"
	}
}

// teamAbbrev reduces a full team name to a short code when no abbreviation
// is available. "Memphis Grizzlies" becomes "MEM".
func teamAbbrev(name string) string {
	if abbr, ok := teamAbbrevs[name]; ok {
		return abbr
	}
	name = strings.TrimSpace(name)
	if len(name) > 3 {
		name = name[:3]
	}
	return strings.ToUpper(name)
}

var teamAbbrevs = map[string]string{
	"Atlanta Hawks":          "ATL",
	"Boston Celtics":         "BOS",
	"Brooklyn Nets":          "BKN",
	"Charlotte Hornets":      "CHO",
	"Chicago Bulls":          "CHI",
	"Cleveland Cavaliers":    "CLE",
	"Dallas Mavericks":       "DAL",
	"Denver Nuggets":         "DEN",
	"Detroit Pistons":        "DET",
	"Golden State Warriors":  "GSW",
	"Houston Rockets":        "HOU",
	"Indiana Pacers":         "IND",
	"LA Clippers":            "LAC",
	"Los Angeles Clippers":   "LAC",
	"Los Angeles Lakers":     "LAL",
	"Memphis Grizzlies":      "MEM",
	"Miami Heat":             "MIA",
	"Milwaukee Bucks":        "MIL",
	"Minnesota Timberwolves": "MIN",
	"New Orleans Pelicans":   "NOP",
	"New York Knicks":        "NYK",
	"Oklahoma City Thunder":  "OKC",
	"Orlando Magic":          "ORL",
	"Philadelphia 76ers":     "PHI",
	"Phoenix Suns":           "PHO",
	"Portland Trail Blazers": "POR",
	"Sacramento Kings":       "SAC",
	"San Antonio Spurs":      "SAS",
	"Toronto Raptors":        "TOR",
	"Utah Jazz":              "UTA",
	"Washington Wizards":     "WAS",
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func upperPtr(s *string) *string {
	if s == nil {
		return nil
	}
	u := strings.ToUpper(*s)
	return &u
}

func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}
