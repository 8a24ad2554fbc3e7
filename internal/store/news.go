package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fastbreakhq/fastbreak/internal/config"
)

const (
	defaultNewsLimit = 50
	maxNewsLimit     = 200
)

// NewsFilter narrows a news listing. Zero values mean "no filter".
type NewsFilter struct {
	Category   string
	PlayerName string // ILIKE match
	Team       string
	Source     string
	ActiveOnly bool // injuries with status = 'active'
	Limit      int
}

// NewsStatus summarizes ingest freshness.
type NewsStatus struct {
	Articles        int64      `json:"articles"`
	LatestPublished *time.Time `json:"latest_published"`
}

// News reads and writes the classified news table.
type News struct {
	db DB
}

// NewNews creates a news store.
func NewNews(db DB) *News {
	return &News{db: db}
}

func buildNewsQuery(f NewsFilter) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT * FROM " + config.NewsTable)

	var (
		clauses []string
		args    []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Category != "" {
		clauses = append(clauses, "category = "+arg(strings.ToLower(f.Category)))
	}
	if f.PlayerName != "" {
		clauses = append(clauses, "player_name ILIKE "+arg("%"+f.PlayerName+"%"))
	}
	if f.Team != "" {
		clauses = append(clauses, "team = "+arg(strings.ToUpper(f.Team)))
	}
	if f.Source != "" {
		clauses = append(clauses, "source = "+arg(f.Source))
	}
	if f.ActiveOnly {
		clauses = append(clauses, "status = 'active'")
	}
	if len(clauses) > 0 {
		b.WriteString(" WHERE " + strings.Join(clauses, " AND "))
	}

	b.WriteString(" ORDER BY published_at DESC")

	limit := f.Limit
	if limit <= 0 {
		limit = defaultNewsLimit
	}
	if limit > maxNewsLimit {
		limit = maxNewsLimit
	}
	b.WriteString(" LIMIT " + arg(limit))

	return b.String(), args
}

// List returns news items matching the filter, newest first.
func (n *News) List(ctx context.Context, f NewsFilter) ([]NewsItem, error) {
	sql, args := buildNewsQuery(f)
	rows, err := n.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[NewsItem])
	if err != nil {
		return nil, fmt.Errorf("scan news: %w", err)
	}
	return items, nil
}

// Status reports the article count and latest publication timestamp.
func (n *News) Status(ctx context.Context) (*NewsStatus, error) {
	var s NewsStatus
	if err := n.db.QueryRow(ctx, "news_status").Scan(&s.Articles, &s.LatestPublished); err != nil {
		return nil, fmt.Errorf("news status: %w", err)
	}
	return &s, nil
}

// Upsert inserts one news item, keyed by (title, published_at). Re-ingesting
// the same article refreshes its classification instead of duplicating it.
// Returns true when a new row was created.
func (n *News) Upsert(ctx context.Context, item NewsItem) (bool, error) {
	var inserted bool
	err := n.db.QueryRow(ctx, `
		INSERT INTO `+config.NewsTable+` (
			player_name, player_id, team, title, content, summary,
			category, severity, impact_level, status,
			expected_return_date, games_missed,
			source, source_url, author, published_at,
			tags, affected_stats, fantasy_impact_note
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19
		)
		ON CONFLICT (title, published_at) DO UPDATE SET
			player_name = EXCLUDED.player_name,
			player_id = EXCLUDED.player_id,
			team = EXCLUDED.team,
			content = EXCLUDED.content,
			summary = EXCLUDED.summary,
			category = EXCLUDED.category,
			severity = EXCLUDED.severity,
			impact_level = EXCLUDED.impact_level,
			status = EXCLUDED.status,
			expected_return_date = EXCLUDED.expected_return_date,
			games_missed = EXCLUDED.games_missed,
			tags = EXCLUDED.tags,
			affected_stats = EXCLUDED.affected_stats,
			fantasy_impact_note = EXCLUDED.fantasy_impact_note
		RETURNING (xmax = 0)`,
		item.PlayerName, item.PlayerID, item.Team, item.Title, item.Content,
		item.Summary, item.Category, item.Severity, item.ImpactLevel,
		item.Status, item.ExpectedReturnDate, item.GamesMissed,
		item.Source, item.SourceURL, item.Author, item.PublishedAt,
		item.Tags, item.AffectedStats, item.FantasyImpactNote,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("upsert news %q: %w", item.Title, err)
	}
	return inserted, nil
}

// Deduplicate removes older duplicates sharing (title, published_at),
// keeping the newest row. Runs during migration, before the unique index
// exists; afterwards the upsert path prevents new duplicates.
func (n *News) Deduplicate(ctx context.Context) (int64, error) {
	tag, err := n.db.Exec(ctx, `
		DELETE FROM `+config.NewsTable+` a
		USING `+config.NewsTable+` b
		WHERE a.id < b.id
		  AND a.title = b.title
		  AND a.published_at = b.published_at`)
	if err != nil {
		return 0, fmt.Errorf("deduplicate news: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Cleanup deletes articles older than the retention window and returns the
// number of rows removed.
func (n *News) Cleanup(ctx context.Context, days int) (int64, error) {
	tag, err := n.db.Exec(ctx, "news_cleanup", fmt.Sprintf("%d", days))
	if err != nil {
		return 0, fmt.Errorf("news cleanup: %w", err)
	}
	return tag.RowsAffected(), nil
}
