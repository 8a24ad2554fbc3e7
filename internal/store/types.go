// Package store implements typed access to the stats and news tables. The
// chat path does not use it; model-generated SQL goes through the guard and
// executor instead. Everything here is fixed, parameterized SQL.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound reports a lookup that matched no row.
var ErrNotFound = errors.New("not found")

// DB is the subset of pgxpool.Pool the stores need.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// StatRecord is one player-season-team row. Nullable columns map to
// pointers so NULLs survive the round trip from the CSV source.
type StatRecord struct {
	ID                int       `db:"id" json:"id"`
	Season            int       `db:"season" json:"season"`
	League            string    `db:"league" json:"league"`
	Player            string    `db:"player" json:"player"`
	PlayerID          string    `db:"player_id" json:"player_id"`
	Age               *int      `db:"age" json:"age"`
	Team              *string   `db:"team" json:"team"`
	Position          *string   `db:"position" json:"position"`
	FptsTotal         *float64  `db:"fpts_total" json:"fpts_total"`
	Fpts              *float64  `db:"fpts" json:"fpts"`
	Games             *int      `db:"games" json:"games"`
	GamesStarted      *int      `db:"games_started" json:"games_started"`
	MinutesPlayed     *int      `db:"minutes_played" json:"minutes_played"`
	FGMade            *int      `db:"fg_made" json:"fg_made"`
	FGAttempted       *int      `db:"fg_attempted" json:"fg_attempted"`
	FGPercentage      *float64  `db:"fg_percentage" json:"fg_percentage"`
	X3PMade           *int      `db:"x3p_made" json:"x3p_made"`
	X3PAttempted      *int      `db:"x3p_attempted" json:"x3p_attempted"`
	X3PPercentage     *float64  `db:"x3p_percentage" json:"x3p_percentage"`
	X2PMade           *int      `db:"x2p_made" json:"x2p_made"`
	X2PAttempted      *int      `db:"x2p_attempted" json:"x2p_attempted"`
	X2PPercentage     *float64  `db:"x2p_percentage" json:"x2p_percentage"`
	EFGPercentage     *float64  `db:"e_fg_percentage" json:"e_fg_percentage"`
	FTMade            *int      `db:"ft_made" json:"ft_made"`
	FTAttempted       *int      `db:"ft_attempted" json:"ft_attempted"`
	FTPercentage      *float64  `db:"ft_percentage" json:"ft_percentage"`
	OffensiveRebounds *int      `db:"offensive_rebounds" json:"offensive_rebounds"`
	DefensiveRebounds *int      `db:"defensive_rebounds" json:"defensive_rebounds"`
	TotalRebounds     *int      `db:"total_rebounds" json:"total_rebounds"`
	Assists           *int      `db:"assists" json:"assists"`
	Steals            *int      `db:"steals" json:"steals"`
	Blocks            *int      `db:"blocks" json:"blocks"`
	Turnovers         *int      `db:"turnovers" json:"turnovers"`
	PersonalFouls     *int      `db:"personal_fouls" json:"personal_fouls"`
	Points            *int      `db:"points" json:"points"`
	TripleDoubles     *int      `db:"triple_doubles" json:"triple_doubles"`
	Drafted           bool      `db:"drafted" json:"drafted"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// NewsItem is one classified news article or injury report.
type NewsItem struct {
	ID                 int        `db:"id" json:"id"`
	PlayerName         *string    `db:"player_name" json:"player_name"`
	PlayerID           *string    `db:"player_id" json:"player_id"`
	Team               *string    `db:"team" json:"team"`
	Title              string     `db:"title" json:"title"`
	Content            *string    `db:"content" json:"content"`
	Summary            *string    `db:"summary" json:"summary"`
	Category           string     `db:"category" json:"category"`
	Severity           *string    `db:"severity" json:"severity"`
	ImpactLevel        *string    `db:"impact_level" json:"impact_level"`
	Status             *string    `db:"status" json:"status"`
	ExpectedReturnDate *time.Time `db:"expected_return_date" json:"expected_return_date"`
	GamesMissed        *int       `db:"games_missed" json:"games_missed"`
	Source             string     `db:"source" json:"source"`
	SourceURL          *string    `db:"source_url" json:"source_url"`
	Author             *string    `db:"author" json:"author"`
	PublishedAt        time.Time  `db:"published_at" json:"published_at"`
	Tags               []string   `db:"tags" json:"tags"`
	AffectedStats      []string   `db:"affected_stats" json:"affected_stats"`
	FantasyImpactNote  *string    `db:"fantasy_impact_note" json:"fantasy_impact_note"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
}
