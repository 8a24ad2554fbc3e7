package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fastbreakhq/fastbreak/internal/config"
)

const (
	defaultStatsLimit = 100
	maxStatsLimit     = 500
)

// statsOrderColumns maps API sort keys to columns. Anything not in the map
// falls back to the default sort.
var statsOrderColumns = map[string]string{
	"fpts_total": "fpts_total",
	"fpts":       "fpts",
	"points":     "points",
	"assists":    "assists",
	"rebounds":   "total_rebounds",
	"player":     "player",
}

// StatFilter narrows a stats listing. Zero values mean "no filter".
type StatFilter struct {
	Season   int
	Team     string
	Position string
	Drafted  *bool
	Search   string // ILIKE match on player name
	OrderBy  string
	Order    string // "asc" or "desc"; default desc (asc for player)
	Limit    int
	Offset   int
}

// Stats reads and writes the player statistics table.
type Stats struct {
	db DB
}

// NewStats creates a stats store.
func NewStats(db DB) *Stats {
	return &Stats{db: db}
}

// buildStatsQuery renders a filter into parameterized SQL. Split out so the
// clause assembly is testable without a database.
func buildStatsQuery(f StatFilter) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT * FROM " + config.StatsTable)

	var (
		clauses []string
		args    []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Season != 0 {
		clauses = append(clauses, "season = "+arg(f.Season))
	}
	if f.Team != "" {
		clauses = append(clauses, "team = "+arg(strings.ToUpper(f.Team)))
	}
	if f.Position != "" {
		clauses = append(clauses, "position = "+arg(strings.ToUpper(f.Position)))
	}
	if f.Drafted != nil {
		clauses = append(clauses, "drafted = "+arg(*f.Drafted))
	}
	if f.Search != "" {
		clauses = append(clauses, "player ILIKE "+arg("%"+f.Search+"%"))
	}
	if len(clauses) > 0 {
		b.WriteString(" WHERE " + strings.Join(clauses, " AND "))
	}

	key := f.OrderBy
	column, ok := statsOrderColumns[key]
	if !ok {
		key, column = "fpts_total", "fpts_total"
	}
	direction := "DESC NULLS LAST"
	if key == "player" {
		direction = "ASC"
	}
	switch strings.ToLower(f.Order) {
	case "asc":
		direction = "ASC"
	case "desc":
		direction = "DESC NULLS LAST"
	}
	b.WriteString(" ORDER BY " + column + " " + direction)

	limit := f.Limit
	if limit <= 0 {
		limit = defaultStatsLimit
	}
	if limit > maxStatsLimit {
		limit = maxStatsLimit
	}
	b.WriteString(" LIMIT " + arg(limit))
	if f.Offset > 0 {
		b.WriteString(" OFFSET " + arg(f.Offset))
	}

	return b.String(), args
}

// List returns stat rows matching the filter.
func (s *Stats) List(ctx context.Context, f StatFilter) ([]StatRecord, error) {
	sql, args := buildStatsQuery(f)
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[StatRecord])
	if err != nil {
		return nil, fmt.Errorf("scan stats: %w", err)
	}
	return records, nil
}

// Teams returns the distinct team abbreviations present in the table,
// optionally restricted to one season (0 = all).
func (s *Stats) Teams(ctx context.Context, season int) ([]string, error) {
	sql := "SELECT DISTINCT team FROM " + config.StatsTable + " WHERE team IS NOT NULL"
	var args []any
	if season != 0 {
		sql += " AND season = $1"
		args = append(args, season)
	}
	sql += " ORDER BY team"

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	teams, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan teams: %w", err)
	}
	return teams, nil
}

// Positions returns the distinct positions present in the table.
func (s *Stats) Positions(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, "stat_positions")
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	positions, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan positions: %w", err)
	}
	return positions, nil
}

// SetDrafted sets the draft flag on one row and returns the updated record.
// Setting the same value twice is a no-op with the same result.
func (s *Stats) SetDrafted(ctx context.Context, id int, drafted bool) (*StatRecord, error) {
	rows, err := s.db.Query(ctx, "set_drafted", id, drafted)
	if err != nil {
		return nil, fmt.Errorf("set drafted: %w", err)
	}
	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[StatRecord])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("set drafted: %w", err)
	}
	return &record, nil
}

// Upsert inserts or updates one stat row, keyed by (player_id, season, team).
// The drafted flag is preserved on conflict so re-imports do not wipe a
// draft in progress.
func (s *Stats) Upsert(ctx context.Context, r StatRecord) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO `+config.StatsTable+` (
			season, league, player, player_id, age, team, position,
			fpts_total, fpts, games, games_started, minutes_played,
			fg_made, fg_attempted, fg_percentage,
			x3p_made, x3p_attempted, x3p_percentage,
			x2p_made, x2p_attempted, x2p_percentage, e_fg_percentage,
			ft_made, ft_attempted, ft_percentage,
			offensive_rebounds, defensive_rebounds, total_rebounds,
			assists, steals, blocks, turnovers, personal_fouls, points,
			triple_doubles
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
			$29, $30, $31, $32, $33, $34, $35
		)
		ON CONFLICT (player_id, season, team) DO UPDATE SET
			league = EXCLUDED.league,
			player = EXCLUDED.player,
			age = EXCLUDED.age,
			position = EXCLUDED.position,
			fpts_total = EXCLUDED.fpts_total,
			fpts = EXCLUDED.fpts,
			games = EXCLUDED.games,
			games_started = EXCLUDED.games_started,
			minutes_played = EXCLUDED.minutes_played,
			fg_made = EXCLUDED.fg_made,
			fg_attempted = EXCLUDED.fg_attempted,
			fg_percentage = EXCLUDED.fg_percentage,
			x3p_made = EXCLUDED.x3p_made,
			x3p_attempted = EXCLUDED.x3p_attempted,
			x3p_percentage = EXCLUDED.x3p_percentage,
			x2p_made = EXCLUDED.x2p_made,
			x2p_attempted = EXCLUDED.x2p_attempted,
			x2p_percentage = EXCLUDED.x2p_percentage,
			e_fg_percentage = EXCLUDED.e_fg_percentage,
			ft_made = EXCLUDED.ft_made,
			ft_attempted = EXCLUDED.ft_attempted,
			ft_percentage = EXCLUDED.ft_percentage,
			offensive_rebounds = EXCLUDED.offensive_rebounds,
			defensive_rebounds = EXCLUDED.defensive_rebounds,
			total_rebounds = EXCLUDED.total_rebounds,
			assists = EXCLUDED.assists,
			steals = EXCLUDED.steals,
			blocks = EXCLUDED.blocks,
			turnovers = EXCLUDED.turnovers,
			personal_fouls = EXCLUDED.personal_fouls,
			points = EXCLUDED.points,
			triple_doubles = EXCLUDED.triple_doubles,
			updated_at = NOW()`,
		r.Season, r.League, r.Player, r.PlayerID, r.Age, r.Team, r.Position,
		r.FptsTotal, r.Fpts, r.Games, r.GamesStarted, r.MinutesPlayed,
		r.FGMade, r.FGAttempted, r.FGPercentage,
		r.X3PMade, r.X3PAttempted, r.X3PPercentage,
		r.X2PMade, r.X2PAttempted, r.X2PPercentage, r.EFGPercentage,
		r.FTMade, r.FTAttempted, r.FTPercentage,
		r.OffensiveRebounds, r.DefensiveRebounds, r.TotalRebounds,
		r.Assists, r.Steals, r.Blocks, r.Turnovers, r.PersonalFouls, r.Points,
		r.TripleDoubles,
	)
	if err != nil {
		return fmt.Errorf("upsert stat %s/%d: %w", r.PlayerID, r.Season, err)
	}
	return nil
}

// Truncate empties the stats table. Used by full re-imports.
func (s *Stats) Truncate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, "TRUNCATE "+config.StatsTable+" RESTART IDENTITY"); err != nil {
		return fmt.Errorf("truncate stats: %w", err)
	}
	return nil
}
