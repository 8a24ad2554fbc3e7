// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastbreakhq/fastbreak/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers the fixed statements used by the API
// and ingestion layers. The chat path's model-generated SQL is never prepared;
// it arrives ad hoc and goes through the guard instead.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// API: draft flag toggle (single-row, single-field, idempotent)
		"set_drafted": `UPDATE ` + config.StatsTable + `
			SET drafted = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING id, season, league, player, player_id, age, team, position,
				fpts_total, fpts, games, games_started, minutes_played,
				fg_made, fg_attempted, fg_percentage,
				x3p_made, x3p_attempted, x3p_percentage,
				x2p_made, x2p_attempted, x2p_percentage, e_fg_percentage,
				ft_made, ft_attempted, ft_percentage,
				offensive_rebounds, defensive_rebounds, total_rebounds,
				assists, steals, blocks, turnovers, personal_fouls, points,
				triple_doubles, drafted, created_at, updated_at`,

		// API: dimension lookups
		"stat_positions": "SELECT DISTINCT position FROM " + config.StatsTable +
			" WHERE position IS NOT NULL ORDER BY position",

		// API: news ingest freshness
		"news_status": "SELECT count(*), max(published_at) FROM " + config.NewsTable,

		// Ingestion: retention sweep
		"news_cleanup": "DELETE FROM " + config.NewsTable +
			" WHERE published_at < NOW() - ($1 || ' days')::interval",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
