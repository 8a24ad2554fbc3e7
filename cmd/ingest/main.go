// Command ingest is the Fastbreak data ingestion CLI.
//
// Usage:
//
//	fastbreak-ingest migrate
//	fastbreak-ingest stats --file data/nba_stats_2025.csv --season 2025
//	fastbreak-ingest stats --file data/nba_stats_2025.csv --truncate
//	fastbreak-ingest news --limit 20
//	fastbreak-ingest news --skip-analysis
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fastbreakhq/fastbreak/internal/config"
	"github.com/fastbreakhq/fastbreak/internal/db"
	"github.com/fastbreakhq/fastbreak/internal/external"
	"github.com/fastbreakhq/fastbreak/internal/ingest"
	"github.com/fastbreakhq/fastbreak/internal/llm"
	"github.com/fastbreakhq/fastbreak/internal/schema"
	"github.com/fastbreakhq/fastbreak/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "fastbreak-ingest",
		Short: "Fastbreak data ingestion CLI",
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(newsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// withPool loads config, connects, runs fn and closes the pool.
func withPool(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables and indexes if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				for _, stmt := range schema.TableDDL() {
					if _, err := pool.Exec(ctx, stmt); err != nil {
						return err
					}
				}
				// Duplicates predate the unique index; clear them first.
				removed, err := store.NewNews(pool).Deduplicate(ctx)
				if err != nil {
					return err
				}
				if removed > 0 {
					logger.Info("Removed duplicate news rows", "count", removed)
				}
				for _, stmt := range schema.IndexDDL() {
					if _, err := pool.Exec(ctx, stmt); err != nil {
						return err
					}
				}
				logger.Info("Migration complete", "tables", len(schema.Tables()))
				return nil
			})
		},
	}
}

func statsCmd() *cobra.Command {
	var (
		file     string
		season   int
		truncate bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Import player season stats from CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				start := time.Now()
				result, err := ingest.ImportStats(ctx, store.NewStats(pool), file, season, truncate, logger)
				if err != nil {
					return err
				}
				logger.Info("Stats import finished",
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("import error", "error", e)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to the stats CSV (required)")
	cmd.Flags().IntVar(&season, "season", config.CurrentSeason, "Season year for rows without one")
	cmd.Flags().BoolVar(&truncate, "truncate", false, "Empty the table before importing")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newsCmd() *cobra.Command {
	var (
		limit        int
		skipAnalysis bool
	)
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Fetch, classify and store ESPN news and injury reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				var client llm.Client
				if !skipAnalysis {
					var err error
					client, err = llm.New(cfg)
					if err != nil {
						return err
					}
				}

				pipeline := ingest.NewPipeline(
					external.NewESPNClient(logger),
					store.NewNews(pool),
					client, logger)

				start := time.Now()
				result, err := pipeline.Run(ctx, limit, skipAnalysis)
				if err != nil {
					return err
				}
				logger.Info("News ingest finished",
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("ingest error", "error", e)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Max articles to fetch")
	cmd.Flags().BoolVar(&skipAnalysis, "skip-analysis", false, "Store articles without model classification")
	return cmd
}
