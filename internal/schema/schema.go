// Package schema is the static registry of the queryable tables. It carries
// no logic beyond rendering: the column lists feed the model-facing prompt
// context, and the DDL feeds the migrate command. Handlers and the guard do
// not consult it: any SELECT-shaped statement against these tables is
// acceptable input to the query tool.
package schema

import (
	"fmt"
	"strings"

	"github.com/fastbreakhq/fastbreak/internal/config"
)

// Column describes one queryable column.
type Column struct {
	Name string
	Type string
	Desc string
}

// Table describes one queryable relation.
type Table struct {
	Name    string
	Desc    string
	Columns []Column
}

// Stats is the per-player-season-team statistics relation. Logically keyed
// by (player_id, season, team).
var Stats = Table{
	Name: config.StatsTable,
	Desc: "One row per player per season per team. 2024-2025 NBA season data.",
	Columns: []Column{
		{"id", "SERIAL PRIMARY KEY", "surrogate row id"},
		{"season", "INTEGER NOT NULL", "season year, e.g. 2025"},
		{"league", "VARCHAR(10) NOT NULL", "league code, always NBA"},
		{"player", "VARCHAR(100) NOT NULL", "player full name"},
		{"player_id", "VARCHAR(20) NOT NULL", "basketball-reference player identifier"},
		{"age", "INTEGER", "player age during the season"},
		{"team", "VARCHAR(10)", "team abbreviation, e.g. LAL, GSW"},
		{"position", "VARCHAR(5)", "position: PG, SG, SF, PF or C"},
		{"fpts_total", "DECIMAL(10,2)", "total fantasy points for the season"},
		{"fpts", "DECIMAL(10,2)", "fantasy points per game"},
		{"games", "INTEGER", "games played"},
		{"games_started", "INTEGER", "games started"},
		{"minutes_played", "INTEGER", "total minutes played"},
		{"fg_made", "INTEGER", "field goals made"},
		{"fg_attempted", "INTEGER", "field goals attempted"},
		{"fg_percentage", "DECIMAL(5,3)", "field goal percentage"},
		{"x3p_made", "INTEGER", "3-point field goals made"},
		{"x3p_attempted", "INTEGER", "3-point field goals attempted"},
		{"x3p_percentage", "DECIMAL(5,3)", "3-point percentage"},
		{"x2p_made", "INTEGER", "2-point field goals made"},
		{"x2p_attempted", "INTEGER", "2-point field goals attempted"},
		{"x2p_percentage", "DECIMAL(5,3)", "2-point percentage"},
		{"e_fg_percentage", "DECIMAL(5,3)", "effective field goal percentage"},
		{"ft_made", "INTEGER", "free throws made"},
		{"ft_attempted", "INTEGER", "free throws attempted"},
		{"ft_percentage", "DECIMAL(5,3)", "free throw percentage"},
		{"offensive_rebounds", "INTEGER", "offensive rebounds"},
		{"defensive_rebounds", "INTEGER", "defensive rebounds"},
		{"total_rebounds", "INTEGER", "total rebounds"},
		{"assists", "INTEGER", "assists"},
		{"steals", "INTEGER", "steals"},
		{"blocks", "INTEGER", "blocks"},
		{"turnovers", "INTEGER", "turnovers"},
		{"personal_fouls", "INTEGER", "personal fouls"},
		{"points", "INTEGER", "total points scored"},
		{"triple_doubles", "INTEGER", "triple-doubles recorded"},
		{"drafted", "BOOLEAN DEFAULT FALSE", "true once the player is taken in the user's fantasy draft"},
		{"created_at", "TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP", "row creation time"},
		{"updated_at", "TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP", "row update time"},
	},
}

// News is the classified news relation. Natural dedup key
// (title, published_at).
var News = Table{
	Name: config.NewsTable,
	Desc: "Classified NBA news articles and injury reports.",
	Columns: []Column{
		{"id", "SERIAL PRIMARY KEY", "surrogate row id"},
		{"player_name", "VARCHAR(100)", "affected player, if any"},
		{"player_id", "VARCHAR(20)", "affected player identifier, if known"},
		{"team", "VARCHAR(10)", "team abbreviation, if known"},
		{"title", "TEXT NOT NULL", "article headline"},
		{"content", "TEXT", "article body or description"},
		{"summary", "TEXT", "short summary"},
		{"category", "VARCHAR(20) NOT NULL DEFAULT 'other'", "injury, trade, suspension, performance, roster or other"},
		{"severity", "VARCHAR(20)", "for injuries: minor, moderate, severe or season_ending"},
		{"impact_level", "VARCHAR(10)", "fantasy impact: low, medium, high or critical"},
		{"status", "VARCHAR(20)", "for injuries: active, resolved or monitoring"},
		{"expected_return_date", "DATE", "expected return date for injured players"},
		{"games_missed", "INTEGER", "estimated games missed"},
		{"source", "VARCHAR(50) NOT NULL", "provenance, e.g. espn, espn_injuries"},
		{"source_url", "TEXT", "link to the original article"},
		{"author", "VARCHAR(100)", "article byline"},
		{"published_at", "TIMESTAMPTZ NOT NULL", "publication timestamp"},
		{"tags", "TEXT[]", "free-form tags"},
		{"affected_stats", "TEXT[]", "fantasy stat categories likely affected"},
		{"fantasy_impact_note", "TEXT", "model-written fantasy impact analysis"},
		{"created_at", "TIMESTAMPTZ NOT NULL DEFAULT NOW()", "row creation time"},
	},
}

// Tables returns all queryable tables in registry order.
func Tables() []Table {
	return []Table{Stats, News}
}

// PromptContext renders the registry as model-facing context: table DDL plus
// per-column semantics, in the shape the model is instructed to query.
func PromptContext() string {
	var b strings.Builder
	for _, t := range Tables() {
		fmt.Fprintf(&b, "%s: %s\n\n", t.Name, t.Desc)
		fmt.Fprintf(&b, "%s (\n", t.Name)
		for i, c := range t.Columns {
			sep := ","
			if i == len(t.Columns)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "    %s %s%s\n", c.Name, c.Type, sep)
		}
		b.WriteString(")\n\n")
		for _, c := range t.Columns {
			fmt.Fprintf(&b, "%s.%s: %s\n", t.Name, c.Name, c.Desc)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// TableDDL returns the idempotent CREATE TABLE statements.
func TableDDL() []string {
	stmts := make([]string, 0, len(Tables()))
	for _, t := range Tables() {
		var b strings.Builder
		fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", t.Name)
		for i, c := range t.Columns {
			sep := ","
			if i == len(t.Columns)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "    %s %s%s\n", c.Name, c.Type, sep)
		}
		b.WriteString(")")
		stmts = append(stmts, b.String())
	}
	return stmts
}

// IndexDDL returns the uniqueness indexes. Applied after the news table has
// been de-duplicated, or creation fails on pre-existing duplicates.
func IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_nba_stats_unique_row ON " +
			config.StatsTable + "(player_id, season, team)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_nba_news_unique_article ON " +
			config.NewsTable + "(title, published_at)",
	}
}

// DDL returns all migration statements in application order.
func DDL() []string {
	return append(TableDDL(), IndexDDL()...)
}
