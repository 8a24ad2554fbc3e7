package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fastbreakhq/fastbreak/internal/store"
)

// StatWriter is the slice of the stats store the importer uses.
type StatWriter interface {
	Upsert(ctx context.Context, r store.StatRecord) error
	Truncate(ctx context.Context) error
}

// Headers are matched case-insensitively; the export uses
// basketball-reference short names. Only these two must be present.
var requiredColumns = []string{"player", "player_id"}

// ImportStats reads a season stats CSV and upserts one row per record.
// Missing or "NA" cells become NULLs. Rows without a player name or id are
// skipped and counted, not fatal.
func ImportStats(ctx context.Context, stats StatWriter, path string, season int, truncate bool, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var result Result

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stats file: %w", err)
	}
	defer f.Close()

	if truncate {
		if err := stats.Truncate(ctx); err != nil {
			return nil, err
		}
		logger.Info("stats table truncated")
	}

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("stats file missing column %q", name)
		}
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.AddErrorf("line %d: %v", line, err)
			continue
		}

		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		player := cell("player")
		playerID := cell("player_id")
		if player == "" || playerID == "" {
			result.RowsSkipped++
			continue
		}

		rowSeason := season
		if s := parseInt(cell("season")); s != nil {
			rowSeason = *s
		}
		league := cell("lg")
		if league == "" {
			league = "NBA"
		}

		rec := store.StatRecord{
			Season:            rowSeason,
			League:            league,
			Player:            player,
			PlayerID:          playerID,
			Age:               parseInt(cell("age")),
			Team:              parseStr(cell("team")),
			Position:          parseStr(cell("pos")),
			FptsTotal:         parseFloat(cell("fpts_total")),
			Fpts:              parseFloat(cell("fpts")),
			Games:             parseInt(cell("g")),
			GamesStarted:      parseInt(cell("gs")),
			MinutesPlayed:     parseInt(cell("mp")),
			FGMade:            parseInt(cell("fg")),
			FGAttempted:       parseInt(cell("fga")),
			FGPercentage:      parseFloat(cell("fg_percent")),
			X3PMade:           parseInt(cell("x3p")),
			X3PAttempted:      parseInt(cell("x3pa")),
			X3PPercentage:     parseFloat(cell("x3p_percent")),
			X2PMade:           parseInt(cell("x2p")),
			X2PAttempted:      parseInt(cell("x2pa")),
			X2PPercentage:     parseFloat(cell("x2p_percent")),
			EFGPercentage:     parseFloat(cell("e_fg_percent")),
			FTMade:            parseInt(cell("ft")),
			FTAttempted:       parseInt(cell("fta")),
			FTPercentage:      parseFloat(cell("ft_percent")),
			OffensiveRebounds: parseInt(cell("orb")),
			DefensiveRebounds: parseInt(cell("drb")),
			TotalRebounds:     parseInt(cell("trb")),
			Assists:           parseInt(cell("ast")),
			Steals:            parseInt(cell("stl")),
			Blocks:            parseInt(cell("blk")),
			Turnovers:         parseInt(cell("tov")),
			PersonalFouls:     parseInt(cell("pf")),
			Points:            parseInt(cell("pts")),
			TripleDoubles:     parseInt(cell("trp_dbl")),
		}

		if err := stats.Upsert(ctx, rec); err != nil {
			result.AddErrorf("line %d (%s): %v", line, player, err)
			continue
		}
		result.StatsUpserted++
		if result.StatsUpserted%100 == 0 {
			logger.Info("stats import progress", "rows", result.StatsUpserted)
		}
	}

	logger.Info("stats import complete", "summary", result.Summary())
	return &result, nil
}

// parseStr returns nil for empty or NA cells.
func parseStr(s string) *string {
	if s == "" || s == "NA" {
		return nil
	}
	return &s
}

// parseInt returns nil for empty, NA or unparseable cells. Basketball
// reference exports whole-number columns with a decimal point ("82.0").
func parseInt(s string) *int {
	if s == "" || s == "NA" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n := int(f)
	return &n
}

// parseFloat returns nil for empty, NA or unparseable cells.
func parseFloat(s string) *float64 {
	if s == "" || s == "NA" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
