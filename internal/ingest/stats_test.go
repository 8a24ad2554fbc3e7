package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbreakhq/fastbreak/internal/store"
)

type fakeStatWriter struct {
	records   []store.StatRecord
	truncated bool
}

func (w *fakeStatWriter) Upsert(ctx context.Context, r store.StatRecord) error {
	w.records = append(w.records, r)
	return nil
}

func (w *fakeStatWriter) Truncate(ctx context.Context) error {
	w.truncated = true
	return nil
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stats.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportStats(t *testing.T) {
	csv := `season,lg,player,player_id,age,team,pos,fpts_total,fpts,g,gs,mp,fg,fga,fg_percent,trb,ast,stl,blk,tov,pf,pts,trp_dbl
2025,NBA,Nikola Jokic,jokicni01,29,DEN,C,4294.1,61.3,70,70,2504,834,1438,0.58,893,712,121,59,229,174,2071,34
2025,NBA,Two Way Guy,twowaygu01,22,MEM,SG,NA,NA,12,0,89,14,38,0.368,21,8,4,1,6,11,37,NA
`
	writer := &fakeStatWriter{}

	result, err := ImportStats(context.Background(), writer, writeCSV(t, csv), 2025, false, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, result.StatsUpserted)
	assert.Empty(t, result.Errors)
	assert.False(t, writer.truncated)
	require.Len(t, writer.records, 2)

	jokic := writer.records[0]
	assert.Equal(t, "Nikola Jokic", jokic.Player)
	assert.Equal(t, "jokicni01", jokic.PlayerID)
	assert.Equal(t, 2025, jokic.Season)
	require.NotNil(t, jokic.FptsTotal)
	assert.InDelta(t, 4294.1, *jokic.FptsTotal, 0.001)
	require.NotNil(t, jokic.Points)
	assert.Equal(t, 2071, *jokic.Points)

	twoWay := writer.records[1]
	assert.Nil(t, twoWay.FptsTotal, "NA must become NULL")
	assert.Nil(t, twoWay.Fpts)
	assert.Nil(t, twoWay.TripleDoubles)
}

func TestImportStatsSkipsRowsWithoutIdentity(t *testing.T) {
	csv := `player,player_id,pts
,nobodyid01,10
Nameless Player,,20
Real Player,realpl01,30
`
	writer := &fakeStatWriter{}

	result, err := ImportStats(context.Background(), writer, writeCSV(t, csv), 2025, false, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, result.StatsUpserted)
	assert.Equal(t, 2, result.RowsSkipped)
}

func TestImportStatsTruncate(t *testing.T) {
	csv := `player,player_id
Real Player,realpl01
`
	writer := &fakeStatWriter{}

	_, err := ImportStats(context.Background(), writer, writeCSV(t, csv), 2025, true, nil)

	require.NoError(t, err)
	assert.True(t, writer.truncated)
}

func TestImportStatsMissingColumns(t *testing.T) {
	csv := `season,team,pts
2025,DEN,2071
`
	_, err := ImportStats(context.Background(), &fakeStatWriter{}, writeCSV(t, csv), 2025, false, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "player")
}

func TestParseHelpers(t *testing.T) {
	assert.Nil(t, parseInt("NA"))
	assert.Nil(t, parseInt(""))
	assert.Nil(t, parseInt("abc"))
	require.NotNil(t, parseInt("82"))
	assert.Equal(t, 82, *parseInt("82"))
	require.NotNil(t, parseInt("82.0"), "whole numbers exported with decimal point")
	assert.Equal(t, 82, *parseInt("82.0"))

	assert.Nil(t, parseFloat("NA"))
	require.NotNil(t, parseFloat("0.583"))
	assert.InDelta(t, 0.583, *parseFloat("0.583"), 0.0001)

	assert.Nil(t, parseStr("NA"))
	assert.Nil(t, parseStr(""))
	require.NotNil(t, parseStr("DEN"))
}
