package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbreakhq/fastbreak/internal/query"
	"github.com/fastbreakhq/fastbreak/internal/sqlguard"
)

type stubRows struct {
	columns []string
	rows    [][]any
	idx     int
}

func (r *stubRows) Close()                        {}
func (r *stubRows) Err() error                    { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *stubRows) Conn() *pgx.Conn               { return nil }
func (r *stubRows) RawValues() [][]byte           { return nil }
func (r *stubRows) Scan(dest ...any) error        { return errors.New("not implemented") }

func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription {
	fds := make([]pgconn.FieldDescription, len(r.columns))
	for i, name := range r.columns {
		fds[i] = pgconn.FieldDescription{Name: name}
	}
	return fds
}

func (r *stubRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Values() ([]any, error) { return r.rows[r.idx-1], nil }

type recordingQuerier struct {
	statements []string
	rows       *stubRows
	err        error
}

func (q *recordingQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.statements = append(q.statements, sql)
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func TestQueryToolInvoke(t *testing.T) {
	db := &recordingQuerier{rows: &stubRows{
		columns: []string{"player", "points"},
		rows:    [][]any{{"Nikola Jokic", int64(2071)}},
	}}
	tool := NewQueryTool(query.New(db), sqlguard.Validate, nil)

	out, err := tool.Invoke(context.Background(), `{"query":"select player, points from nba_stats order by points desc limit 1"}`)

	require.NoError(t, err)
	assert.JSONEq(t, `[{"player":"Nikola Jokic","points":2071}]`, out)
	require.Len(t, db.statements, 1)
}

func TestQueryToolRejectionSkipsStore(t *testing.T) {
	db := &recordingQuerier{rows: &stubRows{}}
	tool := NewQueryTool(query.New(db), sqlguard.Validate, nil)

	cases := []string{
		`{"query":"DELETE FROM nba_news"}`,
		`{"query":"select * from nba_stats; drop table nba_stats;"}`,
	}
	for _, args := range cases {
		_, err := tool.Invoke(context.Background(), args)

		var rejected *sqlguard.RejectedError
		require.ErrorAs(t, err, &rejected, args)
	}
	assert.Empty(t, db.statements, "rejected statements must never reach the store")
}

func TestQueryToolStoreErrorRelayed(t *testing.T) {
	db := &recordingQuerier{err: errors.New(`relation "nba_stat" does not exist`)}
	tool := NewQueryTool(query.New(db), sqlguard.Validate, nil)

	_, err := tool.Invoke(context.Background(), `{"query":"select * from nba_stat"}`)

	var exec *query.ExecutionError
	require.ErrorAs(t, err, &exec)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestQueryToolBadArguments(t *testing.T) {
	db := &recordingQuerier{}
	tool := NewQueryTool(query.New(db), sqlguard.Validate, nil)

	_, err := tool.Invoke(context.Background(), `select 1`)

	require.Error(t, err)
	assert.Empty(t, db.statements)
}

func TestQueryToolDefinition(t *testing.T) {
	tool := NewQueryTool(query.New(&recordingQuerier{}), sqlguard.Validate, nil)

	def := tool.Definition()
	assert.Equal(t, ToolName, def.Name)
	assert.Contains(t, def.Description, "nba_stats")
	assert.Contains(t, def.Description, "nba_news")

	props, ok := def.Parameters["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "query")
}
