// Package query executes guard-approved SQL and normalizes the result shape.
//
// The executor performs no safety checks of its own: the guard always gates
// it, and that ordering is the caller's invariant. Never hand it unguarded
// model output.
package query

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Row is one result row, keyed by column name.
type Row map[string]any

// Querier is the subset of pgxpool.Pool the executor needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ExecutionError reports a statement the store rejected or failed to run.
// The store's message is preserved for relay back to the model.
type ExecutionError struct {
	Statement string
	Err       error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("query execution failed: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Executor runs statements against the store.
type Executor struct {
	db Querier
}

// New creates an Executor over the given connection source.
func New(db Querier) *Executor {
	return &Executor{db: db}
}

// Run executes a statement and returns its rows in result order. Positional
// parameters are optional; the chat path passes none because the whole
// statement is model-generated text. An empty result is not an error.
func (e *Executor) Run(ctx context.Context, statement string, args ...any) ([]Row, error) {
	rows, err := e.db.Query(ctx, statement, args...)
	if err != nil {
		return nil, &ExecutionError{Statement: statement, Err: err}
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()

	out := make([]Row, 0, 16)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, &ExecutionError{Statement: statement, Err: err}
		}
		row := make(Row, len(fields))
		for i, fd := range fields {
			row[string(fd.Name)] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &ExecutionError{Statement: statement, Err: err}
	}

	return out, nil
}
