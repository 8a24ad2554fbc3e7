package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/fastbreakhq/fastbreak/internal/llm"
	"github.com/fastbreakhq/fastbreak/internal/query"
	"github.com/fastbreakhq/fastbreak/internal/schema"
	"github.com/fastbreakhq/fastbreak/internal/sqlguard"
)

// ToolName is the capability name declared to the model.
const ToolName = "query_nba_database"

// Tool is a callable capability the orchestrator can hand to the model.
type Tool interface {
	Definition() llm.Tool
	Invoke(ctx context.Context, arguments string) (string, error)
}

// QueryTool exposes guard + executor as the single database tool. This is
// the one point where free-form model output crosses into I/O: every
// statement passes the guard before the executor sees it.
type QueryTool struct {
	exec   *query.Executor
	guard  sqlguard.Validator
	logger *slog.Logger
}

// NewQueryTool creates the database query tool.
func NewQueryTool(exec *query.Executor, guard sqlguard.Validator, logger *slog.Logger) *QueryTool {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryTool{exec: exec, guard: guard, logger: logger}
}

// Definition declares the tool contract: one free-text SQL statement.
func (t *QueryTool) Definition() llm.Tool {
	return llm.Tool{
		Name: ToolName,
		Description: "Query the NBA database. Pass one complete SQL SELECT " +
			"statement against the tables below; the rows come back as JSON.\n\n" +
			schema.PromptContext(),
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "One complete SQL SELECT statement.",
				},
			},
			"required": []string{"query"},
		},
	}
}

// toolInput is the declared input contract.
type toolInput struct {
	Query string `json:"query"`
}

// Invoke validates and executes the statement, returning the rows as a JSON
// array. Guard and executor errors propagate to the caller, which decides
// whether to relay them to the model.
func (t *QueryTool) Invoke(ctx context.Context, arguments string) (string, error) {
	var input toolInput
	if err := json.Unmarshal([]byte(arguments), &input); err != nil {
		return "", fmt.Errorf("invalid tool arguments: %w", err)
	}

	if err := t.guard(input.Query); err != nil {
		t.logger.Warn("query rejected", "statement", input.Query, "error", err)
		return "", err
	}

	rows, err := t.exec.Run(ctx, input.Query)
	if err != nil {
		t.logger.Warn("query failed", "statement", input.Query, "error", err)
		return "", err
	}
	t.logger.Info("query executed", "statement", input.Query, "rows", len(rows))

	data, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("encode rows: %w", err)
	}
	return string(data), nil
}
