package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fastbreakhq/fastbreak/internal/llm"
)

// State is the orchestrator's position in one turn.
type State string

const (
	StateAwaitingModel       State = "awaiting-model"
	StateToolInvoked         State = "tool-invoked"
	StateFinalAnswer         State = "final-answer"
	StateStepBudgetExhausted State = "step-budget-exhausted"
)

// UpstreamError reports a model provider failure. Unlike tool errors it is
// not recoverable within the turn; the caller renders a failure state.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("model provider error: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Result is the outcome of one turn.
type Result struct {
	State      State
	Text       string // accumulated assistant text, possibly partial
	ToolRounds int    // model responses that requested at least one tool call
}

// Orchestrator drives the multi-step tool-use loop for one chat turn. One
// instance per server is fine: it holds no per-turn state, the Session does.
type Orchestrator struct {
	client    llm.Client
	tool      Tool
	maxRounds int
	maxTokens int
	logger    *slog.Logger
}

// NewOrchestrator creates an orchestrator with the given tool-round budget.
func NewOrchestrator(client llm.Client, tool Tool, maxRounds, maxTokens int, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		client:    client,
		tool:      tool,
		maxRounds: maxRounds,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// Run executes one turn: the user text is appended to the session, then the
// loop alternates model calls and tool invocations until the model answers
// in plain text or the tool-round budget is exhausted. Assistant text is
// forwarded to onDelta as it is produced; tool errors are appended to the
// history as tool-result error content so the model can self-correct.
//
// The budget is the only backstop against a model that never stops asking
// for the tool: after maxRounds tool rounds the turn terminates with
// whatever partial text exists.
func (o *Orchestrator) Run(ctx context.Context, sess *Session, userText string, onDelta func(string)) (*Result, error) {
	sess.Append(llm.Message{Role: llm.RoleUser, Content: userText})

	var transcript strings.Builder
	emit := func(text string) {
		transcript.WriteString(text)
		if onDelta != nil {
			onDelta(text)
		}
	}

	tools := []llm.Tool{o.tool.Definition()}
	rounds := 0

	for {
		resp, err := o.client.Complete(ctx, llm.Request{
			System:    SystemPrompt(),
			Messages:  sess.Messages,
			Tools:     tools,
			MaxTokens: o.maxTokens,
		}, emit)
		if err != nil {
			return nil, &UpstreamError{Err: err}
		}

		sess.Append(llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Text,
			ToolCalls: resp.ToolCalls,
		})

		if len(resp.ToolCalls) == 0 {
			o.logger.Info("turn complete", "session", sess.ID, "tool_rounds", rounds)
			return &Result{State: StateFinalAnswer, Text: transcript.String(), ToolRounds: rounds}, nil
		}

		if rounds >= o.maxRounds {
			o.logger.Warn("step budget exhausted", "session", sess.ID, "rounds", rounds)
			return &Result{State: StateStepBudgetExhausted, Text: transcript.String(), ToolRounds: rounds}, nil
		}
		rounds++

		// Tool calls run one at a time: each result must land in the
		// history before the next model call sees it.
		for _, call := range resp.ToolCalls {
			sess.Append(o.invokeTool(ctx, call))
		}
	}
}

func (o *Orchestrator) invokeTool(ctx context.Context, call llm.ToolCall) llm.Message {
	if call.Name != ToolName {
		return llm.Message{
			Role:        llm.RoleTool,
			ToolCallID:  call.ID,
			Content:     fmt.Sprintf("unknown tool %q", call.Name),
			ToolIsError: true,
		}
	}

	content, err := o.tool.Invoke(ctx, call.Arguments)
	if err != nil {
		return llm.Message{
			Role:        llm.RoleTool,
			ToolCallID:  call.ID,
			Content:     err.Error(),
			ToolIsError: true,
		}
	}
	return llm.Message{
		Role:       llm.RoleTool,
		ToolCallID: call.ID,
		Content:    content,
	}
}
