package llm

import (
	"testing"
)

func TestOpenAIBuildMessages(t *testing.T) {
	c := NewOpenAIClient("sk-test", "")
	req := Request{
		System: "You are a fantasy basketball assistant.",
		Messages: []Message{
			{Role: RoleUser, Content: "Who leads the league in fantasy points?"},
			{
				Role: RoleAssistant,
				ToolCalls: []ToolCall{{
					ID:        "call_1",
					Name:      "query_nba_database",
					Arguments: `{"query":"select player from nba_stats order by fpts_total desc limit 1"}`,
				}},
			},
			{Role: RoleTool, ToolCallID: "call_1", Content: `[{"player":"Nikola Jokic"}]`},
		},
	}

	msgs := c.buildMessages(req)
	if len(msgs) != 4 {
		t.Fatalf("got %d messages, want 4", len(msgs))
	}
	if msgs[0].OfSystem == nil {
		t.Fatal("first message is not a system message")
	}
	if msgs[1].OfUser == nil {
		t.Fatal("second message is not a user message")
	}

	assistant := msgs[2].OfAssistant
	if assistant == nil {
		t.Fatal("third message is not an assistant message")
	}
	if len(assistant.ToolCalls) != 1 {
		t.Fatalf("got %d tool calls, want 1", len(assistant.ToolCalls))
	}
	tc := assistant.ToolCalls[0]
	if tc.ID != "call_1" {
		t.Errorf("tool call ID = %q, want call_1", tc.ID)
	}
	if tc.Function.Name != "query_nba_database" {
		t.Errorf("tool call name = %q", tc.Function.Name)
	}
	if tc.Function.Arguments == "" {
		t.Error("tool call arguments are empty")
	}

	tool := msgs[3].OfTool
	if tool == nil {
		t.Fatal("fourth message is not a tool message")
	}
	if tool.ToolCallID != "call_1" {
		t.Errorf("tool result call ID = %q, want call_1", tool.ToolCallID)
	}
}

func TestOpenAIBuildTools(t *testing.T) {
	c := NewOpenAIClient("sk-test", "")
	tools := c.buildTools([]Tool{{
		Name:        "query_nba_database",
		Description: "Run a read-only SQL query.",
		Parameters:  map[string]any{"type": "object"},
	}})

	if len(tools) != 1 {
		t.Fatalf("got %d tools, want 1", len(tools))
	}
	if tools[0].Function.Name != "query_nba_database" {
		t.Errorf("tool name = %q", tools[0].Function.Name)
	}
	if tools[0].Function.Parameters == nil {
		t.Error("tool parameters not carried through")
	}
}
