package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicStreamBody = `event: message_start
data: {"type":"message_start","message":{"id":"msg_1","type":"message","role":"assistant","content":[],"model":"claude-sonnet-4-5","stop_reason":null,"stop_sequence":null,"usage":{"input_tokens":10,"output_tokens":1}}}

event: content_block_start
data: {"type":"content_block_start","index":0,"content_block":{"type":"text","text":""}}

event: content_block_delta
data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"Jokic leads "}}

event: content_block_delta
data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"in fantasy points."}}

event: content_block_stop
data: {"type":"content_block_stop","index":0}

event: message_delta
data: {"type":"message_delta","delta":{"stop_reason":"end_turn","stop_sequence":null},"usage":{"output_tokens":8}}

event: message_stop
data: {"type":"message_stop"}

`

func TestAnthropicCompleteStreamsDeltas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, anthropicStreamBody)
	}))
	defer srv.Close()

	client := anthropic.NewClient(option.WithAPIKey("sk-ant-test"), option.WithBaseURL(srv.URL))
	c := &AnthropicClient{client: &client, model: defaultAnthropicModel}

	var deltas []string
	resp, err := c.Complete(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Who leads in fantasy points?"}},
	}, func(text string) {
		deltas = append(deltas, text)
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if len(deltas) != 2 {
		t.Fatalf("got %d deltas, want 2: %q", len(deltas), deltas)
	}
	if deltas[0] != "Jokic leads " || deltas[1] != "in fantasy points." {
		t.Errorf("unexpected deltas: %q", deltas)
	}
	if resp.Text != "Jokic leads in fantasy points." {
		t.Errorf("accumulated text = %q", resp.Text)
	}
	if len(resp.ToolCalls) != 0 {
		t.Errorf("unexpected tool calls: %+v", resp.ToolCalls)
	}
}

func TestAnthropicBuildMessages(t *testing.T) {
	c := NewAnthropicClient("sk-ant-test", "")
	msgs := c.buildMessages(Request{
		Messages: []Message{
			{Role: RoleUser, Content: "Who leads in fantasy points?"},
			{
				Role: RoleAssistant,
				ToolCalls: []ToolCall{{
					ID:        "toolu_1",
					Name:      "query_nba_database",
					Arguments: `{"query":"select player from nba_stats limit 1"}`,
				}},
			},
			{Role: RoleTool, ToolCallID: "toolu_1", Content: `[{"player":"Nikola Jokic"}]`, ToolIsError: false},
		},
	})
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	if msgs[1].Role != anthropic.MessageParamRoleAssistant {
		t.Errorf("second message role = %q", msgs[1].Role)
	}
	// Tool results travel as user messages in the Anthropic wire format.
	if msgs[2].Role != anthropic.MessageParamRoleUser {
		t.Errorf("tool result role = %q", msgs[2].Role)
	}
}
