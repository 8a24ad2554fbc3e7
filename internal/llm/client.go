// Package llm abstracts the model providers behind one client interface so
// the orchestrator is provider-agnostic. OpenAI and Anthropic are supported;
// LLM_PROVIDER selects between them.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/fastbreakhq/fastbreak/internal/config"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is one tool invocation requested by the model. Arguments is the
// raw JSON argument object.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Message is one entry of the provider-neutral history. Tool-result messages
// carry the ToolCallID they answer and whether the result is error content.
type Message struct {
	Role        Role
	Content     string
	ToolCalls   []ToolCall
	ToolCallID  string
	ToolIsError bool
}

// Tool declares a callable capability: name, model-facing description and a
// JSON-schema parameter object.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Request is one model turn: the fixed system instruction, the ordered
// history, and the tools the model may call.
type Request struct {
	System    string
	Messages  []Message
	Tools     []Tool
	MaxTokens int
}

// Response is the model's reply: assistant text (possibly empty) and zero or
// more tool calls.
type Response struct {
	Text      string
	ToolCalls []ToolCall
}

// Client is one model provider. Complete performs a single model turn; when
// the provider streams, onDelta receives assistant text incrementally as it
// is produced. onDelta may be nil.
type Client interface {
	Complete(ctx context.Context, req Request, onDelta func(text string)) (*Response, error)
}

// New selects a provider client from configuration.
func New(cfg *config.Config) (Client, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for provider %q", cfg.LLMProvider)
		}
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.ChatModel), nil
	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for provider %q", cfg.LLMProvider)
		}
		return NewAnthropicClient(cfg.AnthropicAPIKey, cfg.ChatModel), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

// CleanJSONResponse strips markdown fences and surrounding prose from a
// model reply that is supposed to be a single JSON object. Used by the news
// classification path.
func CleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around the JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
