package llm

import (
	"testing"

	"github.com/fastbreakhq/fastbreak/internal/config"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"category":"injury"}`,
			want:  `{"category":"injury"}`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"category\":\"injury\"}\n```",
			want:  `{"category":"injury"}`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n{\"category\":\"injury\"}\n```",
			want:  `{"category":"injury"}`,
		},
		{
			name:  "trims surrounding prose",
			input: "Here is the result: {\"category\":\"trade\"} as requested.",
			want:  `{"category":"trade"}`,
		},
		{
			name:  "trims surrounding whitespace",
			input: "  {\"category\":\"other\"}  ",
			want:  `{"category":"other"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanJSONResponse(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewProviderSelection(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{
			name: "openai with key",
			cfg:  config.Config{LLMProvider: config.ProviderOpenAI, OpenAIAPIKey: "sk-test"},
		},
		{
			name:    "openai without key",
			cfg:     config.Config{LLMProvider: config.ProviderOpenAI},
			wantErr: true,
		},
		{
			name: "anthropic with key",
			cfg:  config.Config{LLMProvider: config.ProviderAnthropic, AnthropicAPIKey: "sk-ant-test"},
		},
		{
			name:    "unknown provider",
			cfg:     config.Config{LLMProvider: "llama-in-the-basement"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(&tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if client == nil {
				t.Fatal("nil client")
			}
		})
	}
}
