package llm

import (
	"context"

	"github.com/je17/promptflow/internal/types"
)

// Provider is the interface judge-model backends implement. It is a unified
// abstraction over different LLM services (OpenAI, Anthropic, local models)
// narrowed to what evaluation needs: plain completions.
type Provider interface {
	// Name returns the provider name (e.g., "openai", "anthropic", "ollama")
	Name() string

	// Complete sends a completion request and returns the full response.
	// This is a blocking call that waits for the entire response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Health checks the health status of the provider and its connectivity
	Health(ctx context.Context) types.HealthStatus
}

// ProviderType identifies a provider implementation.
type ProviderType string

const (
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOllama    ProviderType = "ollama"
	ProviderMock      ProviderType = "mock"
)

// ProviderConfig holds the settings needed to construct a provider.
type ProviderConfig struct {
	Type         ProviderType `json:"type" yaml:"type" mapstructure:"type"`
	APIKey       string       `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
	DefaultModel string       `json:"default_model,omitempty" yaml:"default_model,omitempty" mapstructure:"default_model"`
	BaseURL      string       `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`
}

// CompletionRequest is a request for a completion from a judge model.
type CompletionRequest struct {
	Model       string    `json:"model,omitempty"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// Usage reports token consumption for a single completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResponse is the provider's answer to a CompletionRequest.
type CompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content string `json:"content"`
	Usage   Usage  `json:"usage"`
}
