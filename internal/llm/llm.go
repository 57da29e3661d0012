// Package llm defines the provider-agnostic chat completion contract.
//
// Every LLM backend (OpenAI, Claude, Gemini, Ollama, LM Studio) implements
// the Provider interface. The rest of the application works with these
// unified types and never needs to know which backend handles a request.
package llm

import (
	"context"
	"fmt"
)

// Provider tags. The set is closed: adding a backend means adding one
// adapter package and one factory case.
const (
	ProviderOpenAI   = "openai"
	ProviderGoogle   = "google"
	ProviderClaude   = "claude"
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
)

// Generation parameters shared by every adapter.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

// Message roles in the provider-agnostic format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Config selects a backend and carries its resolved credential or endpoint.
// APIKey is only meaningful for hosted providers, BaseURL only for
// self-hosted ones; adapters ignore the field that does not apply to them.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// CompletionResult is the normalized outcome of one completion call.
// TokensUsed is zero when the backend does not report usage.
type CompletionResult struct {
	Content    string
	TokensUsed int
}

// Provider defines the contract for any LLM backend
type Provider interface {
	Complete(ctx context.Context, messages []Message, cfg Config) (*CompletionResult, error)
}

// DefaultModel returns the fallback model name for a provider tag
func DefaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4-turbo-preview"
	case ProviderGoogle:
		return "gemini-pro"
	case ProviderClaude:
		return "claude-3-5-sonnet-20241022"
	case ProviderOllama:
		return "llama2"
	case ProviderLMStudio:
		return "kimi-k2-thinking"
	default:
		return ""
	}
}

// ValidProvider reports whether tag names a supported backend
func ValidProvider(tag string) bool {
	switch tag {
	case ProviderOpenAI, ProviderGoogle, ProviderClaude, ProviderOllama, ProviderLMStudio:
		return true
	}
	return false
}

// ErrUnsupportedProvider wraps an unrecognized provider tag.
// It is a fatal configuration error, never retried.
func ErrUnsupportedProvider(tag string) error {
	return fmt.Errorf("unsupported LLM provider: %s", tag)
}
