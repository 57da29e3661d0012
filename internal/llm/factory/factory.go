package factory

import (
	"context"

	"docuchat/internal/llm"
	"docuchat/internal/llm/claude"
	"docuchat/internal/llm/google"
	"docuchat/internal/llm/lmstudio"
	"docuchat/internal/llm/ollama"
	"docuchat/internal/llm/openai"
)

// Registry is the single entry point for chat completions. It selects the
// adapter by provider tag and supplies the default model name when the
// configuration carries none. No retry, no caching: each call is exactly
// one outbound request.
type Registry struct {
	providers map[string]llm.Provider
}

// NewRegistry builds a registry with every supported backend wired in
func NewRegistry() *Registry {
	return &Registry{
		providers: map[string]llm.Provider{
			llm.ProviderOpenAI:   openai.NewProvider(),
			llm.ProviderGoogle:   google.NewProvider(),
			llm.ProviderClaude:   claude.NewProvider(),
			llm.ProviderOllama:   ollama.NewProvider(),
			llm.ProviderLMStudio: lmstudio.NewProvider(),
		},
	}
}

// Register replaces the adapter for a tag. Used by tests to point a tag at
// a fake backend.
func (r *Registry) Register(tag string, p llm.Provider) {
	r.providers[tag] = p
}

// Generate resolves the adapter for cfg.Provider and performs one
// completion call. An unrecognized tag is a fatal configuration error.
func (r *Registry) Generate(ctx context.Context, messages []llm.Message, cfg llm.Config) (*llm.CompletionResult, error) {
	provider, ok := r.providers[cfg.Provider]
	if !ok {
		return nil, llm.ErrUnsupportedProvider(cfg.Provider)
	}
	if cfg.Model == "" {
		cfg.Model = llm.DefaultModel(cfg.Provider)
	}
	return provider.Complete(ctx, messages, cfg)
}
