package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"docuchat/internal/config"
	"docuchat/internal/domain"
	"docuchat/internal/llm"
)

// Default configuration assigned when a user chats without having stored
// settings of their own.
const (
	defaultProvider = llm.ProviderLMStudio
	defaultModel    = "kimi-k2-thinking"
)

// SettingsService owns provider configuration: lazy creation, explicit
// updates, and resolution of credential/base-URL fields by provider kind.
// Resolved settings are cached per user with a short TTL.
type SettingsService struct {
	repo      SettingsStore
	fallbacks config.ProvidersConfig
	cache     *gocache.Cache
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo SettingsStore, fallbacks config.ProvidersConfig) *SettingsService {
	return &SettingsService{
		repo:      repo,
		fallbacks: fallbacks,
		cache:     gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// GetOrCreate returns the user's settings, creating the defaults on first use
func (s *SettingsService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.Settings, error) {
	if cached, ok := s.cache.Get(userID.String()); ok {
		return cached.(*domain.Settings), nil
	}

	settings, err := s.repo.GetByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		settings = &domain.Settings{
			UserID:   userID,
			Provider: defaultProvider,
			Model:    defaultModel,
		}
		if err := s.repo.Create(ctx, settings); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	s.cache.SetDefault(userID.String(), settings)
	return settings, nil
}

// Resolve produces the dispatcher configuration for the user's active
// provider. The API key is only filled for hosted providers and the base
// URL only for self-hosted ones; unset per-user fields fall back to the
// environment-level values.
func (s *SettingsService) Resolve(ctx context.Context, userID uuid.UUID) (llm.Config, error) {
	settings, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return llm.Config{}, err
	}

	cfg := llm.Config{
		Provider: settings.Provider,
		Model:    settings.Model,
	}

	switch settings.Provider {
	case llm.ProviderOpenAI:
		cfg.APIKey = firstNonEmpty(settings.OpenAIAPIKey, s.fallbacks.OpenAIAPIKey)
	case llm.ProviderGoogle:
		cfg.APIKey = firstNonEmpty(settings.GoogleAPIKey, s.fallbacks.GoogleAPIKey)
	case llm.ProviderClaude:
		cfg.APIKey = firstNonEmpty(settings.ClaudeAPIKey, s.fallbacks.ClaudeAPIKey)
	case llm.ProviderOllama:
		cfg.BaseURL = firstNonEmpty(settings.OllamaBaseURL, s.fallbacks.OllamaBaseURL)
	case llm.ProviderLMStudio:
		cfg.BaseURL = firstNonEmpty(settings.LMStudioBaseURL, s.fallbacks.LMStudioBaseURL)
	}

	return cfg, nil
}

// Get returns the masked settings view for the API
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (*domain.SettingsResponse, error) {
	settings, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return settings.Masked(), nil
}

// Update overwrites the user's provider configuration. Empty credential
// fields in the request keep the stored values.
func (s *SettingsService) Update(ctx context.Context, userID uuid.UUID, req *domain.UpdateSettingsRequest) (*domain.SettingsResponse, error) {
	settings, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := *settings
	updated.Provider = req.Provider
	if req.Model != "" {
		updated.Model = req.Model
	} else {
		updated.Model = llm.DefaultModel(req.Provider)
	}
	if req.OpenAIAPIKey != "" {
		updated.OpenAIAPIKey = req.OpenAIAPIKey
	}
	if req.GoogleAPIKey != "" {
		updated.GoogleAPIKey = req.GoogleAPIKey
	}
	if req.ClaudeAPIKey != "" {
		updated.ClaudeAPIKey = req.ClaudeAPIKey
	}
	if req.OllamaBaseURL != "" {
		updated.OllamaBaseURL = req.OllamaBaseURL
	}
	if req.LMStudioBaseURL != "" {
		updated.LMStudioBaseURL = req.LMStudioBaseURL
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	s.cache.Delete(userID.String())

	return updated.Masked(), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
