package domain

import (
	"time"

	"github.com/google/uuid"
)

// Settings is a user's active LLM provider configuration. API keys are never
// serialized back to clients; only their presence is reported.
type Settings struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Provider        string    `json:"provider"`
	Model           string    `json:"model"`
	OpenAIAPIKey    string    `json:"-"`
	GoogleAPIKey    string    `json:"-"`
	ClaudeAPIKey    string    `json:"-"`
	OllamaBaseURL   string    `json:"ollama_base_url,omitempty"`
	LMStudioBaseURL string    `json:"lmstudio_base_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SettingsResponse is the masked view of Settings returned by the API
type SettingsResponse struct {
	Provider        string `json:"provider"`
	Model           string `json:"model"`
	HasOpenAIKey    bool   `json:"has_openai_key"`
	HasGoogleKey    bool   `json:"has_google_key"`
	HasClaudeKey    bool   `json:"has_claude_key"`
	OllamaBaseURL   string `json:"ollama_base_url"`
	LMStudioBaseURL string `json:"lmstudio_base_url"`
}

// UpdateSettingsRequest updates the caller's provider configuration.
// Empty credential fields leave the stored values untouched.
type UpdateSettingsRequest struct {
	Provider        string `json:"provider" binding:"required,oneof=openai google claude ollama lmstudio"`
	Model           string `json:"model,omitempty"`
	OpenAIAPIKey    string `json:"openai_api_key,omitempty"`
	GoogleAPIKey    string `json:"google_api_key,omitempty"`
	ClaudeAPIKey    string `json:"claude_api_key,omitempty"`
	OllamaBaseURL   string `json:"ollama_base_url,omitempty"`
	LMStudioBaseURL string `json:"lmstudio_base_url,omitempty"`
}

// Masked returns the client-safe view of the settings
func (s *Settings) Masked() *SettingsResponse {
	return &SettingsResponse{
		Provider:        s.Provider,
		Model:           s.Model,
		HasOpenAIKey:    s.OpenAIAPIKey != "",
		HasGoogleKey:    s.GoogleAPIKey != "",
		HasClaudeKey:    s.ClaudeAPIKey != "",
		OllamaBaseURL:   s.OllamaBaseURL,
		LMStudioBaseURL: s.LMStudioBaseURL,
	}
}
