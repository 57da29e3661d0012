package model

import (
	"time"

	"github.com/google/uuid"
)

// UserSettings stores a user's active LLM provider configuration.
// Exactly one row per user, created lazily on the first chat request.
type UserSettings struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Provider        string    `gorm:"type:varchar(50);not null"`
	Model           string    `gorm:"type:varchar(100);not null"`
	OpenAIAPIKey    string    `gorm:"column:openai_api_key;type:text"`
	GoogleAPIKey    string    `gorm:"column:google_api_key;type:text"`
	ClaudeAPIKey    string    `gorm:"column:claude_api_key;type:text"`
	OllamaBaseURL   string    `gorm:"column:ollama_base_url;type:text"`
	LMStudioBaseURL string    `gorm:"column:lmstudio_base_url;type:text"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}
