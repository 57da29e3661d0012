package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"docuchat/internal/domain"
	"docuchat/internal/model"
)

// SettingsRepository handles provider configuration persistence
type SettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetByUser returns the user's settings, or domain.ErrNotFound if none exist
func (r *SettingsRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.Settings, error) {
	var row model.UserSettings
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return settingsToDomain(&row), nil
}

// Create inserts a settings row for the user
func (r *SettingsRepository) Create(ctx context.Context, settings *domain.Settings) error {
	row := settingsToModel(settings)
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	*settings = *settingsToDomain(row)
	return nil
}

// Update overwrites the stored settings row
func (r *SettingsRepository) Update(ctx context.Context, settings *domain.Settings) error {
	row := settingsToModel(settings)
	return r.db.WithContext(ctx).
		Model(&model.UserSettings{}).
		Where("user_id = ?", settings.UserID).
		Updates(map[string]interface{}{
			"provider":          row.Provider,
			"model":             row.Model,
			"openai_api_key":    row.OpenAIAPIKey,
			"google_api_key":    row.GoogleAPIKey,
			"claude_api_key":    row.ClaudeAPIKey,
			"ollama_base_url":   row.OllamaBaseURL,
			"lmstudio_base_url": row.LMStudioBaseURL,
		}).Error
}

func settingsToDomain(row *model.UserSettings) *domain.Settings {
	return &domain.Settings{
		ID:              row.ID,
		UserID:          row.UserID,
		Provider:        row.Provider,
		Model:           row.Model,
		OpenAIAPIKey:    row.OpenAIAPIKey,
		GoogleAPIKey:    row.GoogleAPIKey,
		ClaudeAPIKey:    row.ClaudeAPIKey,
		OllamaBaseURL:   row.OllamaBaseURL,
		LMStudioBaseURL: row.LMStudioBaseURL,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func settingsToModel(s *domain.Settings) *model.UserSettings {
	return &model.UserSettings{
		ID:              s.ID,
		UserID:          s.UserID,
		Provider:        s.Provider,
		Model:           s.Model,
		OpenAIAPIKey:    s.OpenAIAPIKey,
		GoogleAPIKey:    s.GoogleAPIKey,
		ClaudeAPIKey:    s.ClaudeAPIKey,
		OllamaBaseURL:   s.OllamaBaseURL,
		LMStudioBaseURL: s.LMStudioBaseURL,
	}
}
