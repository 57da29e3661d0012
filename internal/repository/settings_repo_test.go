package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat/internal/domain"
)

func TestSettingsRepository_GetByUser(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	userID := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "provider", "model",
		"openai_api_key", "google_api_key", "claude_api_key",
		"ollama_base_url", "lmstudio_base_url",
		"created_at", "updated_at",
	}).AddRow(uuid.New(), userID, "claude", "claude-3-5-sonnet-20241022",
		"", "", "sk-ant-stored", "", "", now, now)
	mock.ExpectQuery(`SELECT \* FROM "user_settings" WHERE user_id = \$1`).
		WithArgs(userID, 1).
		WillReturnRows(rows)

	settings, err := repo.GetByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "claude", settings.Provider)
	assert.Equal(t, "sk-ant-stored", settings.ClaudeAPIKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepository_GetByUser_NotFound(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "user_settings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepository_Update_WritesProviderColumns(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	userID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "user_settings" SET .*"lmstudio_base_url".*"openai_api_key".* WHERE user_id = `).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), &domain.Settings{
		UserID:       userID,
		Provider:     "openai",
		Model:        "gpt-4-turbo-preview",
		OpenAIAPIKey: "sk-new",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
