package chat

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"docuchat/internal/api/middleware"
	"docuchat/internal/config"
	"docuchat/internal/llm/factory"
	"docuchat/internal/repository"
	"docuchat/internal/service"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock, func() { sqlDB.Close() }
}

func newTestRouter(t *testing.T, db *gorm.DB, userID uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessionRepo := repository.NewSessionRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	usageRepo := repository.NewUsageRepository(db)

	settingsService := service.NewSettingsService(settingsRepo, config.ProvidersConfig{})
	usageService := service.NewUsageService(usageRepo, zap.NewNop())
	chatService := service.NewChatService(sessionRepo, settingsService, usageService, factory.NewRegistry(), zap.NewNop())

	r := gin.New()
	group := r.Group("/api")
	group.Use(middleware.SetUserID(userID))
	NewHandler(chatService).RegisterRoutes(group)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreateSession_EmptyBody(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "chat_sessions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := newTestRouter(t, db, uuid.New())
	req := httptest.NewRequest("POST", "/api/chat/sessions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 201, w.Code)
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "new conversation", data["title"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSession_ExplicitTitle(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "chat_sessions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := newTestRouter(t, db, uuid.New())
	body := `{"title":"contract review"}`
	req := httptest.NewRequest("POST", "/api/chat/sessions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 201, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "contract review", data["title"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListSessions(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	userID := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "created_at", "updated_at", "deleted_at"}).
		AddRow(uuid.New(), userID, "fresh chat", now, now, nil).
		AddRow(uuid.New(), userID, "older chat", now.Add(-time.Hour), now.Add(-time.Hour), nil)
	mock.ExpectQuery(`SELECT \* FROM "chat_sessions" WHERE user_id = `).
		WillReturnRows(rows)

	router := newTestRouter(t, db, userID)
	req := httptest.NewRequest("GET", "/api/chat/sessions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	data := decode(t, w)["data"].([]interface{})
	require.Len(t, data, 2)
	assert.Equal(t, "fresh chat", data[0].(map[string]interface{})["title"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRenameSession_InvalidID(t *testing.T) {
	db, _, cleanup := setupMockDB(t)
	defer cleanup()

	router := newTestRouter(t, db, uuid.New())
	body := `{"title":"renamed"}`
	req := httptest.NewRequest("PATCH", "/api/chat/sessions/not-a-uuid", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	resp := decode(t, w)
	assert.Equal(t, false, resp["success"])
}

func TestRenameSession_NotFound(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "chat_sessions"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	router := newTestRouter(t, db, uuid.New())
	body := `{"title":"renamed"}`
	req := httptest.NewRequest("PATCH", "/api/chat/sessions/"+uuid.NewString(), bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMessages_NotFound(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "chat_sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	router := newTestRouter(t, db, uuid.New())
	req := httptest.NewRequest("GET", "/api/chat/sessions/"+uuid.NewString()+"/messages", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	resp := decode(t, w)
	errObj := resp["error"].(map[string]interface{})
	assert.Equal(t, "session not found", errObj["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChat_MissingMessage(t *testing.T) {
	db, _, cleanup := setupMockDB(t)
	defer cleanup()

	router := newTestRouter(t, db, uuid.New())
	body := `{"session_id":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest("POST", "/api/ai/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestDeleteSession_InvalidID(t *testing.T) {
	db, _, cleanup := setupMockDB(t)
	defer cleanup()

	router := newTestRouter(t, db, uuid.New())
	req := httptest.NewRequest("DELETE", "/api/chat/sessions/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}
