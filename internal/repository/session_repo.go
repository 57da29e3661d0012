package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"docuchat/internal/domain"
	"docuchat/internal/model"
)

// SessionRepository handles session and turn persistence
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new active session
func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	row := model.ChatSession{
		ID:     session.ID,
		UserID: session.UserID,
		Title:  session.Title,
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	*session = *sessionToDomain(&row)
	return nil
}

// GetOwned retrieves an active session owned by the given user.
// A missing, deleted, or foreign session is uniformly domain.ErrNotFound so
// existence never leaks to non-owners.
func (r *SessionRepository) GetOwned(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error) {
	var row model.ChatSession
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", sessionID, userID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sessionToDomain(&row), nil
}

// GetOwnedAny retrieves a session owned by the given user regardless of
// its deleted state. Used by soft deletion so re-deleting stays idempotent
// while foreign IDs still surface as not found.
func (r *SessionRepository) GetOwnedAny(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error) {
	var row model.ChatSession
	err := r.db.WithContext(ctx).Unscoped().
		Where("id = ? AND user_id = ?", sessionID, userID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sessionToDomain(&row), nil
}

// ListByUser returns all active sessions for a user, freshest first
func (r *SessionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error) {
	var rows []model.ChatSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	sessions := make([]*domain.Session, 0, len(rows))
	for i := range rows {
		sessions = append(sessions, sessionToDomain(&rows[i]))
	}
	return sessions, nil
}

// UpdateTitle overwrites the title and bumps the freshness timestamp
func (r *SessionRepository) UpdateTitle(ctx context.Context, userID, sessionID uuid.UUID, title string) error {
	res := r.db.WithContext(ctx).
		Model(&model.ChatSession{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Updates(map[string]interface{}{
			"title":      title,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Touch bumps the freshness timestamp
func (r *SessionRepository) Touch(ctx context.Context, sessionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.ChatSession{}).
		Where("id = ?", sessionID).
		Update("updated_at", time.Now()).Error
}

// SoftDelete marks the session deleted. Idempotent: deleting an already
// deleted session affects no rows and is not an error.
func (r *SessionRepository) SoftDelete(ctx context.Context, userID, sessionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Delete(&model.ChatSession{}).Error
}

// CreateTurn inserts an immutable turn
func (r *SessionRepository) CreateTurn(ctx context.Context, turn *domain.Turn) error {
	row := model.ChatTurn{
		ID:         turn.ID,
		SessionID:  turn.SessionID,
		UserID:     turn.UserID,
		DocumentID: turn.DocumentID,
		Role:       turn.Role,
		Content:    turn.Content,
		TokensUsed: turn.TokensUsed,
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	*turn = *turnToDomain(&row)
	return nil
}

// ListTurns returns all turns for a session in append order
func (r *SessionRepository) ListTurns(ctx context.Context, sessionID uuid.UUID) ([]*domain.Turn, error) {
	var rows []model.ChatTurn
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	turns := make([]*domain.Turn, 0, len(rows))
	for i := range rows {
		turns = append(turns, turnToDomain(&rows[i]))
	}
	return turns, nil
}

func sessionToDomain(row *model.ChatSession) *domain.Session {
	s := &domain.Session{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.DeletedAt.Valid {
		t := row.DeletedAt.Time
		s.DeletedAt = &t
	}
	return s
}

func turnToDomain(row *model.ChatTurn) *domain.Turn {
	return &domain.Turn{
		ID:         row.ID,
		SessionID:  row.SessionID,
		UserID:     row.UserID,
		DocumentID: row.DocumentID,
		Role:       row.Role,
		Content:    row.Content,
		TokensUsed: row.TokensUsed,
		CreatedAt:  row.CreatedAt,
	}
}
