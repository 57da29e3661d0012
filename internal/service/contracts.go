package service

import (
	"context"

	"github.com/google/uuid"

	"docuchat/internal/domain"
	"docuchat/internal/llm"
)

// SessionStore is the durable-store boundary for sessions and turns
type SessionStore interface {
	Create(ctx context.Context, session *domain.Session) error
	GetOwned(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error)
	GetOwnedAny(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error)
	UpdateTitle(ctx context.Context, userID, sessionID uuid.UUID, title string) error
	Touch(ctx context.Context, sessionID uuid.UUID) error
	SoftDelete(ctx context.Context, userID, sessionID uuid.UUID) error
	CreateTurn(ctx context.Context, turn *domain.Turn) error
	ListTurns(ctx context.Context, sessionID uuid.UUID) ([]*domain.Turn, error)
}

// SettingsStore is the durable-store boundary for provider configuration
type SettingsStore interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*domain.Settings, error)
	Create(ctx context.Context, settings *domain.Settings) error
	Update(ctx context.Context, settings *domain.Settings) error
}

// UsageStore is the durable-store boundary for usage records
type UsageStore interface {
	Create(ctx context.Context, entry *domain.UsageEntry) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.UsageEntry, error)
}

// Completer is the completion dispatcher boundary
type Completer interface {
	Generate(ctx context.Context, messages []llm.Message, cfg llm.Config) (*llm.CompletionResult, error)
}
