package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docuchat/internal/domain"
	"docuchat/internal/llm"
)

const (
	// systemPrompt frames every exchange as document Q&A.
	systemPrompt = "You are an AI assistant that analyzes document content and answers questions about it."

	// chatEndpoint is the endpoint name recorded with each usage entry.
	chatEndpoint = "/api/ai/chat"

	// titleMaxLen is the derived-title cutoff in runes.
	titleMaxLen = 50

	// costPerTokenCents prices a completed exchange for quota purposes.
	costPerTokenCents = 0.002
)

// ChatService owns the conversation lifecycle: session creation, transcript
// access, title derivation, freshness bumping, and soft deletion, plus the
// exchange flow that feeds the completion dispatcher.
type ChatService struct {
	sessions  SessionStore
	settings  *SettingsService
	usage     *UsageService
	completer Completer
	logger    *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(
	sessions SessionStore,
	settings *SettingsService,
	usage *UsageService,
	completer Completer,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		sessions:  sessions,
		settings:  settings,
		usage:     usage,
		completer: completer,
		logger:    logger,
	}
}

// CreateSession inserts a new active session, defaulting the title to the
// placeholder when none is given
func (s *ChatService) CreateSession(ctx context.Context, userID uuid.UUID, title string) (*domain.Session, error) {
	if title == "" {
		title = domain.DefaultSessionTitle
	}
	session := &domain.Session{
		UserID: userID,
		Title:  title,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ListSessions returns the caller's active sessions, freshest first
func (s *ChatService) ListSessions(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error) {
	return s.sessions.ListByUser(ctx, userID)
}

// GetTranscript returns the ordered turns of a session the caller owns
func (s *ChatService) GetTranscript(ctx context.Context, userID, sessionID uuid.UUID) ([]*domain.Turn, error) {
	if _, err := s.sessions.GetOwned(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	return s.sessions.ListTurns(ctx, sessionID)
}

// RenameSession overwrites the title unconditionally and bumps freshness.
// A renamed session is never auto-titled again: derivation only fires while
// the title still equals the placeholder.
func (s *ChatService) RenameSession(ctx context.Context, userID, sessionID uuid.UUID, title string) error {
	return s.sessions.UpdateTitle(ctx, userID, sessionID, title)
}

// SoftDeleteSession marks the session deleted. Idempotent for the owner;
// a foreign or unknown session ID fails as not found.
func (s *ChatService) SoftDeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	if _, err := s.sessions.GetOwnedAny(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.sessions.SoftDelete(ctx, userID, sessionID)
}

// CompleteExchange runs one full chat round: persist the user turn, call
// the provider, persist the assistant turn, derive the title on the first
// exchange, bump freshness, and record usage.
//
// The user turn persisted before the provider call is intentionally NOT
// rolled back on provider failure; it stays in the transcript as an
// orphaned user message.
func (s *ChatService) CompleteExchange(ctx context.Context, userID uuid.UUID, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, domain.ErrInvalidRequest
	}

	session, err := s.sessions.GetOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	cfg, err := s.settings.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	var documentID *uuid.UUID
	if req.DocumentID != "" {
		id, err := uuid.Parse(req.DocumentID)
		if err != nil {
			return nil, domain.ErrInvalidRequest
		}
		documentID = &id
	}

	userTurn := &domain.Turn{
		SessionID:  sessionID,
		UserID:     userID,
		DocumentID: documentID,
		Role:       domain.RoleUser,
		Content:    req.Message,
	}
	if err := s.sessions.CreateTurn(ctx, userTurn); err != nil {
		return nil, err
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: req.Message},
	}

	result, err := s.completer.Generate(ctx, messages, cfg)
	if err != nil {
		s.logger.Error("chat completion failed",
			zap.String("session_id", sessionID.String()),
			zap.String("provider", cfg.Provider),
			zap.Error(err),
		)
		s.usage.Record(ctx, &domain.UsageEntry{
			UserID:       userID,
			Endpoint:     chatEndpoint,
			Status:       domain.UsageStatusError,
			ErrorMessage: err.Error(),
		})
		return nil, err
	}

	assistantTurn := &domain.Turn{
		SessionID:  sessionID,
		UserID:     userID,
		DocumentID: documentID,
		Role:       domain.RoleAssistant,
		Content:    result.Content,
	}
	if result.TokensUsed > 0 {
		tokens := result.TokensUsed
		assistantTurn.TokensUsed = &tokens
	}
	if err := s.sessions.CreateTurn(ctx, assistantTurn); err != nil {
		return nil, err
	}

	if session.Title == domain.DefaultSessionTitle {
		if err := s.sessions.UpdateTitle(ctx, userID, sessionID, deriveTitle(req.Message)); err != nil {
			return nil, err
		}
	} else if err := s.sessions.Touch(ctx, sessionID); err != nil {
		return nil, err
	}

	s.usage.Record(ctx, &domain.UsageEntry{
		UserID:     userID,
		Endpoint:   chatEndpoint,
		TokensUsed: result.TokensUsed,
		Cost:       int(math.Ceil(float64(result.TokensUsed) * costPerTokenCents)),
		Status:     domain.UsageStatusSuccess,
	})

	return &domain.ChatResponse{
		Message:    result.Content,
		TokensUsed: result.TokensUsed,
	}, nil
}

// deriveTitle takes the first user message verbatim when it is short
// enough, otherwise the leading runes followed by an ellipsis marker.
func deriveTitle(message string) string {
	runes := []rune(message)
	if len(runes) <= titleMaxLen {
		return message
	}
	return string(runes[:titleMaxLen]) + "..."
}
