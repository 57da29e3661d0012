package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTitle is the placeholder title given to a session before the
// first exchange derives one from the user's message.
const DefaultSessionTitle = "new conversation"

// Turn roles within a session transcript.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Session represents a chat session
type Session struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Turn represents one message within a session transcript
type Turn struct {
	ID         uuid.UUID  `json:"id"`
	SessionID  uuid.UUID  `json:"session_id"`
	UserID     uuid.UUID  `json:"user_id"`
	DocumentID *uuid.UUID `json:"document_id,omitempty"`
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	TokensUsed *int       `json:"tokens_used,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ChatRequest is the request to send a chat message
type ChatRequest struct {
	SessionID  string `json:"session_id" binding:"required,uuid"`
	Message    string `json:"message" binding:"required,min=1"`
	DocumentID string `json:"document_id,omitempty" binding:"omitempty,uuid"`
}

// ChatResponse is the caller-facing result of a completed exchange
type ChatResponse struct {
	Message    string `json:"message"`
	TokensUsed int    `json:"tokens_used"`
}

// CreateSessionRequest creates a new session with an optional title
type CreateSessionRequest struct {
	Title string `json:"title,omitempty"`
}

// RenameSessionRequest renames an existing session
type RenameSessionRequest struct {
	Title string `json:"title" binding:"required,min=1"`
}

// UsageEntry records one provider call for quota and billing purposes
type UsageEntry struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Endpoint     string    `json:"endpoint"`
	TokensUsed   int       `json:"tokens_used"`
	Cost         int       `json:"cost"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Usage entry statuses.
const (
	UsageStatusSuccess = "success"
	UsageStatusError   = "error"
)
