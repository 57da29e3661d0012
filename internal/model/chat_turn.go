package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn rows are immutable once written. There is no UpdatedAt and no
// soft delete: turns outlive their session's soft deletion for referential
// integrity.
type ChatTurn struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	DocumentID *uuid.UUID `gorm:"type:uuid"`
	Role       string     `gorm:"type:varchar(50);not null"`
	Content    string     `gorm:"type:text;not null"`
	TokensUsed *int
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}

func (ChatTurn) TableName() string {
	return "chat_turns"
}
