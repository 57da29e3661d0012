package model

import (
	"time"

	"github.com/google/uuid"
)

// APIUsage records token counts and cost per provider call, in cents.
type APIUsage struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Endpoint     string    `gorm:"type:varchar(255);not null"`
	TokensUsed   int       `gorm:"default:0"`
	Cost         int       `gorm:"default:0"`
	Status       string    `gorm:"type:varchar(20);not null"`
	ErrorMessage string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
}

func (APIUsage) TableName() string {
	return "api_usage"
}
