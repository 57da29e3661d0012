package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"docuchat/internal/domain"
	"docuchat/internal/model"
)

// UsageRepository handles usage record persistence
type UsageRepository struct {
	db *gorm.DB
}

// NewUsageRepository creates a new usage repository
func NewUsageRepository(db *gorm.DB) *UsageRepository {
	return &UsageRepository{db: db}
}

// Create inserts a usage record
func (r *UsageRepository) Create(ctx context.Context, entry *domain.UsageEntry) error {
	row := model.APIUsage{
		ID:           entry.ID,
		UserID:       entry.UserID,
		Endpoint:     entry.Endpoint,
		TokensUsed:   entry.TokensUsed,
		Cost:         entry.Cost,
		Status:       entry.Status,
		ErrorMessage: entry.ErrorMessage,
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	entry.ID = row.ID
	entry.CreatedAt = row.CreatedAt
	return nil
}

// ListByUser returns the most recent usage entries for a user
func (r *UsageRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.UsageEntry, error) {
	var rows []model.APIUsage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	entries := make([]*domain.UsageEntry, 0, len(rows))
	for i := range rows {
		row := rows[i]
		entries = append(entries, &domain.UsageEntry{
			ID:           row.ID,
			UserID:       row.UserID,
			Endpoint:     row.Endpoint,
			TokensUsed:   row.TokensUsed,
			Cost:         row.Cost,
			Status:       row.Status,
			ErrorMessage: row.ErrorMessage,
			CreatedAt:    row.CreatedAt,
		})
	}
	return entries, nil
}
