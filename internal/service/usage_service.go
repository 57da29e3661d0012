package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docuchat/internal/domain"
)

const usageListLimit = 50

// UsageService records token counts and cost per provider call.
// Recording is fire-and-forget: a failed insert must never abort the
// caller's success or error response.
type UsageService struct {
	repo   UsageStore
	logger *zap.Logger
}

// NewUsageService creates a new usage service
func NewUsageService(repo UsageStore, logger *zap.Logger) *UsageService {
	return &UsageService{repo: repo, logger: logger}
}

// Record persists a usage entry, logging instead of propagating on failure
func (s *UsageService) Record(ctx context.Context, entry *domain.UsageEntry) {
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("failed to record api usage",
			zap.String("user_id", entry.UserID.String()),
			zap.String("endpoint", entry.Endpoint),
			zap.Error(err),
		)
	}
}

// Recent returns the caller's most recent usage entries
func (s *UsageService) Recent(ctx context.Context, userID uuid.UUID) ([]*domain.UsageEntry, error) {
	return s.repo.ListByUser(ctx, userID, usageListLimit)
}
