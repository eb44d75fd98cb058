package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "kepler/internal/errors"
	"kepler/internal/logger"
	"kepler/internal/models"
	"kepler/internal/pagination"
)

// conversationService records the intent/outcome audit trail.
type conversationService struct {
	db *gorm.DB
}

// NewConversationService creates a new ConversationServicer.
func NewConversationService(db *gorm.DB) ConversationServicer {
	return &conversationService{db: db}
}

// Log records an exchange. Errors are logged but never propagate so the
// audit trail cannot fail the request it describes.
func (s *conversationService) Log(ctx context.Context, intent Intent, outcome Outcome, detail string) {
	entry := &models.ConversationLog{
		ChatID:      intent.ChatID,
		Action:      intent.Action,
		Amount:      intent.Amount,
		Category:    intent.Category,
		Description: intent.Description,
		Outcome:     string(outcome),
		Detail:      detail,
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to write conversation log",
			"error", err,
			"action", intent.Action,
			"outcome", outcome,
		)
	}
}

// Recent returns the newest exchanges first.
func (s *conversationService) Recent(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.ConversationLog], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.ConversationLog{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	var entries []models.ConversationLog
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}
