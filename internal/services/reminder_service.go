package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "kepler/internal/errors"
	"kepler/internal/models"
)

// reminderService is the dispatch read for scheduled reminders. The
// polling loop that triggers it lives outside the engine.
type reminderService struct {
	db *gorm.DB
}

// NewReminderService creates a new ReminderServicer.
func NewReminderService(db *gorm.DB) ReminderServicer {
	return &reminderService{db: db}
}

// GetDue returns active reminders whose scheduled time has passed today
// and that have not been sent today. A reminder applies today when its
// date matches, its weekday matches, or it carries neither (daily).
// Comparing against "has passed" rather than the exact minute keeps a
// coarse polling interval from skipping reminders.
func (s *reminderService) GetDue(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	today := now.Format("2006-01-02")
	weekday := int(now.Weekday())

	var reminders []models.Reminder
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("(last_sent_date <> ? OR last_sent_date IS NULL OR last_sent_date = '')", today).
		Where("((date = ?) OR (date IS NULL AND weekday = ?) OR (date IS NULL AND weekday IS NULL))", today, weekday).
		Where("(hour < ? OR (hour = ? AND minute <= ?))", now.Hour(), now.Hour(), now.Minute()).
		Order("hour, minute").
		Find(&reminders).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return reminders, nil
}

// MarkSent stamps the reminder as delivered for sentDate (YYYY-MM-DD).
func (s *reminderService) MarkSent(ctx context.Context, id string, sentDate string) error {
	result := s.db.WithContext(ctx).Model(&models.Reminder{}).
		Where("id = ?", id).
		UpdateColumn("last_sent_date", sentDate)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrReminderNotFound
	}
	return nil
}
