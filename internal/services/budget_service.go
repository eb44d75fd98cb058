package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "kepler/internal/errors"
	"kepler/internal/logger"
	"kepler/internal/models"
)

// budgetService maintains the monthly spending counter per category.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// GetStatus returns the counter for one category. All five categories are
// provisioned by migrations; a missing row is a configuration bug.
func (s *budgetService) GetStatus(ctx context.Context, category models.Category) (*BudgetStatus, error) {
	var budget models.Budget
	if err := s.db.WithContext(ctx).Where("category = ?", category).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return statusFrom(&budget), nil
}

// GetAllStatuses returns the counters for all categories in plan order.
// Every plan category must be provisioned; a missing row is the same
// configuration bug GetStatus reports, not an empty result.
func (s *budgetService) GetAllStatuses(ctx context.Context) ([]BudgetStatus, error) {
	var budgets []models.Budget
	if err := s.db.WithContext(ctx).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	byCategory := make(map[models.Category]*models.Budget, len(budgets))
	for i := range budgets {
		byCategory[budgets[i].Category] = &budgets[i]
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	var missing []string
	for _, category := range models.SpendingCategories() {
		b, ok := byCategory[category]
		if !ok {
			missing = append(missing, string(category))
			continue
		}
		statuses = append(statuses, *statusFrom(b))
	}
	if len(missing) > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrCategoryNotFound,
			"no budget row for "+strings.Join(missing, ", "))
	}
	return statuses, nil
}

// ApplySpend adds amount to the category's counter as a single atomic
// increment, so concurrent expenses cannot lose updates, then returns the
// resulting status. Exceeding the limit is permitted; the caller sees
// Remaining < 0 and flags it.
func (s *budgetService) ApplySpend(ctx context.Context, category models.Category, amount int64) (*BudgetStatus, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "spend amount must be greater than zero")
	}
	if !models.IsSpendingCategory(category) {
		return nil, apperrors.ErrInvalidCategory
	}

	result := s.db.WithContext(ctx).Model(&models.Budget{}).
		Where("category = ?", category).
		UpdateColumn("current_spent", gorm.Expr("current_spent + ?", amount))
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrCategoryNotFound
	}

	return s.GetStatus(ctx, category)
}

// ResetAll zeroes every category counter for the month close. Each
// category is attempted independently: one failure must not abort the
// rest. The caller reports which categories failed.
func (s *budgetService) ResetAll(ctx context.Context) []CategoryReset {
	resets := make([]CategoryReset, 0, 5)
	for _, category := range models.SpendingCategories() {
		reset := CategoryReset{Category: category}

		result := s.db.WithContext(ctx).Model(&models.Budget{}).
			Where("category = ?", category).
			UpdateColumn("current_spent", 0)
		switch {
		case result.Error != nil:
			reset.Err = apperrors.Wrap(apperrors.ErrPersistence, result.Error)
		case result.RowsAffected == 0:
			reset.Err = apperrors.ErrCategoryNotFound
		}

		if reset.Err != nil {
			logger.Get().Errorw("budget reset failed",
				"category", category,
				"error", reset.Err.Error(),
			)
		}
		resets = append(resets, reset)
	}
	return resets
}

func statusFrom(b *models.Budget) *BudgetStatus {
	return &BudgetStatus{
		Category:     b.Category,
		MonthlyLimit: b.MonthlyLimit,
		CurrentSpent: b.CurrentSpent,
		Remaining:    b.Remaining(),
	}
}
