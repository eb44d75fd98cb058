package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "kepler/internal/errors"
	"kepler/internal/models"
)

// debtService maintains the named amortizing balances.
type debtService struct {
	db *gorm.DB
}

// NewDebtService creates a new DebtServicer.
func NewDebtService(db *gorm.DB) DebtServicer {
	return &debtService{db: db}
}

// Get returns a debt by name.
func (s *debtService) Get(ctx context.Context, name string) (*models.Debt, error) {
	var debt models.Debt
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDebtNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return &debt, nil
}

// GetAll returns every tracked debt.
func (s *debtService) GetAll(ctx context.Context) ([]models.Debt, error) {
	var debts []models.Debt
	if err := s.db.WithContext(ctx).Order("name").Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return debts, nil
}

// ApplyPayment reduces the balance by amount, floored at zero. An
// overpayment is clamped; the excess is not carried anywhere. Whether the
// name maps to a real obligation is the orchestrator's attribution
// heuristic, not this component's concern.
func (s *debtService) ApplyPayment(ctx context.Context, name string, amount int64) (*models.Debt, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment amount must be greater than zero")
	}

	debt, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	newBalance := debt.CurrentBalance - amount
	if newBalance < 0 {
		newBalance = 0
	}

	if err := s.db.WithContext(ctx).Model(debt).
		UpdateColumn("current_balance", newBalance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	debt.CurrentBalance = newBalance
	return debt, nil
}
