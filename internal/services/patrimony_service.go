package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "kepler/internal/errors"
	"kepler/internal/models"
)

// patrimonyService owns the singleton patrimony record and the month
// rollover arithmetic.
type patrimonyService struct {
	db           *gorm.DB
	transactions TransactionServicer
}

// NewPatrimonyService creates a new PatrimonyServicer.
func NewPatrimonyService(db *gorm.DB, transactions TransactionServicer) PatrimonyServicer {
	return &patrimonyService{db: db, transactions: transactions}
}

// Get returns the singleton patrimony record.
func (s *patrimonyService) Get(ctx context.Context) (*models.Patrimony, error) {
	var patrimony models.Patrimony
	if err := s.db.WithContext(ctx).First(&patrimony).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPatrimonyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return &patrimony, nil
}

// ComputeMonthlyStatus derives the month-to-date picture. Income is
// summed from this month's income transactions. Expenses are summed from
// the budget counters rather than the expense transactions, so the figure
// matches what the Budget Accumulator reported as spent even if the two
// sources diverge under partial failures. The transaction log remains the
// audit trail.
func (s *patrimonyService) ComputeMonthlyStatus(ctx context.Context, now time.Time) (*MonthlyStatus, error) {
	income, err := s.transactions.MonthIncome(ctx, now)
	if err != nil {
		return nil, err
	}

	var expenses int64
	err = s.db.WithContext(ctx).Model(&models.Budget{}).
		Select("COALESCE(SUM(current_spent), 0)").
		Scan(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	patrimony, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	remaining := income - expenses
	return &MonthlyStatus{
		MonthlyIncome:      income,
		MonthlyExpenses:    expenses,
		RemainingThisMonth: remaining,
		CurrentPatrimony:   patrimony.CurrentBalance,
		ProjectedPatrimony: patrimony.CurrentBalance + remaining,
	}, nil
}

// CloseMonth folds the month's surplus or deficit into the accumulated
// balance and stamps the month's income/expenses for historical display.
// When remaining is nil the delta is recomputed. The balance has no floor;
// a deficit month lowers patrimony.
//
// Not idempotent: closing the same month twice applies the delta twice.
// The orchestrator records the close in the saga log so a double close is
// at least detectable.
func (s *patrimonyService) CloseMonth(ctx context.Context, remaining *int64, now time.Time) (*models.Patrimony, error) {
	status, err := s.ComputeMonthlyStatus(ctx, now)
	if err != nil {
		return nil, err
	}

	delta := status.RemainingThisMonth
	if remaining != nil {
		delta = *remaining
	}

	patrimony, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	patrimony.CurrentBalance += delta
	patrimony.LastMonthIncome = status.MonthlyIncome
	patrimony.LastMonthExpenses = status.MonthlyExpenses

	if err := s.db.WithContext(ctx).Model(patrimony).Updates(map[string]interface{}{
		"current_balance":     patrimony.CurrentBalance,
		"last_month_income":   patrimony.LastMonthIncome,
		"last_month_expenses": patrimony.LastMonthExpenses,
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	return patrimony, nil
}
