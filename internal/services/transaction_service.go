package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "kepler/internal/errors"
	"kepler/internal/models"
	"kepler/internal/pagination"
)

// transactionService appends to and queries the immutable transaction log.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// Record inserts one immutable transaction row. A single insert, so no
// partial write is possible; storage failures surface as PERSISTENCE_ERROR.
func (s *transactionService) Record(
	ctx context.Context,
	amount int64,
	category models.Category,
	description string,
	txType models.TransactionType,
) (*models.Transaction, error) {
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	if category != models.CategoryIncome && !models.IsSpendingCategory(category) {
		return nil, apperrors.ErrInvalidCategory
	}

	transaction := &models.Transaction{
		Amount:      amount,
		Category:    category,
		Type:        txType,
		Description: description,
	}

	if err := s.db.WithContext(ctx).Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	return transaction, nil
}

// MonthIncome sums income transactions created since the first of the
// month containing now.
func (s *transactionService) MonthIncome(ctx context.Context, now time.Time) (int64, error) {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var total int64
	err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ? AND created_at >= ?", models.TransactionTypeIncome, firstOfMonth).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return total, nil
}

// List returns a paginated, filtered view of the transaction log,
// newest first.
func (s *transactionService) List(
	ctx context.Context,
	page pagination.PageRequest,
	filter TransactionFilter,
) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.Transaction{})
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.FromDate != nil {
		base = base.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("created_at <= ?", *filter.ToDate)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}
