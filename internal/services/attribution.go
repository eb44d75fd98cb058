package services

import (
	"strings"

	"kepler/internal/models"
)

// installmentBand is the tolerance around a debt's minimum installment
// inside which a survival expense is taken for the monthly quota.
const installmentBand = 5_000

// KeywordMatcher attributes an expense to a debt whose name appears in
// the description, case-insensitively, regardless of category.
// "pagué lumni" always routes to Lumni.
type KeywordMatcher struct{}

// Match implements DebtMatcher.
func (KeywordMatcher) Match(debts []models.Debt, _ models.Category, _ int64, description string) *models.Debt {
	text := strings.ToLower(description)
	for i := range debts {
		if strings.Contains(text, strings.ToLower(debts[i].Name)) {
			return &debts[i]
		}
	}
	return nil
}

// InstallmentBandMatcher attributes a fixed_survival expense whose amount
// sits within the band around a debt's minimum installment. A quota-sized
// survival payment is almost certainly the monthly quota even when the
// description never names the debt.
type InstallmentBandMatcher struct{}

// Match implements DebtMatcher.
func (InstallmentBandMatcher) Match(debts []models.Debt, category models.Category, amount int64, _ string) *models.Debt {
	if category != models.CategoryFixedSurvival {
		return nil
	}
	for i := range debts {
		min := debts[i].MinimumInstallment
		if min <= 0 {
			continue
		}
		diff := amount - min
		if diff < 0 {
			diff = -diff
		}
		if diff <= installmentBand {
			return &debts[i]
		}
	}
	return nil
}

// ChainMatcher tries each matcher in order and returns the first hit.
type ChainMatcher struct {
	matchers []DebtMatcher
}

// NewChainMatcher builds a matcher chain.
func NewChainMatcher(matchers ...DebtMatcher) *ChainMatcher {
	return &ChainMatcher{matchers: matchers}
}

// DefaultMatcher returns the production heuristic: keyword match first,
// then the installment band.
func DefaultMatcher() DebtMatcher {
	return NewChainMatcher(KeywordMatcher{}, InstallmentBandMatcher{})
}

// Match implements DebtMatcher.
func (c *ChainMatcher) Match(debts []models.Debt, category models.Category, amount int64, description string) *models.Debt {
	for _, m := range c.matchers {
		if debt := m.Match(debts, category, amount, description); debt != nil {
			return debt
		}
	}
	return nil
}
