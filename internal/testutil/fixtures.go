package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"kepler/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// PlanLimits are the seeded monthly limits of the strict plan, in COP.
var PlanLimits = map[models.Category]int64{
	models.CategoryFixedSurvival:  1_300_000,
	models.CategoryDebtOffensive:  618_000,
	models.CategoryKeplerGrowth:   618_000,
	models.CategoryNetworkingLife: 309_000,
	models.CategoryStupidExpenses: 0,
}

// SeedPlanBudgets provisions all five category rows with the plan limits
// and zero spent.
func SeedPlanBudgets(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, category := range models.SpendingCategories() {
		CreateTestBudget(t, db, category, PlanLimits[category])
	}
}

// CreateTestBudget provisions one category row with the given limit.
func CreateTestBudget(t *testing.T, db *gorm.DB, category models.Category, limit int64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Category:     category,
		MonthlyLimit: limit,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestDebt provisions a named debt.
func CreateTestDebt(t *testing.T, db *gorm.DB, name string, balance, minimumInstallment int64) *models.Debt {
	t.Helper()

	debt := &models.Debt{
		Name:               name,
		InitialBalance:     balance,
		CurrentBalance:     balance,
		MinimumInstallment: minimumInstallment,
	}
	if err := db.Create(debt).Error; err != nil {
		t.Fatalf("failed to create test debt: %v", err)
	}
	return debt
}

// CreateTestPatrimony provisions the singleton patrimony record.
func CreateTestPatrimony(t *testing.T, db *gorm.DB, balance int64) *models.Patrimony {
	t.Helper()

	patrimony := &models.Patrimony{CurrentBalance: balance}
	if err := db.Create(patrimony).Error; err != nil {
		t.Fatalf("failed to create test patrimony: %v", err)
	}
	return patrimony
}

// CreateTestTransaction appends a transaction of the given type and amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, txType models.TransactionType, category models.Category, amount int64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Amount:      amount,
		Category:    category,
		Type:        txType,
		Description: fmt.Sprintf("test transaction %d", nextID()),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestReminder provisions a daily reminder at the given time.
func CreateTestReminder(t *testing.T, db *gorm.DB, hour, minute int) *models.Reminder {
	t.Helper()

	reminder := &models.Reminder{
		ChatID:   nextID(),
		Message:  fmt.Sprintf("test reminder %d", nextID()),
		Hour:     hour,
		Minute:   minute,
		IsActive: true,
	}
	if err := db.Create(reminder).Error; err != nil {
		t.Fatalf("failed to create test reminder: %v", err)
	}
	return reminder
}
