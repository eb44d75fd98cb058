package models

// TransactionType distinguishes money entering from money leaving.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Category is one of the five fixed spending buckets of the plan,
// or the pseudo-category "income" used for income transactions.
type Category string

const (
	CategoryFixedSurvival  Category = "fixed_survival"
	CategoryDebtOffensive  Category = "debt_offensive"
	CategoryKeplerGrowth   Category = "kepler_growth"
	CategoryNetworkingLife Category = "networking_life"
	CategoryStupidExpenses Category = "stupid_expenses"
	CategoryIncome         Category = "income"
)

// SpendingCategories returns the five budgeted categories in plan order.
func SpendingCategories() []Category {
	return []Category{
		CategoryFixedSurvival,
		CategoryDebtOffensive,
		CategoryKeplerGrowth,
		CategoryNetworkingLife,
		CategoryStupidExpenses,
	}
}

// IsSpendingCategory reports whether c is one of the five budgeted categories.
func IsSpendingCategory(c Category) bool {
	switch c {
	case CategoryFixedSurvival, CategoryDebtOffensive, CategoryKeplerGrowth,
		CategoryNetworkingLife, CategoryStupidExpenses:
		return true
	}
	return false
}

// Transaction is an immutable ledger entry. Rows are only ever inserted;
// budget and patrimony figures must stay derivable from this table.
// Amounts are integer COP.
type Transaction struct {
	Base
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"`
	Category    Category        `gorm:"not null;index" json:"category"`
	Type        TransactionType `gorm:"not null;index" json:"type"`
	Description string          `json:"description"`
}
