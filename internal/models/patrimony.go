package models

// Patrimony is the accumulated net-worth figure. The table holds exactly
// one row, written only by the month-close operation. The balance may go
// negative when a month runs a deficit.
type Patrimony struct {
	Base
	CurrentBalance    int64 `gorm:"type:bigint;not null" json:"current_balance"`
	LastMonthIncome   int64 `gorm:"type:bigint;not null;default:0" json:"last_month_income"`
	LastMonthExpenses int64 `gorm:"type:bigint;not null;default:0" json:"last_month_expenses"`
}
