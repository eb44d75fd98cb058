package models

// Budget holds the monthly spending counter for one category.
// MonthlyLimit is plan configuration seeded by migrations, not user-editable.
// CurrentSpent grows with every accepted expense and is reset to zero
// exactly once per month close. Going over the limit is a flagged state,
// never a rejected one.
type Budget struct {
	Base
	Category     Category `gorm:"uniqueIndex;not null" json:"category"`
	MonthlyLimit int64    `gorm:"type:bigint;not null" json:"monthly_limit"`
	CurrentSpent int64    `gorm:"type:bigint;not null;default:0" json:"current_spent"`
}

// Remaining returns the budget left this month. Negative when over budget.
func (b *Budget) Remaining() int64 {
	return b.MonthlyLimit - b.CurrentSpent
}
