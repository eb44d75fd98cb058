package models

// Debt is a named amortizing balance (ICETEX, Lumni). InitialBalance is
// immutable once seeded; CurrentBalance only decreases, floored at zero.
// MinimumInstallment is the known monthly quota, used by the attribution
// heuristic to recognize quota-sized survival expenses as debt payments.
type Debt struct {
	Base
	Name               string `gorm:"uniqueIndex;not null" json:"name"`
	InitialBalance     int64  `gorm:"type:bigint;not null" json:"initial_balance"`
	CurrentBalance     int64  `gorm:"type:bigint;not null" json:"current_balance"`
	MinimumInstallment int64  `gorm:"type:bigint;not null;default:0" json:"minimum_installment"`
}

// PaidToDate returns how much has been paid against this debt.
func (d *Debt) PaidToDate() int64 {
	return d.InitialBalance - d.CurrentBalance
}
