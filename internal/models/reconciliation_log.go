package models

// ReconciliationLog is the persisted saga step log. Every multi-step
// operation (expense posting, month close) records one row per step so a
// crash mid-sequence leaves an auditable trail instead of a silent
// inconsistency. Rows sharing an IntentID belong to one request.
type ReconciliationLog struct {
	Base
	IntentID string `gorm:"index;not null" json:"intent_id"`
	Action   string `gorm:"not null" json:"action"`
	Step     string `gorm:"not null" json:"step"`
	Status   string `gorm:"not null" json:"status"`
	Detail   string `json:"detail,omitempty"`
}
