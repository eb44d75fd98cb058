package models

// ConversationLog records every intent handed to the engine together with
// its outcome, forming the audit trail of the chat exchange. Writes are
// best-effort and never fail the request that produced them.
type ConversationLog struct {
	Base
	ChatID      int64  `gorm:"index" json:"chat_id"`
	Action      string `gorm:"not null" json:"action"`
	Amount      int64  `gorm:"type:bigint" json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Outcome     string `gorm:"not null" json:"outcome"`
	Detail      string `json:"detail,omitempty"`
}
