package models

// Reminder is a scheduled message. A reminder fires at Hour:Minute either
// on a specific Date (YYYY-MM-DD), on a Weekday (time.Weekday numbering,
// 0 = Sunday), or daily when both are nil. LastSentDate guards against
// sending twice on the same day under a polling dispatcher.
type Reminder struct {
	Base
	ChatID       int64   `gorm:"not null" json:"chat_id"`
	Message      string  `gorm:"not null" json:"message"`
	Hour         int     `gorm:"not null" json:"hour"`
	Minute       int     `gorm:"not null" json:"minute"`
	Weekday      *int    `json:"weekday,omitempty"`
	Date         *string `json:"date,omitempty"`
	IsActive     bool    `gorm:"default:true" json:"is_active"`
	LastSentDate string  `json:"last_sent_date,omitempty"`
}
