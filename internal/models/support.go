package models

import "time"

// SupportTicket is an append-only message to the support inbox.
// There is no status field; tickets are read by admins only.
type SupportTicket struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Name      string    `gorm:"size:64"`
	Message   string    `gorm:"type:text;not null"`
	CreatedAt time.Time
}
