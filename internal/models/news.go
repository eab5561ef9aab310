package models

import "time"

// NewsItem is an admin broadcast. The public feed returns the most
// recent items first, capped by config.
type NewsItem struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"size:128;not null"`
	Message   string    `gorm:"type:text;not null"`
	Category  string    `gorm:"size:64"`
	CreatedAt time.Time `gorm:"index"`
}
