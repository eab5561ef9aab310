package models

import "time"

// ChatMessage is one append-only entry on the chat wall.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Name      string    `gorm:"size:64"`
	Message   string    `gorm:"size:1024;not null"`
	CreatedAt time.Time `gorm:"index"`
}
