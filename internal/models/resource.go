package models

import "time"

// Resource is an uploaded library item. Only APPROVED resources show up
// in the public listing; admins see every status.
type Resource struct {
	ID           uint      `gorm:"primaryKey"`
	Title        string    `gorm:"size:128;not null"`
	Category     string    `gorm:"size:64;index"`
	FilePath     string    `gorm:"size:255;not null"`
	UploaderID   uint      `gorm:"index;not null"`
	UploaderName string    `gorm:"size:64"`
	Status       string    `gorm:"size:16;index;not null;default:PENDING"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
