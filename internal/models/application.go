package models

import "time"

// Leadership application statuses. PENDING is the only non-terminal state.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// LeadershipApplication is a student's request to become a LEADER.
// Name and Institution are snapshots of the applicant at apply time.
// Old applications are never deleted; "my status" is the latest by recency.
type LeadershipApplication struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	Name        string    `gorm:"size:64;not null"`
	Institution string    `gorm:"size:128"`
	Position    string    `gorm:"size:64;not null"`
	Experience  string    `gorm:"type:text"`
	Vision      string    `gorm:"type:text;not null"`
	Reference   string    `gorm:"size:128"`
	Status      string    `gorm:"size:16;index;not null;default:PENDING"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
