package models

import "time"

// User roles. Transitions happen only through admin action
// (leadership approval) or the signup-time admin-email bypass.
const (
	RoleStudent = "STUDENT"
	RoleLeader  = "LEADER"
	RoleAdmin   = "ADMIN"
)

// User represents a portal account.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:64;not null"`
	Email        string    `gorm:"size:128;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         string    `gorm:"size:16;index;not null;default:STUDENT"`
	Institution  string    `gorm:"size:128"`
	Phone        string    `gorm:"size:32"`
	Avatar       string    `gorm:"size:255"`
	Bio          string    `gorm:"size:512"`
	GPA          float64   `gorm:"default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Courses []CourseRecord `gorm:"constraint:OnDelete:CASCADE"`
}

// CourseRecord is one row of a user's GPA sheet. Position preserves
// the order the client submitted the courses in.
type CourseRecord struct {
	ID       uint    `gorm:"primaryKey"`
	UserID   uint    `gorm:"index;not null"`
	Name     string  `gorm:"size:128;not null"`
	Credits  float64 `gorm:"not null"`
	Grade    string  `gorm:"size:8"`
	Position int     `gorm:"not null"`
}
