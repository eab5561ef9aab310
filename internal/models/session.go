package models

import "time"

// Session stores user login sessions (for logout, invalidation, audit).
// Role is a snapshot taken at login time; role changes after login do
// not update already-issued sessions.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64"` // e.g. UUID
	UserID    uint      `gorm:"index;not null"`
	Role      string    `gorm:"size:16;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Revoked   bool      `gorm:"index;not null"`
	CreatedAt time.Time
}

// Active reports whether the session can still authenticate requests.
// Expiry is checked lazily here, there is no background sweep.
func (s *Session) Active(now time.Time) bool {
	return s != nil && !s.Revoked && now.Before(s.ExpiresAt)
}
