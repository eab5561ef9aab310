package database

import (
	"fmt"

	"github.com/Louis-BT/Student-Portal/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.CourseRecord{},
		&models.Session{},
		&models.LeadershipApplication{},
		&models.Resource{},
		&models.NewsItem{},
		&models.SupportTicket{},
		&models.ChatMessage{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
