package database

import (
	"fmt"

	"github.com/Louis-BT/Student-Portal/internal/config"
	"github.com/Louis-BT/Student-Portal/internal/models"
	"github.com/Louis-BT/Student-Portal/internal/util"

	"gorm.io/gorm"
)

// EnsureAdmin guarantees the default admin account exists. It runs on
// every cold start and must stay idempotent: the lookup and insert share
// one transaction and the unique index on email backs them, so concurrent
// starts cannot duplicate the row.
func EnsureAdmin(db *gorm.DB, cfg config.AdminConfig, bcryptCost int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("email = ?", cfg.Email).
			Count(&count).Error; err != nil {
			return fmt.Errorf("lookup admin: %w", err)
		}
		if count > 0 {
			return nil
		}

		hash, err := util.HashPassword(cfg.Password, bcryptCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}

		admin := models.User{
			Name:         "Administrator",
			Email:        cfg.Email,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		return nil
	})
}
