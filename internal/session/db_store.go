package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/Louis-BT/Student-Portal/internal/models"

	"gorm.io/gorm"
)

// DBStore keeps sessions in the main database, the default choice.
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Create(ctx context.Context, sess *models.Session) error {
	if err := s.db.WithContext(ctx).Create(sess).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *DBStore) Resolve(ctx context.Context, id string) (*models.Session, error) {
	var sess models.Session
	err := s.db.WithContext(ctx).First(&sess, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	return &sess, nil
}

func (s *DBStore) Revoke(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ?", id).
		Update("revoked", true).Error
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *DBStore) RevokeUser(ctx context.Context, userID uint) error {
	err := s.db.WithContext(ctx).Model(&models.Session{}).
		Where("user_id = ?", userID).
		Update("revoked", true).Error
	if err != nil {
		return fmt.Errorf("revoke user sessions: %w", err)
	}
	return nil
}
