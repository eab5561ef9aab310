// Package session holds issued login sessions. The backing store is an
// explicit deployment choice: the database (survives restarts), an
// in-process map (lost on restart), or redis.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Louis-BT/Student-Portal/internal/config"
	"github.com/Louis-BT/Student-Portal/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a session id does not resolve.
var ErrNotFound = errors.New("session not found")

// Store persists issued sessions. Resolve returns revoked and expired
// sessions as-is; callers decide with Session.Active. Revoking an unknown
// id is not an error.
type Store interface {
	Create(ctx context.Context, s *models.Session) error
	Resolve(ctx context.Context, id string) (*models.Session, error)
	Revoke(ctx context.Context, id string) error
	RevokeUser(ctx context.Context, userID uint) error
}

// New issues a Session struct for the given user with the standard TTL.
// The role is snapshotted here and never refreshed afterwards.
func New(user *models.User, ttl time.Duration) *models.Session {
	now := time.Now()
	return &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// Open builds the configured store implementation.
func Open(cfg config.SessionConfig, db *gorm.DB) (Store, error) {
	switch cfg.Store {
	case "database", "":
		return NewDBStore(db), nil
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  1 * time.Second,
			WriteTimeout: 1 * time.Second,
		})
		return NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}
