package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Louis-BT/Student-Portal/internal/models"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "sp:session:"

// RedisStore keeps sessions in redis. Keys carry a TTL slightly past the
// session expiry so redis reclaims dead sessions on its own; the lazy
// Active check in middleware still decides validity.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Create(ctx context.Context, sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ttl := time.Until(sess.ExpiresAt) + time.Hour
	if err := s.client.Set(ctx, redisKeyPrefix+sess.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	if err := s.client.SAdd(ctx, userKey(sess.UserID), sess.ID).Err(); err != nil {
		return fmt.Errorf("index session: %w", err)
	}
	// the index must not outlive its newest session
	if err := s.client.Expire(ctx, userKey(sess.UserID), ttl).Err(); err != nil {
		return fmt.Errorf("expire session index: %w", err)
	}
	return nil
}

func (s *RedisStore) Resolve(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) Revoke(ctx context.Context, id string) error {
	sess, err := s.Resolve(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	sess.Revoked = true
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+id, data, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	// a revoked session can never come back, drop it from the index
	if err := s.client.SRem(ctx, userKey(sess.UserID), id).Err(); err != nil {
		return fmt.Errorf("unindex session: %w", err)
	}
	return nil
}

func (s *RedisStore) RevokeUser(ctx context.Context, userID uint) error {
	ids, err := s.client.SMembers(ctx, userKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}
	for _, id := range ids {
		if err := s.Revoke(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func userKey(userID uint) string {
	return fmt.Sprintf("sp:user-sessions:%d", userID)
}
