package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrResetTokenInvalid reports an unknown or expired reset token.
var ErrResetTokenInvalid = errors.New("reset token invalid or expired")

const resetKeyPrefix = "pwreset:"

// PasswordResetStore keeps one-shot password reset tokens in redis with a
// TTL. Consuming a token deletes it, so a token works at most once.
type PasswordResetStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPasswordResetStore builds the store.
func NewPasswordResetStore(client *redis.Client, ttlMinutes int) *PasswordResetStore {
	if ttlMinutes <= 0 {
		ttlMinutes = 30
	}
	return &PasswordResetStore{client: client, ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Issue stores a fresh token bound to the admin id and returns it.
func (s *PasswordResetStore) Issue(ctx context.Context, adminID string) (string, error) {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := s.client.Set(ctx, resetKeyPrefix+token, adminID, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Consume resolves a token to its admin id and invalidates it.
func (s *PasswordResetStore) Consume(ctx context.Context, token string) (string, error) {
	adminID, err := s.client.GetDel(ctx, resetKeyPrefix+token).Result()
	if err == redis.Nil {
		return "", ErrResetTokenInvalid
	}
	if err != nil {
		return "", err
	}
	return adminID, nil
}
