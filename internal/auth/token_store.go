package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore keeps the single valid refresh token per user. Rotation
// overwrites the previous one, so a stolen older token stops working
// the moment the legitimate client refreshes.
//
//go:generate mockgen -source=token_store.go -destination=mock/token_store_mock.go -package=mock
type TokenStore interface {
	Save(ctx context.Context, userID, token string, ttl time.Duration) error
	Get(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}

type redisTokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func refreshTokenKey(userID string) string {
	return fmt.Sprintf("refresh_token:%s", userID)
}

func (s *redisTokenStore) Save(ctx context.Context, userID, token string, ttl time.Duration) error {
	return s.client.Set(ctx, refreshTokenKey(userID), token, ttl).Err()
}

func (s *redisTokenStore) Get(ctx context.Context, userID string) (string, error) {
	return s.client.Get(ctx, refreshTokenKey(userID)).Result()
}

func (s *redisTokenStore) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, refreshTokenKey(userID)).Err()
}
