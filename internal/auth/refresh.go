package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshTokenLifetime = 7 * 24 * time.Hour

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenStore keeps opaque refresh tokens in redis, one key per token,
// expiring with the token itself.
type RefreshTokenStore struct {
	rdb *redis.Client
}

func NewRefreshTokenStore(rdb *redis.Client) *RefreshTokenStore {
	return &RefreshTokenStore{rdb: rdb}
}

// Issue mints a new refresh token bound to username.
func (s *RefreshTokenStore) Issue(ctx context.Context, username string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	if err := s.rdb.Set(ctx, refreshKey(token), username, refreshTokenLifetime).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Redeem resolves a refresh token back to its username and rotates it out.
func (s *RefreshTokenStore) Redeem(ctx context.Context, token string) (string, error) {
	username, err := s.rdb.GetDel(ctx, refreshKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrRefreshTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return username, nil
}

// Revoke drops a token, for logout.
func (s *RefreshTokenStore) Revoke(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, refreshKey(token)).Err()
}

func refreshKey(token string) string {
	return "refresh:" + token
}
