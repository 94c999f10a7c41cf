package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore remembers logged-out token IDs until their natural
// expiry. A nil store disables revocation checks, which keeps local
// development and tests free of a redis dependency.
type RevocationStore struct {
	rdb *redis.Client
}

// NewRevocationStore connects to redis. Pass an empty addr to run without
// revocation support.
func NewRevocationStore(addr, password string) *RevocationStore {
	if addr == "" {
		return nil
	}
	return &RevocationStore{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})}
}

func revocationKey(jti string) string {
	return "revoked:" + jti
}

// Revoke marks a token ID as logged out until ttl elapses.
func (s *RevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if s == nil {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revocationKey(jti), "1", ttl).Err()
}

// IsRevoked reports whether a token ID has been logged out.
func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if s == nil {
		return false, nil
	}
	n, err := s.rdb.Exists(ctx, revocationKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
