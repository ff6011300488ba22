package session

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoker records JWT ids invalidated by logout until their natural expiry.
// Like the storage layer it has a redis-backed and an in-memory
// implementation, picked at startup.
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const keyPrefix = "revoked:"

type RedisRevoker struct{ rdb *redis.Client }

func NewRedisRevoker(addr, password string, db int) *RedisRevoker {
	return &RedisRevoker{
		rdb: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
	}
}

func (r *RedisRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to record
	}
	return r.rdb.Set(ctx, keyPrefix+jti, 1, ttl).Err()
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.rdb.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisRevoker) Close() error { return r.rdb.Close() }

// MemoryRevoker backs the "memory" storage driver and tests.
type MemoryRevoker struct {
	mu      sync.Mutex
	expires map[string]time.Time
}

func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{expires: map[string]time.Time{}}
}

func (m *MemoryRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expires[jti] = time.Now().Add(ttl)
	return nil
}

func (m *MemoryRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.expires[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		delete(m.expires, jti)
		return false, nil
	}
	return true, nil
}
