package cache

import (
	"context"
	"fmt"
	"time"

	appsync "github.com/arflow/backend/internal/application/sync"
	"github.com/redis/go-redis/v9"
)

// RedisDispatchLease implements the sync dispatch lease using Redis.
// This is suitable for distributed deployments where multiple instances
// poll the sync schedule concurrently.
type RedisDispatchLease struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisClient opens a Redis connection and verifies it with a ping
func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// NewRedisDispatchLease creates a new Redis-backed dispatch lease
func NewRedisDispatchLease(cfg RedisConfig) (*RedisDispatchLease, error) {
	client, err := NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &RedisDispatchLease{
		client:    client,
		keyPrefix: "dispatch:lease:",
	}, nil
}

// NewRedisDispatchLeaseWithClient creates a lease with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisDispatchLeaseWithClient(client *redis.Client, keyPrefix string) *RedisDispatchLease {
	if keyPrefix == "" {
		keyPrefix = "dispatch:lease:"
	}
	return &RedisDispatchLease{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Acquire takes the lease for one dispatch key.
// Returns true if the lease was taken, false if another dispatcher holds it.
// Uses SETNX (SET if Not eXists) for atomic operation.
func (l *RedisDispatchLease) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	acquired, err := l.client.SetNX(ctx, l.keyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire dispatch lease: %w", err)
	}

	return acquired, nil
}

// Release frees the lease so the next poll can dispatch the key again
func (l *RedisDispatchLease) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release dispatch lease: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (l *RedisDispatchLease) Close() error {
	return l.client.Close()
}

// Ensure RedisDispatchLease implements DispatchLease
var _ appsync.DispatchLease = (*RedisDispatchLease)(nil)
