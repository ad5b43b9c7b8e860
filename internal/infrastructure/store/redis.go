// internal/infrastructure/store/redis.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/bookverse-storefront/internal/config"
)

// Connection wraps the Redis client
type Connection struct {
	Redis *redis.Client
}

// NewConnection creates a new Redis connection
func NewConnection(cfg *config.Config) (*Connection, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,

		// Connection timeouts
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,

		// Pool timeouts
		PoolTimeout: 4 * time.Second,
	})

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("Redis connection established")

	return &Connection{Redis: rdb}, nil
}

// Close closes the Redis connection
func (c *Connection) Close() error {
	return c.Redis.Close()
}

// GetClient returns the Redis client instance
func (c *Connection) GetClient() *redis.Client {
	return c.Redis
}

// Health checks the Redis connection health
func (c *Connection) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return c.Redis.Ping(ctx).Err()
}

// RedisStore is the production Store backed by Redis. Values are JSON
// blobs under a configurable key prefix, expiring with the session TTL
// so abandoned carts eventually disappear.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis creates a Redis-backed store
func NewRedis(client *redis.Client, cfg *config.Config) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: cfg.Redis.KeyPrefix + ":",
		ttl:    cfg.Redis.SessionTTL,
	}
}

// Load retrieves and decodes a value by key
func (s *RedisStore) Load(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := s.client.Get(ctx, s.prefix+key).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to load key %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("%w: key %q: %v", ErrCorrupt, key, err)
	}

	return true, nil
}

// Save serializes and stores a value with the session TTL
func (s *RedisStore) Save(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value for key %q: %w", key, err)
	}

	return s.client.Set(ctx, s.prefix+key, raw, s.ttl).Err()
}

// Delete removes a key
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
