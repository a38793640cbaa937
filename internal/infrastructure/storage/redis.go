// internal/infrastructure/storage/redis.go
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prnse-cda/cda-store/internal/config"
)

// RedisClient wraps the Redis connection
type RedisClient struct {
	Redis *redis.Client
}

// NewRedisConnection creates a new Redis connection
func NewRedisConnection(cfg *config.Config) (*RedisClient, error) {
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

	return &RedisClient{Redis: rdb}, nil
}

// Close closes the Redis connection
func (c *RedisClient) Close() error {
	return c.Redis.Close()
}

// GetClient returns the Redis client instance
func (c *RedisClient) GetClient() *redis.Client {
	return c.Redis
}

// Health checks the Redis connection health
func (c *RedisClient) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return c.Redis.Ping(ctx).Err()
}

// RedisKV adapts the Redis connection to the KV contract. Values carry no
// expiration: the cart outlives sessions the way localStorage would.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV creates a KV over an established Redis connection
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (kv *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := kv.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (kv *RedisKV) Set(ctx context.Context, key, value string) error {
	return kv.client.Set(ctx, key, value, 0).Err()
}

func (kv *RedisKV) Delete(ctx context.Context, key string) error {
	return kv.client.Del(ctx, key).Err()
}
