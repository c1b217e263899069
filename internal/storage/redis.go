// Package storage provides the Redis-backed cache layer for the build
// creator. When Redis is not configured the client degrades to a no-op and
// callers fall back to their in-memory caches.
package storage

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sxndmxn/deadlock-build-creator/internal/config"
)

// RedisClient wraps go-redis client.
type RedisClient struct {
	client  *redis.Client
	enabled bool
	ctx     context.Context
}

// NewRedisClient creates a new Redis client using go-redis.
func NewRedisClient(cfg *config.Config) *RedisClient {
	redisURL := cfg.RedisURL
	if redisURL == "" {
		log.Println("Redis not configured (REDIS_URL missing), using memory only")
		return &RedisClient{enabled: false, ctx: context.Background()}
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Failed to parse REDIS_URL: %v", err)
		return &RedisClient{enabled: false, ctx: context.Background()}
	}

	opt.PoolSize = 5
	opt.MinIdleConns = 1
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)
	ctx := context.Background()

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection failed: %v", err)
		return &RedisClient{enabled: false, ctx: ctx}
	}

	log.Println("Redis connected successfully")
	return &RedisClient{
		client:  client,
		enabled: true,
		ctx:     ctx,
	}
}

// Get retrieves a value from Redis.
func (r *RedisClient) Get(key string) (string, error) {
	if !r.enabled {
		return "", nil
	}
	val, err := r.client.Get(r.ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// Set stores a value in Redis (no expiration).
func (r *RedisClient) Set(key string, value string) error {
	if !r.enabled {
		return nil
	}
	return r.client.Set(r.ctx, key, value, 0).Err()
}

// SetTTL stores a value in Redis with an expiration. Fetched provider data
// is cached for an hour, matching the provider's own cache lifetime.
func (r *RedisClient) SetTTL(key string, value string, ttl time.Duration) error {
	if !r.enabled {
		return nil
	}
	return r.client.Set(r.ctx, key, value, ttl).Err()
}

// Delete removes a key from Redis.
func (r *RedisClient) Delete(key string) error {
	if !r.enabled {
		return nil
	}
	return r.client.Del(r.ctx, key).Err()
}
