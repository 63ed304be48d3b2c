package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/config"
)

var (
	redisClient *redis.Client
	redisCtx    = context.Background()
)

// InitRedis initializes the shared Redis client used for reset tokens,
// admin invite codes and directory caching.
func InitRedis(cfg *config.Config) error {
	addr := cfg.RedisAddr
	if addr == "" {
		addr = "localhost:6379"
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if _, err := redisClient.Ping(redisCtx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return nil
}

// SetToken stores a value with TTL.
func SetToken(key, value string, ttl time.Duration) error {
	if redisClient == nil {
		return fmt.Errorf("redis client not initialized")
	}
	return redisClient.Set(redisCtx, key, value, ttl).Err()
}

// GetToken fetches a value previously stored with SetToken.
func GetToken(key string) (string, error) {
	if redisClient == nil {
		return "", fmt.Errorf("redis client not initialized")
	}
	val, err := redisClient.Get(redisCtx, key).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("key not found")
	}
	return val, err
}

// DeleteToken removes a key.
func DeleteToken(key string) error {
	if redisClient == nil {
		return fmt.Errorf("redis client not initialized")
	}
	return redisClient.Del(redisCtx, key).Err()
}

// CacheSet stores a cached payload with expiration.
func CacheSet(key, value string, ttl time.Duration) error {
	return SetToken(key, value, ttl)
}

// CacheGet reads a cached payload. Returns ("", nil) on cache miss.
func CacheGet(key string) (string, error) {
	if redisClient == nil {
		return "", fmt.Errorf("redis client not initialized")
	}
	val, err := redisClient.Get(redisCtx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// CacheInvalidate drops all keys matching the given pattern.
func CacheInvalidate(pattern string) error {
	if redisClient == nil {
		return fmt.Errorf("redis client not initialized")
	}
	iter := redisClient.Scan(redisCtx, 0, pattern, 0).Iterator()
	for iter.Next(redisCtx) {
		if err := redisClient.Del(redisCtx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// CloseRedis closes the connection (used on shutdown).
func CloseRedis() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}
