package utils

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisClient is a thin wrapper over go-redis exposing just what the page
// cache needs. Concurrent get/set safety is redis's job.
type RedisClient struct {
	inner *redis.Client
}

func GetRedisClient() *RedisClient {
	return &RedisClient{
		inner: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
			Password: os.Getenv("REDIS_PASSWD"),
			DB:       0, // use default DB
		})}
}

// Get returns the value at key, or an error (redis.Nil included) on a miss.
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.inner.Get(ctx, key).Result()
}

// SetEX stores value at key with the given expiration window.
func (r *RedisClient) SetEX(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.inner.SetEX(ctx, key, value, expiration).Err()
}

// Del removes key, no error if the key doesn't exist.
func (r *RedisClient) Del(ctx context.Context, key string) error {
	return r.inner.Del(ctx, key).Err()
}
