package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStorage stores each snapshot as a plain Redis string.
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage accepts a redis:// URL or a bare host:port address and
// verifies the connection.
func NewRedisStorage(ctx context.Context, redisAddr string) (*RedisStorage, error) {
	opts, err := redis.ParseURL(redisAddr)
	if err != nil {
		opts = &redis.Options{
			Addr:         redisAddr,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
		}
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}

	return &RedisStorage{client: client}, nil
}

func (r *RedisStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis GET %s: %w", key, err)
	}
	return val, true, nil
}

func (r *RedisStorage) SetItem(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", key, err)
	}
	return nil
}

func (r *RedisStorage) RemoveItem(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis DEL %s: %w", key, err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	return r.client.Close()
}
