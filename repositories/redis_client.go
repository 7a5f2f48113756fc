package repositories

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisClient interface {
	IncrBy(ctx context.Context, key string, value int64) error
	SAdd(ctx context.Context, key string, members ...interface{}) (int64, error)
}

type redisClient struct {
	client *redis.Client
}

func NewRedisClient(host, port string) RedisClient {
	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port),
	})
	return &redisClient{client: rdb}
}

func (r *redisClient) IncrBy(ctx context.Context, key string, value int64) error {
	if err := r.client.IncrBy(ctx, key, value).Err(); err != nil {
		return fmt.Errorf("redis incrby failure for %s: %w", key, err)
	}
	return nil
}

func (r *redisClient) SAdd(ctx context.Context, key string, members ...interface{}) (int64, error) {
	n, err := r.client.SAdd(ctx, key, members...).Result()
	if err != nil {
		return 0, fmt.Errorf("redis sadd failure for %s: %w", key, err)
	}
	return n, nil
}
