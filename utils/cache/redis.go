package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every key the portal writes
const KeyPrefix = "portal:"

var ErrNotFound = errors.New("key not found in cache")

// RedisCache wraps a Redis client with the operations the portal needs.
// Keys passed to its methods are stored under KeyPrefix.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to redisURL and verifies the connection
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RedisCache{client: client}, nil
}

// NewRedisCacheFromClient wraps an existing client
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func key(k string) string { return KeyPrefix + k }

func (r *RedisCache) Get(ctx context.Context, k string) (string, error) {
	val, err := r.client.Get(ctx, key(k)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return val, err
}

// Set stores a value; a zero expiration keeps it until deleted
func (r *RedisCache) Set(ctx context.Context, k string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key(k), value, expiration).Err()
}

func (r *RedisCache) SetJSON(ctx context.Context, k string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Set(ctx, k, data, expiration)
}

// GetJSON decodes a value stored with SetJSON. A missing key is ErrNotFound.
func (r *RedisCache) GetJSON(ctx context.Context, k string, dest interface{}) error {
	val, err := r.Get(ctx, k)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func (r *RedisCache) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = key(k)
	}
	return r.client.Del(ctx, prefixed...).Err()
}

func (r *RedisCache) Exists(ctx context.Context, k string) (bool, error) {
	count, err := r.client.Exists(ctx, key(k)).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IncrementWindow increments a counter and starts its window on the first hit.
// The counter disappears when the window ends.
func (r *RedisCache) IncrementWindow(ctx context.Context, k string, window time.Duration) (int64, error) {
	n, err := r.client.Incr(ctx, key(k)).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := r.client.Expire(ctx, key(k), window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (r *RedisCache) TTL(ctx context.Context, k string) (time.Duration, error) {
	return r.client.TTL(ctx, key(k)).Result()
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
