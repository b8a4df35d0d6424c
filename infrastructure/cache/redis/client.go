// ABOUTME: Redis key-value store using go-redis client
// ABOUTME: Used as the synchronized settings backend; keys are namespaced per store

package redis

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	coreerrors "tabscribe-api/core/errors"
	"tabscribe-api/pkg/config"
)

var namespacePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// scanBatch is the COUNT hint passed to SCAN
const scanBatch = 100

// RedisCache implements interfaces.KeyValueStore using Redis
type RedisCache struct {
	client    redis.UniversalClient
	namespace string
}

// NewRedisCache connects to Redis and scopes every key under namespace
func NewRedisCache(cfg config.RedisConfig, namespace string) (*RedisCache, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return NewWithClient(client, namespace)
}

// NewWithClient wraps an existing client
func NewWithClient(client redis.UniversalClient, namespace string) (*RedisCache, error) {
	if !namespacePattern.MatchString(namespace) {
		return nil, fmt.Errorf("invalid namespace: %q", namespace)
	}
	return &RedisCache{client: client, namespace: namespace}, nil
}

func (c *RedisCache) key(key string) string {
	return c.namespace + ":" + key
}

// Get retrieves a value from Redis
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", coreerrors.ErrKeyNotFound, key)
		}
		return nil, err
	}

	return val, nil
}

// Set stores a value in Redis; ttl <= 0 means no expiration
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, c.key(key), value, ttl).Err()
}

// Delete removes a key; deleting a missing key is not an error
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}

// Keys lists keys in the namespace that start with prefix, sorted
func (c *RedisCache) Keys(ctx context.Context, prefix string) ([]string, error) {
	full, err := c.scan(ctx)
	if err != nil {
		return nil, err
	}

	nsPrefix := c.namespace + ":"
	keys := make([]string, 0, len(full))
	for _, k := range full {
		k = strings.TrimPrefix(k, nsPrefix)
		// URL keys may contain glob metacharacters, so prefix matching happens here
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}

	sort.Strings(keys)
	return keys, nil
}

// Clear deletes every key in the namespace
func (c *RedisCache) Clear(ctx context.Context) error {
	full, err := c.scan(ctx)
	if err != nil {
		return err
	}

	for start := 0; start < len(full); start += scanBatch {
		end := start + scanBatch
		if end > len(full) {
			end = len(full)
		}
		if err := c.client.Del(ctx, full[start:end]...).Err(); err != nil {
			return err
		}
	}
	return nil
}

// scan returns the raw (namespaced) keys
func (c *RedisCache) scan(ctx context.Context) ([]string, error) {
	var keys []string
	iter := c.client.Scan(ctx, 0, c.namespace+":*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
