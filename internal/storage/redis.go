package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"paymediator/pkg/platform/sentinel"
)

const (
	redisKeyPrefix = "paymediator:kv:"
	redisScanBatch = 100
)

// RedisBackend stores each namespace as one Redis hash, so a namespace can be
// dropped with a single DEL and enumerated with HSCAN.
type RedisBackend struct {
	client redis.Cmdable
	prefix string
}

// RedisOption configures a RedisBackend.
type RedisOption func(*RedisBackend)

// WithRedisKeyPrefix overrides the hash key prefix, mainly for test isolation.
func WithRedisKeyPrefix(prefix string) RedisOption {
	return func(b *RedisBackend) {
		if prefix != "" {
			b.prefix = prefix
		}
	}
}

// NewRedisBackend constructs a Redis-backed storage backend. The client's
// lifecycle is managed by the caller.
func NewRedisBackend(client redis.Cmdable, opts ...RedisOption) *RedisBackend {
	b := &RedisBackend{client: client, prefix: redisKeyPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func (b *RedisBackend) Namespace(name string) Namespace {
	return &redisNamespace{client: b.client, key: b.prefix + name}
}

type redisNamespace struct {
	client redis.Cmdable
	key    string
}

func (n *redisNamespace) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := n.client.HGet(ctx, n.key, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis hget %s: %w", n.key, err)
	}
	return v, nil
}

func (n *redisNamespace) Set(ctx context.Context, key string, value []byte) error {
	if err := n.client.HSet(ctx, n.key, key, value).Err(); err != nil {
		return fmt.Errorf("redis hset %s: %w", n.key, err)
	}
	return nil
}

func (n *redisNamespace) Remove(ctx context.Context, key string) error {
	if err := n.client.HDel(ctx, n.key, key).Err(); err != nil {
		return fmt.Errorf("redis hdel %s: %w", n.key, err)
	}
	return nil
}

func (n *redisNamespace) Keys(ctx context.Context) ([]string, error) {
	keys, err := n.client.HKeys(ctx, n.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hkeys %s: %w", n.key, err)
	}
	return keys, nil
}

func (n *redisNamespace) Clear(ctx context.Context) error {
	if err := n.client.Del(ctx, n.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", n.key, err)
	}
	return nil
}

// Iterate walks the hash with HSCAN. Entries written during iteration may or
// may not be observed. HSCAN can repeat a field across pages while the hash
// is rehashed, so each key is visited at most once.
func (n *redisNamespace) Iterate(ctx context.Context, fn func(key string, value []byte) error) error {
	var cursor uint64
	seen := make(map[string]struct{})
	for {
		pairs, next, err := n.client.HScan(ctx, n.key, cursor, "", redisScanBatch).Result()
		if err != nil {
			return fmt.Errorf("redis hscan %s: %w", n.key, err)
		}
		if err := visitScanPage(pairs, seen, fn); err != nil {
			return err
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// visitScanPage calls fn for each field/value pair of an HSCAN page whose
// field is not already in seen.
func visitScanPage(pairs []string, seen map[string]struct{}, fn func(key string, value []byte) error) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if _, dup := seen[pairs[i]]; dup {
			continue
		}
		seen[pairs[i]] = struct{}{}
		if err := fn(pairs[i], []byte(pairs[i+1])); err != nil {
			return err
		}
	}
	return nil
}
