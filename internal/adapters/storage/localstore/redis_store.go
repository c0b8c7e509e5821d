package localstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout  = 5 * time.Second
	defaultReadTimeout  = 3 * time.Second
	defaultWriteTimeout = 3 * time.Second
)

// RedisStore keeps each browser's entries in one Redis hash.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisClient returns a go-redis client and validates the connection with PING.
// PRE: addr is host:port
// POST: Returns a connected client or an error
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("redis: addr is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  defaultDialTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, defaultDialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

// NewRedisStore creates a store whose hashes are named "<prefix>:<browser id>".
// A positive ttl expires idle hashes; it is refreshed on every write.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "localstore"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(browserID string) string {
	return s.prefix + ":" + browserID
}

// GetItems implements Store.
func (s *RedisStore) GetItems(ctx context.Context, browserID string, keys ...string) (map[string]string, error) {
	if browserID == "" {
		return nil, ErrEmptyBrowserID
	}
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	vals, err := s.client.HMGet(ctx, s.key(browserID), keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hmget: %w", err)
	}
	for i, v := range vals {
		if str, ok := v.(string); ok {
			out[keys[i]] = str
		}
	}
	return out, nil
}

// SetItems implements Store. HSET and EXPIRE run in one MULTI/EXEC.
func (s *RedisStore) SetItems(ctx context.Context, browserID string, items map[string]string) error {
	if browserID == "" {
		return ErrEmptyBrowserID
	}
	if len(items) == 0 {
		return nil
	}
	key := s.key(browserID)
	pairs := make([]string, 0, len(items)*2)
	for k, v := range items {
		pairs = append(pairs, k, v)
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, pairs)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

// Touch implements Store. It restarts the idle TTL when one is configured.
func (s *RedisStore) Touch(ctx context.Context, browserID string) error {
	if browserID == "" {
		return ErrEmptyBrowserID
	}
	if s.ttl <= 0 {
		return nil
	}
	if err := s.client.Expire(ctx, s.key(browserID), s.ttl).Err(); err != nil {
		return fmt.Errorf("redis expire: %w", err)
	}
	return nil
}

// RemoveItems implements Store.
func (s *RedisStore) RemoveItems(ctx context.Context, browserID string, keys ...string) error {
	if browserID == "" {
		return ErrEmptyBrowserID
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.HDel(ctx, s.key(browserID), keys...).Err(); err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	return nil
}
