package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every store in Redis.
const KeyPrefix = "offline"

const storeLabelRedis = "redis"

// Manager is a Store backed by Redis. Entries are kept without TTL; the store
// exists as soon as its first entry is written.
type Manager struct {
	redis *redis.Client
	name  string
}

// NewManager creates a cache manager for the store called name.
func NewManager(redisClient *redis.Client, name string) *Manager {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	if name == "" {
		panic("cache name cannot be empty")
	}
	return &Manager{
		redis: redisClient,
		name:  name,
	}
}

// Name returns the store identifier.
func (m *Manager) Name() string {
	return m.name
}

// redisKey returns the Redis key for a cache key.
// Format: offline:<name>:<url>
func (m *Manager) redisKey(key CacheKey) string {
	return m.prefix() + key.String()
}

func (m *Manager) prefix() string {
	return KeyPrefix + ":" + m.name + ":"
}

// Match retrieves a cache entry by key.
// Returns ErrCacheMiss if the key doesn't exist.
func (m *Manager) Match(ctx context.Context, key CacheKey) (*CacheEntry, error) {
	data, err := m.redis.Get(ctx, m.redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			CacheMisses.WithLabelValues(storeLabelRedis).Inc()
			return nil, ErrCacheMiss
		}
		CacheErrors.WithLabelValues("match").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		CacheErrors.WithLabelValues("match").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	CacheHits.WithLabelValues(storeLabelRedis).Inc()
	return &entry, nil
}

// Put stores a cache entry under key without expiry.
func (m *Manager) Put(ctx context.Context, key CacheKey, entry *CacheEntry) error {
	if entry == nil {
		return fmt.Errorf("cache entry cannot be nil")
	}

	data, err := json.Marshal(entry)
	if err != nil {
		CacheErrors.WithLabelValues("put").Inc()
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := m.redis.Set(ctx, m.redisKey(key), data, 0).Err(); err != nil {
		CacheErrors.WithLabelValues("put").Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	StoredBytes.WithLabelValues(storeLabelRedis).Add(float64(entry.Size()))
	return nil
}

// Keys lists the URLs stored under this cache name.
func (m *Manager) Keys(ctx context.Context) ([]string, error) {
	prefix := m.prefix()

	var keys []string
	iter := m.redis.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), prefix))
	}
	if err := iter.Err(); err != nil {
		CacheErrors.WithLabelValues("keys").Inc()
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return keys, nil
}

// Ping checks the Redis connection.
func (m *Manager) Ping(ctx context.Context) error {
	if err := m.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
