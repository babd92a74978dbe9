package cache

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// setupTestRedis connects to a local Redis for unit tests.
// Container-backed tests live behind the integration build tag.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use a separate DB for tests
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestNewManager(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	manager := NewManager(client, "test-v1")
	if manager == nil {
		t.Fatal("NewManager returned nil")
	}
	if manager.redis != client {
		t.Error("Manager redis client not set correctly")
	}
	if manager.Name() != "test-v1" {
		t.Errorf("Name() = %q, want test-v1", manager.Name())
	}
	if got := manager.redisKey(CacheKey{Path: "/static/style.css"}); got != "offline:test-v1:/static/style.css" {
		t.Errorf("redisKey() = %q", got)
	}
}

func TestNewManager_Panic(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	tests := []struct {
		name  string
		redis *redis.Client
		cache string
	}{
		{"nil redis", nil, "test-v1"},
		{"empty name", client, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("NewManager should panic")
				}
			}()
			NewManager(tt.redis, tt.cache)
		})
	}
}

func TestManager_PutAndMatch(t *testing.T) {
	client := setupTestRedis(t)
	manager := NewManager(client, "test-v1")
	ctx := context.Background()

	key := CacheKey{Path: "/static/style.css"}
	entry := &CacheEntry{
		URL:        "/static/style.css",
		Data:       []byte("body{}"),
		StatusCode: 200,
		Headers:    http.Header{"Content-Type": []string{"text/css"}},
		CachedAt:   time.Now(),
	}

	if err := manager.Put(ctx, key, entry); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	retrieved, err := manager.Match(ctx, key)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if string(retrieved.Data) != string(entry.Data) {
		t.Errorf("Data mismatch: got %s, want %s", retrieved.Data, entry.Data)
	}
	if retrieved.StatusCode != entry.StatusCode {
		t.Errorf("StatusCode mismatch: got %d, want %d", retrieved.StatusCode, entry.StatusCode)
	}

	// Entries are stored without expiry
	ttl, err := client.TTL(ctx, manager.redisKey(key)).Result()
	if err != nil {
		t.Fatalf("TTL failed: %v", err)
	}
	if ttl != -1 {
		t.Errorf("TTL = %v, want no expiry", ttl)
	}
}

func TestManager_Match_CacheMiss(t *testing.T) {
	client := setupTestRedis(t)
	manager := NewManager(client, "test-v1")

	_, err := manager.Match(context.Background(), CacheKey{Path: "/missing.js"})
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestManager_Match_InvalidEntry(t *testing.T) {
	client := setupTestRedis(t)
	manager := NewManager(client, "test-v1")
	ctx := context.Background()

	key := CacheKey{Path: "/broken"}
	if err := client.Set(ctx, manager.redisKey(key), "not json", 0).Err(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	_, err := manager.Match(ctx, key)
	if !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("Expected ErrInvalidEntry, got %v", err)
	}
}

func TestManager_NamesAreIsolated(t *testing.T) {
	client := setupTestRedis(t)
	v1 := NewManager(client, "test-v1")
	v2 := NewManager(client, "test-v2")
	ctx := context.Background()

	key := CacheKey{Path: "/a.css"}
	if err := v1.Put(ctx, key, &CacheEntry{Data: []byte("old")}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if _, err := v2.Match(ctx, key); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("v2 Match = %v, want ErrCacheMiss", err)
	}

	keys, err := v1.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != "/a.css" {
		t.Errorf("Keys() = %v, want [/a.css]", keys)
	}
}

func TestManager_Put_NilEntry(t *testing.T) {
	client := setupTestRedis(t)
	manager := NewManager(client, "test-v1")

	if err := manager.Put(context.Background(), CacheKey{Path: "/"}, nil); err == nil {
		t.Error("Put with nil entry should return error")
	}
}
