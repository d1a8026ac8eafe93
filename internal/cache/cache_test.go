// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, readKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, "")
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestReadCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewReadCache(client, 1*time.Minute)

	ctx := context.Background()

	// Miss.
	data, ok := rc.Get(ctx, PostKey("test-post"))
	if ok {
		t.Error("expected cache miss")
	}
	if data != nil {
		t.Error("expected nil data on miss")
	}

	// Set.
	payload := []byte(`{"title":"Test Post"}`)
	rc.Set(ctx, PostKey("test-post"), payload)

	// Hit.
	data, ok = rc.Get(ctx, PostKey("test-post"))
	if !ok {
		t.Error("expected cache hit")
	}
	if string(data) != string(payload) {
		t.Errorf("data mismatch: got %q, want %q", data, payload)
	}
}

func TestReadCacheInvalidatePost(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewReadCache(client, 1*time.Minute)

	ctx := context.Background()

	rc.Set(ctx, PostKey("invalidate-me"), []byte(`{}`))

	if _, ok := rc.Get(ctx, PostKey("invalidate-me")); !ok {
		t.Fatal("expected cache hit before invalidation")
	}

	rc.InvalidatePost(ctx, "invalidate-me")

	if _, ok := rc.Get(ctx, PostKey("invalidate-me")); ok {
		t.Error("expected cache miss after invalidation")
	}
}

func TestReadCacheInvalidateLists(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewReadCache(client, 1*time.Minute)

	ctx := context.Background()

	rc.Set(ctx, ListKey("home", ""), []byte(`[]`))
	rc.Set(ctx, ListKey("category", "gramática"), []byte(`[]`))
	rc.Set(ctx, ListKey("tag", "ser-vs-estar"), []byte(`[]`))
	rc.Set(ctx, PostKey("survivor"), []byte(`{}`))

	rc.InvalidateLists(ctx)

	for _, key := range []string{
		ListKey("home", ""),
		ListKey("category", "gramática"),
		ListKey("tag", "ser-vs-estar"),
	} {
		if _, ok := rc.Get(ctx, key); ok {
			t.Errorf("expected miss for %q after InvalidateLists", key)
		}
	}

	// Per-post entries survive a listing flush.
	if _, ok := rc.Get(ctx, PostKey("survivor")); !ok {
		t.Error("expected post entry to survive InvalidateLists")
	}
}

func TestKeyHelpers(t *testing.T) {
	if PostKey("about-us") != "post:about-us" {
		t.Errorf("PostKey: got %q", PostKey("about-us"))
	}
	if ListKey("category", "verbos") != "list:category:verbos" {
		t.Errorf("ListKey: got %q", ListKey("category", "verbos"))
	}
}

func TestNewReadCacheDefaultTTL(t *testing.T) {
	client := testValkeyClient(t)

	// TTL = 0 should use default.
	rc := NewReadCache(client, 0)
	if rc.ttl != DefaultReadTTL {
		t.Errorf("expected DefaultReadTTL (%v), got %v", DefaultReadTTL, rc.ttl)
	}
}
