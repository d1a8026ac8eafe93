// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// read.go provides a Valkey-backed cache for public JSON payloads.
// When a public endpoint serializes a post or a listing, the encoded
// bytes are stored in Valkey so subsequent requests skip the DB query
// and re-encoding entirely. Writes through the lifecycle manager
// invalidate the affected keys.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// readKeyPrefix is the Valkey key prefix for cached payloads.
	readKeyPrefix = "read:"

	// listKeyPrefix groups listing keys under the read prefix so they
	// can be invalidated in bulk without touching per-post entries.
	listKeyPrefix = "read:list:"

	// DefaultReadTTL is how long a cached payload stays before expiry.
	DefaultReadTTL = 5 * time.Minute
)

// ReadCache manages public JSON payload caching in Valkey.
type ReadCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReadCache creates a read cache backed by the given Valkey client.
func NewReadCache(client *redis.Client, ttl time.Duration) *ReadCache {
	if ttl == 0 {
		ttl = DefaultReadTTL
	}
	return &ReadCache{client: client, ttl: ttl}
}

// Get retrieves a cached payload. Returns false on miss; cache errors
// degrade to a miss rather than failing the request.
func (rc *ReadCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := rc.client.Get(ctx, readKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("read cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("read cache hit", "key", key)
	return val, true
}

// Set stores an encoded payload under the key with the configured TTL.
func (rc *ReadCache) Set(ctx context.Context, key string, payload []byte) {
	if err := rc.client.Set(ctx, readKeyPrefix+key, payload, rc.ttl).Err(); err != nil {
		slog.Warn("read cache set error", "key", key, "error", err)
	}
}

// InvalidatePost removes the cached payload for a single post slug.
func (rc *ReadCache) InvalidatePost(ctx context.Context, slug string) {
	if err := rc.client.Del(ctx, readKeyPrefix+PostKey(slug)).Err(); err != nil {
		slog.Warn("read cache invalidate error", "slug", slug, "error", err)
	}
	slog.Debug("read cache invalidated", "slug", slug)
}

// InvalidateLists removes every cached listing (home, search, category
// and tag pages). Any publish, update or delete can change any listing,
// so they are cleared together.
func (rc *ReadCache) InvalidateLists(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, listKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("read cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("read cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("read cache listings cleared", "deleted", deleted)
	}
}

// PostKey returns the cache key for a single post payload.
func PostKey(slug string) string {
	return "post:" + slug
}

// ListKey returns the cache key for a listing. Kind names the listing
// family (home, category, tag) and ident distinguishes entries within
// it, such as the category slug or the search term.
func ListKey(kind, ident string) string {
	return "list:" + kind + ":" + ident
}
