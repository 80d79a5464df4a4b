// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// response.go provides a Valkey-backed cache for public JSON responses.
// Listing, featured, and taxonomy payloads change only on writes, so
// serving them from Valkey skips the DB queries entirely. A nil
// *ResponseCache is valid and caches nothing, which keeps call sites
// free of availability checks when Valkey is not configured.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// responseKeyPrefix is the Valkey key prefix for cached responses.
	responseKeyPrefix = "resp:"

	// DefaultResponseTTL is how long a cached response stays fresh.
	DefaultResponseTTL = 5 * time.Minute
)

// ResponseCache manages public JSON response caching in Valkey.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache backed by the given Valkey
// client. Pass a nil client to disable caching.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if client == nil {
		return nil
	}
	if ttl == 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Get retrieves a cached response body. Returns false on miss.
func (rc *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if rc == nil {
		return nil, false
	}
	val, err := rc.client.Get(ctx, responseKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("response cache hit", "key", key)
	return val, true
}

// Set stores a response body with the configured TTL.
func (rc *ResponseCache) Set(ctx context.Context, key string, body []byte) {
	if rc == nil {
		return
	}
	if err := rc.client.Set(ctx, responseKeyPrefix+key, body, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a single cached response.
func (rc *ResponseCache) Invalidate(ctx context.Context, key string) {
	if rc == nil {
		return
	}
	if err := rc.client.Del(ctx, responseKeyPrefix+key).Err(); err != nil {
		slog.Warn("response cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("response cache invalidated", "key", key)
}

// InvalidateAll removes every cached response by scanning for the
// prefix. Called after content writes, since any listing could be
// affected by a status or taxonomy change.
func (rc *ResponseCache) InvalidateAll(ctx context.Context) {
	if rc == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, responseKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("response cache fully cleared", "deleted", deleted)
	}
}
