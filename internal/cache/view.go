// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	viewKeyPrefix = "view:"

	// DefaultViewTTL is how long an aggregated view stays cached.
	DefaultViewTTL = 2 * time.Minute
)

// ViewCache stores aggregated views in Valkey as JSON. Errors are logged
// and treated as misses so an unreachable Valkey never fails a request.
type ViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewViewCache creates a view cache backed by the given Valkey client.
func NewViewCache(client *redis.Client, ttl time.Duration) *ViewCache {
	if ttl <= 0 {
		ttl = DefaultViewTTL
	}
	return &ViewCache{client: client, ttl: ttl}
}

// Get decodes the view stored under key into dst. It reports false on a
// miss, a Valkey error or a value that no longer decodes.
func (vc *ViewCache) Get(ctx context.Context, key string, dst any) bool {
	val, err := vc.client.Get(ctx, viewKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		slog.Warn("view cache get error", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		slog.Warn("view cache decode error", "key", key, "error", err)
		return false
	}
	slog.Debug("view cache hit", "key", key)
	return true
}

// Set stores v under key with the configured TTL.
func (vc *ViewCache) Set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("view cache encode error", "key", key, "error", err)
		return
	}
	if err := vc.client.Set(ctx, viewKeyPrefix+key, data, vc.ttl).Err(); err != nil {
		slog.Warn("view cache set error", "key", key, "error", err)
	}
}

// Invalidate removes one view.
func (vc *ViewCache) Invalidate(ctx context.Context, key string) {
	if err := vc.client.Del(ctx, viewKeyPrefix+key).Err(); err != nil {
		slog.Warn("view cache invalidate error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached view by scanning for the prefix.
func (vc *ViewCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := vc.client.Scan(ctx, cursor, viewKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("view cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := vc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("view cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("view cache cleared", "deleted", deleted)
	}
}

// CourseKey is the key of a course detail view.
func CourseKey(slug string) string { return "course:" + slug }

// CategoryKey is the key of a category detail view.
func CategoryKey(slug string) string { return "category:" + slug }

// SubcategoryKey is the key of a subcategory detail view.
func SubcategoryKey(categorySlug, subcategorySlug string) string {
	return "subcategory:" + categorySlug + "/" + subcategorySlug
}

// SearchKey is the key of a search result. Queries differing only in case
// or surrounding space share a key.
func SearchKey(query string) string {
	return "search:" + strings.ToLower(strings.TrimSpace(query))
}
