// Copyright (c) 2026 Kodingin Dev Studio <hi@kodingin.dev>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed cache for rendered views. When a page
// is rendered, the resulting HTML is stored so subsequent requests skip
// the DB queries and template execution entirely. Entries expire on a TTL
// and are removed eagerly by the invalidation dispatcher when a post changes.
package cache

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// viewKeyPrefix namespaces cached view keys in Valkey.
	viewKeyPrefix = "view:"

	// DefaultViewTTL is how long a rendered view stays cached. Correctness
	// comes from explicit invalidation, the TTL only bounds staleness.
	DefaultViewTTL = 5 * time.Minute
)

// ViewCache manages cached rendered views in Valkey.
type ViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewViewCache creates a view cache backed by the given Valkey client.
func NewViewCache(client *redis.Client, ttl time.Duration) *ViewCache {
	if ttl == 0 {
		ttl = DefaultViewTTL
	}
	return &ViewCache{client: client, ttl: ttl}
}

// Get retrieves a cached view. The second return reports a hit.
func (vc *ViewCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := vc.client.Get(ctx, viewKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("view cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("view cache hit", "key", key)
	return val, true
}

// Set stores a rendered view with the configured TTL.
func (vc *ViewCache) Set(ctx context.Context, key string, html []byte) {
	if err := vc.client.Set(ctx, viewKeyPrefix+key, html, vc.ttl).Err(); err != nil {
		slog.Warn("view cache set error", "key", key, "error", err)
	}
}

// Delete removes a single cached view.
func (vc *ViewCache) Delete(ctx context.Context, key string) {
	if err := vc.client.Del(ctx, viewKeyPrefix+key).Err(); err != nil {
		slog.Warn("view cache delete error", "key", key, "error", err)
	}
	slog.Debug("view cache invalidated", "key", key)
}

// DeletePrefix removes every cached view whose key starts with prefix,
// scanning in batches. Used for the paginated blog index, where any page
// of the listing may contain the changed post.
func (vc *ViewCache) DeletePrefix(ctx context.Context, prefix string) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := vc.client.Scan(ctx, cursor, viewKeyPrefix+prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("view cache scan error", "prefix", prefix, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := vc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("view cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("view cache prefix cleared", "prefix", prefix, "deleted", deleted)
	}
}

// BlogIndexKey returns the cache key for one page of the public blog index.
func BlogIndexKey(page int) string {
	return blogIndexPrefix + strconv.Itoa(page)
}

// PostDetailKey returns the cache key for a public post detail page.
func PostDetailKey(slug string) string {
	return postDetailPrefix + slug
}

// AdminListKey returns the cache key for the admin posts table.
func AdminListKey() string {
	return adminListKey
}

// AdminEditKey returns the cache key for an admin edit view.
func AdminEditKey(id string) string {
	return adminEditPrefix + id
}

// HomeKey returns the cache key for the marketing homepage.
func HomeKey() string {
	return "home"
}

const (
	blogIndexPrefix  = "blog:index:"
	postDetailPrefix = "blog:post:"
	adminListKey     = "admin:posts"
	adminEditPrefix  = "admin:edit:"
)
