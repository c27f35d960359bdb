// Copyright (c) 2026 MangroveNet. All rights reserved.

package content

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mangrovenet/mangrovenet/internal/platform/constants"
)

// publishedListTTL bounds staleness for the public listing. Every content
// mutation also invalidates eagerly, so the TTL is only a safety net.
const publishedListTTL = 5 * time.Minute

// allCountriesKey is the cache slot for the unfiltered listing.
const allCountriesKey = "all"

// # Published Listing Cache

// PublishedCache keeps the public published-content listings in Redis,
// keyed per country. It is strictly best-effort: any cache failure is
// logged and the caller falls through to PostgreSQL.
type PublishedCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewPublishedCache constructs the cache around an existing client.
func NewPublishedCache(client *redis.Client, logger *slog.Logger) *PublishedCache {
	return &PublishedCache{client: client, logger: logger}
}

func cacheKey(countryID string) string {
	if countryID == "" {
		countryID = allCountriesKey
	}
	return constants.RedisPrefixPublishedList + countryID
}

// Get returns the cached listing for a country filter, and whether it was
// present.
func (cache *PublishedCache) Get(context context.Context, countryID string) ([]*Content, bool) {
	raw, err := cache.client.Get(context, cacheKey(countryID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			cache.logger.Warn("published_cache_read_failed", slog.String("err", err.Error()))
		}
		return nil, false
	}

	var items []*Content
	if err := json.Unmarshal(raw, &items); err != nil {
		// A corrupt entry is dropped so the next write repairs it.
		cache.logger.Warn("published_cache_corrupt_entry", slog.String("key", cacheKey(countryID)))
		_ = cache.client.Del(context, cacheKey(countryID)).Err()
		return nil, false
	}

	return items, true
}

// Set stores the listing for a country filter.
func (cache *PublishedCache) Set(context context.Context, countryID string, items []*Content) {
	raw, err := json.Marshal(items)
	if err != nil {
		cache.logger.Warn("published_cache_marshal_failed", slog.String("err", err.Error()))
		return
	}

	if err := cache.client.Set(context, cacheKey(countryID), raw, publishedListTTL).Err(); err != nil {
		cache.logger.Warn("published_cache_write_failed", slog.String("err", err.Error()))
	}
}

// Invalidate drops the listing for the mutated country and the unfiltered
// listing, which always includes it.
func (cache *PublishedCache) Invalidate(context context.Context, countryID string) {
	keys := []string{cacheKey(allCountriesKey)}
	if countryID != "" {
		keys = append(keys, cacheKey(countryID))
	}

	if err := cache.client.Del(context, keys...).Err(); err != nil {
		cache.logger.Warn("published_cache_invalidate_failed", slog.String("err", err.Error()))
	}
}
