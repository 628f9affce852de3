package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache defines the interface for cache operations
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// DeleteByPattern deletes every key matching a glob where '*' matches any run of characters.
	DeleteByPattern(ctx context.Context, pattern string) error
}

// Key layout:
//
//	product:slug:{slug}            normalized product detail
//	category:slug:{slug}           category record (slug -> id)
//	listing:{category}:{queryKey}  normalized listing page
const (
	productPrefix  = "product:slug:"
	categoryPrefix = "category:slug:"
	listingPrefix  = "listing:"

	AllListingsPattern = listingPrefix + "*"
)

// ProductKey is the key of a product family. Pass the canonical
// "products/..." slug.
func ProductKey(slug string) string {
	return productPrefix + slug
}

// CategoryKey is the key of a category record.
func CategoryKey(slug string) string {
	return categoryPrefix + slug
}

// ListingKey is the key of one listing page.
func ListingKey(category, queryKey string) string {
	return listingPrefix + category + ":" + queryKey
}

// ListingPattern matches every cached page of one category.
func ListingPattern(category string) string {
	return listingPrefix + category + ":*"
}

// GetJSON reads key and decodes it into dest.
func GetJSON(ctx context.Context, cache Cache, key string, dest interface{}) error {
	data, err := cache.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, cache Cache, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return cache.Set(ctx, key, data, ttl)
}

// TTL returns a time.Duration from seconds
func TTL(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// matchPattern implements the subset of Redis MATCH globbing the service
// uses: '*' only.
func matchPattern(pattern, key string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return key == pattern
	}
	if !strings.HasPrefix(key, parts[0]) {
		return false
	}
	key = key[len(parts[0]):]

	last := parts[len(parts)-1]
	for _, part := range parts[1 : len(parts)-1] {
		idx := strings.Index(key, part)
		if idx < 0 {
			return false
		}
		key = key[idx+len(part):]
	}
	return strings.HasSuffix(key, last)
}
