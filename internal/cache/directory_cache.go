package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"servicehub/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefixProviders = "directory:providers:"
	keyCategories      = "directory:categories"
)

// DirectoryCache holds serialized provider-directory reads. Entries are
// invalidated (deleted), never mutated in place; readers re-fetch on miss.
type DirectoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}

func NewDirectoryCache(client *redis.Client, ttl time.Duration) *DirectoryCache {
	return &DirectoryCache{client: client, ttl: ttl}
}

// GetProviders returns the cached listing for a filter key, or nil on miss.
// A transport error is reported to the caller, who falls through to the DB.
func (c *DirectoryCache) GetProviders(ctx context.Context, filterKey string) ([]domain.Provider, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	val, err := c.client.Get(ctx, keyPrefixProviders+filterKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("directory cache get: %w", err)
	}

	var providers []domain.Provider
	if err := json.Unmarshal([]byte(val), &providers); err != nil {
		return nil, fmt.Errorf("directory cache decode: %w", err)
	}
	return providers, nil
}

func (c *DirectoryCache) SetProviders(ctx context.Context, filterKey string, providers []domain.Provider) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(providers)
	if err != nil {
		return fmt.Errorf("directory cache encode: %w", err)
	}
	return c.client.Set(ctx, keyPrefixProviders+filterKey, data, c.ttl).Err()
}

func (c *DirectoryCache) GetCategories(ctx context.Context) ([]domain.ServiceCategory, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	val, err := c.client.Get(ctx, keyCategories).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("directory cache get: %w", err)
	}

	var categories []domain.ServiceCategory
	if err := json.Unmarshal([]byte(val), &categories); err != nil {
		return nil, fmt.Errorf("directory cache decode: %w", err)
	}
	return categories, nil
}

func (c *DirectoryCache) SetCategories(ctx context.Context, categories []domain.ServiceCategory) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("directory cache encode: %w", err)
	}
	return c.client.Set(ctx, keyCategories, data, c.ttl).Err()
}

// InvalidateProviders drops every cached provider listing. Called after
// any provider or verification write.
func (c *DirectoryCache) InvalidateProviders(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, keyPrefixProviders+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("directory cache scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
