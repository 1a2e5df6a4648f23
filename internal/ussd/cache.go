package ussd

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cyberguardng/cyberguard/pkg/filestore"
)

// ScoreCache stores verdicts keyed by normalized code
type ScoreCache interface {
	Get(ctx context.Context, code string) (*CacheEntry, bool)
	Set(ctx context.Context, code string, entry *CacheEntry) error
}

// cacheFile is the JSON object holding cached verdicts
const cacheFile = "ussd_cache.json"

// FileCache keeps the cache in a single JSON file, rewritten in full on
// every write
type FileCache struct {
	store *filestore.Store
}

// NewFileCache creates a file-backed score cache
func NewFileCache(store *filestore.Store) *FileCache {
	return &FileCache{store: store}
}

func (c *FileCache) read() map[string]*CacheEntry {
	entries := make(map[string]*CacheEntry)
	c.store.ReadJSON(cacheFile, &entries)
	return entries
}

// Get returns the cached verdict for a code, if any
func (c *FileCache) Get(_ context.Context, code string) (*CacheEntry, bool) {
	entry, ok := c.read()[code]
	return entry, ok
}

// Set records a verdict for a code
func (c *FileCache) Set(_ context.Context, code string, entry *CacheEntry) error {
	entries := c.read()
	entries[code] = entry
	return c.store.WriteJSON(cacheFile, entries)
}

// Size returns the number of cached verdicts
func (c *FileCache) Size() int {
	return len(c.read())
}

const redisKeyPrefix = "ussd:cache:"

// RedisCache keeps verdicts in Redis. Entries never expire; invalidation
// stays manual, matching the file-backed behaviour.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis-backed score cache
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns the cached verdict for a code, if any
func (c *RedisCache) Get(ctx context.Context, code string) (*CacheEntry, bool) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+code).Bytes()
	if err != nil {
		return nil, false
	}
	var entry CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false
	}
	return &entry, true
}

// Set records a verdict for a code
func (c *RedisCache) Set(ctx context.Context, code string, entry *CacheEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redisKeyPrefix+code, raw, time.Duration(0)).Err()
}

// Size counts the cached verdicts under the cache key prefix
func (c *RedisCache) Size(ctx context.Context) int {
	keys, err := c.client.Keys(ctx, redisKeyPrefix+"*").Result()
	if err != nil {
		return 0
	}
	return len(keys)
}
