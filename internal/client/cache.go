package client

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/adam4056/QuickWiki/internal/domain/entity"
)

const cacheStoreKey = "cache-store"

// Cache defaults, matching the retention a user would expect from a
// personal lookup tool.
const (
	DefaultCacheMaxItems = 50
	DefaultCacheMaxAge   = 24 * time.Hour
)

// Cache memoizes summaries keyed by normalized topic and sentence count.
// Entries expire after maxAge and the oldest entries are evicted once the
// collection exceeds maxItems. Safe for concurrent use.
type Cache struct {
	store    Store
	maxItems int
	maxAge   time.Duration

	// now is swappable so expiry is testable.
	now func() time.Time

	mu sync.Mutex
}

// NewCache creates a Cache with default limits on top of store.
func NewCache(store Store) *Cache {
	return &Cache{
		store:    store,
		maxItems: DefaultCacheMaxItems,
		maxAge:   DefaultCacheMaxAge,
		now:      time.Now,
	}
}

// cacheKey normalizes the lookup key: topics differing only in case or
// surrounding whitespace share an entry, different lengths do not.
func cacheKey(topic string, length int) string {
	return strings.ToLower(strings.TrimSpace(topic)) + "_" + strconv.Itoa(length)
}

// Get returns the cached entry for topic and length if present and fresh.
// Expired entries are removed on the way out.
func (c *Cache) Get(topic string, length int) (entity.CacheEntry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.load()
	if err != nil {
		return entity.CacheEntry{}, false, err
	}

	key := cacheKey(topic, length)
	entry, ok := entries[key]
	if !ok {
		return entity.CacheEntry{}, false, nil
	}
	if c.now().Sub(entry.Timestamp) > c.maxAge {
		delete(entries, key)
		if err := c.save(entries); err != nil {
			return entity.CacheEntry{}, false, err
		}
		return entity.CacheEntry{}, false, nil
	}
	return entry, true, nil
}

// Set stores a summary under topic and length, evicting the oldest entries
// when the collection would exceed its size limit.
func (c *Cache) Set(topic string, length int, summary, originalURL string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.load()
	if err != nil {
		return err
	}

	entries[cacheKey(topic, length)] = entity.CacheEntry{
		Summary:     summary,
		OriginalURL: originalURL,
		Timestamp:   c.now(),
	}

	for len(entries) > c.maxItems {
		oldestKey := ""
		var oldest time.Time
		for k, e := range entries {
			if oldestKey == "" || e.Timestamp.Before(oldest) {
				oldestKey = k
				oldest = e.Timestamp
			}
		}
		delete(entries, oldestKey)
	}

	return c.save(entries)
}

// Clear drops every cached entry.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Delete(cacheStoreKey)
}

func (c *Cache) load() (map[string]entity.CacheEntry, error) {
	raw, ok, err := c.store.Get(cacheStoreKey)
	if err != nil {
		return nil, fmt.Errorf("load cache: %w", err)
	}
	if !ok {
		return make(map[string]entity.CacheEntry), nil
	}
	entries := make(map[string]entity.CacheEntry)
	if err := json.Unmarshal(raw, &entries); err != nil {
		// A corrupt collection is dropped rather than wedging every lookup.
		return make(map[string]entity.CacheEntry), nil
	}
	return entries, nil
}

func (c *Cache) save(entries map[string]entity.CacheEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := c.store.Set(cacheStoreKey, raw); err != nil {
		return fmt.Errorf("save cache: %w", err)
	}
	return nil
}
