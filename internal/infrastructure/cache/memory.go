package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rooted/backend/internal/domain"
)

const defaultCleanupInterval = 10 * time.Minute

// cacheItem represents a single item in the cache with expiration
type cacheItem struct {
	Value      interface{}
	Expiration time.Time
}

// MemoryCache is a thread-safe in-memory cache with TTL support.
// Values are stored JSON round-tripped so reads look the same as from Redis.
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
	stop  chan struct{}
	once  sync.Once
}

// NewMemoryCache creates a new in-memory cache that purges expired entries
// every cleanupInterval (10 minutes when zero)
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanupInterval
	}

	cache := &MemoryCache{
		data: make(map[string]cacheItem),
		stop: make(chan struct{}),
	}

	go cache.cleanupExpired(cleanupInterval)

	return cache
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) (interface{}, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists || time.Now().After(item.Expiration) {
		return nil, domain.ErrCacheMiss
	}

	return item.Value, nil
}

// Set stores a value in the cache with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}

	var storedValue interface{}
	if err := json.Unmarshal(jsonData, &storedValue); err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		Value:      storedValue,
		Expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Exists checks if a key exists in the cache and is not expired
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return false, nil
	}

	return !time.Now().After(item.Expiration), nil
}

// Close stops the cleanup goroutine
func (c *MemoryCache) Close() error {
	c.once.Do(func() { close(c.stop) })
	return nil
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.purge()
		}
	}
}

func (c *MemoryCache) purge() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, item := range c.data {
		if now.After(item.Expiration) {
			delete(c.data, key)
		}
	}
}

// Size returns the current number of items in the cache (for debugging/monitoring)
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}
