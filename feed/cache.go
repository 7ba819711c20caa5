package feed

import (
	"context"
	"sync"
	"time"

	"github.com/Luismorlan/postmux/utils"
	Logger "github.com/Luismorlan/postmux/utils/log"
)

const (
	// DefaultCacheTTL bounds how stale the cached global-feed first page can
	// get before a read recomputes it.
	DefaultCacheTTL = 20 * time.Second

	indexPageKey = "pages:index:1"
)

// PageCache is a time-bounded cache of the rendered global-feed first page.
// Reads within the TTL window return the previously rendered content even if
// new posts exist: writes never invalidate implicitly, staleness is bounded by
// the TTL or by an explicit Clear. Callers that need immediate freshness after
// a write must Clear themselves.
type PageCache interface {
	// Get returns the cached content and true on a hit within the window.
	Get(ctx context.Context) ([]byte, bool)
	// Set stores content for the TTL window, overwriting any previous entry.
	Set(ctx context.Context, content []byte)
	// Clear invalidates immediately. The next Get misses and the caller
	// recomputes and re-populates.
	Clear(ctx context.Context)
}

// RedisPageCache backs PageCache with redis, key expiry implements the TTL
// window. Concurrent access safety is delegated to redis.
type RedisPageCache struct {
	client *utils.RedisClient
	ttl    time.Duration
}

func NewRedisPageCache(client *utils.RedisClient, ttl time.Duration) *RedisPageCache {
	return &RedisPageCache{client: client, ttl: ttl}
}

func (c *RedisPageCache) Get(ctx context.Context) ([]byte, bool) {
	val, err := c.client.Get(ctx, indexPageKey)
	if err != nil {
		return nil, false
	}
	return []byte(val), true
}

func (c *RedisPageCache) Set(ctx context.Context, content []byte) {
	if err := c.client.SetEX(ctx, indexPageKey, string(content), c.ttl); err != nil {
		Logger.Log.Warn("fail to populate page cache: ", err)
	}
}

func (c *RedisPageCache) Clear(ctx context.Context) {
	if err := c.client.Del(ctx, indexPageKey); err != nil {
		Logger.Log.Warn("fail to clear page cache: ", err)
	}
}

// MemoryPageCache is the in-process PageCache used in development and tests,
// mirroring RedisPageCache semantics.
type MemoryPageCache struct {
	mu        sync.Mutex
	content   []byte
	expiresAt time.Time
	ttl       time.Duration
}

func NewMemoryPageCache(ttl time.Duration) *MemoryPageCache {
	return &MemoryPageCache{ttl: ttl}
}

func (c *MemoryPageCache) Get(ctx context.Context) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.content == nil || time.Now().After(c.expiresAt) {
		return nil, false
	}
	return c.content, true
}

func (c *MemoryPageCache) Set(ctx context.Context, content []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content = content
	c.expiresAt = time.Now().Add(c.ttl)
}

func (c *MemoryPageCache) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content = nil
	c.expiresAt = time.Time{}
}
