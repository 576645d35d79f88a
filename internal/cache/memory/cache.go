package memory

import (
	"sync"
	"time"

	"github.com/golang/groupcache/lru"

	"github.com/kitbuilder587/founder-finder/internal/cache"
)

const DefaultMaxEntries = 100

type item struct {
	value    interface{}
	storedAt time.Time
	ttl      time.Duration
}

// Cache - in-memory кеш с TTL и ограничением размера (LRU).
// Просроченные записи удаляются при чтении.
type Cache struct {
	mu    sync.Mutex
	items *lru.Cache
	now   func() time.Time
}

type Option func(*Cache)

// WithMaxEntries ограничивает число записей; 0 - без ограничения
func WithMaxEntries(n int) Option {
	return func(c *Cache) {
		c.items.MaxEntries = n
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

func New(opts ...Option) *Cache {
	c := &Cache{
		items: lru.New(DefaultMaxEntries),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.items.Get(key)
	if !ok {
		return nil, false
	}
	it := v.(item)
	if c.now().Sub(it.storedAt) >= it.ttl {
		c.items.Remove(key)
		return nil, false
	}
	return it.value, true
}

func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	c.items.Add(key, item{value: value, storedAt: c.now(), ttl: ttl})
	c.mu.Unlock()
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	c.items.Remove(key)
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Len()
}

var _ cache.Cache = (*Cache)(nil)
