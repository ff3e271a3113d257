package infrastructure

import (
	"context"
	"sync"
	"time"

	"shopcart/internal/service/product/domain"
)

// MemoryProductCache 是未配置 redis 时使用的进程内缓存
type MemoryProductCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	product   domain.Product
	expiresAt time.Time
}

func NewMemoryProductCache(ttl time.Duration) *MemoryProductCache {
	return &MemoryProductCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryProductCache) Get(_ context.Context, id string) (*domain.Product, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expiresAt) {
		return nil, false, nil
	}
	p := e.product
	return &p, true, nil
}

func (c *MemoryProductCache) Set(_ context.Context, p *domain.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[p.ID] = memoryEntry{product: *p, expiresAt: c.now().Add(c.ttl)}
	return nil
}
