package services

import (
	"sync"
	"time"

	"navsikhyo/internal/models"
)

// ListingCache держит первую страницу публичного списка без фильтров —
// её запрашивает каждый заход на главную. Любая успешная запись в
// Publishing Workflow инвалидирует кэш, чтобы чтения сразу видели изменение.
type ListingCache struct {
	mu      sync.RWMutex
	resp    *models.BlogListResponse
	fetched time.Time
	ttl     time.Duration
}

func NewListingCache(ttl time.Duration) *ListingCache {
	return &ListingCache{ttl: ttl}
}

func (c *ListingCache) Get() *models.BlogListResponse {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.resp == nil || time.Since(c.fetched) >= c.ttl {
		return nil
	}
	return c.resp
}

func (c *ListingCache) Put(resp *models.BlogListResponse) {
	c.mu.Lock()
	c.resp = resp
	c.fetched = time.Now()
	c.mu.Unlock()
}

// Invalidate сбрасывает кэш: следующее чтение пойдёт в хранилище.
func (c *ListingCache) Invalidate() {
	c.mu.Lock()
	c.resp = nil
	c.mu.Unlock()
}
