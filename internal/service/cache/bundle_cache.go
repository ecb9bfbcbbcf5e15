package cache

import (
	"sync"
	"time"

	"StockPulse/internal/domain/models"
)

type entry struct {
	bundle *models.MarketBundle
	exp    time.Time
}

// BundleCache holds recently served market bundles keyed by symbol so bursts
// of requests for the same symbol reuse one upstream round trip. A zero TTL
// disables caching.
type BundleCache struct {
	mu  sync.RWMutex
	m   map[string]entry
	ttl time.Duration
}

func NewBundleCache(ttl time.Duration) *BundleCache {
	return &BundleCache{m: make(map[string]entry), ttl: ttl}
}

func (c *BundleCache) Get(symbol string) (*models.MarketBundle, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.m[symbol]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.exp) {
		c.mu.Lock()
		delete(c.m, symbol)
		c.mu.Unlock()
		return nil, false
	}
	return e.bundle, true
}

func (c *BundleCache) Set(symbol string, b *models.MarketBundle) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	c.m[symbol] = entry{bundle: b, exp: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}
