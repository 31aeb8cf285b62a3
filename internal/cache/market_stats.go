// Package cache holds the bounded, session-scoped market data cache.
package cache

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/liamba05/Fynnance/internal/model"
)

// Key identifies one market.
type Key struct {
	ZipCode      string
	PropertyType string
}

func (k Key) String() string {
	return k.ZipCode + "|" + k.PropertyType
}

// Loader fetches market data on a cache miss.
type Loader func(ctx context.Context) (model.MarketData, error)

type entry struct {
	data       model.MarketData
	generation uint64
}

// MarketStatsCache caches market data by (zip code, property type).
//
// Entries are written whole under the lock and are read-only afterwards. Concurrent
// misses on the same key share one load. Failed loads are never cached. Reset starts a
// new generation; loads that began in an older generation do not populate the new one.
type MarketStatsCache struct {
	mu         sync.RWMutex
	entries    map[Key]entry
	order      []Key
	maxEntries int
	generation uint64
	group      singleflight.Group
}

// NewMarketStatsCache creates a cache holding at most maxEntries markets.
// The oldest entry is evicted first. maxEntries < 1 is treated as 1.
func NewMarketStatsCache(maxEntries int) *MarketStatsCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &MarketStatsCache{
		entries:    make(map[Key]entry),
		maxEntries: maxEntries,
	}
}

// Get returns the cached data for key, calling load on a miss.
//
// The shared load runs under ctx without its cancellation, so one caller giving up
// does not fail the others waiting on the same load. A cancelled caller returns
// ctx.Err() immediately.
func (c *MarketStatsCache) Get(ctx context.Context, key Key, load Loader) (model.MarketData, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	gen := c.generation
	c.mu.RUnlock()
	if ok {
		return e.data, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(fmt.Sprintf("%d|%s", gen, key), func() (any, error) {
		if data, ok := c.Peek(key); ok {
			return data, nil
		}
		data, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.store(key, data, gen)
		return data, nil
	})

	select {
	case <-ctx.Done():
		return model.MarketData{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return model.MarketData{}, res.Err
		}
		return res.Val.(model.MarketData), nil
	}
}

// Peek returns the cached data for key without loading.
func (c *MarketStatsCache) Peek(key Key) (model.MarketData, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e.data, ok
}

func (c *MarketStatsCache) store(key Key, data model.MarketData, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return
	}
	if _, exists := c.entries[key]; !exists {
		for len(c.order) >= c.maxEntries {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = entry{data: data, generation: gen}
}

// Reset drops every entry and starts a new generation.
func (c *MarketStatsCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]entry)
	c.order = nil
	c.generation++
}

// Len returns the number of cached markets.
func (c *MarketStatsCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Generation returns the current generation number.
func (c *MarketStatsCache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}
