package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/application/inventory"
)

type balanceEntry struct {
	balance   int
	expiresAt time.Time
}

// MemoryBalanceCache implements BalanceCache in process memory.
// This is suitable for single-instance deployments and testing.
type MemoryBalanceCache struct {
	mu          sync.Mutex
	ttl         time.Duration
	balances    map[uuid.UUID]balanceEntry
	generations map[uuid.UUID]int64
	now         func() time.Time
}

// NewMemoryBalanceCache creates an in-memory balance cache
func NewMemoryBalanceCache(ttl time.Duration) *MemoryBalanceCache {
	if ttl <= 0 {
		ttl = DefaultBalanceTTL
	}
	return &MemoryBalanceCache{
		ttl:         ttl,
		balances:    make(map[uuid.UUID]balanceEntry),
		generations: make(map[uuid.UUID]int64),
		now:         time.Now,
	}
}

// GetMany returns unexpired balances; expired entries are evicted on read
func (c *MemoryBalanceCache) GetMany(_ context.Context, skuIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	out := make(map[uuid.UUID]int, len(skuIDs))
	for _, id := range skuIDs {
		e, ok := c.balances[id]
		if !ok {
			continue
		}
		if now.After(e.expiresAt) {
			delete(c.balances, id)
			continue
		}
		out[id] = e.balance
	}
	return out, nil
}

// Generations returns the current generation of each SKU, zero if never invalidated
func (c *MemoryBalanceCache) Generations(_ context.Context, skuIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[uuid.UUID]int64, len(skuIDs))
	for _, id := range skuIDs {
		out[id] = c.generations[id]
	}
	return out, nil
}

// SetIfUnchanged stores balances whose generation has not moved
func (c *MemoryBalanceCache) SetIfUnchanged(_ context.Context, balances map[uuid.UUID]int, generations map[uuid.UUID]int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	for id, balance := range balances {
		gen, ok := generations[id]
		if !ok || gen != c.generations[id] {
			continue
		}
		c.balances[id] = balanceEntry{balance: balance, expiresAt: expiresAt}
	}
	return nil
}

// Invalidate drops balances and bumps generations
func (c *MemoryBalanceCache) Invalidate(_ context.Context, skuIDs ...uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range skuIDs {
		delete(c.balances, id)
		c.generations[id]++
	}
	return nil
}

var _ inventory.BalanceCache = (*MemoryBalanceCache)(nil)
