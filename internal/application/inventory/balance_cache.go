package inventory

import (
	"context"

	"github.com/google/uuid"
)

// BalanceCache caches derived SKU balances.
//
// Writers invalidate after commit, which bumps each SKU's generation. Readers
// capture generations before scanning the ledger and only store the result if
// no generation moved in between, so a scan that raced a commit can never
// repopulate a stale balance.
type BalanceCache interface {
	// GetMany returns the cached balances among skuIDs. Misses are absent.
	GetMany(ctx context.Context, skuIDs []uuid.UUID) (map[uuid.UUID]int, error)
	// Generations returns the current generation of each SKU
	Generations(ctx context.Context, skuIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	// SetIfUnchanged stores each balance whose generation still matches
	SetIfUnchanged(ctx context.Context, balances map[uuid.UUID]int, generations map[uuid.UUID]int64) error
	// Invalidate drops cached balances and bumps their generations
	Invalidate(ctx context.Context, skuIDs ...uuid.UUID) error
}
