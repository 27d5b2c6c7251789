package catalog

import (
	"context"

	"github.com/google/uuid"
)

// SKURepository defines persistence for SKUs and their denormalized counters
type SKURepository interface {
	// FindByID finds a SKU by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*SKU, error)

	// FindByIDs finds multiple SKUs by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]SKU, error)

	// Save creates or updates a SKU
	Save(ctx context.Context, sku *SKU) error

	// AdjustReturnCount atomically adds delta to the SKU's return count
	AdjustReturnCount(ctx context.Context, id uuid.UUID, delta int) error

	// AdjustWriteOffCount atomically adds delta to the SKU's write-off count
	AdjustWriteOffCount(ctx context.Context, id uuid.UUID, delta int) error
}
