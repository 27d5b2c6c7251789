package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
)

// InventoryTransactionRepository is the append-only ledger store
type InventoryTransactionRepository interface {
	// Create appends a ledger entry (no update or delete exists)
	Create(ctx context.Context, tx *InventoryTransaction) error

	// FindByReference finds entries written for a referenced document, oldest first
	FindByReference(ctx context.Context, referenceID uuid.UUID) ([]InventoryTransaction, error)

	// FindBySKU lists entries for a SKU, newest first
	FindBySKU(ctx context.Context, skuID uuid.UUID, page shared.Page) ([]InventoryTransaction, int64, error)

	// SumBySKUs computes balances for the given SKUs in a single grouped scan.
	// SKUs without entries are present with a zero balance.
	SumBySKUs(ctx context.Context, skuIDs []uuid.UUID) (map[uuid.UUID]int, error)
}
