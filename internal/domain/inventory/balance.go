package inventory

import "github.com/google/uuid"

// Balance is the derived quantity on hand for a SKU
type Balance struct {
	SKUID    uuid.UUID
	Quantity int
}

// FoldBalances computes balances from ledger entries. SKUs in skuIDs with no
// entries get a zero balance.
func FoldBalances(skuIDs []uuid.UUID, entries []InventoryTransaction) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(skuIDs))
	for _, id := range skuIDs {
		out[id] = 0
	}
	for i := range entries {
		out[entries[i].SKUID] += entries[i].SignedQuantity()
	}
	return out
}
