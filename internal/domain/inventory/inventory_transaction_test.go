package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInventoryTransaction(t *testing.T) {
	skuID := uuid.New()

	t.Run("creates entry", func(t *testing.T) {
		tx, err := NewInventoryTransaction(skuID, DirectionInward, 4, ReasonReturnRestock)
		require.NoError(t, err)
		assert.Equal(t, skuID, tx.SKUID)
		assert.Equal(t, 4, tx.SignedQuantity())
		assert.NotEqual(t, uuid.Nil, tx.ID)
	})

	t.Run("validates input", func(t *testing.T) {
		tests := []struct {
			name string
			sku  uuid.UUID
			dir  Direction
			qty  int
			rsn  ReasonCode
			code string
		}{
			{"nil sku", uuid.Nil, DirectionInward, 1, ReasonAdjustment, "INVALID_SKU"},
			{"bad direction", skuID, Direction("sideways"), 1, ReasonAdjustment, "INVALID_DIRECTION"},
			{"zero quantity", skuID, DirectionInward, 0, ReasonAdjustment, "INVALID_QUANTITY"},
			{"negative quantity", skuID, DirectionOutward, -2, ReasonAdjustment, "INVALID_QUANTITY"},
			{"bad reason", skuID, DirectionInward, 1, ReasonCode("gift"), "INVALID_REASON"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewInventoryTransaction(tt.sku, tt.dir, tt.qty, tt.rsn)
				require.Error(t, err)
				de, ok := shared.IsDomainError(err)
				require.True(t, ok)
				assert.Equal(t, tt.code, de.Code)
			})
		}
	})
}

func TestInventoryTransaction_Reversal(t *testing.T) {
	ref := uuid.New()
	tx, err := NewInventoryTransaction(uuid.New(), DirectionOutward, 2, ReasonWriteOff)
	require.NoError(t, err)
	tx.WithReference(ref)

	rev, err := tx.Reversal(ReasonQCReversal)
	require.NoError(t, err)
	assert.Equal(t, DirectionInward, rev.Direction)
	assert.Equal(t, 2, rev.Quantity)
	assert.Equal(t, ReasonQCReversal, rev.Reason)
	assert.Equal(t, ref, *rev.ReferenceID)
	assert.Zero(t, tx.SignedQuantity()+rev.SignedQuantity())
}

func TestFoldBalances(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	entries := []InventoryTransaction{
		{SKUID: a, Direction: DirectionInward, Quantity: 5},
		{SKUID: a, Direction: DirectionOutward, Quantity: 2},
		{SKUID: b, Direction: DirectionOutward, Quantity: 1},
	}

	got := FoldBalances([]uuid.UUID{a, b, c}, entries)

	assert.Equal(t, map[uuid.UUID]int{a: 3, b: -1, c: 0}, got)
}
