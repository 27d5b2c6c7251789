package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSKU(t *testing.T) {
	t.Run("creates active sku with upper-cased code", func(t *testing.T) {
		sku, err := NewSKU("tee-blk-m", "Tee Black M", decimal.NewFromInt(999))
		require.NoError(t, err)
		assert.Equal(t, "TEE-BLK-M", sku.Code)
		assert.True(t, sku.IsActive)
		assert.Zero(t, sku.ReturnCount)
		assert.Zero(t, sku.WriteOffCount)
		assert.Equal(t, 1, sku.GetVersion())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewSKU("", "Tee", decimal.Zero)
		assert.Error(t, err)
		_, err = NewSKU("TEE", " ", decimal.Zero)
		assert.Error(t, err)
		_, err = NewSKU("TEE", "Tee", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestSKU_LineValue(t *testing.T) {
	sku, err := NewSKU("TEE", "Tee", decimal.RequireFromString("1299.50"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("3898.50").Equal(sku.LineValue(3)))
}
