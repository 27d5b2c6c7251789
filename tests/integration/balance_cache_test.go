package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	appinventory "github.com/shantum/COH-ERP2-sub001/internal/application/inventory"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBalanceCache_Generations(t *testing.T) {
	skipShort(t)

	client := NewTestRedis(t)
	c := cache.NewRedisBalanceCache(client, "it:balance:", time.Minute)
	ctx := context.Background()
	sku := uuid.New()

	gens, err := c.Generations(ctx, []uuid.UUID{sku})
	require.NoError(t, err)

	require.NoError(t, c.SetIfUnchanged(ctx, map[uuid.UUID]int{sku: 7}, gens))
	cached, err := c.GetMany(ctx, []uuid.UUID{sku})
	require.NoError(t, err)
	assert.Equal(t, 7, cached[sku])

	// A write between capture and store must not leave a stale balance behind
	stale, err := c.Generations(ctx, []uuid.UUID{sku})
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, sku))
	require.NoError(t, c.SetIfUnchanged(ctx, map[uuid.UUID]int{sku: 5}, stale))

	cached, err = c.GetMany(ctx, []uuid.UUID{sku})
	require.NoError(t, err)
	assert.NotContains(t, cached, sku)
}

func TestBalanceService_RedisInvalidatedOnCommit(t *testing.T) {
	skipShort(t)

	testDB := NewTestDB(t)
	client := NewTestRedis(t)
	svc := newServices(testDB.DB, cache.NewRedisBalanceCache(client, "", time.Minute))
	f := seed(t, testDB.DB, "ORD-6001")
	ctx := context.Background()

	balance, err := svc.balances.GetBalance(ctx, f.sku.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Balance)

	_, err = svc.balances.RecordAdjustment(ctx, appinventory.AdjustmentRequest{
		SKUID: f.sku.ID, Direction: "inward", Quantity: 4, Actor: "stock",
	})
	require.NoError(t, err)

	balance, err = svc.balances.GetBalance(ctx, f.sku.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, balance.Balance)
}
