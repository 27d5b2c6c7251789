package handler

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appinventory "github.com/shantum/COH-ERP2-sub001/internal/application/inventory"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/inventory"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shantum/COH-ERP2-sub001/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newInventoryFixture() (*gin.Engine, *mockInventory) {
	engine := newTestEngine()
	inv := new(mockInventory)
	NewInventoryHandler(inv).RegisterRoutes(engine.Group("/api/v1"))
	return engine, inv
}

func TestInventoryHandler_GetBalances(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	t.Run("comma separated and repeated ids", func(t *testing.T) {
		engine, inv := newInventoryFixture()
		inv.On("GetBalances", mock.Anything, []uuid.UUID{a, b, c}).Return([]appinventory.BalanceResponse{
			{SKUID: a, Balance: 4}, {SKUID: b, Balance: 0}, {SKUID: c, Balance: -1},
		}, nil)

		w, resp := doJSON(t, engine, http.MethodGet,
			"/api/v1/inventory/balances?sku_ids="+a.String()+","+b.String()+"&sku_ids="+c.String(), nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var data []appinventory.BalanceResponse
		decodeData(t, resp, &data)
		assert.Len(t, data, 3)
	})

	t.Run("missing ids", func(t *testing.T) {
		engine, _ := newInventoryFixture()
		w, _ := doJSON(t, engine, http.MethodGet, "/api/v1/inventory/balances", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		engine, _ := newInventoryFixture()
		w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/inventory/balances?sku_ids="+a.String()+",nope", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidID, resp.Error.Code)
	})

	t.Run("too many ids", func(t *testing.T) {
		engine, _ := newInventoryFixture()
		ids := make([]string, MaxBalanceLookup+1)
		for i := range ids {
			ids[i] = uuid.NewString()
		}
		w, _ := doJSON(t, engine, http.MethodGet, "/api/v1/inventory/balances?sku_ids="+strings.Join(ids, ","), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ledger failure is internal", func(t *testing.T) {
		engine, inv := newInventoryFixture()
		inv.On("GetBalances", mock.Anything, []uuid.UUID{a}).Return(nil, errors.New("query balances: connection reset"))

		w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/inventory/balances?sku_ids="+a.String(), nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
	})
}

func TestInventoryHandler_GetBalance(t *testing.T) {
	engine, inv := newInventoryFixture()
	skuID := uuid.New()
	inv.On("GetBalance", mock.Anything, skuID).Return(&appinventory.BalanceResponse{SKUID: skuID, Balance: 7}, nil)

	w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/inventory/skus/"+skuID.String()+"/balance", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var data appinventory.BalanceResponse
	decodeData(t, resp, &data)
	assert.Equal(t, 7, data.Balance)
}

func TestInventoryHandler_ListTransactions(t *testing.T) {
	engine, inv := newInventoryFixture()
	skuID := uuid.New()
	inv.On("ListTransactions", mock.Anything, skuID, shared.Page{Limit: shared.DefaultPageLimit}).
		Return([]appinventory.TransactionResponse{{ID: uuid.New(), SKUID: skuID, Direction: "inward", Quantity: 1, Signed: 1}}, int64(1), nil)

	w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/inventory/skus/"+skuID.String()+"/transactions", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestInventoryHandler_RecordAdjustment(t *testing.T) {
	skuID := uuid.New()

	t.Run("created", func(t *testing.T) {
		engine, inv := newInventoryFixture()
		inv.On("RecordAdjustment", mock.Anything, appinventory.AdjustmentRequest{
			SKUID: skuID, Direction: inventory.DirectionOutward, Quantity: 2, Notes: "cycle count", Actor: "system",
		}).Return(&appinventory.TransactionResponse{ID: uuid.New(), SKUID: skuID, Direction: "outward", Quantity: 2, Signed: -2}, nil)

		w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/inventory/adjustments", map[string]any{
			"sku_id": skuID, "direction": "outward", "quantity": 2, "notes": "cycle count",
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "Adjustment recorded", resp.Message)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		engine, inv := newInventoryFixture()
		inv.On("RecordAdjustment", mock.Anything, mock.Anything).Return(nil, inventory.ErrInsufficientStock)

		w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/inventory/adjustments", map[string]any{
			"sku_id": skuID, "direction": "outward", "quantity": 50,
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)
	})

	t.Run("bad direction", func(t *testing.T) {
		engine, _ := newInventoryFixture()
		w, _ := doJSON(t, engine, http.MethodPost, "/api/v1/inventory/adjustments", map[string]any{
			"sku_id": skuID, "direction": "sideways", "quantity": 1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
