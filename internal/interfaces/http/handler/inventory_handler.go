package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appinventory "github.com/shantum/COH-ERP2-sub001/internal/application/inventory"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shantum/COH-ERP2-sub001/internal/interfaces/http/dto"
)

// MaxBalanceLookup caps the number of SKUs in one balance request
const MaxBalanceLookup = 200

// InventoryUseCases is the stock ledger as seen by the HTTP layer
type InventoryUseCases interface {
	GetBalance(ctx context.Context, skuID uuid.UUID) (*appinventory.BalanceResponse, error)
	GetBalances(ctx context.Context, skuIDs []uuid.UUID) ([]appinventory.BalanceResponse, error)
	RecordAdjustment(ctx context.Context, req appinventory.AdjustmentRequest) (*appinventory.TransactionResponse, error)
	ListTransactions(ctx context.Context, skuID uuid.UUID, page shared.Page) ([]appinventory.TransactionResponse, int64, error)
}

// InventoryHandler serves balance and ledger endpoints
type InventoryHandler struct {
	BaseHandler
	inventory InventoryUseCases
}

var _ InventoryUseCases = (*appinventory.BalanceService)(nil)

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventory InventoryUseCases) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// RegisterRoutes mounts the inventory endpoints under rg
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")
	inv.GET("/balances", h.GetBalances)
	inv.GET("/skus/:id/balance", h.GetBalance)
	inv.GET("/skus/:id/transactions", h.ListTransactions)
	inv.POST("/adjustments", h.RecordAdjustment)
}

// GetBalances handles GET /inventory/balances?sku_ids=a,b,c. The parameter
// may also be repeated.
func (h *InventoryHandler) GetBalances(c *gin.Context) {
	var skuIDs []uuid.UUID
	for _, raw := range c.QueryArray("sku_ids") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidID, "Invalid SKU id "+part)
				return
			}
			skuIDs = append(skuIDs, id)
		}
	}
	if len(skuIDs) == 0 {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "sku_ids is required")
		return
	}
	if len(skuIDs) > MaxBalanceLookup {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Too many SKUs in one request")
		return
	}

	balances, err := h.inventory.GetBalances(c.Request.Context(), skuIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balances)
}

// GetBalance handles GET /inventory/skus/:id/balance
func (h *InventoryHandler) GetBalance(c *gin.Context) {
	skuID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	balance, err := h.inventory.GetBalance(c.Request.Context(), skuID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balance)
}

// ListTransactions handles GET /inventory/skus/:id/transactions
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	skuID, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.bindFailed(c, err)
		return
	}
	page := req.Page()

	entries, total, err := h.inventory.ListTransactions(c.Request.Context(), skuID, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, page)
}

// RecordAdjustment handles POST /inventory/adjustments
func (h *InventoryHandler) RecordAdjustment(c *gin.Context) {
	var req appinventory.AdjustmentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Actor = h.actor(c)

	entry, err := h.inventory.RecordAdjustment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry, "Adjustment recorded")
}
