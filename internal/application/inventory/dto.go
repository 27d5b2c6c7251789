package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/inventory"
)

// BalanceResponse is the on-hand quantity of one SKU
type BalanceResponse struct {
	SKUID   uuid.UUID `json:"sku_id"`
	Balance int       `json:"balance"`
}

// AdjustmentRequest is a manual stock correction
type AdjustmentRequest struct {
	SKUID         uuid.UUID           `json:"sku_id" binding:"required"`
	Direction     inventory.Direction `json:"direction" binding:"required,oneof=inward outward"`
	Quantity      int                 `json:"quantity" binding:"required,min=1"`
	Notes         string              `json:"notes" binding:"max=500"`
	AllowNegative bool                `json:"allow_negative"`
	Actor         string              `json:"-"`
}

// TransactionResponse is one ledger entry
type TransactionResponse struct {
	ID          uuid.UUID  `json:"id"`
	SKUID       uuid.UUID  `json:"sku_id"`
	Direction   string     `json:"direction"`
	Quantity    int        `json:"quantity"`
	Signed      int        `json:"signed_quantity"`
	Reason      string     `json:"reason"`
	ReferenceID *uuid.UUID `json:"reference_id,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Actor       string     `json:"actor,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToTransactionResponse maps a ledger entry
func ToTransactionResponse(t *inventory.InventoryTransaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		SKUID:       t.SKUID,
		Direction:   t.Direction.String(),
		Quantity:    t.Quantity,
		Signed:      t.SignedQuantity(),
		Reason:      t.Reason.String(),
		ReferenceID: t.ReferenceID,
		Notes:       t.Notes,
		Actor:       t.Actor,
		CreatedAt:   t.CreatedAt,
	}
}
