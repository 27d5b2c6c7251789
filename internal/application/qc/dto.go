package qc

import (
	"time"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/qc"
)

// DecideRequest is an inspector's decision on a queue item
type DecideRequest struct {
	Action         string `json:"action" binding:"required,oneof=approve write_off"`
	Comments       string `json:"comments" binding:"max=2000"`
	WriteOffReason string `json:"write_off_reason" binding:"omitempty,oneof=defective damaged stained wrong_product missing_parts other"`
	Actor          string `json:"-"`
}

// DecisionResponse is returned by Decide
type DecisionResponse struct {
	ItemID       uuid.UUID `json:"item_id"`
	SKUCode      string    `json:"sku_code"`
	Qty          int       `json:"qty"`
	Action       string    `json:"action"`
	Status       string    `json:"status"`
	LineCascaded bool      `json:"line_cascaded"`
}

// UndoResponse is returned by Undo
type UndoResponse struct {
	ItemID         uuid.UUID `json:"item_id"`
	ReversedStatus string    `json:"reversed_status"`
	Status         string    `json:"status"`
	LineReverted   bool      `json:"line_reverted"`
}

// ItemResponse is the read model of a queue item
type ItemResponse struct {
	ID             uuid.UUID  `json:"id"`
	SKUID          uuid.UUID  `json:"sku_id"`
	Quantity       int        `json:"quantity"`
	ReturnLineID   *uuid.UUID `json:"return_line_id,omitempty"`
	Condition      string     `json:"condition,omitempty"`
	Status         string     `json:"status"`
	Comments       string     `json:"comments,omitempty"`
	WriteOffReason string     `json:"write_off_reason,omitempty"`
	ProcessedAt    *time.Time `json:"processed_at,omitempty"`
	ProcessedBy    string     `json:"processed_by,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	Version        int        `json:"version"`
}

// ToItemResponse maps a queue item to its read model
func ToItemResponse(item *qc.QueueItem) ItemResponse {
	return ItemResponse{
		ID:             item.ID,
		SKUID:          item.SKUID,
		Quantity:       item.Quantity,
		ReturnLineID:   item.ReturnLineID,
		Condition:      item.Condition,
		Status:         item.Status.String(),
		Comments:       item.Comments,
		WriteOffReason: string(item.WriteOffReason),
		ProcessedAt:    item.ProcessedAt,
		ProcessedBy:    item.ProcessedBy,
		CreatedAt:      item.CreatedAt,
		Version:        item.Version,
	}
}

// ToItemResponses maps a page of queue items
func ToItemResponses(items []qc.QueueItem) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = ToItemResponse(&items[i])
	}
	return out
}
