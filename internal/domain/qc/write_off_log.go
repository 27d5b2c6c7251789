package qc

import (
	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
)

// WriteOffLog is the immutable audit record of units removed from stock
type WriteOffLog struct {
	shared.BaseEntity
	SKUID       uuid.UUID
	Quantity    int
	Reason      WriteOffReason
	QueueItemID *uuid.UUID
	Notes       string
	Actor       string
}

// NewWriteOffLogFromItem records a write-off decided on a queue item
func NewWriteOffLogFromItem(item *QueueItem) *WriteOffLog {
	itemID := item.ID
	return &WriteOffLog{
		BaseEntity:  shared.NewBaseEntity(),
		SKUID:       item.SKUID,
		Quantity:    item.Quantity,
		Reason:      item.WriteOffReason,
		QueueItemID: &itemID,
		Notes:       item.Comments,
		Actor:       item.ProcessedBy,
	}
}
