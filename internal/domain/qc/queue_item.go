package qc

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
)

// ItemStatus represents the inspection state of a queue item
type ItemStatus string

const (
	ItemStatusPending    ItemStatus = "pending"
	ItemStatusApproved   ItemStatus = "approved"
	ItemStatusWrittenOff ItemStatus = "written_off"
)

// IsValid checks if the status is a valid ItemStatus
func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusPending, ItemStatusApproved, ItemStatusWrittenOff:
		return true
	}
	return false
}

// String returns the string representation of ItemStatus
func (s ItemStatus) String() string {
	return string(s)
}

// IsProcessed reports whether a decision has been recorded
func (s ItemStatus) IsProcessed() bool {
	return s == ItemStatusApproved || s == ItemStatusWrittenOff
}

// Action is the inspector's decision
type Action string

const (
	ActionApprove  Action = "approve"
	ActionWriteOff Action = "write_off"
)

// IsValid checks if the action is valid
func (a Action) IsValid() bool {
	return a == ActionApprove || a == ActionWriteOff
}

// WriteOffReason classifies why a unit was removed from sellable stock
type WriteOffReason string

const (
	WriteOffDefective    WriteOffReason = "defective"
	WriteOffDamaged      WriteOffReason = "damaged"
	WriteOffStained      WriteOffReason = "stained"
	WriteOffWrongProduct WriteOffReason = "wrong_product"
	WriteOffMissingParts WriteOffReason = "missing_parts"
	WriteOffOther        WriteOffReason = "other"
)

// IsValid checks if the write-off reason is valid
func (r WriteOffReason) IsValid() bool {
	switch r {
	case WriteOffDefective, WriteOffDamaged, WriteOffStained,
		WriteOffWrongProduct, WriteOffMissingParts, WriteOffOther:
		return true
	}
	return false
}

// QueueItem is a physically received unit batch waiting for inspection
type QueueItem struct {
	shared.BaseAggregateRoot
	SKUID          uuid.UUID
	Quantity       int
	ReturnLineID   *uuid.UUID
	Condition      string
	Status         ItemStatus
	Comments       string
	WriteOffReason WriteOffReason
	ProcessedAt    *time.Time
	ProcessedBy    string
}

// NewQueueItem creates a pending queue item
func NewQueueItem(skuID uuid.UUID, quantity int, condition string) (*QueueItem, error) {
	if skuID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	return &QueueItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKUID:             skuID,
		Quantity:          quantity,
		Condition:         strings.TrimSpace(condition),
		Status:            ItemStatusPending,
	}, nil
}

// NewQueueItemForReturnLine creates a pending queue item for a received return line
func NewQueueItemForReturnLine(lineID, skuID uuid.UUID, quantity int, condition string) (*QueueItem, error) {
	item, err := NewQueueItem(skuID, quantity, condition)
	if err != nil {
		return nil, err
	}
	item.ReturnLineID = &lineID
	return item, nil
}

// Approve passes inspection; the unit goes back to sellable stock
func (q *QueueItem) Approve(actor, comments string) error {
	if q.Status != ItemStatusPending {
		return ErrItemNotPending
	}

	q.stamp(ItemStatusApproved, actor, comments)
	q.AddDomainEvent(NewQCDecidedEvent(q, ActionApprove))
	return nil
}

// WriteOff fails inspection; the unit is permanently removed from stock
func (q *QueueItem) WriteOff(actor, comments string, reason WriteOffReason) error {
	if q.Status != ItemStatusPending {
		return ErrItemNotPending
	}
	if !reason.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid write-off reason %q", reason))
	}

	q.WriteOffReason = reason
	q.stamp(ItemStatusWrittenOff, actor, comments)
	q.AddDomainEvent(NewQCDecidedEvent(q, ActionWriteOff))
	return nil
}

// Decide dispatches to Approve or WriteOff
func (q *QueueItem) Decide(action Action, actor, comments string, reason WriteOffReason) error {
	switch action {
	case ActionApprove:
		return q.Approve(actor, comments)
	case ActionWriteOff:
		return q.WriteOff(actor, comments, reason)
	}
	return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid QC action %q", action))
}

// Undo returns a processed item to pending. It reports the status that was
// reversed so the caller can undo its side effects.
func (q *QueueItem) Undo(actor string) (ItemStatus, error) {
	if !q.Status.IsProcessed() {
		return "", ErrItemNotProcessed
	}

	previous := q.Status
	q.Status = ItemStatusPending
	q.WriteOffReason = ""
	q.ProcessedAt = nil
	q.ProcessedBy = ""
	q.MarkChanged(time.Now())

	q.AddDomainEvent(NewQCDecisionReversedEvent(q, previous, actor))
	return previous, nil
}

func (q *QueueItem) stamp(status ItemStatus, actor, comments string) {
	now := time.Now()
	q.Status = status
	q.Comments = comments
	q.ProcessedAt = &now
	q.ProcessedBy = actor
	q.MarkChanged(now)
}
