package qc

import (
	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
)

// AggregateTypeQueueItem is the aggregate type for QC queue items
const AggregateTypeQueueItem = "QCQueueItem"

const (
	EventTypeQCItemQueued       = "QCItemQueued"
	EventTypeQCDecided          = "QCDecided"
	EventTypeQCDecisionReversed = "QCDecisionReversed"
)

// QCItemQueuedEvent is raised when a received unit enters the QC queue
type QCItemQueuedEvent struct {
	shared.BaseDomainEvent
	ItemID       uuid.UUID  `json:"item_id"`
	SKUID        uuid.UUID  `json:"sku_id"`
	Quantity     int        `json:"quantity"`
	ReturnLineID *uuid.UUID `json:"return_line_id,omitempty"`
	Condition    string     `json:"condition"`
}

// NewQCItemQueuedEvent creates a new QCItemQueuedEvent
func NewQCItemQueuedEvent(item *QueueItem, actor string) *QCItemQueuedEvent {
	return &QCItemQueuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQCItemQueued, AggregateTypeQueueItem, item.ID, actor),
		ItemID:          item.ID,
		SKUID:           item.SKUID,
		Quantity:        item.Quantity,
		ReturnLineID:    item.ReturnLineID,
		Condition:       item.Condition,
	}
}

// EventType returns the event type name
func (e *QCItemQueuedEvent) EventType() string {
	return EventTypeQCItemQueued
}

// QCDecidedEvent is raised when an item is approved or written off
type QCDecidedEvent struct {
	shared.BaseDomainEvent
	ItemID         uuid.UUID      `json:"item_id"`
	SKUID          uuid.UUID      `json:"sku_id"`
	Quantity       int            `json:"quantity"`
	Action         Action         `json:"action"`
	WriteOffReason WriteOffReason `json:"write_off_reason,omitempty"`
	ReturnLineID   *uuid.UUID     `json:"return_line_id,omitempty"`
}

// NewQCDecidedEvent creates a new QCDecidedEvent
func NewQCDecidedEvent(item *QueueItem, action Action) *QCDecidedEvent {
	return &QCDecidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQCDecided, AggregateTypeQueueItem, item.ID, item.ProcessedBy),
		ItemID:          item.ID,
		SKUID:           item.SKUID,
		Quantity:        item.Quantity,
		Action:          action,
		WriteOffReason:  item.WriteOffReason,
		ReturnLineID:    item.ReturnLineID,
	}
}

// EventType returns the event type name
func (e *QCDecidedEvent) EventType() string {
	return EventTypeQCDecided
}

// QCDecisionReversedEvent is raised when a decision is undone
type QCDecisionReversedEvent struct {
	shared.BaseDomainEvent
	ItemID         uuid.UUID  `json:"item_id"`
	SKUID          uuid.UUID  `json:"sku_id"`
	Quantity       int        `json:"quantity"`
	ReversedStatus ItemStatus `json:"reversed_status"`
}

// NewQCDecisionReversedEvent creates a new QCDecisionReversedEvent
func NewQCDecisionReversedEvent(item *QueueItem, reversed ItemStatus, actor string) *QCDecisionReversedEvent {
	return &QCDecisionReversedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQCDecisionReversed, AggregateTypeQueueItem, item.ID, actor),
		ItemID:          item.ID,
		SKUID:           item.SKUID,
		Quantity:        item.Quantity,
		ReversedStatus:  reversed,
	}
}

// EventType returns the event type name
func (e *QCDecisionReversedEvent) EventType() string {
	return EventTypeQCDecisionReversed
}
