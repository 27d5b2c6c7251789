package trade

import (
	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypeOrderLine = "OrderLine"
	AggregateTypeOrder     = "Order"
)

const (
	EventTypeReturnInitiated       = "ReturnInitiated"
	EventTypeReturnPickupScheduled = "ReturnPickupScheduled"
	EventTypeReturnInTransit       = "ReturnInTransit"
	EventTypeReturnReceived        = "ReturnReceived"
	EventTypeReturnQCInspected     = "ReturnQCInspected"
	EventTypeReturnQCReverted      = "ReturnQCReverted"
	EventTypeReturnCompleted       = "ReturnCompleted"
	EventTypeReturnCancelled       = "ReturnCancelled"
	EventTypeRefundProcessed       = "RefundProcessed"
	EventTypeRefundCompleted       = "RefundCompleted"
	EventTypeExchangeOrderCreated  = "ExchangeOrderCreated"
)

// ReturnStatusEventTypes lists the event types carried by ReturnStatusChangedEvent
func ReturnStatusEventTypes() []string {
	return []string{
		EventTypeReturnInitiated, EventTypeReturnPickupScheduled, EventTypeReturnInTransit,
		EventTypeReturnReceived, EventTypeReturnQCInspected, EventTypeReturnQCReverted, EventTypeReturnCompleted,
		EventTypeReturnCancelled,
	}
}

func statusEventType(to ReturnStatus, from ReturnStatus) string {
	switch to {
	case ReturnStatusRequested:
		return EventTypeReturnInitiated
	case ReturnStatusPickupScheduled:
		return EventTypeReturnPickupScheduled
	case ReturnStatusInTransit:
		return EventTypeReturnInTransit
	case ReturnStatusReceived:
		if from == ReturnStatusQCInspected {
			return EventTypeReturnQCReverted
		}
		return EventTypeReturnReceived
	case ReturnStatusQCInspected:
		return EventTypeReturnQCInspected
	case ReturnStatusComplete:
		return EventTypeReturnCompleted
	}
	return EventTypeReturnCancelled
}

// ReturnStatusChangedEvent is raised on every return-line transition
type ReturnStatusChangedEvent struct {
	shared.BaseDomainEvent
	LineID     uuid.UUID    `json:"line_id"`
	OrderID    uuid.UUID    `json:"order_id"`
	SKUID      uuid.UUID    `json:"sku_id"`
	From       ReturnStatus `json:"from"`
	To         ReturnStatus `json:"to"`
	ReturnQty  int          `json:"return_qty"`
	Resolution string       `json:"resolution"`
	QCResult   QCResult     `json:"qc_result,omitempty"`
}

// NewReturnStatusChangedEvent creates an event for the line's current status
func NewReturnStatusChangedEvent(l *OrderLine, from ReturnStatus, actor string) *ReturnStatusChangedEvent {
	to := l.Return.Status
	return &ReturnStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(statusEventType(to, from), AggregateTypeOrderLine, l.ID, actor),
		LineID:          l.ID,
		OrderID:         l.OrderID,
		SKUID:           l.SKUID,
		From:            from,
		To:              to,
		ReturnQty:       l.Return.Qty,
		Resolution:      l.Return.Resolution.String(),
		QCResult:        l.Return.QCResult,
	}
}

// RefundProcessedEvent is raised when the refund amount is computed
type RefundProcessedEvent struct {
	shared.BaseDomainEvent
	LineID    uuid.UUID       `json:"line_id"`
	OrderID   uuid.UUID       `json:"order_id"`
	Gross     decimal.Decimal `json:"gross"`
	NetAmount decimal.Decimal `json:"net_amount"`
	Method    RefundMethod    `json:"method,omitempty"`
}

// NewRefundProcessedEvent creates a new RefundProcessedEvent
func NewRefundProcessedEvent(l *OrderLine, actor string) *RefundProcessedEvent {
	return &RefundProcessedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRefundProcessed, AggregateTypeOrderLine, l.ID, actor),
		LineID:          l.ID,
		OrderID:         l.OrderID,
		Gross:           l.Return.Refund.Gross,
		NetAmount:       l.Return.Refund.Net,
		Method:          l.Return.Refund.Method,
	}
}

// EventType returns the event type name
func (e *RefundProcessedEvent) EventType() string {
	return EventTypeRefundProcessed
}

// RefundCompletedEvent is raised when the refund has been paid out
type RefundCompletedEvent struct {
	shared.BaseDomainEvent
	LineID    uuid.UUID       `json:"line_id"`
	NetAmount decimal.Decimal `json:"net_amount"`
	Reference string          `json:"reference,omitempty"`
}

// NewRefundCompletedEvent creates a new RefundCompletedEvent
func NewRefundCompletedEvent(l *OrderLine, actor string) *RefundCompletedEvent {
	return &RefundCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRefundCompleted, AggregateTypeOrderLine, l.ID, actor),
		LineID:          l.ID,
		NetAmount:       l.Return.Refund.Net,
		Reference:       l.Return.Refund.Reference,
	}
}

// EventType returns the event type name
func (e *RefundCompletedEvent) EventType() string {
	return EventTypeRefundCompleted
}

// ExchangeOrderCreatedEvent is raised when a replacement order is generated
type ExchangeOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID         uuid.UUID       `json:"order_id"`
	OrderNumber     string          `json:"order_number"`
	OriginalOrderID uuid.UUID       `json:"original_order_id"`
	ReturnLineID    uuid.UUID       `json:"return_line_id"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	PriceDiff       decimal.Decimal `json:"price_diff"`
}

// NewExchangeOrderCreatedEvent creates a new ExchangeOrderCreatedEvent
func NewExchangeOrderCreatedEvent(o *Order, line *OrderLine, diff decimal.Decimal, actor string) *ExchangeOrderCreatedEvent {
	return &ExchangeOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExchangeOrderCreated, AggregateTypeOrder, o.ID, actor),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		OriginalOrderID: line.OrderID,
		ReturnLineID:    line.ID,
		CustomerID:      o.CustomerID,
		PriceDiff:       diff,
	}
}

// EventType returns the event type name
func (e *ExchangeOrderCreatedEvent) EventType() string {
	return EventTypeExchangeOrderCreated
}
