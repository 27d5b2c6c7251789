package event

import (
	"github.com/shantum/COH-ERP2-sub001/internal/domain/qc"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/trade"
)

// RegisterAllEvents registers all domain event types with the serializer.
// The outbox processor cannot deliver an event type missing here.
func RegisterAllEvents(serializer *EventSerializer) {
	// Return-line transitions share one payload shape
	for _, eventType := range trade.ReturnStatusEventTypes() {
		serializer.Register(eventType, func() shared.DomainEvent { return &trade.ReturnStatusChangedEvent{} })
	}

	serializer.Register(trade.EventTypeRefundProcessed, func() shared.DomainEvent { return &trade.RefundProcessedEvent{} })
	serializer.Register(trade.EventTypeRefundCompleted, func() shared.DomainEvent { return &trade.RefundCompletedEvent{} })
	serializer.Register(trade.EventTypeExchangeOrderCreated, func() shared.DomainEvent { return &trade.ExchangeOrderCreatedEvent{} })

	// QC queue
	serializer.Register(qc.EventTypeQCItemQueued, func() shared.DomainEvent { return &qc.QCItemQueuedEvent{} })
	serializer.Register(qc.EventTypeQCDecided, func() shared.DomainEvent { return &qc.QCDecidedEvent{} })
	serializer.Register(qc.EventTypeQCDecisionReversed, func() shared.DomainEvent { return &qc.QCDecisionReversedEvent{} })
}
