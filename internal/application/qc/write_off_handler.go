package qc

import (
	"context"
	"fmt"

	"github.com/shantum/COH-ERP2-sub001/internal/domain/qc"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// WriteOffHandler reports units removed from sellable stock by QC so the
// warehouse lead can follow up on damage trends.
type WriteOffHandler struct {
	logger *zap.Logger
}

// NewWriteOffHandler creates a handler for QC decision events
func NewWriteOffHandler(logger *zap.Logger) *WriteOffHandler {
	return &WriteOffHandler{logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *WriteOffHandler) EventTypes() []string {
	return []string{qc.EventTypeQCDecided}
}

// Handle logs write-off decisions; approvals are ignored
func (h *WriteOffHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	decided, ok := event.(*qc.QCDecidedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s", qc.EventTypeQCDecided, event.EventType())
	}
	if decided.Action != qc.ActionWriteOff {
		return nil
	}

	fields := []zap.Field{
		zap.String("item_id", decided.ItemID.String()),
		zap.String("sku_id", decided.SKUID.String()),
		zap.Int("quantity", decided.Quantity),
		zap.String("reason", string(decided.WriteOffReason)),
		zap.String("actor", decided.Actor),
	}
	if decided.ReturnLineID != nil {
		fields = append(fields, zap.String("return_line_id", decided.ReturnLineID.String()))
	}
	h.logger.Warn("QC write-off recorded", fields...)
	return nil
}
