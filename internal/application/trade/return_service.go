package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/application/transaction"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/catalog"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/qc"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/trade"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/logger"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// errUnchanged short-circuits a mutation that would not change the line.
// The transaction commits without writing.
var errUnchanged = errors.New("return line unchanged")

// ReturnService drives the return lifecycle of order lines
type ReturnService struct {
	scope    transaction.Scope
	lines    trade.OrderLineRepository
	orders   trade.OrderRepository
	skus     catalog.SKURepository
	counters *CounterMaintainer
	carrier  CarrierBooker
	metrics  *telemetry.ReturnMetrics
}

// NewReturnService creates a new ReturnService. The repositories are used
// for reads outside a transaction; every write goes through scope.
func NewReturnService(
	scope transaction.Scope,
	lines trade.OrderLineRepository,
	orders trade.OrderRepository,
	skus catalog.SKURepository,
	counters *CounterMaintainer,
) *ReturnService {
	return &ReturnService{
		scope:    scope,
		lines:    lines,
		orders:   orders,
		skus:     skus,
		counters: counters,
	}
}

// SetCarrier enables carrier-integrated pickup booking
func (s *ReturnService) SetCarrier(carrier CarrierBooker) {
	s.carrier = carrier
}

// SetMetrics enables business metrics
func (s *ReturnService) SetMetrics(m *telemetry.ReturnMetrics) {
	s.metrics = m
}

// Initiate opens a return on a line and counts it against the customer and SKU
func (s *ReturnService) Initiate(ctx context.Context, lineID uuid.UUID, req InitiateReturnRequest) (*InitiateReturnResponse, error) {
	resolution, err := trade.ParseResolution(req.Resolution)
	if err != nil {
		return nil, err
	}

	var skuCode string
	line, err := s.mutateLine(ctx, "initiate", lineID, func(repos transaction.Repositories, line *trade.OrderLine) error {
		if err := line.InitiateReturn(trade.InitiateReturnParams{
			Qty:            req.ReturnQty,
			ReasonCategory: trade.ReasonCategory(req.ReasonCategory),
			ReasonDetail:   req.ReasonDetail,
			Resolution:     resolution,
			Notes:          req.Notes,
			ExchangeSKUID:  req.ExchangeSKUID,
			Actor:          req.Actor,
		}); err != nil {
			return err
		}
		if resolution.IsExchange() && req.ExchangeSKUID != nil {
			if _, err := repos.SKUs().FindByID(ctx, *req.ExchangeSKUID); err != nil {
				if errors.Is(err, catalog.ErrSKUNotFound) {
					return trade.ErrExchangeSKUNotFound
				}
				return err
			}
		}

		sku, err := repos.SKUs().FindByID(ctx, line.SKUID)
		if err != nil {
			return fmt.Errorf("load line sku: %w", err)
		}
		skuCode = sku.Code

		return s.counters.ReturnInitiated(ctx, repos, line)
	})
	if err != nil {
		return nil, err
	}

	return &InitiateReturnResponse{
		LineID:  line.ID,
		Status:  line.Return.Status.String(),
		SKUCode: skuCode,
	}, nil
}

// SchedulePickup records the reverse pickup. With carrier integration the
// carrier is booked first and only its result is persisted; a failed booking
// leaves the line untouched.
func (s *ReturnService) SchedulePickup(ctx context.Context, lineID uuid.UUID, req SchedulePickupRequest) (*PickupResponse, error) {
	courier, awb, scheduledAt := req.Courier, req.AWB, req.ScheduledAt
	if req.UseCarrierIntegration {
		booking, err := s.bookPickup(ctx, lineID, req)
		if err != nil {
			return nil, err
		}
		if booking != nil {
			courier, awb = booking.Courier, booking.AWB
			if booking.ScheduledAt != nil {
				scheduledAt = booking.ScheduledAt
			}
		}
	}

	line, err := s.transition(ctx, "schedule_pickup", lineID, trade.ReturnStatusPickupScheduled,
		func(_ transaction.Repositories, line *trade.OrderLine) error {
			return line.SchedulePickup(trade.PickupType(req.PickupType), courier, awb, scheduledAt, req.Actor)
		})
	if err != nil {
		if req.UseCarrierIntegration && awb != "" {
			logger.L(ctx).Warn("Carrier pickup booked but not recorded",
				zap.String("line_id", lineID.String()),
				zap.String("awb", awb),
				zap.Error(err),
			)
		}
		return nil, err
	}

	return &PickupResponse{
		LineID:  line.ID,
		AWB:     line.Return.Pickup.AWB,
		Courier: line.Return.Pickup.Courier,
	}, nil
}

// bookPickup calls the carrier for a line that is waiting for pickup. It
// returns nil without calling out when the pickup is already scheduled.
func (s *ReturnService) bookPickup(ctx context.Context, lineID uuid.UUID, req SchedulePickupRequest) (*PickupBooking, error) {
	line, err := s.lines.FindByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line.Return.Status.IsNoOp(trade.ReturnStatusPickupScheduled) {
		return nil, nil
	}
	if line.Return.Status != trade.ReturnStatusRequested {
		return nil, shared.NewDomainError(trade.CodeWrongStatus,
			fmt.Sprintf("Cannot schedule pickup for a return in status %s", line.Return.Status))
	}
	if s.carrier == nil {
		return nil, shared.NewDomainError(trade.CodeCarrierBookingFailed, "Carrier integration is not configured")
	}

	order, err := s.orders.FindByID(ctx, line.OrderID)
	if err != nil {
		return nil, err
	}
	sku, err := s.skus.FindByID(ctx, line.SKUID)
	if err != nil {
		return nil, err
	}

	booking, err := s.carrier.BookPickup(ctx, PickupBookingRequest{
		LineID:      line.ID,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		SKUCode:     sku.Code,
		Qty:         line.Return.Qty,
		Courier:     req.Courier,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		logger.L(ctx).Error("Carrier pickup booking failed",
			zap.String("line_id", lineID.String()),
			zap.Error(err),
		)
		s.metrics.RecordRejected(ctx, trade.CodeCarrierBookingFailed)
		return nil, trade.ErrCarrierBookingFailed
	}
	return booking, nil
}

// MarkInTransit records that the carrier has collected the goods
func (s *ReturnService) MarkInTransit(ctx context.Context, lineID uuid.UUID, req MarkInTransitRequest) (*TransitionResponse, error) {
	line, err := s.transition(ctx, "mark_in_transit", lineID, trade.ReturnStatusInTransit,
		func(_ transaction.Repositories, line *trade.OrderLine) error {
			return line.MarkInTransit(trade.PickupUpdate{Courier: req.Courier, AWB: req.AWB}, req.Actor)
		})
	if err != nil {
		return nil, err
	}
	return &TransitionResponse{LineID: line.ID, Status: line.Return.Status.String()}, nil
}

// Receive records arrival at the warehouse and queues the units for QC in
// the same transaction
func (s *ReturnService) Receive(ctx context.Context, lineID uuid.UUID, req ReceiveRequest) (*ReceiveResponse, error) {
	var itemID *uuid.UUID
	line, err := s.transition(ctx, "receive", lineID, trade.ReturnStatusReceived,
		func(repos transaction.Repositories, line *trade.OrderLine) error {
			if err := line.Receive(trade.Condition(req.Condition), req.ConditionNotes, req.Actor); err != nil {
				return err
			}

			item, err := qc.NewQueueItemForReturnLine(line.ID, line.SKUID, line.Return.Qty, req.Condition)
			if err != nil {
				return err
			}
			item.AddDomainEvent(qc.NewQCItemQueuedEvent(item, req.Actor))
			if err := repos.QCItems().Create(ctx, item); err != nil {
				return fmt.Errorf("create qc item: %w", err)
			}
			id := item.ID
			itemID = &id
			return transaction.RecordAndClear(ctx, repos, item)
		})
	if err != nil {
		return nil, err
	}
	return &ReceiveResponse{LineID: line.ID, Status: line.Return.Status.String(), QCItemID: itemID}, nil
}

// Complete closes a return whose resolution has been fulfilled
func (s *ReturnService) Complete(ctx context.Context, lineID uuid.UUID, actor string) (*TransitionResponse, error) {
	line, err := s.transition(ctx, "complete", lineID, trade.ReturnStatusComplete,
		func(_ transaction.Repositories, line *trade.OrderLine) error {
			return line.Complete(actor)
		})
	if err != nil {
		return nil, err
	}
	return &TransitionResponse{LineID: line.ID, Status: line.Return.Status.String()}, nil
}

// Cancel closes a return manually and reverses its counters
func (s *ReturnService) Cancel(ctx context.Context, lineID uuid.UUID, req CancelReturnRequest) (*TransitionResponse, error) {
	line, err := s.mutateLine(ctx, "cancel", lineID, func(repos transaction.Repositories, line *trade.OrderLine) error {
		if _, err := line.Cancel(req.Reason, req.Actor); err != nil {
			return err
		}
		return s.counters.ReturnCancelled(ctx, repos, line)
	})
	if err != nil {
		return nil, err
	}
	return &TransitionResponse{LineID: line.ID, Status: line.Return.Status.String()}, nil
}

// UpdateNotes replaces the staff notes on an active return
func (s *ReturnService) UpdateNotes(ctx context.Context, lineID uuid.UUID, req UpdateNotesRequest) (*ReturnLineResponse, error) {
	line, err := s.mutateLine(ctx, "update_notes", lineID, func(_ transaction.Repositories, line *trade.OrderLine) error {
		return line.UpdateNotes(req.Notes)
	})
	if err != nil {
		return nil, err
	}
	resp := ToReturnLineResponse(line)
	return &resp, nil
}

// ProcessRefund computes and stores the net refund. It does not complete
// the refund.
func (s *ReturnService) ProcessRefund(ctx context.Context, lineID uuid.UUID, req ProcessRefundRequest) (*RefundResponse, error) {
	line, err := s.mutateLine(ctx, "process_refund", lineID, func(_ transaction.Repositories, line *trade.OrderLine) error {
		_, err := line.RecordRefund(trade.RefundInput{
			Gross:            req.Gross,
			DiscountClawback: req.DiscountClawback,
			Deductions:       req.Deductions,
			DeductionNotes:   req.DeductionNotes,
			Method:           trade.RefundMethod(req.Method),
		}, req.Actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordRefund(ctx, line.Return.Refund.Net)
	return &RefundResponse{LineID: line.ID, NetAmount: line.Return.Refund.Net}, nil
}

// CompleteRefund records the payout. Repeating it is a no-op.
func (s *ReturnService) CompleteRefund(ctx context.Context, lineID uuid.UUID, req CompleteRefundRequest) (*RefundCompletionResponse, error) {
	line, err := s.mutateLine(ctx, "complete_refund", lineID, func(_ transaction.Repositories, line *trade.OrderLine) error {
		changed, err := line.CompleteRefund(req.Reference, req.Actor)
		if err != nil {
			return err
		}
		if !changed {
			return errUnchanged
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &RefundCompletionResponse{
		LineID:      line.ID,
		CompletedAt: line.Return.Refund.CompletedAt,
		Reference:   line.Return.Refund.Reference,
	}, nil
}

// GetLine returns the read model of a line and its return
func (s *ReturnService) GetLine(ctx context.Context, lineID uuid.UUID) (*ReturnLineResponse, error) {
	line, err := s.lines.FindByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	resp := ToReturnLineResponse(line)
	return &resp, nil
}

// transition moves the line to target. A request for the status the line
// is already in succeeds without side effects.
func (s *ReturnService) transition(
	ctx context.Context,
	op string,
	lineID uuid.UUID,
	target trade.ReturnStatus,
	fn func(repos transaction.Repositories, line *trade.OrderLine) error,
) (*trade.OrderLine, error) {
	return s.mutateLine(ctx, op, lineID, func(repos transaction.Repositories, line *trade.OrderLine) error {
		if line.Return.Status.IsNoOp(target) {
			return errUnchanged
		}
		return fn(repos, line)
	})
}

// mutateLine loads the line inside a transaction, applies fn and writes the
// line back only if its stored status is still the one that was loaded.
func (s *ReturnService) mutateLine(
	ctx context.Context,
	op string,
	lineID uuid.UUID,
	fn func(repos transaction.Repositories, line *trade.OrderLine) error,
) (*trade.OrderLine, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "returns", op,
		telemetry.WithAttribute(telemetry.SpanAttrLineID, lineID.String()))
	defer span.End()

	var (
		result *trade.OrderLine
		from   trade.ReturnStatus
	)
	err := s.scope.Execute(ctx, func(repos transaction.Repositories) error {
		line, err := repos.Lines().FindByID(ctx, lineID)
		if err != nil {
			return err
		}
		from = line.Return.Status
		version := line.GetVersion()

		if err := fn(repos, line); err != nil {
			if errors.Is(err, errUnchanged) {
				result = line
				return nil
			}
			return err
		}
		if err := repos.Lines().SaveReturnIfUnchanged(ctx, line, from, version); err != nil {
			return err
		}
		if err := transaction.RecordAndClear(ctx, repos, line); err != nil {
			return fmt.Errorf("record return events: %w", err)
		}
		result = line
		return nil
	})
	if err != nil {
		if de, ok := shared.IsDomainError(err); ok {
			s.metrics.RecordRejected(ctx, de.Code)
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	to := result.Return.Status
	telemetry.SetAttributes(span, telemetry.SpanAttrReturnStatus, to.String())
	if to != from {
		s.metrics.RecordTransition(ctx, from.String(), to.String())
		logger.L(ctx).Info("Return status changed",
			zap.String("line_id", lineID.String()),
			zap.String("operation", op),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}
	return result, nil
}
