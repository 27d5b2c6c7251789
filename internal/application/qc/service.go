package qc

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	apptrade "github.com/shantum/COH-ERP2-sub001/internal/application/trade"
	"github.com/shantum/COH-ERP2-sub001/internal/application/transaction"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/inventory"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/qc"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/trade"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/logger"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Service processes the QC queue. A decision moves stock through the
// ledger and cascades to the originating return line in one transaction.
type Service struct {
	scope    transaction.Scope
	items    qc.QueueItemRepository
	counters *apptrade.CounterMaintainer
	metrics  *telemetry.ReturnMetrics
}

// NewService creates a new QC Service. items is used for reads.
func NewService(scope transaction.Scope, items qc.QueueItemRepository, counters *apptrade.CounterMaintainer) *Service {
	return &Service{scope: scope, items: items, counters: counters}
}

// SetMetrics enables business metrics
func (s *Service) SetMetrics(m *telemetry.ReturnMetrics) {
	s.metrics = m
}

// Decide approves or writes off a pending item
func (s *Service) Decide(ctx context.Context, itemID uuid.UUID, req DecideRequest) (*DecisionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "qc", "decide",
		telemetry.WithAttribute(telemetry.SpanAttrQCItemID, itemID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrQCAction, req.Action))
	defer span.End()

	action := qc.Action(req.Action)
	var resp DecisionResponse
	err := s.scope.Execute(ctx, func(repos transaction.Repositories) error {
		item, err := repos.QCItems().FindByID(ctx, itemID)
		if err != nil {
			return err
		}
		expected := item.Status
		if err := item.Decide(action, req.Actor, req.Comments, qc.WriteOffReason(req.WriteOffReason)); err != nil {
			return err
		}

		entry, err := decisionEntry(item, item.Status)
		if err != nil {
			return err
		}
		if err := repos.Ledger().Create(ctx, entry.WithNotes(item.Comments).WithActor(req.Actor)); err != nil {
			return fmt.Errorf("write ledger entry: %w", err)
		}
		if action == qc.ActionWriteOff {
			if err := repos.WriteOffs().Create(ctx, qc.NewWriteOffLogFromItem(item)); err != nil {
				return fmt.Errorf("write off log: %w", err)
			}
			if err := s.counters.WrittenOff(ctx, repos, item.SKUID, item.Quantity); err != nil {
				return err
			}
		}

		if err := repos.QCItems().SaveIfStatus(ctx, item, expected); err != nil {
			if errors.Is(err, shared.ErrConcurrencyConflict) {
				return qc.ErrItemNotPending
			}
			return err
		}

		cascaded, err := s.cascade(ctx, repos, item, func(line *trade.OrderLine) bool {
			return line.ApplyQCResult(qcResult(item.Status), req.Actor)
		})
		if err != nil {
			return err
		}
		if err := transaction.RecordAndClear(ctx, repos, item); err != nil {
			return fmt.Errorf("record qc events: %w", err)
		}

		sku, err := repos.SKUs().FindByID(ctx, item.SKUID)
		if err != nil {
			return fmt.Errorf("load item sku: %w", err)
		}
		resp = DecisionResponse{
			ItemID:       item.ID,
			SKUCode:      sku.Code,
			Qty:          item.Quantity,
			Action:       string(action),
			Status:       item.Status.String(),
			LineCascaded: cascaded,
		}
		return nil
	})
	if err != nil {
		if de, ok := shared.IsDomainError(err); ok {
			s.metrics.RecordRejected(ctx, de.Code)
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.metrics.RecordQCDecision(ctx, string(action))
	logger.L(ctx).Info("QC decision recorded",
		zap.String("item_id", itemID.String()),
		zap.String("action", string(action)),
		zap.Int("quantity", resp.Qty),
		zap.Bool("line_cascaded", resp.LineCascaded),
	)
	return &resp, nil
}

// Undo reverses a decision: the ledger movement is cancelled by an
// opposite entry, write-off counters are reversed, the item returns to
// pending and an inspected line goes back to received.
func (s *Service) Undo(ctx context.Context, itemID uuid.UUID, actor string) (*UndoResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "qc", "undo",
		telemetry.WithAttribute(telemetry.SpanAttrQCItemID, itemID.String()))
	defer span.End()

	var resp UndoResponse
	err := s.scope.Execute(ctx, func(repos transaction.Repositories) error {
		item, err := repos.QCItems().FindByID(ctx, itemID)
		if err != nil {
			return err
		}
		expected := item.Status
		previous, err := item.Undo(actor)
		if err != nil {
			return err
		}

		decision, err := decisionEntry(item, previous)
		if err != nil {
			return err
		}
		reversal, err := decision.Reversal(inventory.ReasonQCReversal)
		if err != nil {
			return err
		}
		if err := repos.Ledger().Create(ctx, reversal.WithActor(actor)); err != nil {
			return fmt.Errorf("write reversal entry: %w", err)
		}
		if previous == qc.ItemStatusWrittenOff {
			if err := s.counters.WriteOffReversed(ctx, repos, item.SKUID, item.Quantity); err != nil {
				return err
			}
		}

		if err := repos.QCItems().SaveIfStatus(ctx, item, expected); err != nil {
			if errors.Is(err, shared.ErrConcurrencyConflict) {
				return qc.ErrItemNotProcessed
			}
			return err
		}

		reverted, err := s.cascade(ctx, repos, item, func(line *trade.OrderLine) bool {
			return line.RevertQCResult(actor)
		})
		if err != nil {
			return err
		}
		if err := transaction.RecordAndClear(ctx, repos, item); err != nil {
			return fmt.Errorf("record qc events: %w", err)
		}

		resp = UndoResponse{
			ItemID:         item.ID,
			ReversedStatus: previous.String(),
			Status:         item.Status.String(),
			LineReverted:   reverted,
		}
		return nil
	})
	if err != nil {
		if de, ok := shared.IsDomainError(err); ok {
			s.metrics.RecordRejected(ctx, de.Code)
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("QC decision reversed",
		zap.String("item_id", itemID.String()),
		zap.String("reversed_status", resp.ReversedStatus),
		zap.Bool("line_reverted", resp.LineReverted),
	)
	return &resp, nil
}

// GetItem returns one queue item
func (s *Service) GetItem(ctx context.Context, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// ListPending returns pending items, oldest first
func (s *Service) ListPending(ctx context.Context, page shared.Page) ([]ItemResponse, int64, error) {
	items, total, err := s.items.FindPending(ctx, page.Normalize())
	if err != nil {
		return nil, 0, err
	}
	return ToItemResponses(items), total, nil
}

// cascade applies fn to the item's return line and saves the line if fn
// changed it. Items without a line, and lines fn leaves alone, are skipped.
func (s *Service) cascade(
	ctx context.Context,
	repos transaction.Repositories,
	item *qc.QueueItem,
	fn func(line *trade.OrderLine) bool,
) (bool, error) {
	if item.ReturnLineID == nil {
		return false, nil
	}
	line, err := repos.Lines().FindByID(ctx, *item.ReturnLineID)
	if err != nil {
		return false, fmt.Errorf("load return line of qc item: %w", err)
	}

	from, version := line.Return.Status, line.GetVersion()
	if !fn(line) {
		return false, nil
	}
	if err := repos.Lines().SaveReturnIfUnchanged(ctx, line, from, version); err != nil {
		// The line moved on after it was read; the decision stands without it.
		if errors.Is(err, trade.ErrWrongStatus) {
			return false, nil
		}
		return false, err
	}
	if err := transaction.RecordAndClear(ctx, repos, line); err != nil {
		return false, fmt.Errorf("record return events: %w", err)
	}
	s.metrics.RecordTransition(ctx, from.String(), line.Return.Status.String())
	return true, nil
}

// decisionEntry is the ledger movement a decided status stands for
func decisionEntry(item *qc.QueueItem, status qc.ItemStatus) (*inventory.InventoryTransaction, error) {
	direction, reason := inventory.DirectionInward, inventory.ReasonReturnRestock
	if status == qc.ItemStatusWrittenOff {
		direction, reason = inventory.DirectionOutward, inventory.ReasonWriteOff
	}
	entry, err := inventory.NewInventoryTransaction(item.SKUID, direction, item.Quantity, reason)
	if err != nil {
		return nil, err
	}
	return entry.WithReference(item.ID), nil
}

func qcResult(status qc.ItemStatus) trade.QCResult {
	if status == qc.ItemStatusWrittenOff {
		return trade.QCResultWrittenOff
	}
	return trade.QCResultApproved
}
