package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/application/transaction"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/catalog"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/trade"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/logger"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExchangeService generates replacement orders for exchange returns
type ExchangeService struct {
	scope    transaction.Scope
	counters *CounterMaintainer
	metrics  *telemetry.ReturnMetrics
}

// NewExchangeService creates a new ExchangeService
func NewExchangeService(scope transaction.Scope, counters *CounterMaintainer) *ExchangeService {
	return &ExchangeService{scope: scope, counters: counters}
}

// SetMetrics enables business metrics
func (s *ExchangeService) SetMetrics(m *telemetry.ReturnMetrics) {
	s.metrics = m
}

// CreateExchangeOrder raises the replacement order for a line, links it to
// the line and counts the exchange against the customer, all in one
// transaction. At most one exchange order exists per line.
func (s *ExchangeService) CreateExchangeOrder(ctx context.Context, lineID uuid.UUID, req CreateExchangeOrderRequest) (*ExchangeOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "returns", "create_exchange_order",
		telemetry.WithAttribute(telemetry.SpanAttrLineID, lineID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrSKUID, req.ExchangeSKUID.String()))
	defer span.End()

	var (
		order     *trade.Order
		priceDiff decimal.Decimal
	)
	err := s.scope.Execute(ctx, func(repos transaction.Repositories) error {
		line, err := repos.Lines().FindByID(ctx, lineID)
		if err != nil {
			return err
		}
		if err := line.CanCreateExchange(); err != nil {
			return err
		}
		if req.ExchangeQty < 1 {
			return shared.NewDomainError(trade.CodeInvalidQuantity, "Exchange quantity must be positive")
		}

		sku, err := repos.SKUs().FindByID(ctx, req.ExchangeSKUID)
		if err != nil {
			if errors.Is(err, catalog.ErrSKUNotFound) {
				return trade.ErrExchangeSKUNotFound
			}
			return err
		}
		original, err := repos.Orders().FindByID(ctx, line.OrderID)
		if err != nil {
			return fmt.Errorf("load original order: %w", err)
		}

		expected, version := line.Return.Status, line.GetVersion()
		order, priceDiff, err = trade.NewExchangeOrder(original, line, sku.ID, sku.Price, req.ExchangeQty, req.Actor)
		if err != nil {
			return err
		}
		if err := repos.Orders().Create(ctx, order); err != nil {
			if errors.Is(err, trade.ErrExchangeAlreadyCreated) {
				return err
			}
			return fmt.Errorf("create exchange order: %w", err)
		}
		if err := repos.Lines().SaveReturnIfUnchanged(ctx, line, expected, version); err != nil {
			return err
		}
		if err := s.counters.ExchangeCreated(ctx, repos, original.CustomerID); err != nil {
			return err
		}
		return transaction.RecordAndClear(ctx, repos, order)
	})
	if err != nil {
		if de, ok := shared.IsDomainError(err); ok {
			s.metrics.RecordRejected(ctx, de.Code)
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	value := trade.ExchangeValueFromDiff(priceDiff)
	s.metrics.RecordExchangeOrder(ctx, string(value))
	logger.L(ctx).Info("Exchange order created",
		zap.String("line_id", lineID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("price_diff", priceDiff.String()),
	)

	return &ExchangeOrderResponse{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		PriceDiff:   priceDiff,
	}, nil
}
