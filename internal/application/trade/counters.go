package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/application/transaction"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/trade"
)

// CounterMaintainer keeps the denormalized customer and SKU counters in
// step with return-line transitions. Every method runs against the
// repositories of the caller's transaction and uses atomic increments, so
// counters commit or roll back together with the transition.
type CounterMaintainer struct{}

// NewCounterMaintainer creates a CounterMaintainer
func NewCounterMaintainer() *CounterMaintainer {
	return &CounterMaintainer{}
}

// ReturnInitiated counts a new return against the customer and the SKU
func (c *CounterMaintainer) ReturnInitiated(ctx context.Context, repos transaction.Repositories, line *trade.OrderLine) error {
	return c.adjustReturn(ctx, repos, line, 1)
}

// ReturnCancelled reverses the counts added by ReturnInitiated
func (c *CounterMaintainer) ReturnCancelled(ctx context.Context, repos transaction.Repositories, line *trade.OrderLine) error {
	return c.adjustReturn(ctx, repos, line, -1)
}

// ExchangeCreated counts an exchange order against the customer
func (c *CounterMaintainer) ExchangeCreated(ctx context.Context, repos transaction.Repositories, customerID uuid.UUID) error {
	if err := repos.Customers().AdjustExchangeCount(ctx, customerID, 1); err != nil {
		return fmt.Errorf("adjust customer exchange count: %w", err)
	}
	return nil
}

// WrittenOff counts units removed from stock after a failed inspection
func (c *CounterMaintainer) WrittenOff(ctx context.Context, repos transaction.Repositories, skuID uuid.UUID, qty int) error {
	if err := repos.SKUs().AdjustWriteOffCount(ctx, skuID, qty); err != nil {
		return fmt.Errorf("adjust sku write-off count: %w", err)
	}
	return nil
}

// WriteOffReversed undoes WrittenOff
func (c *CounterMaintainer) WriteOffReversed(ctx context.Context, repos transaction.Repositories, skuID uuid.UUID, qty int) error {
	return c.WrittenOff(ctx, repos, skuID, -qty)
}

func (c *CounterMaintainer) adjustReturn(ctx context.Context, repos transaction.Repositories, line *trade.OrderLine, sign int) error {
	order, err := repos.Orders().FindByID(ctx, line.OrderID)
	if err != nil {
		return fmt.Errorf("load order %s: %w", line.OrderID, err)
	}
	if err := repos.Customers().AdjustReturnCount(ctx, order.CustomerID, sign); err != nil {
		return fmt.Errorf("adjust customer return count: %w", err)
	}
	if err := repos.SKUs().AdjustReturnCount(ctx, line.SKUID, sign*line.Return.Qty); err != nil {
		return fmt.Errorf("adjust sku return count: %w", err)
	}
	return nil
}
