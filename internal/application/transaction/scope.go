package transaction

import (
	"context"

	"github.com/shantum/COH-ERP2-sub001/internal/domain/catalog"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/inventory"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/partner"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/qc"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/trade"
)

// Scope runs a unit of work atomically. If fn returns an error the
// transaction is rolled back, otherwise it is committed.
type Scope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories gives access to every repository a return operation touches.
// All of them share the transaction opened by Scope.Execute.
type Repositories interface {
	Orders() trade.OrderRepository
	Lines() trade.OrderLineRepository
	SKUs() catalog.SKURepository
	Customers() partner.CustomerRepository
	QCItems() qc.QueueItemRepository
	WriteOffs() qc.WriteOffLogRepository
	Ledger() inventory.InventoryTransactionRepository
	// Events stores domain events alongside the state change that raised them
	Events() EventRecorder
}

// EventRecorder persists domain events within the current transaction
type EventRecorder interface {
	Record(ctx context.Context, events ...shared.DomainEvent) error
}

// RecordAndClear stores the aggregate's pending events and clears them
func RecordAndClear(ctx context.Context, repos Repositories, agg shared.AggregateRoot) error {
	events := agg.GetDomainEvents()
	if len(events) == 0 {
		return nil
	}
	if err := repos.Events().Record(ctx, events...); err != nil {
		return err
	}
	agg.ClearDomainEvents()
	return nil
}
