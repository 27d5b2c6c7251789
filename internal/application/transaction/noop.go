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

// NoOpScope runs fn directly against a fixed set of repositories without a
// database transaction. It is used by service tests.
type NoOpScope struct {
	OrderRepo    trade.OrderRepository
	LineRepo     trade.OrderLineRepository
	SKURepo      catalog.SKURepository
	CustomerRepo partner.CustomerRepository
	QCItemRepo   qc.QueueItemRepository
	WriteOffRepo qc.WriteOffLogRepository
	LedgerRepo   inventory.InventoryTransactionRepository
	Recorder     EventRecorder
}

// Execute calls fn with the scope itself
func (s *NoOpScope) Execute(_ context.Context, fn func(repos Repositories) error) error {
	return fn(s)
}

func (s *NoOpScope) Orders() trade.OrderRepository                    { return s.OrderRepo }
func (s *NoOpScope) Lines() trade.OrderLineRepository                 { return s.LineRepo }
func (s *NoOpScope) SKUs() catalog.SKURepository                      { return s.SKURepo }
func (s *NoOpScope) Customers() partner.CustomerRepository            { return s.CustomerRepo }
func (s *NoOpScope) QCItems() qc.QueueItemRepository                  { return s.QCItemRepo }
func (s *NoOpScope) WriteOffs() qc.WriteOffLogRepository              { return s.WriteOffRepo }
func (s *NoOpScope) Ledger() inventory.InventoryTransactionRepository { return s.LedgerRepo }

// Events returns the configured recorder, or one that discards events
func (s *NoOpScope) Events() EventRecorder {
	if s.Recorder == nil {
		return DiscardRecorder{}
	}
	return s.Recorder
}

// DiscardRecorder drops every event
type DiscardRecorder struct{}

// Record implements EventRecorder
func (DiscardRecorder) Record(context.Context, ...shared.DomainEvent) error { return nil }

var (
	_ Scope        = (*NoOpScope)(nil)
	_ Repositories = (*NoOpScope)(nil)
)
