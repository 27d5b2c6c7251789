// Package mocks holds testify mocks of the domain repositories used by
// application service tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/application/transaction"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/catalog"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/inventory"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/partner"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/qc"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/trade"
	"github.com/stretchr/testify/mock"
)

// OrderRepository mocks trade.OrderRepository
type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *OrderRepository) FindByExchangeForLine(ctx context.Context, lineID uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *OrderRepository) Create(ctx context.Context, order *trade.Order) error {
	return m.Called(ctx, order).Error(0)
}

// OrderLineRepository mocks trade.OrderLineRepository
type OrderLineRepository struct {
	mock.Mock
}

func (m *OrderLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.OrderLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.OrderLine), args.Error(1)
}

func (m *OrderLineRepository) SaveReturnIfUnchanged(ctx context.Context, line *trade.OrderLine, expected trade.ReturnStatus, version int) error {
	return m.Called(ctx, line, expected, version).Error(0)
}

// SKURepository mocks catalog.SKURepository
type SKURepository struct {
	mock.Mock
}

func (m *SKURepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.SKU, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.SKU), args.Error(1)
}

func (m *SKURepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.SKU, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.SKU), args.Error(1)
}

func (m *SKURepository) Save(ctx context.Context, sku *catalog.SKU) error {
	return m.Called(ctx, sku).Error(0)
}

func (m *SKURepository) AdjustReturnCount(ctx context.Context, id uuid.UUID, delta int) error {
	return m.Called(ctx, id, delta).Error(0)
}

func (m *SKURepository) AdjustWriteOffCount(ctx context.Context, id uuid.UUID, delta int) error {
	return m.Called(ctx, id, delta).Error(0)
}

// CustomerRepository mocks partner.CustomerRepository
type CustomerRepository struct {
	mock.Mock
}

func (m *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *CustomerRepository) Save(ctx context.Context, c *partner.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CustomerRepository) AdjustReturnCount(ctx context.Context, id uuid.UUID, delta int) error {
	return m.Called(ctx, id, delta).Error(0)
}

func (m *CustomerRepository) AdjustExchangeCount(ctx context.Context, id uuid.UUID, delta int) error {
	return m.Called(ctx, id, delta).Error(0)
}

// QueueItemRepository mocks qc.QueueItemRepository
type QueueItemRepository struct {
	mock.Mock
}

func (m *QueueItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*qc.QueueItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*qc.QueueItem), args.Error(1)
}

func (m *QueueItemRepository) FindPending(ctx context.Context, page shared.Page) ([]qc.QueueItem, int64, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]qc.QueueItem), args.Get(1).(int64), args.Error(2)
}

func (m *QueueItemRepository) CountByReturnLine(ctx context.Context, lineID uuid.UUID) (int64, error) {
	args := m.Called(ctx, lineID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *QueueItemRepository) Create(ctx context.Context, item *qc.QueueItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *QueueItemRepository) SaveIfStatus(ctx context.Context, item *qc.QueueItem, expected qc.ItemStatus) error {
	return m.Called(ctx, item, expected).Error(0)
}

// WriteOffLogRepository mocks qc.WriteOffLogRepository
type WriteOffLogRepository struct {
	mock.Mock
}

func (m *WriteOffLogRepository) Create(ctx context.Context, log *qc.WriteOffLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *WriteOffLogRepository) FindByQueueItem(ctx context.Context, itemID uuid.UUID) ([]qc.WriteOffLog, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]qc.WriteOffLog), args.Error(1)
}

// LedgerRepository mocks inventory.InventoryTransactionRepository
type LedgerRepository struct {
	mock.Mock
}

func (m *LedgerRepository) Create(ctx context.Context, tx *inventory.InventoryTransaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *LedgerRepository) FindByReference(ctx context.Context, referenceID uuid.UUID) ([]inventory.InventoryTransaction, error) {
	args := m.Called(ctx, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryTransaction), args.Error(1)
}

func (m *LedgerRepository) FindBySKU(ctx context.Context, skuID uuid.UUID, page shared.Page) ([]inventory.InventoryTransaction, int64, error) {
	args := m.Called(ctx, skuID, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]inventory.InventoryTransaction), args.Get(1).(int64), args.Error(2)
}

func (m *LedgerRepository) SumBySKUs(ctx context.Context, skuIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	args := m.Called(ctx, skuIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int), args.Error(1)
}

// EventRecorder collects recorded events for assertions
type EventRecorder struct {
	Events []shared.DomainEvent
	Err    error
}

func (r *EventRecorder) Record(_ context.Context, events ...shared.DomainEvent) error {
	if r.Err != nil {
		return r.Err
	}
	r.Events = append(r.Events, events...)
	return nil
}

// Types returns the recorded event types in order
func (r *EventRecorder) Types() []string {
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.EventType()
	}
	return out
}

// Scope bundles one mock per repository behind a transaction.NoOpScope
type Scope struct {
	*transaction.NoOpScope
	Orders    *OrderRepository
	Lines     *OrderLineRepository
	SKUs      *SKURepository
	Customers *CustomerRepository
	QCItems   *QueueItemRepository
	WriteOffs *WriteOffLogRepository
	Ledger    *LedgerRepository
	Recorder  *EventRecorder
}

// NewScope wires fresh mocks into a NoOpScope
func NewScope() *Scope {
	s := &Scope{
		Orders:    &OrderRepository{},
		Lines:     &OrderLineRepository{},
		SKUs:      &SKURepository{},
		Customers: &CustomerRepository{},
		QCItems:   &QueueItemRepository{},
		WriteOffs: &WriteOffLogRepository{},
		Ledger:    &LedgerRepository{},
		Recorder:  &EventRecorder{},
	}
	s.NoOpScope = &transaction.NoOpScope{
		OrderRepo:    s.Orders,
		LineRepo:     s.Lines,
		SKURepo:      s.SKUs,
		CustomerRepo: s.Customers,
		QCItemRepo:   s.QCItems,
		WriteOffRepo: s.WriteOffs,
		LedgerRepo:   s.Ledger,
		Recorder:     s.Recorder,
	}
	return s
}

// AssertExpectations checks every mock
func (s *Scope) AssertExpectations(t mock.TestingT) {
	s.Orders.AssertExpectations(t)
	s.Lines.AssertExpectations(t)
	s.SKUs.AssertExpectations(t)
	s.Customers.AssertExpectations(t)
	s.QCItems.AssertExpectations(t)
	s.WriteOffs.AssertExpectations(t)
	s.Ledger.AssertExpectations(t)
}
