package persistence

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
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OutboxWriter stores domain events using the caller's transaction
type OutboxWriter interface {
	PublishWithTx(ctx context.Context, tx *gorm.DB, events ...shared.DomainEvent) error
}

// BalanceInvalidator drops cached balances for SKUs whose ledger changed
type BalanceInvalidator interface {
	Invalidate(ctx context.Context, skuIDs ...uuid.UUID) error
}

// GormTransactionScope implements transaction.Scope using GORM transactions.
// SKUs written to the ledger inside Execute are invalidated in the balance
// cache after commit, before Execute returns.
type GormTransactionScope struct {
	db       *gorm.DB
	outbox   OutboxWriter
	balances BalanceInvalidator
}

// NewGormTransactionScope creates a new GormTransactionScope. outbox and
// balances may be nil.
func NewGormTransactionScope(db *gorm.DB, outbox OutboxWriter, balances BalanceInvalidator) *GormTransactionScope {
	return &GormTransactionScope{db: db, outbox: outbox, balances: balances}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos transaction.Repositories) error) error {
	touched := &skuSet{seen: map[uuid.UUID]struct{}{}}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx, outbox: s.outbox, touched: touched})
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, touched.ids)
	return nil
}

func (s *GormTransactionScope) invalidate(ctx context.Context, skuIDs []uuid.UUID) {
	if s.balances == nil || len(skuIDs) == 0 {
		return
	}
	if err := s.balances.Invalidate(ctx, skuIDs...); err != nil {
		// the commit stands; stale entries live until their TTL
		logger.L(ctx).Error("Balance cache invalidation failed",
			zap.Int("sku_count", len(skuIDs)),
			zap.Error(err),
		)
	}
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx      *gorm.DB
	outbox  OutboxWriter
	touched *skuSet
}

func (r *gormTransactionalRepositories) Orders() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) Lines() trade.OrderLineRepository {
	return NewGormOrderLineRepository(r.tx)
}

func (r *gormTransactionalRepositories) SKUs() catalog.SKURepository {
	return NewGormSKURepository(r.tx)
}

func (r *gormTransactionalRepositories) Customers() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

func (r *gormTransactionalRepositories) QCItems() qc.QueueItemRepository {
	return NewGormQueueItemRepository(r.tx)
}

func (r *gormTransactionalRepositories) WriteOffs() qc.WriteOffLogRepository {
	return NewGormWriteOffLogRepository(r.tx)
}

// Ledger returns the ledger repository; every entry it writes marks its SKU
// for cache invalidation.
func (r *gormTransactionalRepositories) Ledger() inventory.InventoryTransactionRepository {
	return &trackingLedger{
		GormInventoryTransactionRepository: NewGormInventoryTransactionRepository(r.tx),
		touched:                            r.touched,
	}
}

// Events returns a recorder writing to the outbox table in this transaction
func (r *gormTransactionalRepositories) Events() transaction.EventRecorder {
	if r.outbox == nil {
		return transaction.DiscardRecorder{}
	}
	return &outboxRecorder{tx: r.tx, outbox: r.outbox}
}

type outboxRecorder struct {
	tx     *gorm.DB
	outbox OutboxWriter
}

func (o *outboxRecorder) Record(ctx context.Context, events ...shared.DomainEvent) error {
	return o.outbox.PublishWithTx(ctx, o.tx, events...)
}

type trackingLedger struct {
	*GormInventoryTransactionRepository
	touched *skuSet
}

func (l *trackingLedger) Create(ctx context.Context, entry *inventory.InventoryTransaction) error {
	if err := l.GormInventoryTransactionRepository.Create(ctx, entry); err != nil {
		return err
	}
	l.touched.add(entry.SKUID)
	return nil
}

// skuSet keeps insertion order so invalidation is deterministic
type skuSet struct {
	seen map[uuid.UUID]struct{}
	ids  []uuid.UUID
}

func (s *skuSet) add(id uuid.UUID) {
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}

// Ensure GormTransactionScope implements Scope
var _ transaction.Scope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements Repositories
var _ transaction.Repositories = (*gormTransactionalRepositories)(nil)
