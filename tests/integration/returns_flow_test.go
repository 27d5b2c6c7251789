package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	appinventory "github.com/shantum/COH-ERP2-sub001/internal/application/inventory"
	appqc "github.com/shantum/COH-ERP2-sub001/internal/application/qc"
	apptrade "github.com/shantum/COH-ERP2-sub001/internal/application/trade"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/catalog"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/partner"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/trade"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/cache"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/event"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type services struct {
	returns   *apptrade.ReturnService
	exchanges *apptrade.ExchangeService
	qc        *appqc.Service
	balances  *appinventory.BalanceService
	outbox    *event.GormOutboxRepository
}

func newServices(db *gorm.DB, balanceCache appinventory.BalanceCache) services {
	serializer := event.NewEventSerializer()
	event.RegisterAllEvents(serializer)

	scope := persistence.NewGormTransactionScope(db, event.NewOutboxPublisher(serializer), balanceCache)
	counters := apptrade.NewCounterMaintainer()
	return services{
		returns: apptrade.NewReturnService(scope,
			persistence.NewGormOrderLineRepository(db),
			persistence.NewGormOrderRepository(db),
			persistence.NewGormSKURepository(db),
			counters),
		exchanges: apptrade.NewExchangeService(scope, counters),
		qc:        appqc.NewService(scope, persistence.NewGormQueueItemRepository(db), counters),
		balances:  appinventory.NewBalanceService(scope, persistence.NewGormInventoryTransactionRepository(db), balanceCache),
		outbox:    event.NewGormOutboxRepository(db),
	}
}

type fixture struct {
	customer *partner.Customer
	sku      *catalog.SKU
	alt      *catalog.SKU
	order    *trade.Order
}

func seed(t *testing.T, db *gorm.DB, orderNumber string) fixture {
	t.Helper()
	ctx := context.Background()

	customer, err := partner.NewCustomer("Kavya Nair", "kavya@example.com")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormCustomerRepository(db).Save(ctx, customer))

	skus := persistence.NewGormSKURepository(db)
	sku, err := catalog.NewSKU(orderNumber+"-DRESS-M", "Linen Dress M", decimal.NewFromInt(2400))
	require.NoError(t, err)
	require.NoError(t, skus.Save(ctx, sku))
	alt, err := catalog.NewSKU(orderNumber+"-DRESS-L", "Linen Dress L", decimal.NewFromInt(2600))
	require.NoError(t, err)
	require.NoError(t, skus.Save(ctx, alt))

	order, err := trade.NewOrder(orderNumber, customer.ID)
	require.NoError(t, err)
	_, err = order.AddLine(sku.ID, 2, sku.Price)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormOrderRepository(db).Create(ctx, order))

	return fixture{customer: customer, sku: sku, alt: alt, order: order}
}

func TestReturnLifecycle_RefundWithQC(t *testing.T) {
	skipShort(t)

	testDB := NewTestDB(t)
	svc := newServices(testDB.DB, cache.NewMemoryBalanceCache(time.Minute))
	f := seed(t, testDB.DB, "ORD-5001")
	lineID := f.order.Lines[0].ID
	ctx := context.Background()

	initiated, err := svc.returns.Initiate(ctx, lineID, apptrade.InitiateReturnRequest{
		ReturnQty:      2,
		ReasonCategory: string(trade.ReasonFitSize),
		Resolution:     "refund",
		Actor:          "cs@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "requested", initiated.Status)

	customer, err := persistence.NewGormCustomerRepository(testDB.DB).FindByID(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, customer.ReturnCount)

	_, err = svc.returns.SchedulePickup(ctx, lineID, apptrade.SchedulePickupRequest{
		PickupType: "scheduled", Courier: "Delhivery", AWB: "AWB123", Actor: "ops",
	})
	require.NoError(t, err)
	_, err = svc.returns.MarkInTransit(ctx, lineID, apptrade.MarkInTransitRequest{Actor: "ops"})
	require.NoError(t, err)

	received, err := svc.returns.Receive(ctx, lineID, apptrade.ReceiveRequest{Condition: "good", Actor: "warehouse"})
	require.NoError(t, err)
	require.NotNil(t, received.QCItemID)

	decision, err := svc.qc.Decide(ctx, *received.QCItemID, appqc.DecideRequest{Action: "approve", Actor: "inspector"})
	require.NoError(t, err)
	assert.True(t, decision.LineCascaded)

	balance, err := svc.balances.GetBalance(ctx, f.sku.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, balance.Balance)

	// Undo restores the queue item and reverses the restock
	undo, err := svc.qc.Undo(ctx, *received.QCItemID, "inspector")
	require.NoError(t, err)
	assert.True(t, undo.LineReverted)

	balance, err = svc.balances.GetBalance(ctx, f.sku.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Balance)

	_, err = svc.qc.Decide(ctx, *received.QCItemID, appqc.DecideRequest{Action: "approve", Actor: "inspector"})
	require.NoError(t, err)

	_, err = svc.returns.Complete(ctx, lineID, "cs@example.com")
	assert.ErrorIs(t, err, trade.ErrRefundNotCompleted)

	refund, err := svc.returns.ProcessRefund(ctx, lineID, apptrade.ProcessRefundRequest{
		Gross:      decimal.NewFromInt(4800),
		Deductions: decimal.NewFromInt(100),
		Method:     "bank_transfer",
		Actor:      "finance",
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(4700).Equal(refund.NetAmount))

	_, err = svc.returns.CompleteRefund(ctx, lineID, apptrade.CompleteRefundRequest{Reference: "UTR-881", Actor: "finance"})
	require.NoError(t, err)

	done, err := svc.returns.Complete(ctx, lineID, "cs@example.com")
	require.NoError(t, err)
	assert.Equal(t, "complete", done.Status)

	line, err := svc.returns.GetLine(ctx, lineID)
	require.NoError(t, err)
	assert.Equal(t, "complete", line.Status)

	counts, err := svc.outbox.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Positive(t, counts[shared.OutboxStatusPending])
}

func TestReturnLifecycle_ExchangeAndCancel(t *testing.T) {
	skipShort(t)

	testDB := NewTestDB(t)
	svc := newServices(testDB.DB, cache.NewMemoryBalanceCache(time.Minute))
	f := seed(t, testDB.DB, "ORD-5002")
	lineID := f.order.Lines[0].ID
	ctx := context.Background()

	_, err := svc.returns.Initiate(ctx, lineID, apptrade.InitiateReturnRequest{
		ReturnQty:      1,
		ReasonCategory: string(trade.ReasonFitSize),
		Resolution:     "exchange",
		ExchangeSKUID:  &f.alt.ID,
		Actor:          "cs@example.com",
	})
	require.NoError(t, err)

	exchange, err := svc.exchanges.CreateExchangeOrder(ctx, lineID, apptrade.CreateExchangeOrderRequest{
		ExchangeSKUID: f.alt.ID, ExchangeQty: 1, Actor: "cs@example.com",
	})
	require.NoError(t, err)
	assert.Contains(t, exchange.OrderNumber, "ORD-5002-EXC-")
	assert.True(t, decimal.NewFromInt(200).Equal(exchange.PriceDiff))

	_, err = svc.exchanges.CreateExchangeOrder(ctx, lineID, apptrade.CreateExchangeOrderRequest{
		ExchangeSKUID: f.alt.ID, ExchangeQty: 1, Actor: "cs@example.com",
	})
	assert.ErrorIs(t, err, trade.ErrExchangeAlreadyCreated)

	customer, err := persistence.NewGormCustomerRepository(testDB.DB).FindByID(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, customer.ExchangeCount)

	cancelled, err := svc.returns.Cancel(ctx, lineID, apptrade.CancelReturnRequest{Reason: "customer kept item", Actor: "cs@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	customer, err = persistence.NewGormCustomerRepository(testDB.DB).FindByID(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, customer.ReturnCount)
}

func TestBalanceAdjustments_RejectNegative(t *testing.T) {
	skipShort(t)

	testDB := NewTestDB(t)
	svc := newServices(testDB.DB, cache.NewMemoryBalanceCache(time.Minute))
	f := seed(t, testDB.DB, "ORD-5003")
	ctx := context.Background()

	_, err := svc.balances.RecordAdjustment(ctx, appinventory.AdjustmentRequest{
		SKUID: f.sku.ID, Direction: "inward", Quantity: 3, Actor: "stock",
	})
	require.NoError(t, err)

	_, err = svc.balances.RecordAdjustment(ctx, appinventory.AdjustmentRequest{
		SKUID: f.sku.ID, Direction: "outward", Quantity: 5, Actor: "stock",
	})
	require.Error(t, err)

	balances, err := svc.balances.GetBalances(ctx, []uuid.UUID{f.sku.ID, f.alt.ID})
	require.NoError(t, err)
	require.Len(t, balances, 2)
	byID := map[uuid.UUID]int{}
	for _, b := range balances {
		byID[b.SKUID] = b.Balance
	}
	assert.Equal(t, 3, byID[f.sku.ID])
	assert.Equal(t, 0, byID[f.alt.ID])
}

func TestOrderRepository_ExchangeUniqueConstraints(t *testing.T) {
	skipShort(t)

	testDB := NewTestDB(t)
	f := seed(t, testDB.DB, "ORD-5004")
	orders := persistence.NewGormOrderRepository(testDB.DB)
	ctx := context.Background()

	exchangeLine := func() *trade.OrderLine {
		line := f.order.Lines[0]
		line.Return.Status = trade.ReturnStatusReceived
		line.Return.Qty = 1
		line.Return.Resolution = trade.Resolution{Kind: trade.ResolutionExchange}
		line.Return.Exchange = trade.ExchangeDetails{}
		return &line
	}

	first, _, err := trade.NewExchangeOrder(f.order, exchangeLine(), f.alt.ID, f.alt.Price, 1, "ops")
	require.NoError(t, err)
	require.NoError(t, orders.Create(ctx, first))

	t.Run("second exchange for the line", func(t *testing.T) {
		again, _, err := trade.NewExchangeOrder(f.order, exchangeLine(), f.alt.ID, f.alt.Price, 1, "ops")
		require.NoError(t, err)
		again.OrderNumber += "-B"

		err = orders.Create(ctx, again)
		assert.ErrorIs(t, err, trade.ErrExchangeAlreadyCreated)
	})

	t.Run("order number collision is not an exchange duplicate", func(t *testing.T) {
		clash, err := trade.NewOrder(first.OrderNumber, f.customer.ID)
		require.NoError(t, err)
		_, err = clash.AddLine(f.sku.ID, 1, f.sku.Price)
		require.NoError(t, err)

		err = orders.Create(ctx, clash)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		assert.NotErrorIs(t, err, trade.ErrExchangeAlreadyCreated)
	})
}
