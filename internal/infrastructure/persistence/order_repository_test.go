package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormOrderRepository_FindByID(t *testing.T) {
	db := newSQLiteDB(t)
	seed := seedOrder(t, db)
	repo := NewGormOrderRepository(db)

	t.Run("finds stored order", func(t *testing.T) {
		order, err := repo.FindByID(context.Background(), seed.order.ID)
		require.NoError(t, err)
		assert.Equal(t, "ORD-2001", order.OrderNumber)
		assert.Equal(t, seed.customer.ID, order.CustomerID)
		assert.True(t, decimal.NewFromInt(3600).Equal(order.TotalAmount))
	})

	t.Run("missing order maps to ORDER_NOT_FOUND", func(t *testing.T) {
		_, err := repo.FindByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, trade.ErrOrderNotFound)
	})
}

func TestGormOrderRepository_ExchangeOrders(t *testing.T) {
	db := newSQLiteDB(t)
	seed := seedOrder(t, db)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	exchangeLine := func() *trade.OrderLine {
		line, err := NewGormOrderLineRepository(db).FindByID(ctx, seed.lineID)
		require.NoError(t, err)
		line.Return.Status = trade.ReturnStatusReceived
		line.Return.Qty = 1
		line.Return.Resolution = trade.Resolution{Kind: trade.ResolutionExchange}
		return line
	}

	exchange, _, err := trade.NewExchangeOrder(seed.order, exchangeLine(), seed.sku.ID, seed.sku.Price, 1, "ops")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, exchange))

	t.Run("finds exchange order with its line", func(t *testing.T) {
		found, err := repo.FindByExchangeForLine(ctx, seed.lineID)
		require.NoError(t, err)
		assert.Equal(t, exchange.ID, found.ID)
		assert.True(t, found.IsExchange)
		require.Len(t, found.Lines, 1)
		assert.Equal(t, seed.sku.ID, found.Lines[0].SKUID)
	})

	t.Run("second exchange order for the line is rejected", func(t *testing.T) {
		again, _, err := trade.NewExchangeOrder(seed.order, exchangeLine(), seed.sku.ID, seed.sku.Price, 1, "ops")
		require.NoError(t, err)
		again.OrderNumber = again.OrderNumber + "-B"

		err = repo.Create(ctx, again)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestGormOrderLineRepository_SaveReturnIfUnchanged(t *testing.T) {
	refundParams := trade.InitiateReturnParams{
		Qty:            1,
		ReasonCategory: trade.ReasonProductQuality,
		Resolution:     trade.Resolution{Kind: trade.ResolutionRefund},
		Actor:          "cs@example.com",
	}

	// receivedLine initiates and receives the seeded line through the repository
	receivedLine := func(t *testing.T, repo *GormOrderLineRepository, lineID uuid.UUID) {
		t.Helper()
		ctx := context.Background()

		line, err := repo.FindByID(ctx, lineID)
		require.NoError(t, err)
		version := line.GetVersion()
		require.NoError(t, line.InitiateReturn(refundParams))
		require.NoError(t, repo.SaveReturnIfUnchanged(ctx, line, trade.ReturnStatusNone, version))

		line, err = repo.FindByID(ctx, lineID)
		require.NoError(t, err)
		version = line.GetVersion()
		require.NoError(t, line.Receive(trade.ConditionGood, "", "warehouse"))
		require.NoError(t, repo.SaveReturnIfUnchanged(ctx, line, trade.ReturnStatusRequested, version))
	}

	t.Run("moves the line when status and version match", func(t *testing.T) {
		db := newSQLiteDB(t)
		seed := seedOrder(t, db)
		repo := NewGormOrderLineRepository(db)
		ctx := context.Background()

		line, err := repo.FindByID(ctx, seed.lineID)
		require.NoError(t, err)
		assert.Equal(t, trade.ReturnStatusNone, line.Return.Status)
		version := line.GetVersion()

		require.NoError(t, line.InitiateReturn(trade.InitiateReturnParams{
			Qty:            1,
			ReasonCategory: trade.ReasonFitSize,
			Resolution:     trade.Resolution{Kind: trade.ResolutionRefund},
			Actor:          "cs@example.com",
		}))
		require.NoError(t, repo.SaveReturnIfUnchanged(ctx, line, trade.ReturnStatusNone, version))

		stored, err := repo.FindByID(ctx, seed.lineID)
		require.NoError(t, err)
		assert.Equal(t, trade.ReturnStatusRequested, stored.Return.Status)
		assert.Equal(t, 1, stored.Return.Qty)
		assert.Equal(t, trade.ResolutionRefund, stored.Return.Resolution.Kind)
		assert.Equal(t, "cs@example.com", stored.Return.RequestedBy)
		assert.Equal(t, version+1, stored.GetVersion())
	})

	t.Run("lost status race reports WRONG_STATUS", func(t *testing.T) {
		db := newSQLiteDB(t)
		seed := seedOrder(t, db)
		repo := NewGormOrderLineRepository(db)
		ctx := context.Background()

		first, err := repo.FindByID(ctx, seed.lineID)
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, seed.lineID)
		require.NoError(t, err)
		version := first.GetVersion()

		require.NoError(t, first.InitiateReturn(refundParams))
		require.NoError(t, second.InitiateReturn(refundParams))

		require.NoError(t, repo.SaveReturnIfUnchanged(ctx, first, trade.ReturnStatusNone, version))
		err = repo.SaveReturnIfUnchanged(ctx, second, trade.ReturnStatusNone, version)
		assert.ErrorIs(t, err, trade.ErrWrongStatus)
	})

	t.Run("stale write does not clobber a refund saved in between", func(t *testing.T) {
		db := newSQLiteDB(t)
		seed := seedOrder(t, db)
		repo := NewGormOrderLineRepository(db)
		ctx := context.Background()
		receivedLine(t, repo, seed.lineID)

		stale, err := repo.FindByID(ctx, seed.lineID)
		require.NoError(t, err)
		staleVersion := stale.GetVersion()

		fresh, err := repo.FindByID(ctx, seed.lineID)
		require.NoError(t, err)
		freshVersion := fresh.GetVersion()
		_, err = fresh.RecordRefund(trade.RefundInput{
			Gross:  decimal.NewFromInt(1800),
			Method: trade.RefundBankTransfer,
		}, "finance")
		require.NoError(t, err)
		require.NoError(t, repo.SaveReturnIfUnchanged(ctx, fresh, trade.ReturnStatusReceived, freshVersion))

		require.True(t, stale.ApplyQCResult(trade.QCResultApproved, "inspector"))
		err = repo.SaveReturnIfUnchanged(ctx, stale, trade.ReturnStatusReceived, staleVersion)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		stored, err := repo.FindByID(ctx, seed.lineID)
		require.NoError(t, err)
		assert.Equal(t, trade.ReturnStatusReceived, stored.Return.Status)
		require.NotNil(t, stored.Return.Refund.ProcessedAt)
		assert.True(t, decimal.NewFromInt(1800).Equal(stored.Return.Refund.Net))
	})

	t.Run("stale notes edit does not unlink an exchange order", func(t *testing.T) {
		db := newSQLiteDB(t)
		seed := seedOrder(t, db)
		repo := NewGormOrderLineRepository(db)
		ctx := context.Background()

		line, err := repo.FindByID(ctx, seed.lineID)
		require.NoError(t, err)
		version := line.GetVersion()
		require.NoError(t, line.InitiateReturn(trade.InitiateReturnParams{
			Qty:            1,
			ReasonCategory: trade.ReasonFitSize,
			Resolution:     trade.Resolution{Kind: trade.ResolutionExchange},
		}))
		require.NoError(t, repo.SaveReturnIfUnchanged(ctx, line, trade.ReturnStatusNone, version))

		stale, err := repo.FindByID(ctx, seed.lineID)
		require.NoError(t, err)
		staleVersion := stale.GetVersion()

		linked, err := repo.FindByID(ctx, seed.lineID)
		require.NoError(t, err)
		require.NoError(t, linked.LinkExchangeOrder(uuid.New(), seed.sku.ID, decimal.Zero))
		require.NoError(t, repo.SaveReturnIfUnchanged(ctx, linked, trade.ReturnStatusRequested, staleVersion))

		require.NoError(t, stale.UpdateNotes("customer called"))
		err = repo.SaveReturnIfUnchanged(ctx, stale, trade.ReturnStatusRequested, staleVersion)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		stored, err := repo.FindByID(ctx, seed.lineID)
		require.NoError(t, err)
		assert.Equal(t, linked.Return.Exchange.OrderID, stored.Return.Exchange.OrderID)
		assert.Empty(t, stored.Return.Notes)
	})

	t.Run("guards on status and version in the update", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormOrderLineRepository(gormDB)

		order, err := trade.NewOrder("ORD-9", uuid.New())
		require.NoError(t, err)
		line, err := order.AddLine(uuid.New(), 1, decimal.NewFromInt(500))
		require.NoError(t, err)
		line.Return.Status = trade.ReturnStatusInTransit

		mock.ExpectExec(`UPDATE "order_lines" SET .* WHERE return_status = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT .* FROM "order_lines" WHERE id = \$\d+`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "return_status"}).AddRow(line.ID.String(), "in_transit"))

		err = repo.SaveReturnIfUnchanged(context.Background(), line, trade.ReturnStatusPickupScheduled, 3)
		assert.ErrorIs(t, err, trade.ErrWrongStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing line maps to LINE_NOT_FOUND", func(t *testing.T) {
		db := newSQLiteDB(t)
		_, err := NewGormOrderLineRepository(db).FindByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, trade.ErrLineNotFound)
	})
}
