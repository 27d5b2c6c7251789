package qc

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/application/mocks"
	apptrade "github.com/shantum/COH-ERP2-sub001/internal/application/trade"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/catalog"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/inventory"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/qc"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type qcFixture struct {
	scope *mocks.Scope
	svc   *Service
	sku   *catalog.SKU
	line  *trade.OrderLine
	item  *qc.QueueItem
}

func newQCFixture(t *testing.T, lineStatus trade.ReturnStatus) *qcFixture {
	t.Helper()
	scope := mocks.NewScope()

	sku, err := catalog.NewSKU("SAREE-RED", "Saree", decimal.NewFromInt(4000))
	require.NoError(t, err)
	order, err := trade.NewOrder("ORD-55", uuid.New())
	require.NoError(t, err)
	line, err := order.AddLine(sku.ID, 1, decimal.NewFromInt(4000))
	require.NoError(t, err)
	line.Return = trade.ReturnInfo{Status: lineStatus, Qty: 1, Resolution: trade.Resolution{Kind: trade.ResolutionRefund}}

	item, err := qc.NewQueueItemForReturnLine(line.ID, sku.ID, 1, "good")
	require.NoError(t, err)

	scope.QCItems.On("FindByID", mock.Anything, item.ID).Return(item, nil).Maybe()
	scope.Lines.On("FindByID", mock.Anything, line.ID).Return(line, nil).Maybe()
	scope.SKUs.On("FindByID", mock.Anything, sku.ID).Return(sku, nil).Maybe()

	svc := NewService(scope, scope.QCItems, apptrade.NewCounterMaintainer())
	return &qcFixture{scope: scope, svc: svc, sku: sku, line: line, item: item}
}

func ledgerEntry(skuID uuid.UUID, dir inventory.Direction, reason inventory.ReasonCode, ref uuid.UUID) interface{} {
	return mock.MatchedBy(func(e *inventory.InventoryTransaction) bool {
		return e.SKUID == skuID && e.Direction == dir && e.Reason == reason &&
			e.Quantity == 1 && e.ReferenceID != nil && *e.ReferenceID == ref
	})
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	de, ok := shared.IsDomainError(err)
	require.True(t, ok, "expected domain error, got %v", err)
	assert.Equal(t, code, de.Code)
}

func TestService_Decide_Approve(t *testing.T) {
	f := newQCFixture(t, trade.ReturnStatusReceived)
	f.scope.Ledger.On("Create", mock.Anything,
		ledgerEntry(f.sku.ID, inventory.DirectionInward, inventory.ReasonReturnRestock, f.item.ID)).Return(nil).Once()
	f.scope.QCItems.On("SaveIfStatus", mock.Anything, f.item, qc.ItemStatusPending).Return(nil).Once()
	f.scope.Lines.On("SaveReturnIfUnchanged", mock.Anything, f.line, trade.ReturnStatusReceived, mock.Anything).Return(nil).Once()

	resp, err := f.svc.Decide(context.Background(), f.item.ID, DecideRequest{Action: "approve", Actor: "qc-1"})
	require.NoError(t, err)
	assert.Equal(t, "SAREE-RED", resp.SKUCode)
	assert.Equal(t, "approved", resp.Status)
	assert.True(t, resp.LineCascaded)
	assert.Equal(t, trade.ReturnStatusQCInspected, f.line.Return.Status)
	assert.Equal(t, trade.QCResultApproved, f.line.Return.QCResult)
	assert.Equal(t, []string{trade.EventTypeReturnQCInspected, qc.EventTypeQCDecided}, f.scope.Recorder.Types())
	f.scope.WriteOffs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.scope.AssertExpectations(t)
}

func TestService_Decide_WriteOff(t *testing.T) {
	f := newQCFixture(t, trade.ReturnStatusReceived)
	f.scope.Ledger.On("Create", mock.Anything,
		ledgerEntry(f.sku.ID, inventory.DirectionOutward, inventory.ReasonWriteOff, f.item.ID)).Return(nil).Once()
	f.scope.WriteOffs.On("Create", mock.Anything, mock.MatchedBy(func(l *qc.WriteOffLog) bool {
		return l.Reason == qc.WriteOffStained && *l.QueueItemID == f.item.ID && l.Actor == "qc-1"
	})).Return(nil).Once()
	f.scope.SKUs.On("AdjustWriteOffCount", mock.Anything, f.sku.ID, 1).Return(nil).Once()
	f.scope.QCItems.On("SaveIfStatus", mock.Anything, f.item, qc.ItemStatusPending).Return(nil).Once()
	f.scope.Lines.On("SaveReturnIfUnchanged", mock.Anything, f.line, trade.ReturnStatusReceived, mock.Anything).Return(nil).Once()

	resp, err := f.svc.Decide(context.Background(), f.item.ID, DecideRequest{
		Action: "write_off", WriteOffReason: "stained", Comments: "oil mark", Actor: "qc-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "written_off", resp.Status)
	assert.Equal(t, trade.QCResultWrittenOff, f.line.Return.QCResult)
	f.scope.AssertExpectations(t)
}

func TestService_Decide_SkipsLineNotReceived(t *testing.T) {
	f := newQCFixture(t, trade.ReturnStatusCancelled)
	f.scope.Ledger.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.scope.QCItems.On("SaveIfStatus", mock.Anything, f.item, qc.ItemStatusPending).Return(nil)

	resp, err := f.svc.Decide(context.Background(), f.item.ID, DecideRequest{Action: "approve"})
	require.NoError(t, err)
	assert.False(t, resp.LineCascaded)
	assert.Equal(t, trade.ReturnStatusCancelled, f.line.Return.Status)
	f.scope.Lines.AssertNotCalled(t, "SaveReturnIfUnchanged", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Decide_LineMovedOnBeforeCascade(t *testing.T) {
	f := newQCFixture(t, trade.ReturnStatusReceived)
	f.scope.Ledger.On("Create", mock.Anything,
		ledgerEntry(f.sku.ID, inventory.DirectionInward, inventory.ReasonReturnRestock, f.item.ID)).Return(nil).Once()
	f.scope.QCItems.On("SaveIfStatus", mock.Anything, f.item, qc.ItemStatusPending).Return(nil).Once()
	// a cancel committed between the read and the guarded write
	f.scope.Lines.On("SaveReturnIfUnchanged", mock.Anything, f.line, trade.ReturnStatusReceived, f.line.GetVersion()).
		Return(trade.ErrWrongStatus).Once()

	resp, err := f.svc.Decide(context.Background(), f.item.ID, DecideRequest{Action: "approve", Actor: "qc-1"})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	assert.False(t, resp.LineCascaded)
	assert.Equal(t, []string{qc.EventTypeQCDecided}, f.scope.Recorder.Types())
	f.scope.AssertExpectations(t)
}

func TestService_Decide_ConcurrentLineEditFails(t *testing.T) {
	f := newQCFixture(t, trade.ReturnStatusReceived)
	f.scope.Ledger.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.scope.QCItems.On("SaveIfStatus", mock.Anything, f.item, qc.ItemStatusPending).Return(nil)
	f.scope.Lines.On("SaveReturnIfUnchanged", mock.Anything, f.line, trade.ReturnStatusReceived, mock.Anything).
		Return(shared.ErrConcurrencyConflict).Once()

	_, err := f.svc.Decide(context.Background(), f.item.ID, DecideRequest{Action: "approve"})
	assertCode(t, err, shared.ErrConcurrencyConflict.Code)
}

func TestService_Decide_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		f := newQCFixture(t, trade.ReturnStatusReceived)
		missing := uuid.New()
		f.scope.QCItems.On("FindByID", mock.Anything, missing).Return(nil, qc.ErrItemNotFound)

		_, err := f.svc.Decide(ctx, missing, DecideRequest{Action: "approve"})
		assertCode(t, err, "QC_ITEM_NOT_FOUND")
	})

	t.Run("already processed", func(t *testing.T) {
		f := newQCFixture(t, trade.ReturnStatusReceived)
		require.NoError(t, f.item.Approve("qc-0", ""))

		_, err := f.svc.Decide(ctx, f.item.ID, DecideRequest{Action: "write_off", WriteOffReason: "damaged"})
		assertCode(t, err, "QC_ITEM_NOT_PENDING")
		f.scope.Ledger.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("write-off without reason", func(t *testing.T) {
		f := newQCFixture(t, trade.ReturnStatusReceived)
		_, err := f.svc.Decide(ctx, f.item.ID, DecideRequest{Action: "write_off"})
		assertCode(t, err, "INVALID_INPUT")
	})

	t.Run("lost race", func(t *testing.T) {
		f := newQCFixture(t, trade.ReturnStatusReceived)
		f.scope.Ledger.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.scope.QCItems.On("SaveIfStatus", mock.Anything, mock.Anything, mock.Anything).Return(shared.ErrConcurrencyConflict)

		_, err := f.svc.Decide(ctx, f.item.ID, DecideRequest{Action: "approve"})
		assertCode(t, err, "QC_ITEM_NOT_PENDING")
	})

	t.Run("ledger failure", func(t *testing.T) {
		f := newQCFixture(t, trade.ReturnStatusReceived)
		f.scope.Ledger.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		_, err := f.svc.Decide(ctx, f.item.ID, DecideRequest{Action: "approve"})
		assert.ErrorContains(t, err, "disk full")
		f.scope.QCItems.AssertNotCalled(t, "SaveIfStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_Undo(t *testing.T) {
	ctx := context.Background()

	t.Run("write-off", func(t *testing.T) {
		f := newQCFixture(t, trade.ReturnStatusQCInspected)
		require.NoError(t, f.item.WriteOff("qc-1", "", qc.WriteOffDamaged))
		f.item.ClearDomainEvents()

		f.scope.Ledger.On("Create", mock.Anything,
			ledgerEntry(f.sku.ID, inventory.DirectionInward, inventory.ReasonQCReversal, f.item.ID)).Return(nil).Once()
		f.scope.SKUs.On("AdjustWriteOffCount", mock.Anything, f.sku.ID, -1).Return(nil).Once()
		f.scope.QCItems.On("SaveIfStatus", mock.Anything, f.item, qc.ItemStatusWrittenOff).Return(nil).Once()
		f.scope.Lines.On("SaveReturnIfUnchanged", mock.Anything, f.line, trade.ReturnStatusQCInspected, mock.Anything).Return(nil).Once()

		resp, err := f.svc.Undo(ctx, f.item.ID, "qc-lead")
		require.NoError(t, err)
		assert.Equal(t, "written_off", resp.ReversedStatus)
		assert.Equal(t, "pending", resp.Status)
		assert.True(t, resp.LineReverted)
		assert.Equal(t, trade.ReturnStatusReceived, f.line.Return.Status)
		assert.Equal(t, []string{trade.EventTypeReturnQCReverted, qc.EventTypeQCDecisionReversed}, f.scope.Recorder.Types())
		f.scope.AssertExpectations(t)
	})

	t.Run("approval on a completed line", func(t *testing.T) {
		f := newQCFixture(t, trade.ReturnStatusComplete)
		require.NoError(t, f.item.Approve("qc-1", ""))

		f.scope.Ledger.On("Create", mock.Anything,
			ledgerEntry(f.sku.ID, inventory.DirectionOutward, inventory.ReasonQCReversal, f.item.ID)).Return(nil).Once()
		f.scope.QCItems.On("SaveIfStatus", mock.Anything, f.item, qc.ItemStatusApproved).Return(nil).Once()

		resp, err := f.svc.Undo(ctx, f.item.ID, "qc-lead")
		require.NoError(t, err)
		assert.False(t, resp.LineReverted)
		f.scope.SKUs.AssertNotCalled(t, "AdjustWriteOffCount", mock.Anything, mock.Anything, mock.Anything)
		f.scope.Lines.AssertNotCalled(t, "SaveReturnIfUnchanged", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("pending item", func(t *testing.T) {
		f := newQCFixture(t, trade.ReturnStatusReceived)
		_, err := f.svc.Undo(ctx, f.item.ID, "qc-lead")
		assertCode(t, err, "QC_ITEM_NOT_PROCESSED")
	})
}

func TestService_ReadModels(t *testing.T) {
	f := newQCFixture(t, trade.ReturnStatusReceived)

	got, err := f.svc.GetItem(context.Background(), f.item.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)
	assert.Equal(t, f.line.ID, *got.ReturnLineID)

	f.scope.QCItems.On("FindPending", mock.Anything, shared.Page{Limit: 10, Offset: 20}).
		Return([]qc.QueueItem{*f.item}, int64(21), nil)
	items, total, err := f.svc.ListPending(context.Background(), shared.Page{Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(21), total)
	assert.Len(t, items, 1)
}
