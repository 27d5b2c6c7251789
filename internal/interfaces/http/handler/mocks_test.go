package handler

import (
	"context"

	"github.com/google/uuid"
	appinventory "github.com/shantum/COH-ERP2-sub001/internal/application/inventory"
	appqc "github.com/shantum/COH-ERP2-sub001/internal/application/qc"
	apptrade "github.com/shantum/COH-ERP2-sub001/internal/application/trade"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type mockReturns struct {
	mock.Mock
}

func (m *mockReturns) Initiate(ctx context.Context, lineID uuid.UUID, req apptrade.InitiateReturnRequest) (*apptrade.InitiateReturnResponse, error) {
	args := m.Called(ctx, lineID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apptrade.InitiateReturnResponse), args.Error(1)
}

func (m *mockReturns) SchedulePickup(ctx context.Context, lineID uuid.UUID, req apptrade.SchedulePickupRequest) (*apptrade.PickupResponse, error) {
	args := m.Called(ctx, lineID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apptrade.PickupResponse), args.Error(1)
}

func (m *mockReturns) MarkInTransit(ctx context.Context, lineID uuid.UUID, req apptrade.MarkInTransitRequest) (*apptrade.TransitionResponse, error) {
	args := m.Called(ctx, lineID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apptrade.TransitionResponse), args.Error(1)
}

func (m *mockReturns) Receive(ctx context.Context, lineID uuid.UUID, req apptrade.ReceiveRequest) (*apptrade.ReceiveResponse, error) {
	args := m.Called(ctx, lineID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apptrade.ReceiveResponse), args.Error(1)
}

func (m *mockReturns) Complete(ctx context.Context, lineID uuid.UUID, actor string) (*apptrade.TransitionResponse, error) {
	args := m.Called(ctx, lineID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apptrade.TransitionResponse), args.Error(1)
}

func (m *mockReturns) Cancel(ctx context.Context, lineID uuid.UUID, req apptrade.CancelReturnRequest) (*apptrade.TransitionResponse, error) {
	args := m.Called(ctx, lineID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apptrade.TransitionResponse), args.Error(1)
}

func (m *mockReturns) UpdateNotes(ctx context.Context, lineID uuid.UUID, req apptrade.UpdateNotesRequest) (*apptrade.ReturnLineResponse, error) {
	args := m.Called(ctx, lineID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apptrade.ReturnLineResponse), args.Error(1)
}

func (m *mockReturns) ProcessRefund(ctx context.Context, lineID uuid.UUID, req apptrade.ProcessRefundRequest) (*apptrade.RefundResponse, error) {
	args := m.Called(ctx, lineID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apptrade.RefundResponse), args.Error(1)
}

func (m *mockReturns) CompleteRefund(ctx context.Context, lineID uuid.UUID, req apptrade.CompleteRefundRequest) (*apptrade.RefundCompletionResponse, error) {
	args := m.Called(ctx, lineID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apptrade.RefundCompletionResponse), args.Error(1)
}

func (m *mockReturns) GetLine(ctx context.Context, lineID uuid.UUID) (*apptrade.ReturnLineResponse, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apptrade.ReturnLineResponse), args.Error(1)
}

type mockExchanges struct {
	mock.Mock
}

func (m *mockExchanges) CreateExchangeOrder(ctx context.Context, lineID uuid.UUID, req apptrade.CreateExchangeOrderRequest) (*apptrade.ExchangeOrderResponse, error) {
	args := m.Called(ctx, lineID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apptrade.ExchangeOrderResponse), args.Error(1)
}

type mockQC struct {
	mock.Mock
}

func (m *mockQC) Decide(ctx context.Context, itemID uuid.UUID, req appqc.DecideRequest) (*appqc.DecisionResponse, error) {
	args := m.Called(ctx, itemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appqc.DecisionResponse), args.Error(1)
}

func (m *mockQC) Undo(ctx context.Context, itemID uuid.UUID, actor string) (*appqc.UndoResponse, error) {
	args := m.Called(ctx, itemID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appqc.UndoResponse), args.Error(1)
}

func (m *mockQC) GetItem(ctx context.Context, itemID uuid.UUID) (*appqc.ItemResponse, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appqc.ItemResponse), args.Error(1)
}

func (m *mockQC) ListPending(ctx context.Context, page shared.Page) ([]appqc.ItemResponse, int64, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]appqc.ItemResponse), args.Get(1).(int64), args.Error(2)
}

type mockInventory struct {
	mock.Mock
}

func (m *mockInventory) GetBalance(ctx context.Context, skuID uuid.UUID) (*appinventory.BalanceResponse, error) {
	args := m.Called(ctx, skuID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appinventory.BalanceResponse), args.Error(1)
}

func (m *mockInventory) GetBalances(ctx context.Context, skuIDs []uuid.UUID) ([]appinventory.BalanceResponse, error) {
	args := m.Called(ctx, skuIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]appinventory.BalanceResponse), args.Error(1)
}

func (m *mockInventory) RecordAdjustment(ctx context.Context, req appinventory.AdjustmentRequest) (*appinventory.TransactionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appinventory.TransactionResponse), args.Error(1)
}

func (m *mockInventory) ListTransactions(ctx context.Context, skuID uuid.UUID, page shared.Page) ([]appinventory.TransactionResponse, int64, error) {
	args := m.Called(ctx, skuID, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]appinventory.TransactionResponse), args.Get(1).(int64), args.Error(2)
}

var (
	_ ReturnUseCases    = (*mockReturns)(nil)
	_ ExchangeUseCases  = (*mockExchanges)(nil)
	_ QCUseCases        = (*mockQC)(nil)
	_ InventoryUseCases = (*mockInventory)(nil)
)
