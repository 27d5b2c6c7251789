package trade

import (
	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExchangePriceDiff is what the customer owes (positive) or is owed
// (negative) for the replacement: new price × exchangeQty − unitPrice × returnQty.
func ExchangePriceDiff(line *OrderLine, exchangePrice decimal.Decimal, exchangeQty int) decimal.Decimal {
	replacement := exchangePrice.Mul(decimal.NewFromInt(int64(exchangeQty)))
	return replacement.Sub(line.ReturnedValue())
}

// NewExchangeOrder builds the replacement order for a return line: one line
// for the exchange SKU at its current price, linked to the original order.
// The original line is stamped with the new order and price difference.
func NewExchangeOrder(original *Order, line *OrderLine, exchangeSKUID uuid.UUID, exchangePrice decimal.Decimal, exchangeQty int, actor string) (*Order, decimal.Decimal, error) {
	if line.OrderID != original.ID {
		return nil, decimal.Zero, shared.NewDomainError("INVALID_ORDER", "Line does not belong to the original order")
	}
	if exchangeQty < 1 {
		return nil, decimal.Zero, shared.NewDomainError(CodeInvalidQuantity, "Exchange quantity must be positive")
	}
	if err := line.CanCreateExchange(); err != nil {
		return nil, decimal.Zero, err
	}

	order, err := NewOrder(ExchangeOrderNumber(original, line.ID), original.CustomerID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	originalID, lineID := original.ID, line.ID
	order.IsExchange = true
	order.OriginalOrderID = &originalID
	order.ExchangeForLineID = &lineID
	if _, err := order.AddLine(exchangeSKUID, exchangeQty, exchangePrice); err != nil {
		return nil, decimal.Zero, err
	}

	diff := ExchangePriceDiff(line, exchangePrice, exchangeQty)
	if err := line.LinkExchangeOrder(order.ID, exchangeSKUID, diff); err != nil {
		return nil, decimal.Zero, err
	}

	order.AddDomainEvent(NewExchangeOrderCreatedEvent(order, line, diff, actor))
	return order, diff, nil
}
