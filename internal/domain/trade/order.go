package trade

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Order is a customer order. Exchange orders are regular orders flagged as
// exchanges and linked back to the return line they replace.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber       string
	CustomerID        uuid.UUID
	IsExchange        bool
	OriginalOrderID   *uuid.UUID
	ExchangeForLineID *uuid.UUID
	TotalAmount       decimal.Decimal
	Lines             []OrderLine
}

// NewOrder creates an empty order
func NewOrder(orderNumber string, customerID uuid.UUID) (*Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		TotalAmount:       decimal.Zero,
		Lines:             make([]OrderLine, 0, 1),
	}, nil
}

// AddLine appends a line for qty units of a SKU at unitPrice
func (o *Order) AddLine(skuID uuid.UUID, qty int, unitPrice decimal.Decimal) (*OrderLine, error) {
	if skuID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU ID cannot be empty")
	}
	if qty <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	o.Lines = append(o.Lines, OrderLine{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           o.ID,
		SKUID:             skuID,
		Qty:               qty,
		UnitPrice:         unitPrice,
	})
	o.recalculateTotal()
	return &o.Lines[len(o.Lines)-1], nil
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for i := range o.Lines {
		total = total.Add(o.Lines[i].LineValue())
	}
	o.TotalAmount = total
}

// ExchangeOrderNumber derives the replacement order number from the original
// order and the line being exchanged.
func ExchangeOrderNumber(original *Order, lineID uuid.UUID) string {
	return fmt.Sprintf("%s-EXC-%s", original.OrderNumber, strings.ToUpper(lineID.String()[:8]))
}
