package trade

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines persistence for orders
type OrderRepository interface {
	// FindByID finds an order by its ID, without lines
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByExchangeForLine finds the exchange order raised for a return line
	FindByExchangeForLine(ctx context.Context, lineID uuid.UUID) (*Order, error)

	// Create inserts an order together with its lines
	Create(ctx context.Context, order *Order) error
}

// OrderLineRepository defines persistence for order lines and their return state
type OrderLineRepository interface {
	// FindByID finds an order line by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*OrderLine, error)

	// SaveReturnIfUnchanged writes the line's return fields only if the
	// stored return status and version still equal the ones the line was
	// loaded with. A status that moved on returns ErrWrongStatus; any other
	// concurrent write returns shared.ErrConcurrencyConflict.
	SaveReturnIfUnchanged(ctx context.Context, line *OrderLine, expected ReturnStatus, version int) error
}
