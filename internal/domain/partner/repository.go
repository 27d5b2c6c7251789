package partner

import (
	"context"

	"github.com/google/uuid"
)

// CustomerRepository defines persistence for customers and their counters
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// AdjustReturnCount atomically adds delta to the customer's return count
	AdjustReturnCount(ctx context.Context, id uuid.UUID, delta int) error

	// AdjustExchangeCount atomically adds delta to the customer's exchange count
	AdjustExchangeCount(ctx context.Context, id uuid.UUID, delta int) error
}
