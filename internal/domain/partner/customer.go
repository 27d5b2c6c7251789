package partner

import (
	"strings"

	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
)

// Customer is the buyer of an order. Return and exchange counts are
// denormalized here and kept in lock-step with return-line transitions.
type Customer struct {
	shared.BaseAggregateRoot
	Name          string
	Email         string
	ReturnCount   int
	ExchangeCount int
}

// NewCustomer creates a new customer
func NewCustomer(name, email string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             strings.ToLower(strings.TrimSpace(email)),
	}, nil
}
