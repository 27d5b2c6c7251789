package catalog

import (
	"strings"

	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SKU is a sellable variant (product × colour × size) tracked as one
// inventory unit. Return and write-off counters are denormalized onto the SKU
// and maintained by the return lifecycle.
type SKU struct {
	shared.BaseAggregateRoot
	Code          string
	Name          string
	Price         decimal.Decimal
	ReturnCount   int
	WriteOffCount int
	IsActive      bool
}

// NewSKU creates a new active SKU
func NewSKU(code, name string, price decimal.Decimal) (*SKU, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "SKU code cannot be empty")
	}
	if len(code) > 64 {
		return nil, shared.NewDomainError("INVALID_CODE", "SKU code cannot exceed 64 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "SKU name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "SKU price cannot be negative")
	}

	return &SKU{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Price:             price,
		IsActive:          true,
	}, nil
}

// LineValue is the current price of qty units
func (s *SKU) LineValue(qty int) decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(int64(qty)))
}
