package trade

import (
	"fmt"

	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ResolutionKind is how a return is settled
type ResolutionKind string

const (
	ResolutionRefund   ResolutionKind = "refund"
	ResolutionExchange ResolutionKind = "exchange"
	ResolutionRejected ResolutionKind = "rejected"
)

// IsValid checks if the kind is valid
func (k ResolutionKind) IsValid() bool {
	switch k {
	case ResolutionRefund, ResolutionExchange, ResolutionRejected:
		return true
	}
	return false
}

// ExchangeValue records how the replacement compares in value to the
// returned goods. It is only meaningful once the exchange order exists.
type ExchangeValue string

const (
	ExchangeValueUnknown ExchangeValue = ""
	ExchangeValueSame    ExchangeValue = "same"
	ExchangeValueUp      ExchangeValue = "up"
	ExchangeValueDown    ExchangeValue = "down"
)

// ExchangeValueFromDiff classifies a price difference
func ExchangeValueFromDiff(diff decimal.Decimal) ExchangeValue {
	switch diff.Sign() {
	case 1:
		return ExchangeValueUp
	case -1:
		return ExchangeValueDown
	}
	return ExchangeValueSame
}

// Resolution is the single discriminated settlement of a return.
// Value is set only for exchanges.
type Resolution struct {
	Kind  ResolutionKind
	Value ExchangeValue
}

// ParseResolution validates a resolution kind
func ParseResolution(kind string) (Resolution, error) {
	k := ResolutionKind(kind)
	if !k.IsValid() {
		return Resolution{}, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid resolution %q", kind))
	}
	return Resolution{Kind: k}, nil
}

// IsZero reports whether no resolution has been chosen
func (r Resolution) IsZero() bool {
	return r.Kind == ""
}

// IsRefund reports whether the return settles by refund
func (r Resolution) IsRefund() bool {
	return r.Kind == ResolutionRefund
}

// IsExchange reports whether the return settles by exchange
func (r Resolution) IsExchange() bool {
	return r.Kind == ResolutionExchange
}

// String returns e.g. "refund" or "exchange:up"
func (r Resolution) String() string {
	if r.Kind == ResolutionExchange && r.Value != ExchangeValueUnknown {
		return string(r.Kind) + ":" + string(r.Value)
	}
	return string(r.Kind)
}
