package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
)

// Direction is the sign of a stock movement
type Direction string

const (
	DirectionInward  Direction = "inward"
	DirectionOutward Direction = "outward"
)

// String returns the string representation of Direction
func (d Direction) String() string {
	return string(d)
}

// IsValid returns true if the direction is valid
func (d Direction) IsValid() bool {
	return d == DirectionInward || d == DirectionOutward
}

// Opposite returns the reversing direction
func (d Direction) Opposite() Direction {
	if d == DirectionInward {
		return DirectionOutward
	}
	return DirectionInward
}

// ReasonCode explains why stock moved
type ReasonCode string

const (
	// ReasonReturnRestock is stock put back after a passed QC inspection
	ReasonReturnRestock ReasonCode = "return_restock"
	// ReasonWriteOff is stock permanently removed after a failed QC inspection
	ReasonWriteOff ReasonCode = "write_off"
	// ReasonQCReversal reverses an earlier QC decision
	ReasonQCReversal ReasonCode = "qc_reversal"
	// ReasonAdjustment is a manual stock correction
	ReasonAdjustment ReasonCode = "adjustment"
)

// String returns the string representation of ReasonCode
func (r ReasonCode) String() string {
	return string(r)
}

// IsValid returns true if the reason code is valid
func (r ReasonCode) IsValid() bool {
	switch r {
	case ReasonReturnRestock, ReasonWriteOff, ReasonQCReversal, ReasonAdjustment:
		return true
	}
	return false
}

// InventoryTransaction is an immutable ledger entry. Quantity on hand is
// never stored; corrections are new entries in the opposite direction.
type InventoryTransaction struct {
	shared.BaseEntity
	SKUID       uuid.UUID
	Direction   Direction
	Quantity    int
	Reason      ReasonCode
	ReferenceID *uuid.UUID
	Notes       string
	Actor       string
}

// NewInventoryTransaction validates and creates a ledger entry
func NewInventoryTransaction(skuID uuid.UUID, direction Direction, quantity int, reason ReasonCode) (*InventoryTransaction, error) {
	if skuID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU ID cannot be empty")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Direction must be inward or outward")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", "Invalid reason code")
	}

	return &InventoryTransaction{
		BaseEntity: shared.NewBaseEntity(),
		SKUID:      skuID,
		Direction:  direction,
		Quantity:   quantity,
		Reason:     reason,
	}, nil
}

// WithReference links the entry to the document that caused it
func (t *InventoryTransaction) WithReference(id uuid.UUID) *InventoryTransaction {
	t.ReferenceID = &id
	return t
}

// WithNotes sets free-text notes
func (t *InventoryTransaction) WithNotes(notes string) *InventoryTransaction {
	t.Notes = notes
	return t
}

// WithActor sets who recorded the movement
func (t *InventoryTransaction) WithActor(actor string) *InventoryTransaction {
	t.Actor = actor
	return t
}

// WithTimestamp overrides the creation time, used when importing history
func (t *InventoryTransaction) WithTimestamp(at time.Time) *InventoryTransaction {
	t.CreatedAt = at
	t.UpdatedAt = at
	return t
}

// SignedQuantity is positive for inward and negative for outward movements
func (t *InventoryTransaction) SignedQuantity() int {
	if t.Direction == DirectionOutward {
		return -t.Quantity
	}
	return t.Quantity
}

// Reversal builds the opposite-direction entry that cancels this one
func (t *InventoryTransaction) Reversal(reason ReasonCode) (*InventoryTransaction, error) {
	rev, err := NewInventoryTransaction(t.SKUID, t.Direction.Opposite(), t.Quantity, reason)
	if err != nil {
		return nil, err
	}
	if t.ReferenceID != nil {
		rev.WithReference(*t.ReferenceID)
	}
	return rev, nil
}
