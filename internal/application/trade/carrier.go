package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PickupBookingRequest is what the carrier needs to collect a return
type PickupBookingRequest struct {
	LineID      uuid.UUID
	OrderID     uuid.UUID
	OrderNumber string
	SKUCode     string
	Qty         int
	Courier     string
	ScheduledAt *time.Time
}

// PickupBooking is the carrier's confirmation
type PickupBooking struct {
	AWB         string
	Courier     string
	ScheduledAt *time.Time
}

// CarrierBooker books reverse pickups with an external carrier. It is
// called before any local write.
type CarrierBooker interface {
	BookPickup(ctx context.Context, req PickupBookingRequest) (*PickupBooking, error)
}
