package trade

// ReturnStatus is the lifecycle state of a return on an order line.
// The zero value means the line has no return.
type ReturnStatus string

const (
	ReturnStatusNone            ReturnStatus = ""
	ReturnStatusRequested       ReturnStatus = "requested"
	ReturnStatusPickupScheduled ReturnStatus = "pickup_scheduled"
	ReturnStatusInTransit       ReturnStatus = "in_transit"
	ReturnStatusReceived        ReturnStatus = "received"
	ReturnStatusQCInspected     ReturnStatus = "qc_inspected"
	ReturnStatusComplete        ReturnStatus = "complete"
	ReturnStatusCancelled       ReturnStatus = "cancelled"
)

// IsValid checks if the status is a valid ReturnStatus (including none)
func (s ReturnStatus) IsValid() bool {
	switch s {
	case ReturnStatusNone, ReturnStatusRequested, ReturnStatusPickupScheduled,
		ReturnStatusInTransit, ReturnStatusReceived, ReturnStatusQCInspected,
		ReturnStatusComplete, ReturnStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ReturnStatus
func (s ReturnStatus) String() string {
	if s == ReturnStatusNone {
		return "none"
	}
	return string(s)
}

// IsTerminal reports whether the return has finished
func (s ReturnStatus) IsTerminal() bool {
	return s == ReturnStatusComplete || s == ReturnStatusCancelled
}

// IsActive reports whether a return is in progress
func (s ReturnStatus) IsActive() bool {
	return s != ReturnStatusNone && !s.IsTerminal()
}

// CanTransitionTo checks if the status can transition to the target status
func (s ReturnStatus) CanTransitionTo(target ReturnStatus) bool {
	if target == ReturnStatusCancelled {
		return s.IsActive()
	}
	switch s {
	case ReturnStatusNone, ReturnStatusComplete, ReturnStatusCancelled:
		return target == ReturnStatusRequested
	case ReturnStatusRequested:
		return target == ReturnStatusPickupScheduled || target == ReturnStatusInTransit || target == ReturnStatusReceived
	case ReturnStatusPickupScheduled:
		return target == ReturnStatusInTransit || target == ReturnStatusReceived
	case ReturnStatusInTransit:
		return target == ReturnStatusReceived
	case ReturnStatusReceived:
		return target == ReturnStatusQCInspected || target == ReturnStatusComplete
	case ReturnStatusQCInspected:
		return target == ReturnStatusComplete || target == ReturnStatusReceived
	}
	return false
}

// IsNoOp reports whether moving to target would not change anything.
// Re-requesting the current status is treated as success without side effects.
func (s ReturnStatus) IsNoOp(target ReturnStatus) bool {
	if s != target {
		return false
	}
	return s.IsActive() || s == ReturnStatusComplete
}
