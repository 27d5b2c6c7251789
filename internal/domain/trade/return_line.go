package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PickupDetails describes how the goods come back to the warehouse
type PickupDetails struct {
	Type        PickupType
	Courier     string
	AWB         string
	ScheduledAt *time.Time
	PickedUpAt  *time.Time
}

// PickupUpdate carries optional courier/AWB changes. Nil fields are left as-is.
type PickupUpdate struct {
	Courier *string
	AWB     *string
}

func (u PickupUpdate) apply(p *PickupDetails) {
	if u.Courier != nil {
		p.Courier = strings.TrimSpace(*u.Courier)
	}
	if u.AWB != nil {
		p.AWB = strings.TrimSpace(*u.AWB)
	}
}

// RefundDetails holds the computed refund and its completion record
type RefundDetails struct {
	Gross            decimal.Decimal
	DiscountClawback decimal.Decimal
	Deductions       decimal.Decimal
	DeductionNotes   string
	Net              decimal.Decimal
	Method           RefundMethod
	ProcessedAt      *time.Time
	CompletedAt      *time.Time
	Reference        string
}

// ExchangeDetails links a return line to its replacement order
type ExchangeDetails struct {
	SKUID     *uuid.UUID
	OrderID   *uuid.UUID
	PriceDiff decimal.Decimal
}

// ManualClose records a staff cancellation
type ManualClose struct {
	Closed bool
	By     string
	At     *time.Time
	Reason string
}

// ReturnInfo is the return state carried by an order line
type ReturnInfo struct {
	Status         ReturnStatus
	Qty            int
	ReasonCategory ReasonCategory
	ReasonDetail   string
	Resolution     Resolution
	Notes          string
	RequestedAt    *time.Time
	RequestedBy    string
	Pickup         PickupDetails
	ReceivedAt     *time.Time
	ReceivedBy     string
	Condition      Condition
	ConditionNotes string
	QCResult       QCResult
	QCInspectedAt  *time.Time
	Refund         RefundDetails
	Exchange       ExchangeDetails
	Close          ManualClose
	CompletedAt    *time.Time
}

// OrderLine is one purchased item line and the unit a return is raised on
type OrderLine struct {
	shared.BaseAggregateRoot
	OrderID   uuid.UUID
	SKUID     uuid.UUID
	Qty       int
	UnitPrice decimal.Decimal
	Return    ReturnInfo
}

// LineValue is the purchase value of the whole line
func (l *OrderLine) LineValue() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// ReturnedValue is the purchase value of the units being returned
func (l *OrderLine) ReturnedValue() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Return.Qty)))
}

// HasActiveReturn reports whether a non-terminal return exists
func (l *OrderLine) HasActiveReturn() bool {
	return l.Return.Status.IsActive()
}

// InitiateReturnParams are the caller-supplied fields of a new return
type InitiateReturnParams struct {
	Qty            int
	ReasonCategory ReasonCategory
	ReasonDetail   string
	Resolution     Resolution
	Notes          string
	ExchangeSKUID  *uuid.UUID
	Actor          string
}

// InitiateReturn opens a new return on the line. Any finished return's
// fields are replaced.
func (l *OrderLine) InitiateReturn(p InitiateReturnParams) error {
	if l.HasActiveReturn() {
		return ErrAlreadyActive
	}
	if p.Qty < 1 || p.Qty > l.Qty {
		return shared.NewDomainError(CodeInvalidQuantity,
			fmt.Sprintf("Return quantity %d must be between 1 and line quantity %d", p.Qty, l.Qty))
	}
	if !p.ReasonCategory.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid reason category %q", p.ReasonCategory))
	}
	if !p.Resolution.Kind.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid resolution %q", p.Resolution.Kind))
	}

	from := l.Return.Status
	now := time.Now()
	l.Return = ReturnInfo{
		Status:         ReturnStatusRequested,
		Qty:            p.Qty,
		ReasonCategory: p.ReasonCategory,
		ReasonDetail:   strings.TrimSpace(p.ReasonDetail),
		Resolution:     Resolution{Kind: p.Resolution.Kind},
		Notes:          p.Notes,
		RequestedAt:    &now,
		RequestedBy:    p.Actor,
	}
	if p.Resolution.IsExchange() && p.ExchangeSKUID != nil {
		skuID := *p.ExchangeSKUID
		l.Return.Exchange.SKUID = &skuID
	}
	l.MarkChanged(now)

	l.AddDomainEvent(NewReturnStatusChangedEvent(l, from, p.Actor))
	return nil
}

// SchedulePickup records the pickup booking
func (l *OrderLine) SchedulePickup(pickupType PickupType, courier, awb string, scheduledAt *time.Time, actor string) error {
	if !pickupType.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid pickup type %q", pickupType))
	}
	if err := l.expectTransition(ReturnStatusPickupScheduled); err != nil {
		return err
	}

	from := l.Return.Status
	now := time.Now()
	l.Return.Status = ReturnStatusPickupScheduled
	l.Return.Pickup.Type = pickupType
	l.Return.Pickup.Courier = strings.TrimSpace(courier)
	l.Return.Pickup.AWB = strings.TrimSpace(awb)
	if scheduledAt != nil {
		at := *scheduledAt
		l.Return.Pickup.ScheduledAt = &at
	} else {
		l.Return.Pickup.ScheduledAt = &now
	}
	l.MarkChanged(now)

	l.AddDomainEvent(NewReturnStatusChangedEvent(l, from, actor))
	return nil
}

// MarkInTransit records that the carrier has collected the goods
func (l *OrderLine) MarkInTransit(update PickupUpdate, actor string) error {
	if err := l.expectTransition(ReturnStatusInTransit); err != nil {
		return err
	}

	from := l.Return.Status
	now := time.Now()
	l.Return.Status = ReturnStatusInTransit
	l.Return.Pickup.PickedUpAt = &now
	update.apply(&l.Return.Pickup)
	l.MarkChanged(now)

	l.AddDomainEvent(NewReturnStatusChangedEvent(l, from, actor))
	return nil
}

// Receive records arrival at the warehouse
func (l *OrderLine) Receive(condition Condition, conditionNotes, actor string) error {
	if !condition.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid condition %q", condition))
	}
	// qc_inspected -> received is reserved for QC undo
	if l.Return.Status == ReturnStatusQCInspected {
		return wrongStatus(l.Return.Status, ReturnStatusReceived)
	}
	if err := l.expectTransition(ReturnStatusReceived); err != nil {
		return err
	}

	from := l.Return.Status
	now := time.Now()
	l.Return.Status = ReturnStatusReceived
	l.Return.ReceivedAt = &now
	l.Return.ReceivedBy = actor
	l.Return.Condition = condition
	l.Return.ConditionNotes = conditionNotes
	l.MarkChanged(now)

	l.AddDomainEvent(NewReturnStatusChangedEvent(l, from, actor))
	return nil
}

// ApplyQCResult advances a received line after inspection. It reports false
// without error when the line is no longer waiting for QC.
func (l *OrderLine) ApplyQCResult(result QCResult, actor string) bool {
	if l.Return.Status != ReturnStatusReceived {
		return false
	}

	now := time.Now()
	l.Return.Status = ReturnStatusQCInspected
	l.Return.QCResult = result
	l.Return.QCInspectedAt = &now
	l.MarkChanged(now)

	l.AddDomainEvent(NewReturnStatusChangedEvent(l, ReturnStatusReceived, actor))
	return true
}

// RevertQCResult moves an inspected line back to received when its QC
// decision is undone. It reports false when the line has moved on.
func (l *OrderLine) RevertQCResult(actor string) bool {
	if l.Return.Status != ReturnStatusQCInspected {
		return false
	}

	now := time.Now()
	l.Return.Status = ReturnStatusReceived
	l.Return.QCResult = QCResultNone
	l.Return.QCInspectedAt = nil
	l.MarkChanged(now)

	l.AddDomainEvent(NewReturnStatusChangedEvent(l, ReturnStatusQCInspected, actor))
	return true
}

// Complete closes the return once its resolution has been fulfilled
func (l *OrderLine) Complete(actor string) error {
	if err := l.expectTransition(ReturnStatusComplete); err != nil {
		return err
	}
	switch l.Return.Resolution.Kind {
	case ResolutionRefund:
		if l.Return.Refund.CompletedAt == nil {
			return ErrRefundNotCompleted
		}
	case ResolutionExchange:
		if l.Return.Exchange.OrderID == nil {
			return ErrExchangeNotCreated
		}
	}

	from := l.Return.Status
	now := time.Now()
	l.Return.Status = ReturnStatusComplete
	l.Return.CompletedAt = &now
	l.MarkChanged(now)

	l.AddDomainEvent(NewReturnStatusChangedEvent(l, from, actor))
	return nil
}

// Cancel closes the return manually. It reports the quantity whose
// counters must be reversed.
func (l *OrderLine) Cancel(reason, actor string) (int, error) {
	if l.Return.Status == ReturnStatusNone {
		return 0, ErrNoActiveReturn
	}
	if l.Return.Status.IsTerminal() {
		return 0, shared.NewDomainError(CodeAlreadyTerminal,
			fmt.Sprintf("Return is already %s", l.Return.Status))
	}

	from := l.Return.Status
	now := time.Now()
	l.Return.Status = ReturnStatusCancelled
	l.Return.Close = ManualClose{Closed: true, By: actor, At: &now, Reason: strings.TrimSpace(reason)}
	l.MarkChanged(now)

	l.AddDomainEvent(NewReturnStatusChangedEvent(l, from, actor))
	return l.Return.Qty, nil
}

// UpdateNotes replaces the staff notes on an active return
func (l *OrderLine) UpdateNotes(notes string) error {
	if !l.HasActiveReturn() {
		return ErrNoActiveReturn
	}
	l.Return.Notes = notes
	l.MarkChanged(time.Now())
	return nil
}

// RefundInput are the amounts supplied when a refund is processed
type RefundInput struct {
	Gross            decimal.Decimal
	DiscountClawback decimal.Decimal
	Deductions       decimal.Decimal
	DeductionNotes   string
	Method           RefundMethod
}

// RecordRefund computes and stores the net refund. The refund is not
// completed until CompleteRefund is called.
func (l *OrderLine) RecordRefund(in RefundInput, actor string) (decimal.Decimal, error) {
	if !l.HasActiveReturn() {
		return decimal.Zero, ErrNoActiveReturn
	}
	if !l.Return.Resolution.IsRefund() {
		return decimal.Zero, ErrNotRefundResolution
	}
	if l.Return.Refund.CompletedAt != nil {
		return decimal.Zero, ErrRefundAlreadyCompleted
	}
	if in.Gross.IsNegative() || in.DiscountClawback.IsNegative() || in.Deductions.IsNegative() {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", "Refund amounts cannot be negative")
	}
	if !in.Method.IsValid() {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid refund method %q", in.Method))
	}

	now := time.Now()
	net := CalculateNetRefund(in.Gross, in.DiscountClawback, in.Deductions)
	l.Return.Refund = RefundDetails{
		Gross:            in.Gross,
		DiscountClawback: in.DiscountClawback,
		Deductions:       in.Deductions,
		DeductionNotes:   in.DeductionNotes,
		Net:              net,
		Method:           in.Method,
		ProcessedAt:      &now,
	}
	l.MarkChanged(now)

	l.AddDomainEvent(NewRefundProcessedEvent(l, actor))
	return net, nil
}

// CompleteRefund records that the money has been paid out. Completing an
// already completed refund is a no-op.
func (l *OrderLine) CompleteRefund(reference, actor string) (bool, error) {
	if l.Return.Refund.CompletedAt != nil {
		return false, nil
	}
	if !l.HasActiveReturn() {
		return false, ErrNoActiveReturn
	}
	if l.Return.Refund.ProcessedAt == nil {
		return false, ErrRefundNotProcessed
	}

	now := time.Now()
	l.Return.Refund.CompletedAt = &now
	l.Return.Refund.Reference = strings.TrimSpace(reference)
	l.MarkChanged(now)

	l.AddDomainEvent(NewRefundCompletedEvent(l, actor))
	return true, nil
}

// LinkExchangeOrder stamps the replacement order on the line
func (l *OrderLine) LinkExchangeOrder(orderID, skuID uuid.UUID, priceDiff decimal.Decimal) error {
	if err := l.CanCreateExchange(); err != nil {
		return err
	}

	l.Return.Exchange = ExchangeDetails{SKUID: &skuID, OrderID: &orderID, PriceDiff: priceDiff}
	l.Return.Resolution.Value = ExchangeValueFromDiff(priceDiff)
	l.MarkChanged(time.Now())
	return nil
}

// CanCreateExchange checks that an exchange order may be raised for the line
func (l *OrderLine) CanCreateExchange() error {
	if !l.HasActiveReturn() {
		return ErrNoActiveReturn
	}
	if l.Return.Exchange.OrderID != nil {
		return ErrExchangeAlreadyCreated
	}
	if !l.Return.Resolution.IsExchange() {
		return ErrNotExchangeResolution
	}
	return nil
}

func (l *OrderLine) expectTransition(target ReturnStatus) error {
	if l.Return.Status.CanTransitionTo(target) && l.Return.Status.IsActive() {
		return nil
	}
	return wrongStatus(l.Return.Status, target)
}

func wrongStatus(current, target ReturnStatus) *shared.DomainError {
	return shared.NewDomainError(CodeWrongStatus,
		fmt.Sprintf("Cannot move return from %s to %s", current, target))
}
