package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// InitiateReturnRequest opens a return on an order line
type InitiateReturnRequest struct {
	ReturnQty      int        `json:"return_qty" binding:"required,min=1"`
	ReasonCategory string     `json:"reason_category" binding:"required,return_reason"`
	ReasonDetail   string     `json:"reason_detail" binding:"max=1000"`
	Resolution     string     `json:"resolution" binding:"required,oneof=refund exchange rejected"`
	Notes          string     `json:"notes" binding:"max=2000"`
	ExchangeSKUID  *uuid.UUID `json:"exchange_sku_id"`
	Actor          string     `json:"-"`
}

// SchedulePickupRequest books the reverse pickup
type SchedulePickupRequest struct {
	PickupType            string     `json:"pickup_type" binding:"required,oneof=scheduled customer_shipped"`
	Courier               string     `json:"courier" binding:"max=100"`
	AWB                   string     `json:"awb" binding:"max=100"`
	ScheduledAt           *time.Time `json:"scheduled_at"`
	UseCarrierIntegration bool       `json:"use_carrier_integration"`
	Actor                 string     `json:"-"`
}

// MarkInTransitRequest records carrier collection
type MarkInTransitRequest struct {
	Courier *string `json:"courier" binding:"omitempty,max=100"`
	AWB     *string `json:"awb" binding:"omitempty,max=100"`
	Actor   string  `json:"-"`
}

// ReceiveRequest records arrival at the warehouse
type ReceiveRequest struct {
	Condition      string `json:"condition" binding:"required,oneof=good used damaged wrong_item"`
	ConditionNotes string `json:"condition_notes" binding:"max=2000"`
	Actor          string `json:"-"`
}

// CancelReturnRequest closes a return manually
type CancelReturnRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
	Actor  string `json:"-"`
}

// UpdateNotesRequest replaces the staff notes
type UpdateNotesRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}

// ProcessRefundRequest computes the refund for a line
type ProcessRefundRequest struct {
	Gross            decimal.Decimal `json:"gross" binding:"decimal_gte0"`
	DiscountClawback decimal.Decimal `json:"discount_clawback" binding:"decimal_gte0"`
	Deductions       decimal.Decimal `json:"deductions" binding:"decimal_gte0"`
	DeductionNotes   string          `json:"deduction_notes" binding:"max=1000"`
	Method           string          `json:"method" binding:"omitempty,oneof=payment_link bank_transfer store_credit"`
	Actor            string          `json:"-"`
}

// CompleteRefundRequest records the payout
type CompleteRefundRequest struct {
	Reference string `json:"reference" binding:"max=200"`
	Actor     string `json:"-"`
}

// CreateExchangeOrderRequest raises the replacement order
type CreateExchangeOrderRequest struct {
	ExchangeSKUID uuid.UUID `json:"exchange_sku_id" binding:"required"`
	ExchangeQty   int       `json:"exchange_qty" binding:"required,min=1"`
	Actor         string    `json:"-"`
}

// InitiateReturnResponse is returned by Initiate
type InitiateReturnResponse struct {
	LineID  uuid.UUID `json:"line_id"`
	Status  string    `json:"status"`
	SKUCode string    `json:"sku_code"`
}

// PickupResponse is returned by SchedulePickup
type PickupResponse struct {
	LineID  uuid.UUID `json:"line_id"`
	AWB     string    `json:"awb,omitempty"`
	Courier string    `json:"courier,omitempty"`
}

// TransitionResponse is returned by plain status transitions
type TransitionResponse struct {
	LineID uuid.UUID `json:"line_id"`
	Status string    `json:"status"`
}

// ReceiveResponse is returned by Receive
type ReceiveResponse struct {
	LineID   uuid.UUID  `json:"line_id"`
	Status   string     `json:"status"`
	QCItemID *uuid.UUID `json:"qc_item_id,omitempty"`
}

// RefundResponse is returned by ProcessRefund
type RefundResponse struct {
	LineID    uuid.UUID       `json:"line_id"`
	NetAmount decimal.Decimal `json:"net_amount"`
}

// RefundCompletionResponse is returned by CompleteRefund
type RefundCompletionResponse struct {
	LineID      uuid.UUID  `json:"line_id"`
	CompletedAt *time.Time `json:"completed_at"`
	Reference   string     `json:"reference,omitempty"`
}

// ExchangeOrderResponse is returned by CreateExchangeOrder
type ExchangeOrderResponse struct {
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	PriceDiff   decimal.Decimal `json:"price_diff"`
}

// ReturnLineResponse is the read model of a line and its return
type ReturnLineResponse struct {
	LineID         uuid.UUID       `json:"line_id"`
	OrderID        uuid.UUID       `json:"order_id"`
	SKUID          uuid.UUID       `json:"sku_id"`
	Qty            int             `json:"qty"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Status         string          `json:"return_status"`
	ReturnQty      int             `json:"return_qty,omitempty"`
	ReasonCategory string          `json:"reason_category,omitempty"`
	ReasonDetail   string          `json:"reason_detail,omitempty"`
	Resolution     string          `json:"resolution,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	RequestedAt    *time.Time      `json:"requested_at,omitempty"`
	RequestedBy    string          `json:"requested_by,omitempty"`
	PickupType     string          `json:"pickup_type,omitempty"`
	Courier        string          `json:"courier,omitempty"`
	AWB            string          `json:"awb,omitempty"`
	ScheduledAt    *time.Time      `json:"pickup_scheduled_at,omitempty"`
	PickedUpAt     *time.Time      `json:"picked_up_at,omitempty"`
	ReceivedAt     *time.Time      `json:"received_at,omitempty"`
	ReceivedBy     string          `json:"received_by,omitempty"`
	Condition      string          `json:"condition,omitempty"`
	ConditionNotes string          `json:"condition_notes,omitempty"`
	QCResult       string          `json:"qc_result,omitempty"`
	QCInspectedAt  *time.Time      `json:"qc_inspected_at,omitempty"`
	Refund         *RefundView     `json:"refund,omitempty"`
	Exchange       *ExchangeView   `json:"exchange,omitempty"`
	ClosedManually bool            `json:"closed_manually,omitempty"`
	ClosedBy       string          `json:"closed_by,omitempty"`
	ClosedAt       *time.Time      `json:"closed_at,omitempty"`
	CloseReason    string          `json:"close_reason,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
}

// RefundView is the refund section of ReturnLineResponse
type RefundView struct {
	Gross            decimal.Decimal `json:"gross"`
	DiscountClawback decimal.Decimal `json:"discount_clawback"`
	Deductions       decimal.Decimal `json:"deductions"`
	DeductionNotes   string          `json:"deduction_notes,omitempty"`
	Net              decimal.Decimal `json:"net"`
	Method           string          `json:"method,omitempty"`
	ProcessedAt      *time.Time      `json:"processed_at,omitempty"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	Reference        string          `json:"reference,omitempty"`
}

// ExchangeView is the exchange section of ReturnLineResponse
type ExchangeView struct {
	SKUID     *uuid.UUID      `json:"sku_id,omitempty"`
	OrderID   *uuid.UUID      `json:"order_id,omitempty"`
	PriceDiff decimal.Decimal `json:"price_diff"`
}

// ToReturnLineResponse maps an order line to its read model
func ToReturnLineResponse(l *trade.OrderLine) ReturnLineResponse {
	r := l.Return
	resp := ReturnLineResponse{
		LineID:         l.ID,
		OrderID:        l.OrderID,
		SKUID:          l.SKUID,
		Qty:            l.Qty,
		UnitPrice:      l.UnitPrice,
		Status:         r.Status.String(),
		ReturnQty:      r.Qty,
		ReasonCategory: string(r.ReasonCategory),
		ReasonDetail:   r.ReasonDetail,
		Resolution:     r.Resolution.String(),
		Notes:          r.Notes,
		RequestedAt:    r.RequestedAt,
		RequestedBy:    r.RequestedBy,
		PickupType:     string(r.Pickup.Type),
		Courier:        r.Pickup.Courier,
		AWB:            r.Pickup.AWB,
		ScheduledAt:    r.Pickup.ScheduledAt,
		PickedUpAt:     r.Pickup.PickedUpAt,
		ReceivedAt:     r.ReceivedAt,
		ReceivedBy:     r.ReceivedBy,
		Condition:      string(r.Condition),
		ConditionNotes: r.ConditionNotes,
		QCResult:       string(r.QCResult),
		QCInspectedAt:  r.QCInspectedAt,
		ClosedManually: r.Close.Closed,
		ClosedBy:       r.Close.By,
		ClosedAt:       r.Close.At,
		CloseReason:    r.Close.Reason,
		CompletedAt:    r.CompletedAt,
	}
	if r.Refund.ProcessedAt != nil {
		resp.Refund = &RefundView{
			Gross:            r.Refund.Gross,
			DiscountClawback: r.Refund.DiscountClawback,
			Deductions:       r.Refund.Deductions,
			DeductionNotes:   r.Refund.DeductionNotes,
			Net:              r.Refund.Net,
			Method:           string(r.Refund.Method),
			ProcessedAt:      r.Refund.ProcessedAt,
			CompletedAt:      r.Refund.CompletedAt,
			Reference:        r.Refund.Reference,
		}
	}
	if r.Exchange.SKUID != nil || r.Exchange.OrderID != nil {
		resp.Exchange = &ExchangeView{
			SKUID:     r.Exchange.SKUID,
			OrderID:   r.Exchange.OrderID,
			PriceDiff: r.Exchange.PriceDiff,
		}
	}
	return resp
}
