package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for orders
type OrderModel struct {
	AggregateModel
	OrderNumber       string           `gorm:"type:varchar(64);not null;uniqueIndex:uq_orders_order_number"`
	CustomerID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	IsExchange        bool             `gorm:"not null;default:false"`
	OriginalOrderID   *uuid.UUID       `gorm:"type:uuid;index"`
	ExchangeForLineID *uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_orders_exchange_for_line"`
	TotalAmount       decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	Lines             []OrderLineModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *trade.Order {
	o := &trade.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		CustomerID:        m.CustomerID,
		IsExchange:        m.IsExchange,
		OriginalOrderID:   m.OriginalOrderID,
		ExchangeForLineID: m.ExchangeForLineID,
		TotalAmount:       m.TotalAmount,
		Lines:             make([]trade.OrderLine, len(m.Lines)),
	}
	for i := range m.Lines {
		o.Lines[i] = *m.Lines[i].ToDomain()
	}
	return o
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.CustomerID = o.CustomerID
	m.IsExchange = o.IsExchange
	m.OriginalOrderID = o.OriginalOrderID
	m.ExchangeForLineID = o.ExchangeForLineID
	m.TotalAmount = o.TotalAmount
	m.Lines = make([]OrderLineModel, len(o.Lines))
	for i := range o.Lines {
		m.Lines[i].FromDomain(&o.Lines[i])
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderLineModel is the persistence model for order lines. The return
// columns are all nullable; a NULL return_status means no return.
type OrderLineModel struct {
	AggregateModel
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKUID     uuid.UUID       `gorm:"column:sku_id;type:uuid;not null;index"`
	Qty       int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`

	ReturnStatus         *string `gorm:"type:varchar(32);index"`
	ReturnQty            int     `gorm:"not null;default:0"`
	ReturnReasonCategory string  `gorm:"type:varchar(32)"`
	ReturnReasonDetail   string  `gorm:"type:text"`
	ReturnResolution     string  `gorm:"type:varchar(16)"`
	ReturnExchangeValue  string  `gorm:"type:varchar(8)"`
	ReturnNotes          string  `gorm:"type:text"`
	ReturnRequestedAt    *time.Time
	ReturnRequestedBy    string `gorm:"type:varchar(100)"`
	ReturnPickupType     string `gorm:"type:varchar(32)"`
	ReturnCourier        string `gorm:"type:varchar(100)"`
	ReturnAWB            string `gorm:"column:return_awb;type:varchar(100)"`
	ReturnPickupAt       *time.Time
	ReturnPickedUpAt     *time.Time
	ReturnReceivedAt     *time.Time
	ReturnReceivedBy     string     `gorm:"type:varchar(100)"`
	ReturnCondition      string     `gorm:"type:varchar(32)"`
	ReturnConditionNotes string     `gorm:"type:text"`
	ReturnQCResult       string     `gorm:"column:return_qc_result;type:varchar(16)"`
	ReturnQCInspectedAt  *time.Time `gorm:"column:return_qc_inspected_at"`

	RefundGross            decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	RefundDiscountClawback decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	RefundDeductions       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	RefundDeductionNotes   string          `gorm:"type:text"`
	RefundNet              decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	RefundMethod           string          `gorm:"type:varchar(32)"`
	RefundProcessedAt      *time.Time
	RefundCompletedAt      *time.Time
	RefundReference        string `gorm:"type:varchar(200)"`

	ExchangeSKUID     *uuid.UUID      `gorm:"column:exchange_sku_id;type:uuid"`
	ExchangeOrderID   *uuid.UUID      `gorm:"type:uuid"`
	ExchangePriceDiff decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	ClosedManually bool   `gorm:"not null;default:false"`
	ClosedBy       string `gorm:"type:varchar(100)"`
	ClosedAt       *time.Time
	CloseReason    string `gorm:"type:text"`

	ReturnCompletedAt *time.Time
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// ToDomain converts the persistence model to a domain OrderLine
func (m *OrderLineModel) ToDomain() *trade.OrderLine {
	status := trade.ReturnStatusNone
	if m.ReturnStatus != nil {
		status = trade.ReturnStatus(*m.ReturnStatus)
	}
	return &trade.OrderLine{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderID:           m.OrderID,
		SKUID:             m.SKUID,
		Qty:               m.Qty,
		UnitPrice:         m.UnitPrice,
		Return: trade.ReturnInfo{
			Status:         status,
			Qty:            m.ReturnQty,
			ReasonCategory: trade.ReasonCategory(m.ReturnReasonCategory),
			ReasonDetail:   m.ReturnReasonDetail,
			Resolution: trade.Resolution{
				Kind:  trade.ResolutionKind(m.ReturnResolution),
				Value: trade.ExchangeValue(m.ReturnExchangeValue),
			},
			Notes:       m.ReturnNotes,
			RequestedAt: m.ReturnRequestedAt,
			RequestedBy: m.ReturnRequestedBy,
			Pickup: trade.PickupDetails{
				Type:        trade.PickupType(m.ReturnPickupType),
				Courier:     m.ReturnCourier,
				AWB:         m.ReturnAWB,
				ScheduledAt: m.ReturnPickupAt,
				PickedUpAt:  m.ReturnPickedUpAt,
			},
			ReceivedAt:     m.ReturnReceivedAt,
			ReceivedBy:     m.ReturnReceivedBy,
			Condition:      trade.Condition(m.ReturnCondition),
			ConditionNotes: m.ReturnConditionNotes,
			QCResult:       trade.QCResult(m.ReturnQCResult),
			QCInspectedAt:  m.ReturnQCInspectedAt,
			Refund: trade.RefundDetails{
				Gross:            m.RefundGross,
				DiscountClawback: m.RefundDiscountClawback,
				Deductions:       m.RefundDeductions,
				DeductionNotes:   m.RefundDeductionNotes,
				Net:              m.RefundNet,
				Method:           trade.RefundMethod(m.RefundMethod),
				ProcessedAt:      m.RefundProcessedAt,
				CompletedAt:      m.RefundCompletedAt,
				Reference:        m.RefundReference,
			},
			Exchange: trade.ExchangeDetails{
				SKUID:     m.ExchangeSKUID,
				OrderID:   m.ExchangeOrderID,
				PriceDiff: m.ExchangePriceDiff,
			},
			Close: trade.ManualClose{
				Closed: m.ClosedManually,
				By:     m.ClosedBy,
				At:     m.ClosedAt,
				Reason: m.CloseReason,
			},
			CompletedAt: m.ReturnCompletedAt,
		},
	}
}

// FromDomain populates the persistence model from a domain OrderLine
func (m *OrderLineModel) FromDomain(l *trade.OrderLine) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.OrderID = l.OrderID
	m.SKUID = l.SKUID
	m.Qty = l.Qty
	m.UnitPrice = l.UnitPrice

	r := l.Return
	m.ReturnStatus = nil
	if r.Status != trade.ReturnStatusNone {
		s := string(r.Status)
		m.ReturnStatus = &s
	}
	m.ReturnQty = r.Qty
	m.ReturnReasonCategory = string(r.ReasonCategory)
	m.ReturnReasonDetail = r.ReasonDetail
	m.ReturnResolution = string(r.Resolution.Kind)
	m.ReturnExchangeValue = string(r.Resolution.Value)
	m.ReturnNotes = r.Notes
	m.ReturnRequestedAt = r.RequestedAt
	m.ReturnRequestedBy = r.RequestedBy
	m.ReturnPickupType = string(r.Pickup.Type)
	m.ReturnCourier = r.Pickup.Courier
	m.ReturnAWB = r.Pickup.AWB
	m.ReturnPickupAt = r.Pickup.ScheduledAt
	m.ReturnPickedUpAt = r.Pickup.PickedUpAt
	m.ReturnReceivedAt = r.ReceivedAt
	m.ReturnReceivedBy = r.ReceivedBy
	m.ReturnCondition = string(r.Condition)
	m.ReturnConditionNotes = r.ConditionNotes
	m.ReturnQCResult = string(r.QCResult)
	m.ReturnQCInspectedAt = r.QCInspectedAt

	m.RefundGross = r.Refund.Gross
	m.RefundDiscountClawback = r.Refund.DiscountClawback
	m.RefundDeductions = r.Refund.Deductions
	m.RefundDeductionNotes = r.Refund.DeductionNotes
	m.RefundNet = r.Refund.Net
	m.RefundMethod = string(r.Refund.Method)
	m.RefundProcessedAt = r.Refund.ProcessedAt
	m.RefundCompletedAt = r.Refund.CompletedAt
	m.RefundReference = r.Refund.Reference

	m.ExchangeSKUID = r.Exchange.SKUID
	m.ExchangeOrderID = r.Exchange.OrderID
	m.ExchangePriceDiff = r.Exchange.PriceDiff

	m.ClosedManually = r.Close.Closed
	m.ClosedBy = r.Close.By
	m.ClosedAt = r.Close.At
	m.CloseReason = r.Close.Reason
	m.ReturnCompletedAt = r.CompletedAt
}

// ReturnColumns lists the columns a return mutation may rewrite
func ReturnColumns() []string {
	return []string{
		"return_status", "return_qty", "return_reason_category", "return_reason_detail",
		"return_resolution", "return_exchange_value", "return_notes",
		"return_requested_at", "return_requested_by",
		"return_pickup_type", "return_courier", "return_awb", "return_pickup_at", "return_picked_up_at",
		"return_received_at", "return_received_by", "return_condition", "return_condition_notes",
		"return_qc_result", "return_qc_inspected_at",
		"refund_gross", "refund_discount_clawback", "refund_deductions", "refund_deduction_notes",
		"refund_net", "refund_method", "refund_processed_at", "refund_completed_at", "refund_reference",
		"exchange_sku_id", "exchange_order_id", "exchange_price_diff",
		"closed_manually", "closed_by", "closed_at", "close_reason",
		"return_completed_at", "version", "updated_at",
	}
}
