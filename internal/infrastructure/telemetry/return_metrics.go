package telemetry

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when ReturnMetrics is built without a meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// ReturnMetrics records business counters for the returns lifecycle.
// A nil *ReturnMetrics is valid and records nothing.
type ReturnMetrics struct {
	transitions    *Counter
	rejected       *Counter
	qcDecisions    *Counter
	refundAmount   *Histogram
	exchangeOrders *Counter
	balanceLookups *Counter
	ledgerEntries  *Counter
}

// NewReturnMetrics registers the instruments on meter
func NewReturnMetrics(meter metric.Meter) (*ReturnMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &ReturnMetrics{}
	var err error
	if m.transitions, err = NewCounter(meter, "returns_transitions_total",
		"Return line status transitions", "{transitions}"); err != nil {
		return nil, err
	}
	if m.rejected, err = NewCounter(meter, "returns_rejected_total",
		"Return operations rejected by a business rule", "{operations}"); err != nil {
		return nil, err
	}
	if m.qcDecisions, err = NewCounter(meter, "returns_qc_decisions_total",
		"QC decisions recorded and undone", "{decisions}"); err != nil {
		return nil, err
	}
	if m.refundAmount, err = NewHistogram(meter, "returns_refund_net_amount",
		"Net refund amount per processed refund", "{currency}", AmountBuckets...); err != nil {
		return nil, err
	}
	if m.exchangeOrders, err = NewCounter(meter, "returns_exchange_orders_total",
		"Exchange orders created", "{orders}"); err != nil {
		return nil, err
	}
	if m.balanceLookups, err = NewCounter(meter, "inventory_balance_lookups_total",
		"Balance lookups by cache outcome", "{lookups}"); err != nil {
		return nil, err
	}
	if m.ledgerEntries, err = NewCounter(meter, "inventory_ledger_entries_total",
		"Inventory ledger entries written", "{entries}"); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordTransition counts a status change such as "received->qc_inspected"
func (m *ReturnMetrics) RecordTransition(ctx context.Context, from, to string) {
	if m == nil {
		return
	}
	m.transitions.Inc(ctx, AttrTransition.String(from+"->"+to))
}

// RecordRejected counts an operation refused with a business error code
func (m *ReturnMetrics) RecordRejected(ctx context.Context, code string) {
	if m == nil {
		return
	}
	m.rejected.Inc(ctx, AttrErrorCode.String(code))
}

// RecordQCDecision counts a QC action; undo is recorded as action "undo"
func (m *ReturnMetrics) RecordQCDecision(ctx context.Context, action string) {
	if m == nil {
		return
	}
	m.qcDecisions.Inc(ctx, AttrQCAction.String(action))
}

// RecordRefund records the net amount of a processed refund
func (m *ReturnMetrics) RecordRefund(ctx context.Context, net decimal.Decimal) {
	if m == nil {
		return
	}
	f, _ := net.Float64()
	m.refundAmount.Record(ctx, f)
}

// RecordExchangeOrder counts an exchange order by value direction
func (m *ReturnMetrics) RecordExchangeOrder(ctx context.Context, value string) {
	if m == nil {
		return
	}
	m.exchangeOrders.Inc(ctx, AttrResolution.String(value))
}

// RecordBalanceLookup counts cache hits and misses for balance reads
func (m *ReturnMetrics) RecordBalanceLookup(ctx context.Context, hits, misses int) {
	if m == nil {
		return
	}
	if hits > 0 {
		m.balanceLookups.Add(ctx, int64(hits), AttrCacheHit.Bool(true))
	}
	if misses > 0 {
		m.balanceLookups.Add(ctx, int64(misses), AttrCacheHit.Bool(false))
	}
}

// RecordLedgerEntry counts a ledger write by reason code
func (m *ReturnMetrics) RecordLedgerEntry(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.ledgerEntries.Inc(ctx, AttrLedgerReason.String(reason))
}
