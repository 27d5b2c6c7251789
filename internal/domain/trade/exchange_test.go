package trade

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateNetRefund(t *testing.T) {
	tests := []struct {
		gross, clawback, deductions, want string
	}{
		{"2000", "0", "0", "2000"},
		{"2000", "200", "100", "1700"},
		{"100", "80", "40", "-20"},
		{"999.99", "0.99", "0", "999"},
	}
	for _, tt := range tests {
		got := CalculateNetRefund(
			decimal.RequireFromString(tt.gross),
			decimal.RequireFromString(tt.clawback),
			decimal.RequireFromString(tt.deductions),
		)
		assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s want %s", got, tt.want)
	}
}

func TestNewExchangeOrder(t *testing.T) {
	t.Run("creates linked order and stamps line", func(t *testing.T) {
		order, line := newLine(t, 2, "800")
		initiate(t, line, 2, ResolutionExchange)
		skuID := uuid.New()

		exch, diff, err := NewExchangeOrder(order, line, skuID, decimal.NewFromInt(900), 2, "cs")
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(200).Equal(diff))
		assert.True(t, exch.IsExchange)
		assert.Equal(t, order.ID, *exch.OriginalOrderID)
		assert.Equal(t, line.ID, *exch.ExchangeForLineID)
		assert.Equal(t, order.CustomerID, exch.CustomerID)
		require.Len(t, exch.Lines, 1)
		assert.Equal(t, skuID, exch.Lines[0].SKUID)
		assert.True(t, decimal.NewFromInt(1800).Equal(exch.TotalAmount))

		assert.Equal(t, exch.ID, *line.Return.Exchange.OrderID)
		assert.Equal(t, ExchangeValueUp, line.Return.Resolution.Value)
		assert.Equal(t, "exchange:up", line.Return.Resolution.String())
		require.Len(t, exch.GetDomainEvents(), 1)
	})

	t.Run("second exchange is rejected", func(t *testing.T) {
		order, line := newLine(t, 1, "800")
		initiate(t, line, 1, ResolutionExchange)
		_, _, err := NewExchangeOrder(order, line, uuid.New(), decimal.NewFromInt(800), 1, "cs")
		require.NoError(t, err)

		_, _, err = NewExchangeOrder(order, line, uuid.New(), decimal.NewFromInt(800), 1, "cs")
		assert.True(t, errors.Is(err, ErrExchangeAlreadyCreated))
	})

	t.Run("requires an active return", func(t *testing.T) {
		order, line := newLine(t, 1, "800")
		_, _, err := NewExchangeOrder(order, line, uuid.New(), decimal.NewFromInt(800), 1, "cs")
		assert.True(t, errors.Is(err, ErrNoActiveReturn))
	})

	t.Run("requires exchange resolution", func(t *testing.T) {
		order, line := newLine(t, 1, "800")
		initiate(t, line, 1, ResolutionRefund)
		_, _, err := NewExchangeOrder(order, line, uuid.New(), decimal.NewFromInt(800), 1, "cs")
		assert.True(t, errors.Is(err, ErrNotExchangeResolution))
	})

	t.Run("down exchange", func(t *testing.T) {
		order, line := newLine(t, 1, "800")
		initiate(t, line, 1, ResolutionExchange)
		_, diff, err := NewExchangeOrder(order, line, uuid.New(), decimal.NewFromInt(500), 1, "cs")
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(-300).Equal(diff))
		assert.Equal(t, ExchangeValueDown, line.Return.Resolution.Value)
	})
}

func TestExchangeOrderNumber(t *testing.T) {
	order, err := NewOrder("ORD-77", uuid.New())
	require.NoError(t, err)
	lineID := uuid.MustParse("abcdef12-0000-0000-0000-000000000000")
	assert.Equal(t, "ORD-77-EXC-ABCDEF12", ExchangeOrderNumber(order, lineID))
}

func TestParseResolution(t *testing.T) {
	r, err := ParseResolution("refund")
	require.NoError(t, err)
	assert.True(t, r.IsRefund())

	_, err = ParseResolution("store_credit")
	assert.Error(t, err)
}
