package persistence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestUniqueViolationOn(t *testing.T) {
	exchangeDup := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: constraintExchangeForLine}
	numberDup := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "uq_orders_order_number"}

	assert.True(t, uniqueViolationOn(fmt.Errorf("insert: %w", exchangeDup), constraintExchangeForLine))
	assert.False(t, uniqueViolationOn(numberDup, constraintExchangeForLine))
	assert.False(t, uniqueViolationOn(&pgconn.PgError{Code: "23503", ConstraintName: constraintExchangeForLine}, constraintExchangeForLine))
	assert.False(t, uniqueViolationOn(gorm.ErrDuplicatedKey, constraintExchangeForLine))
	assert.False(t, uniqueViolationOn(nil, constraintExchangeForLine))
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"missing row with specific error", gorm.ErrRecordNotFound, trade.ErrLineNotFound},
		{"duplicate key", gorm.ErrDuplicatedKey, shared.ErrAlreadyExists},
		{"postgres unique violation", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "uq_orders_order_number"}, shared.ErrAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err, trade.ErrLineNotFound)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	t.Run("missing row without specific error", func(t *testing.T) {
		assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound, nil), shared.ErrNotFound)
	})
	t.Run("other errors pass through", func(t *testing.T) {
		boom := errors.New("connection reset")
		assert.Equal(t, boom, translateError(boom, nil))
	})
}
