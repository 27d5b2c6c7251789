package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReturnStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to ReturnStatus
		want     bool
	}{
		{ReturnStatusNone, ReturnStatusRequested, true},
		{ReturnStatusCancelled, ReturnStatusRequested, true},
		{ReturnStatusComplete, ReturnStatusRequested, true},
		{ReturnStatusRequested, ReturnStatusRequested, false},
		{ReturnStatusRequested, ReturnStatusPickupScheduled, true},
		{ReturnStatusRequested, ReturnStatusInTransit, true},
		{ReturnStatusRequested, ReturnStatusReceived, true},
		{ReturnStatusPickupScheduled, ReturnStatusInTransit, true},
		{ReturnStatusPickupScheduled, ReturnStatusReceived, true},
		{ReturnStatusPickupScheduled, ReturnStatusRequested, false},
		{ReturnStatusInTransit, ReturnStatusReceived, true},
		{ReturnStatusInTransit, ReturnStatusPickupScheduled, false},
		{ReturnStatusReceived, ReturnStatusQCInspected, true},
		{ReturnStatusReceived, ReturnStatusComplete, true},
		{ReturnStatusQCInspected, ReturnStatusComplete, true},
		{ReturnStatusComplete, ReturnStatusReceived, false},
		{ReturnStatusInTransit, ReturnStatusComplete, false},
		{ReturnStatusRequested, ReturnStatusCancelled, true},
		{ReturnStatusQCInspected, ReturnStatusCancelled, true},
		{ReturnStatusComplete, ReturnStatusCancelled, false},
		{ReturnStatusCancelled, ReturnStatusCancelled, false},
		{ReturnStatusNone, ReturnStatusCancelled, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestReturnStatus_IsNoOp(t *testing.T) {
	assert.True(t, ReturnStatusInTransit.IsNoOp(ReturnStatusInTransit))
	assert.True(t, ReturnStatusComplete.IsNoOp(ReturnStatusComplete))
	assert.False(t, ReturnStatusCancelled.IsNoOp(ReturnStatusCancelled))
	assert.False(t, ReturnStatusNone.IsNoOp(ReturnStatusNone))
	assert.False(t, ReturnStatusRequested.IsNoOp(ReturnStatusReceived))
}

func TestReturnStatus_Flags(t *testing.T) {
	assert.False(t, ReturnStatusNone.IsActive())
	assert.True(t, ReturnStatusReceived.IsActive())
	assert.True(t, ReturnStatusComplete.IsTerminal())
	assert.False(t, ReturnStatusComplete.IsActive())
	assert.Equal(t, "none", ReturnStatusNone.String())
	assert.False(t, ReturnStatus("lost").IsValid())
}
