package trade

import "github.com/shantum/COH-ERP2-sub001/internal/domain/shared"

// Stable error codes reported to collaborators
const (
	CodeLineNotFound           = "LINE_NOT_FOUND"
	CodeOrderNotFound          = "ORDER_NOT_FOUND"
	CodeAlreadyActive          = "ALREADY_ACTIVE"
	CodeInvalidQuantity        = "INVALID_QUANTITY"
	CodeExchangeSKUNotFound    = "EXCHANGE_SKU_NOT_FOUND"
	CodeWrongStatus            = "WRONG_STATUS"
	CodeRefundNotCompleted     = "REFUND_NOT_COMPLETED"
	CodeRefundNotProcessed     = "REFUND_NOT_PROCESSED"
	CodeRefundAlreadyCompleted = "REFUND_ALREADY_COMPLETED"
	CodeExchangeNotCreated     = "EXCHANGE_NOT_CREATED"
	CodeAlreadyTerminal        = "ALREADY_TERMINAL"
	CodeNoActiveReturn         = "NO_ACTIVE_RETURN"
	CodeNotRefundResolution    = "NOT_REFUND_RESOLUTION"
	CodeNotExchangeResolution  = "NOT_EXCHANGE_RESOLUTION"
	CodeExchangeAlreadyCreated = "EXCHANGE_ALREADY_CREATED"
	CodeCarrierBookingFailed   = "CARRIER_BOOKING_FAILED"
)

var (
	ErrLineNotFound           = shared.NewDomainError(CodeLineNotFound, "Order line not found")
	ErrOrderNotFound          = shared.NewDomainError(CodeOrderNotFound, "Order not found")
	ErrAlreadyActive          = shared.NewDomainError(CodeAlreadyActive, "Line already has an active return")
	ErrInvalidQuantity        = shared.NewDomainError(CodeInvalidQuantity, "Invalid return quantity")
	ErrExchangeSKUNotFound    = shared.NewDomainError(CodeExchangeSKUNotFound, "Exchange SKU not found")
	ErrWrongStatus            = shared.NewDomainError(CodeWrongStatus, "Return is not in the expected status")
	ErrRefundNotCompleted     = shared.NewDomainError(CodeRefundNotCompleted, "Refund must be completed before the return can be completed")
	ErrRefundNotProcessed     = shared.NewDomainError(CodeRefundNotProcessed, "Refund has not been processed")
	ErrRefundAlreadyCompleted = shared.NewDomainError(CodeRefundAlreadyCompleted, "Refund has already been completed")
	ErrExchangeNotCreated     = shared.NewDomainError(CodeExchangeNotCreated, "Exchange order must be created before the return can be completed")
	ErrAlreadyTerminal        = shared.NewDomainError(CodeAlreadyTerminal, "Return is already complete or cancelled")
	ErrNoActiveReturn         = shared.NewDomainError(CodeNoActiveReturn, "Line has no active return")
	ErrNotRefundResolution    = shared.NewDomainError(CodeNotRefundResolution, "Return resolution is not refund")
	ErrNotExchangeResolution  = shared.NewDomainError(CodeNotExchangeResolution, "Return resolution is not exchange")
	ErrExchangeAlreadyCreated = shared.NewDomainError(CodeExchangeAlreadyCreated, "An exchange order already exists for this line")
	ErrCarrierBookingFailed   = shared.NewDomainError(CodeCarrierBookingFailed, "Carrier pickup booking failed")
)
