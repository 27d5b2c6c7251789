package dto

import "net/http"

// Codes produced at the HTTP edge. Domain codes pass through unchanged.
const (
	ErrCodeInternal            = "INTERNAL_ERROR"
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeInvalidID           = "INVALID_ID"
	ErrCodeInvalidRefundAmount = "INVALID_REFUND_AMOUNT"
	ErrCodeRequestTooLarge     = "REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	// Malformed input -> 400
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidID:    http.StatusBadRequest,
	"INVALID_INPUT":     http.StatusBadRequest,
	"INVALID_QUANTITY":  http.StatusBadRequest,
	"INVALID_SKU":       http.StatusBadRequest,
	"INVALID_DIRECTION": http.StatusBadRequest,
	"INVALID_REASON":    http.StatusBadRequest,
	"INVALID_CODE":      http.StatusBadRequest,
	"INVALID_NAME":      http.StatusBadRequest,
	"INVALID_PRICE":     http.StatusBadRequest,

	// Missing resources -> 404
	"NOT_FOUND":              http.StatusNotFound,
	"LINE_NOT_FOUND":         http.StatusNotFound,
	"ORDER_NOT_FOUND":        http.StatusNotFound,
	"EXCHANGE_SKU_NOT_FOUND": http.StatusNotFound,
	"SKU_NOT_FOUND":          http.StatusNotFound,
	"CUSTOMER_NOT_FOUND":     http.StatusNotFound,
	"QC_ITEM_NOT_FOUND":      http.StatusNotFound,

	// State and idempotency violations -> 409
	"WRONG_STATUS":             http.StatusConflict,
	"ALREADY_ACTIVE":           http.StatusConflict,
	"ALREADY_TERMINAL":         http.StatusConflict,
	"NO_ACTIVE_RETURN":         http.StatusConflict,
	"EXCHANGE_ALREADY_CREATED": http.StatusConflict,
	"EXCHANGE_NOT_CREATED":     http.StatusConflict,
	"REFUND_NOT_COMPLETED":     http.StatusConflict,
	"REFUND_NOT_PROCESSED":     http.StatusConflict,
	"REFUND_ALREADY_COMPLETED": http.StatusConflict,
	"QC_ITEM_NOT_PENDING":      http.StatusConflict,
	"QC_ITEM_NOT_PROCESSED":    http.StatusConflict,
	"CONCURRENCY_CONFLICT":     http.StatusConflict,
	"ALREADY_EXISTS":           http.StatusConflict,
	"INVALID_STATE":            http.StatusConflict,

	// Well-formed but rejected by a business rule -> 422
	"INSUFFICIENT_STOCK":       http.StatusUnprocessableEntity,
	"NOT_REFUND_RESOLUTION":    http.StatusUnprocessableEntity,
	"NOT_EXCHANGE_RESOLUTION":  http.StatusUnprocessableEntity,
	ErrCodeInvalidRefundAmount: http.StatusUnprocessableEntity,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	"CARRIER_BOOKING_FAILED": http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
