package inventory

import "github.com/shantum/COH-ERP2-sub001/internal/domain/shared"

var ErrInsufficientStock = shared.NewDomainError("INSUFFICIENT_STOCK", "Adjustment would drive the balance below zero")
