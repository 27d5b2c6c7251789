package catalog

import "github.com/shantum/COH-ERP2-sub001/internal/domain/shared"

var ErrSKUNotFound = shared.NewDomainError("SKU_NOT_FOUND", "SKU not found")
