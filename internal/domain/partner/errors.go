package partner

import "github.com/shantum/COH-ERP2-sub001/internal/domain/shared"

var ErrCustomerNotFound = shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
