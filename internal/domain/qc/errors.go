package qc

import "github.com/shantum/COH-ERP2-sub001/internal/domain/shared"

var (
	ErrItemNotFound     = shared.NewDomainError("QC_ITEM_NOT_FOUND", "QC queue item not found")
	ErrItemNotPending   = shared.NewDomainError("QC_ITEM_NOT_PENDING", "QC queue item has already been processed")
	ErrItemNotProcessed = shared.NewDomainError("QC_ITEM_NOT_PROCESSED", "QC queue item has no decision to undo")
)
