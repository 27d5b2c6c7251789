package qc

import (
	"context"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
)

// QueueItemRepository defines persistence for QC queue items
type QueueItemRepository interface {
	// FindByID finds a queue item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*QueueItem, error)

	// FindPending lists pending items, oldest first
	FindPending(ctx context.Context, page shared.Page) ([]QueueItem, int64, error)

	// CountByReturnLine counts queue items created for a return line
	CountByReturnLine(ctx context.Context, lineID uuid.UUID) (int64, error)

	// Create inserts a new queue item
	Create(ctx context.Context, item *QueueItem) error

	// SaveIfStatus rewrites the item only if its stored status still equals
	// expected, returning shared.ErrConcurrencyConflict otherwise
	SaveIfStatus(ctx context.Context, item *QueueItem, expected ItemStatus) error
}

// WriteOffLogRepository is the append-only write-off audit store
type WriteOffLogRepository interface {
	// Create appends a write-off log entry
	Create(ctx context.Context, log *WriteOffLog) error

	// FindByQueueItem lists write-offs recorded for a queue item
	FindByQueueItem(ctx context.Context, itemID uuid.UUID) ([]WriteOffLog, error)
}
