package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// OutboxStore is the outbox maintenance surface used by the jobs
type OutboxStore interface {
	DeleteSentBefore(ctx context.Context, before time.Time) (int64, error)
	CountByStatus(ctx context.Context) (map[shared.OutboxStatus]int64, error)
	FindDead(ctx context.Context, limit int) ([]*shared.OutboxEntry, error)
}

// OutboxCleanupJob deletes delivered outbox entries older than the retention
type OutboxCleanupJob struct {
	store     OutboxStore
	retention time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewOutboxCleanupJob creates the cleanup job
func NewOutboxCleanupJob(store OutboxStore, retention time.Duration, logger *zap.Logger) (*OutboxCleanupJob, error) {
	if retention <= 0 {
		return nil, fmt.Errorf("%w: outbox retention must be positive", ErrInvalidConfig)
	}
	return &OutboxCleanupJob{store: store, retention: retention, logger: logger, now: time.Now}, nil
}

func (j *OutboxCleanupJob) Name() string { return "outbox_cleanup" }

func (j *OutboxCleanupJob) Run(ctx context.Context) error {
	deleted, err := j.store.DeleteSentBefore(ctx, j.now().Add(-j.retention))
	if err != nil {
		return fmt.Errorf("delete sent outbox entries: %w", err)
	}
	if deleted > 0 {
		j.logger.Info("Cleaned up sent outbox entries", zap.Int64("deleted", deleted))
	}
	return nil
}

// DeadLetterReportJob logs outbox backlog and the most recent dead letters
// so stuck events surface in alerting.
type DeadLetterReportJob struct {
	store  OutboxStore
	limit  int
	logger *zap.Logger
}

// NewDeadLetterReportJob creates the report job
func NewDeadLetterReportJob(store OutboxStore, limit int, logger *zap.Logger) *DeadLetterReportJob {
	if limit <= 0 {
		limit = 20
	}
	return &DeadLetterReportJob{store: store, limit: limit, logger: logger}
}

func (j *DeadLetterReportJob) Name() string { return "outbox_dead_letter_report" }

func (j *DeadLetterReportJob) Run(ctx context.Context) error {
	counts, err := j.store.CountByStatus(ctx)
	if err != nil {
		return fmt.Errorf("count outbox entries: %w", err)
	}

	dead := counts[shared.OutboxStatusDead]
	j.logger.Info("Outbox status",
		zap.Int64("pending", counts[shared.OutboxStatusPending]),
		zap.Int64("processing", counts[shared.OutboxStatusProcessing]),
		zap.Int64("failed", counts[shared.OutboxStatusFailed]),
		zap.Int64("dead", dead),
	)
	if dead == 0 {
		return nil
	}

	entries, err := j.store.FindDead(ctx, j.limit)
	if err != nil {
		return fmt.Errorf("find dead letters: %w", err)
	}
	for _, e := range entries {
		j.logger.Warn("Outbox dead letter",
			zap.String("event_id", e.EventID.String()),
			zap.String("event_type", e.EventType),
			zap.String("aggregate_id", e.AggregateID.String()),
			zap.Int("retry_count", e.RetryCount),
			zap.String("last_error", e.LastError),
		)
	}
	return nil
}
