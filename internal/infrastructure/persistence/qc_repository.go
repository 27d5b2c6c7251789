package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/qc"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormQueueItemRepository implements QueueItemRepository using GORM
type GormQueueItemRepository struct {
	db *gorm.DB
}

// NewGormQueueItemRepository creates a new GormQueueItemRepository
func NewGormQueueItemRepository(db *gorm.DB) *GormQueueItemRepository {
	return &GormQueueItemRepository{db: db}
}

// FindByID finds a queue item by its ID
func (r *GormQueueItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*qc.QueueItem, error) {
	var model models.QCQueueItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, qc.ErrItemNotFound)
	}
	return model.ToDomain(), nil
}

// FindPending lists pending items, oldest first
func (r *GormQueueItemRepository) FindPending(ctx context.Context, page shared.Page) ([]qc.QueueItem, int64, error) {
	page = page.Normalize()
	query := r.db.WithContext(ctx).Model(&models.QCQueueItemModel{}).
		Where("status = ?", string(qc.ItemStatusPending)).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []models.QCQueueItemModel
	if err := query.Order("created_at ASC").Limit(page.Limit).Offset(page.Offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}

	items := make([]qc.QueueItem, len(list))
	for i := range list {
		items[i] = *list[i].ToDomain()
	}
	return items, total, nil
}

// CountByReturnLine counts queue items created for a return line
func (r *GormQueueItemRepository) CountByReturnLine(ctx context.Context, lineID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.QCQueueItemModel{}).
		Where("return_line_id = ?", lineID).
		Count(&count).Error
	return count, err
}

// Create inserts a new queue item
func (r *GormQueueItemRepository) Create(ctx context.Context, item *qc.QueueItem) error {
	model := models.QCQueueItemModelFromDomain(item)
	return translateError(r.db.WithContext(ctx).Create(model).Error, nil)
}

// SaveIfStatus rewrites the item guarded by its stored status
func (r *GormQueueItemRepository) SaveIfStatus(ctx context.Context, item *qc.QueueItem, expected qc.ItemStatus) error {
	model := models.QCQueueItemModelFromDomain(item)
	result := r.db.WithContext(ctx).Model(model).
		Where("status = ?", string(expected)).
		Select("status", "comments", "write_off_reason", "processed_at", "processed_by", "version", "updated_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// GormWriteOffLogRepository implements WriteOffLogRepository using GORM
type GormWriteOffLogRepository struct {
	db *gorm.DB
}

// NewGormWriteOffLogRepository creates a new GormWriteOffLogRepository
func NewGormWriteOffLogRepository(db *gorm.DB) *GormWriteOffLogRepository {
	return &GormWriteOffLogRepository{db: db}
}

// Create appends a write-off log entry
func (r *GormWriteOffLogRepository) Create(ctx context.Context, log *qc.WriteOffLog) error {
	return r.db.WithContext(ctx).Create(models.WriteOffLogModelFromDomain(log)).Error
}

// FindByQueueItem lists write-offs recorded for a queue item
func (r *GormWriteOffLogRepository) FindByQueueItem(ctx context.Context, itemID uuid.UUID) ([]qc.WriteOffLog, error) {
	var list []models.WriteOffLogModel
	err := r.db.WithContext(ctx).
		Where("queue_item_id = ?", itemID).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	logs := make([]qc.WriteOffLog, len(list))
	for i := range list {
		logs[i] = *list[i].ToDomain()
	}
	return logs, nil
}

var (
	_ qc.QueueItemRepository   = (*GormQueueItemRepository)(nil)
	_ qc.WriteOffLogRepository = (*GormWriteOffLogRepository)(nil)
)
