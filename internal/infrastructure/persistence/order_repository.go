package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/trade"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const constraintExchangeForLine = "uq_orders_exchange_for_line"

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID, without lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, trade.ErrOrderNotFound)
	}
	return model.ToDomain(), nil
}

// FindByExchangeForLine finds the exchange order raised for a return line
func (r *GormOrderRepository) FindByExchangeForLine(ctx context.Context, lineID uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("exchange_for_line_id = ?", lineID).
		First(&model).Error
	if err != nil {
		return nil, translateError(err, trade.ErrOrderNotFound)
	}
	return model.ToDomain(), nil
}

// Create inserts an order together with its lines. A second exchange order
// for the same return line violates uq_orders_exchange_for_line and surfaces
// as trade.ErrExchangeAlreadyCreated; any other unique violation is
// shared.ErrAlreadyExists.
func (r *GormOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	model := models.OrderModelFromDomain(order)
	err := r.db.WithContext(ctx).Create(model).Error
	if uniqueViolationOn(err, constraintExchangeForLine) {
		return trade.ErrExchangeAlreadyCreated
	}
	return translateError(err, nil)
}

// GormOrderLineRepository implements OrderLineRepository using GORM
type GormOrderLineRepository struct {
	db *gorm.DB
}

// NewGormOrderLineRepository creates a new GormOrderLineRepository
func NewGormOrderLineRepository(db *gorm.DB) *GormOrderLineRepository {
	return &GormOrderLineRepository{db: db}
}

// FindByID finds an order line by its ID
func (r *GormOrderLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.OrderLine, error) {
	var model models.OrderLineModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, trade.ErrLineNotFound)
	}
	return model.ToDomain(), nil
}

// SaveReturnIfUnchanged rewrites the return columns of the line guarded by
// the status and version it was loaded with. Zero rows affected means another
// writer got there first: ErrWrongStatus when the status moved on,
// shared.ErrConcurrencyConflict when the line was changed in place.
func (r *GormOrderLineRepository) SaveReturnIfUnchanged(ctx context.Context, line *trade.OrderLine, expected trade.ReturnStatus, version int) error {
	model := &models.OrderLineModel{}
	model.FromDomain(line)

	query := r.db.WithContext(ctx).Model(model)
	if expected == trade.ReturnStatusNone {
		query = query.Where("return_status IS NULL")
	} else {
		query = query.Where("return_status = ?", string(expected))
	}
	query = query.Where("version = ?", version)

	result := query.Select(models.ReturnColumns()).Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.lostWrite(ctx, line.ID, expected)
	}
	return nil
}

// lostWrite explains a guarded update that matched no row
func (r *GormOrderLineRepository) lostWrite(ctx context.Context, id uuid.UUID, expected trade.ReturnStatus) error {
	var stored models.OrderLineModel
	err := r.db.WithContext(ctx).
		Select("id", "return_status").
		Where("id = ?", id).
		First(&stored).Error
	if err != nil {
		return translateError(err, trade.ErrLineNotFound)
	}

	current := trade.ReturnStatusNone
	if stored.ReturnStatus != nil {
		current = trade.ReturnStatus(*stored.ReturnStatus)
	}
	if current != expected {
		return trade.ErrWrongStatus
	}
	return shared.ErrConcurrencyConflict
}

// Ensure interfaces are implemented
var (
	_ trade.OrderRepository     = (*GormOrderRepository)(nil)
	_ trade.OrderLineRepository = (*GormOrderLineRepository)(nil)
)
