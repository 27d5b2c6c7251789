package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/catalog"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSKURepository implements SKURepository using GORM
type GormSKURepository struct {
	db *gorm.DB
}

// NewGormSKURepository creates a new GormSKURepository
func NewGormSKURepository(db *gorm.DB) *GormSKURepository {
	return &GormSKURepository{db: db}
}

// FindByID finds a SKU by its ID
func (r *GormSKURepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.SKU, error) {
	var model models.SKUModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, catalog.ErrSKUNotFound)
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple SKUs by their IDs. Unknown IDs are skipped.
func (r *GormSKURepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.SKU, error) {
	if len(ids) == 0 {
		return []catalog.SKU{}, nil
	}
	var list []models.SKUModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	skus := make([]catalog.SKU, len(list))
	for i := range list {
		skus[i] = *list[i].ToDomain()
	}
	return skus, nil
}

// Save creates or updates a SKU
func (r *GormSKURepository) Save(ctx context.Context, sku *catalog.SKU) error {
	model := models.SKUModelFromDomain(sku)
	return translateError(r.db.WithContext(ctx).Save(model).Error, nil)
}

// AdjustReturnCount atomically adds delta to the SKU's return count
func (r *GormSKURepository) AdjustReturnCount(ctx context.Context, id uuid.UUID, delta int) error {
	return r.adjust(ctx, id, "return_count", delta)
}

// AdjustWriteOffCount atomically adds delta to the SKU's write-off count
func (r *GormSKURepository) AdjustWriteOffCount(ctx context.Context, id uuid.UUID, delta int) error {
	return r.adjust(ctx, id, "write_off_count", delta)
}

func (r *GormSKURepository) adjust(ctx context.Context, id uuid.UUID, column string, delta int) error {
	return incrementColumn(r.db.WithContext(ctx).Model(&models.SKUModel{}), id, column, delta, catalog.ErrSKUNotFound)
}

// incrementColumn runs UPDATE ... SET column = column + delta for one row
func incrementColumn(query *gorm.DB, id uuid.UUID, column string, delta int, notFound error) error {
	result := query.Where("id = ?", id).UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}

var _ catalog.SKURepository = (*GormSKURepository)(nil)
