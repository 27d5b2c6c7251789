package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/partner"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, partner.ErrCustomerNotFound)
	}
	return model.ToDomain(), nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	return translateError(r.db.WithContext(ctx).Save(model).Error, nil)
}

// AdjustReturnCount atomically adds delta to the customer's return count
func (r *GormCustomerRepository) AdjustReturnCount(ctx context.Context, id uuid.UUID, delta int) error {
	return incrementColumn(r.db.WithContext(ctx).Model(&models.CustomerModel{}), id, "return_count", delta, partner.ErrCustomerNotFound)
}

// AdjustExchangeCount atomically adds delta to the customer's exchange count
func (r *GormCustomerRepository) AdjustExchangeCount(ctx context.Context, id uuid.UUID, delta int) error {
	return incrementColumn(r.db.WithContext(ctx).Model(&models.CustomerModel{}), id, "exchange_count", delta, partner.ErrCustomerNotFound)
}

var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
