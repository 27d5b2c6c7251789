package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/inventory"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInventoryTransactionRepository implements InventoryTransactionRepository
// using GORM. The ledger is insert-only.
type GormInventoryTransactionRepository struct {
	db *gorm.DB
}

// NewGormInventoryTransactionRepository creates a new GormInventoryTransactionRepository
func NewGormInventoryTransactionRepository(db *gorm.DB) *GormInventoryTransactionRepository {
	return &GormInventoryTransactionRepository{db: db}
}

// Create appends a ledger entry
func (r *GormInventoryTransactionRepository) Create(ctx context.Context, tx *inventory.InventoryTransaction) error {
	return r.db.WithContext(ctx).Create(models.InventoryTransactionModelFromDomain(tx)).Error
}

// FindByReference finds entries written for a referenced document, oldest first
func (r *GormInventoryTransactionRepository) FindByReference(ctx context.Context, referenceID uuid.UUID) ([]inventory.InventoryTransaction, error) {
	var list []models.InventoryTransactionModel
	err := r.db.WithContext(ctx).
		Where("reference_id = ?", referenceID).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return toLedgerEntries(list), nil
}

// FindBySKU lists entries for a SKU, newest first
func (r *GormInventoryTransactionRepository) FindBySKU(ctx context.Context, skuID uuid.UUID, page shared.Page) ([]inventory.InventoryTransaction, int64, error) {
	page = page.Normalize()
	query := r.db.WithContext(ctx).Model(&models.InventoryTransactionModel{}).Where("sku_id = ?", skuID).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []models.InventoryTransactionModel
	if err := query.Order("created_at DESC").Limit(page.Limit).Offset(page.Offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return toLedgerEntries(list), total, nil
}

// SumBySKUs computes balances for the given SKUs in one grouped scan
func (r *GormInventoryTransactionRepository) SumBySKUs(ctx context.Context, skuIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	balances := make(map[uuid.UUID]int, len(skuIDs))
	if len(skuIDs) == 0 {
		return balances, nil
	}

	var rows []struct {
		SKUID   uuid.UUID `gorm:"column:sku_id"`
		Balance int       `gorm:"column:balance"`
	}
	err := r.db.WithContext(ctx).Model(&models.InventoryTransactionModel{}).
		Select("sku_id, SUM(CASE WHEN direction = ? THEN quantity ELSE -quantity END) AS balance", string(inventory.DirectionInward)).
		Where("sku_id IN ?", skuIDs).
		Group("sku_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, id := range skuIDs {
		balances[id] = 0
	}
	for _, row := range rows {
		balances[row.SKUID] = row.Balance
	}
	return balances, nil
}

func toLedgerEntries(list []models.InventoryTransactionModel) []inventory.InventoryTransaction {
	entries := make([]inventory.InventoryTransaction, len(list))
	for i := range list {
		entries[i] = *list[i].ToDomain()
	}
	return entries
}

var _ inventory.InventoryTransactionRepository = (*GormInventoryTransactionRepository)(nil)
