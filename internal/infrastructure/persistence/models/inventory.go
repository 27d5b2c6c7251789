package models

import (
	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/inventory"
)

// InventoryTransactionModel is the persistence model for ledger entries.
// Rows are only ever inserted.
type InventoryTransactionModel struct {
	BaseModel
	SKUID       uuid.UUID  `gorm:"column:sku_id;type:uuid;not null;index:idx_inv_tx_sku_created,priority:1"`
	Direction   string     `gorm:"type:varchar(10);not null"`
	Quantity    int        `gorm:"not null"`
	Reason      string     `gorm:"type:varchar(32);not null"`
	ReferenceID *uuid.UUID `gorm:"type:uuid;index"`
	Notes       string     `gorm:"type:text"`
	Actor       string     `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (InventoryTransactionModel) TableName() string {
	return "inventory_transactions"
}

// ToDomain converts the persistence model to a domain InventoryTransaction
func (m *InventoryTransactionModel) ToDomain() *inventory.InventoryTransaction {
	return &inventory.InventoryTransaction{
		BaseEntity:  m.BaseModel.ToDomain(),
		SKUID:       m.SKUID,
		Direction:   inventory.Direction(m.Direction),
		Quantity:    m.Quantity,
		Reason:      inventory.ReasonCode(m.Reason),
		ReferenceID: m.ReferenceID,
		Notes:       m.Notes,
		Actor:       m.Actor,
	}
}

// InventoryTransactionModelFromDomain creates a new persistence model from a domain InventoryTransaction
func InventoryTransactionModelFromDomain(t *inventory.InventoryTransaction) *InventoryTransactionModel {
	m := &InventoryTransactionModel{
		SKUID:       t.SKUID,
		Direction:   string(t.Direction),
		Quantity:    t.Quantity,
		Reason:      string(t.Reason),
		ReferenceID: t.ReferenceID,
		Notes:       t.Notes,
		Actor:       t.Actor,
	}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}
