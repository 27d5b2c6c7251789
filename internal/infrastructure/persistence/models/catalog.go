package models

import (
	"github.com/shantum/COH-ERP2-sub001/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// SKUModel is the persistence model for SKUs
type SKUModel struct {
	AggregateModel
	Code          string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ReturnCount   int             `gorm:"not null;default:0"`
	WriteOffCount int             `gorm:"not null;default:0"`
	IsActive      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (SKUModel) TableName() string {
	return "skus"
}

// ToDomain converts the persistence model to a domain SKU
func (m *SKUModel) ToDomain() *catalog.SKU {
	return &catalog.SKU{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		Price:             m.Price,
		ReturnCount:       m.ReturnCount,
		WriteOffCount:     m.WriteOffCount,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain SKU
func (m *SKUModel) FromDomain(s *catalog.SKU) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Code = s.Code
	m.Name = s.Name
	m.Price = s.Price
	m.ReturnCount = s.ReturnCount
	m.WriteOffCount = s.WriteOffCount
	m.IsActive = s.IsActive
}

// SKUModelFromDomain creates a new persistence model from a domain SKU
func SKUModelFromDomain(s *catalog.SKU) *SKUModel {
	m := &SKUModel{}
	m.FromDomain(s)
	return m
}
