package models

import "github.com/shantum/COH-ERP2-sub001/internal/domain/partner"

// CustomerModel is the persistence model for customers
type CustomerModel struct {
	AggregateModel
	Name          string `gorm:"type:varchar(200);not null"`
	Email         string `gorm:"type:varchar(200);index"`
	ReturnCount   int    `gorm:"not null;default:0"`
	ExchangeCount int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Email:             m.Email,
		ReturnCount:       m.ReturnCount,
		ExchangeCount:     m.ExchangeCount,
	}
}

// FromDomain populates the persistence model from a domain Customer
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Email = c.Email
	m.ReturnCount = c.ReturnCount
	m.ExchangeCount = c.ExchangeCount
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
