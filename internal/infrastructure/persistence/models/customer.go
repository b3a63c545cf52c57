package models

import (
	"github.com/catering/backend/internal/domain/customer"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer aggregate root
type CustomerModel struct {
	AggregateModel
	CustomerCode      string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name              string          `gorm:"type:varchar(100);not null"`
	ContactPerson     string          `gorm:"type:varchar(100)"`
	Phone             string          `gorm:"type:varchar(20);index"`
	Email             string          `gorm:"type:varchar(100)"`
	Address           string          `gorm:"type:text"`
	Type              string          `gorm:"type:varchar(20);not null;default:'ONE_TIME';index"`
	BusinessType      string          `gorm:"type:varchar(30)"`
	PaymentTerms      string          `gorm:"type:varchar(50)"`
	CreditLimit       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalOrders       int             `gorm:"not null;default:0"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	OutstandingAmount decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Active            bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *customer.Customer {
	return &customer.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CustomerCode:      m.CustomerCode,
		Name:              m.Name,
		ContactPerson:     m.ContactPerson,
		Phone:             m.Phone,
		Email:             m.Email,
		Address:           m.Address,
		Type:              customer.CustomerType(m.Type),
		BusinessType:      customer.BusinessType(m.BusinessType),
		PaymentTerms:      m.PaymentTerms,
		CreditLimit:       m.CreditLimit,
		TotalOrders:       m.TotalOrders,
		TotalAmount:       m.TotalAmount,
		OutstandingAmount: m.OutstandingAmount,
		Active:            m.Active,
	}
}

// FromDomain populates the model from a domain Customer
func (m *CustomerModel) FromDomain(c *customer.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.CustomerCode = c.CustomerCode
	m.Name = c.Name
	m.ContactPerson = c.ContactPerson
	m.Phone = c.Phone
	m.Email = c.Email
	m.Address = c.Address
	m.Type = string(c.Type)
	m.BusinessType = string(c.BusinessType)
	m.PaymentTerms = c.PaymentTerms
	m.CreditLimit = c.CreditLimit
	m.TotalOrders = c.TotalOrders
	m.TotalAmount = c.TotalAmount
	m.OutstandingAmount = c.OutstandingAmount
	m.Active = c.Active
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer
func CustomerModelFromDomain(c *customer.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
