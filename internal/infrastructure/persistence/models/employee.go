package models

import (
	"time"

	"github.com/catering/backend/internal/domain/staff"
	"github.com/shopspring/decimal"
)

// EmployeeModel is the persistence model for the Employee aggregate root
type EmployeeModel struct {
	AggregateModel
	EmployeeCode      string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name              string `gorm:"type:varchar(100);not null"`
	Phone             string `gorm:"type:varchar(20)"`
	Email             string `gorm:"type:varchar(100)"`
	Address           string `gorm:"type:text"`
	Type              string `gorm:"type:varchar(30);not null;index"`
	HireDate          *time.Time
	SalaryPerOrder    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	BaseSalary        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalOrdersServed int             `gorm:"not null;default:0"`
	TotalEarnings     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Active            bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the persistence model to a domain Employee
func (m *EmployeeModel) ToDomain() *staff.Employee {
	return &staff.Employee{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		EmployeeCode:      m.EmployeeCode,
		Name:              m.Name,
		Phone:             m.Phone,
		Email:             m.Email,
		Address:           m.Address,
		Type:              staff.EmployeeType(m.Type),
		HireDate:          m.HireDate,
		SalaryPerOrder:    m.SalaryPerOrder,
		BaseSalary:        m.BaseSalary,
		TotalOrdersServed: m.TotalOrdersServed,
		TotalEarnings:     m.TotalEarnings,
		Active:            m.Active,
	}
}

// FromDomain populates the model from a domain Employee
func (m *EmployeeModel) FromDomain(e *staff.Employee) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.EmployeeCode = e.EmployeeCode
	m.Name = e.Name
	m.Phone = e.Phone
	m.Email = e.Email
	m.Address = e.Address
	m.Type = string(e.Type)
	m.HireDate = e.HireDate
	m.SalaryPerOrder = e.SalaryPerOrder
	m.BaseSalary = e.BaseSalary
	m.TotalOrdersServed = e.TotalOrdersServed
	m.TotalEarnings = e.TotalEarnings
	m.Active = e.Active
}

// EmployeeModelFromDomain creates a new persistence model from a domain Employee
func EmployeeModelFromDomain(e *staff.Employee) *EmployeeModel {
	m := &EmployeeModel{}
	m.FromDomain(e)
	return m
}
