package models

import (
	"time"

	"github.com/catering/backend/internal/domain/catering"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root
type OrderModel struct {
	AggregateModel
	OrderNumber         string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerID          *uuid.UUID      `gorm:"type:uuid;index"`
	OrderType           string          `gorm:"type:varchar(20);not null"`
	EventName           string          `gorm:"type:varchar(200)"`
	EventDate           time.Time       `gorm:"not null;index"`
	EventTime           string          `gorm:"type:varchar(5)"`
	VenueAddress        string          `gorm:"type:text"`
	GuestCount          int             `gorm:"not null;default:0"`
	MenuDetails         string          `gorm:"type:text"`
	SpecialRequirements string          `gorm:"type:text"`
	Notes               string          `gorm:"type:text"`
	Status              string          `gorm:"type:varchar(20);not null;index"`
	TotalAmount         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	AdvanceAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	RemainingAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaymentStatus       string          `gorm:"type:varchar(20);not null;index"`
	CancelReason        string          `gorm:"type:text"`
	CompletedAt         *time.Time
	CancelledAt         *time.Time

	Assignments     []EmployeeAssignmentModel `gorm:"foreignKey:OrderID;references:ID"`
	InventoryUsages []InventoryUsageModel     `gorm:"foreignKey:OrderID;references:ID"`
	Tasks           []TaskModel               `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *catering.Order {
	o := &catering.Order{
		BaseAggregateRoot:   m.ToDomainAggregateRoot(),
		OrderNumber:         m.OrderNumber,
		CustomerID:          m.CustomerID,
		OrderType:           catering.OrderType(m.OrderType),
		EventName:           m.EventName,
		EventDate:           m.EventDate.UTC(),
		EventTime:           m.EventTime,
		VenueAddress:        m.VenueAddress,
		GuestCount:          m.GuestCount,
		MenuDetails:         m.MenuDetails,
		SpecialRequirements: m.SpecialRequirements,
		Notes:               m.Notes,
		Status:              catering.OrderStatus(m.Status),
		TotalAmount:         m.TotalAmount,
		AdvanceAmount:       m.AdvanceAmount,
		RemainingAmount:     m.RemainingAmount,
		PaymentStatus:       catering.PaymentStatus(m.PaymentStatus),
		CancelReason:        m.CancelReason,
		CompletedAt:         m.CompletedAt,
		CancelledAt:         m.CancelledAt,
		Assignments:         make([]catering.EmployeeAssignment, len(m.Assignments)),
		InventoryUsages:     make([]catering.InventoryUsage, len(m.InventoryUsages)),
		Tasks:               make([]catering.Task, len(m.Tasks)),
	}
	for i := range m.Assignments {
		o.Assignments[i] = m.Assignments[i].ToDomain()
	}
	for i := range m.InventoryUsages {
		o.InventoryUsages[i] = m.InventoryUsages[i].ToDomain()
	}
	for i := range m.Tasks {
		o.Tasks[i] = *m.Tasks[i].ToDomain()
	}
	return o
}

// FromDomain populates the model from a domain Order. Tasks are not
// copied; they persist through their own repository.
func (m *OrderModel) FromDomain(o *catering.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.CustomerID = o.CustomerID
	m.OrderType = string(o.OrderType)
	m.EventName = o.EventName
	m.EventDate = o.EventDate
	m.EventTime = o.EventTime
	m.VenueAddress = o.VenueAddress
	m.GuestCount = o.GuestCount
	m.MenuDetails = o.MenuDetails
	m.SpecialRequirements = o.SpecialRequirements
	m.Notes = o.Notes
	m.Status = string(o.Status)
	m.TotalAmount = o.TotalAmount
	m.AdvanceAmount = o.AdvanceAmount
	m.RemainingAmount = o.RemainingAmount
	m.PaymentStatus = string(o.PaymentStatus)
	m.CancelReason = o.CancelReason
	m.CompletedAt = o.CompletedAt
	m.CancelledAt = o.CancelledAt

	m.Assignments = make([]EmployeeAssignmentModel, len(o.Assignments))
	for i := range o.Assignments {
		m.Assignments[i].FromDomain(&o.Assignments[i])
	}
	m.InventoryUsages = make([]InventoryUsageModel, len(o.InventoryUsages))
	for i := range o.InventoryUsages {
		m.InventoryUsages[i].FromDomain(&o.InventoryUsages[i])
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *catering.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// EmployeeAssignmentModel is the persistence model for EmployeeAssignment
type EmployeeAssignmentModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_order_employee,priority:1"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_order_employee,priority:2;index"`
	Role          string          `gorm:"type:varchar(50)"`
	PaymentAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaymentStatus string          `gorm:"type:varchar(20);not null"`
	AssignedAt    time.Time       `gorm:"not null"`
	PaidAt        *time.Time
}

// TableName returns the table name for GORM
func (EmployeeAssignmentModel) TableName() string {
	return "employee_assignments"
}

// ToDomain converts the persistence model to a domain EmployeeAssignment
func (m *EmployeeAssignmentModel) ToDomain() catering.EmployeeAssignment {
	return catering.EmployeeAssignment{
		ID:            m.ID,
		OrderID:       m.OrderID,
		EmployeeID:    m.EmployeeID,
		Role:          m.Role,
		PaymentAmount: m.PaymentAmount,
		PaymentStatus: catering.AssignmentPaymentStatus(m.PaymentStatus),
		AssignedAt:    m.AssignedAt,
		PaidAt:        m.PaidAt,
	}
}

// FromDomain populates the model from a domain EmployeeAssignment
func (m *EmployeeAssignmentModel) FromDomain(a *catering.EmployeeAssignment) {
	m.ID = a.ID
	m.OrderID = a.OrderID
	m.EmployeeID = a.EmployeeID
	m.Role = a.Role
	m.PaymentAmount = a.PaymentAmount
	m.PaymentStatus = string(a.PaymentStatus)
	m.AssignedAt = a.AssignedAt
	m.PaidAt = a.PaidAt
}

// InventoryUsageModel is the persistence model for InventoryUsage
type InventoryUsageModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	InventoryItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuantityUsed    int             `gorm:"not null"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalCost       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	UsedAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventoryUsageModel) TableName() string {
	return "inventory_usages"
}

// ToDomain converts the persistence model to a domain InventoryUsage
func (m *InventoryUsageModel) ToDomain() catering.InventoryUsage {
	return catering.InventoryUsage{
		ID:              m.ID,
		OrderID:         m.OrderID,
		InventoryItemID: m.InventoryItemID,
		QuantityUsed:    m.QuantityUsed,
		UnitCost:        m.UnitCost,
		TotalCost:       m.TotalCost,
		UsedAt:          m.UsedAt,
	}
}

// FromDomain populates the model from a domain InventoryUsage
func (m *InventoryUsageModel) FromDomain(u *catering.InventoryUsage) {
	m.ID = u.ID
	m.OrderID = u.OrderID
	m.InventoryItemID = u.InventoryItemID
	m.QuantityUsed = u.QuantityUsed
	m.UnitCost = u.UnitCost
	m.TotalCost = u.TotalCost
	m.UsedAt = u.UsedAt
}
