package customer

import (
	"github.com/catering/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerCreated       = "CustomerCreated"
	EventTypeCustomerUpdated       = "CustomerUpdated"
	EventTypeCustomerStatusChanged = "CustomerStatusChanged"
)

// CustomerCreatedEvent is published when a new customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID   uuid.UUID    `json:"customer_id"`
	CustomerCode string       `json:"customer_code"`
	Name         string       `json:"name"`
	Type         CustomerType `json:"type"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, AggregateTypeCustomer, c.ID),
		CustomerID:      c.ID,
		CustomerCode:    c.CustomerCode,
		Name:            c.Name,
		Type:            c.Type,
	}
}

// CustomerUpdatedEvent is published when profile fields change
type CustomerUpdatedEvent struct {
	shared.BaseDomainEvent
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerCode string    `json:"customer_code"`
	Name         string    `json:"name"`
}

// NewCustomerUpdatedEvent creates a new CustomerUpdatedEvent
func NewCustomerUpdatedEvent(c *Customer) *CustomerUpdatedEvent {
	return &CustomerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerUpdated, AggregateTypeCustomer, c.ID),
		CustomerID:      c.ID,
		CustomerCode:    c.CustomerCode,
		Name:            c.Name,
	}
}

// CustomerStatusChangedEvent is published on activation or deactivation
type CustomerStatusChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerCode string    `json:"customer_code"`
	Active       bool      `json:"active"`
}

// NewCustomerStatusChangedEvent creates a new CustomerStatusChangedEvent
func NewCustomerStatusChangedEvent(c *Customer) *CustomerStatusChangedEvent {
	return &CustomerStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerStatusChanged, AggregateTypeCustomer, c.ID),
		CustomerID:      c.ID,
		CustomerCode:    c.CustomerCode,
		Active:          c.Active,
	}
}
