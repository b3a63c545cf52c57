package staff

import (
	"github.com/catering/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeEmployee = "Employee"

// Event type constants
const (
	EventTypeEmployeeCreated     = "EmployeeCreated"
	EventTypeEmployeeActivated   = "EmployeeActivated"
	EventTypeEmployeeDeactivated = "EmployeeDeactivated"
)

// EmployeeCreatedEvent is raised when an employee is hired
type EmployeeCreatedEvent struct {
	shared.BaseDomainEvent
	EmployeeID   uuid.UUID    `json:"employee_id"`
	EmployeeCode string       `json:"employee_code"`
	Name         string       `json:"name"`
	Type         EmployeeType `json:"type"`
}

// NewEmployeeCreatedEvent creates a new EmployeeCreatedEvent
func NewEmployeeCreatedEvent(e *Employee) *EmployeeCreatedEvent {
	return &EmployeeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeCreated, AggregateTypeEmployee, e.ID),
		EmployeeID:      e.ID,
		EmployeeCode:    e.EmployeeCode,
		Name:            e.Name,
		Type:            e.Type,
	}
}

// EmployeeStatusEvent is raised when an employee is activated or deactivated
type EmployeeStatusEvent struct {
	shared.BaseDomainEvent
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	Active       bool      `json:"active"`
}

// NewEmployeeStatusEvent creates the activation or deactivation event
// matching the employee's current state
func NewEmployeeStatusEvent(e *Employee) *EmployeeStatusEvent {
	eventType := EventTypeEmployeeDeactivated
	if e.Active {
		eventType = EventTypeEmployeeActivated
	}
	return &EmployeeStatusEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeEmployee, e.ID),
		EmployeeID:      e.ID,
		EmployeeCode:    e.EmployeeCode,
		Active:          e.Active,
	}
}
