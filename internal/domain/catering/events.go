package catering

import (
	"github.com/catering/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeOrder = "Order"
	AggregateTypeTask  = "Task"
)

// Event type constants
const (
	EventTypeOrderCreated              = "OrderCreated"
	EventTypeOrderStatusChanged        = "OrderStatusChanged"
	EventTypeOrderPaymentStatusChanged = "OrderPaymentStatusChanged"
	EventTypeEmployeeAssigned          = "EmployeeAssigned"
	EventTypeEmployeeUnassigned        = "EmployeeUnassigned"
	EventTypeAssignmentFinalized       = "AssignmentFinalized"
	EventTypeInventoryUsageRecorded    = "InventoryUsageRecorded"
	EventTypeInventoryUsageRemoved     = "InventoryUsageRemoved"
	EventTypeTaskStatusChanged         = "TaskStatusChanged"
)

// OrderCreatedEvent is raised when an order is booked
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string    `json:"order_number"`
	OrderType   OrderType `json:"order_type"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		OrderType:       o.OrderType,
	}
}

// OrderStatusChangedEvent is raised on every lifecycle transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string      `json:"order_number"`
	From        OrderStatus `json:"from"`
	To          OrderStatus `json:"to"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, from OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		From:            from,
		To:              o.Status,
	}
}

// OrderPaymentStatusChangedEvent is raised when the derived payment status moves
type OrderPaymentStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber     string          `json:"order_number"`
	From            PaymentStatus   `json:"from"`
	To              PaymentStatus   `json:"to"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
}

// NewOrderPaymentStatusChangedEvent creates a new OrderPaymentStatusChangedEvent
func NewOrderPaymentStatusChangedEvent(o *Order, from PaymentStatus) *OrderPaymentStatusChangedEvent {
	return &OrderPaymentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaymentStatusChanged, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		From:            from,
		To:              o.PaymentStatus,
		RemainingAmount: o.RemainingAmount,
	}
}

// EmployeeAssignedEvent is raised when staff are booked onto an order
type EmployeeAssignedEvent struct {
	shared.BaseDomainEvent
	AssignmentID  uuid.UUID       `json:"assignment_id"`
	EmployeeID    uuid.UUID       `json:"employee_id"`
	Role          string          `json:"role"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
}

// NewEmployeeAssignedEvent creates a new EmployeeAssignedEvent
func NewEmployeeAssignedEvent(o *Order, a *EmployeeAssignment) *EmployeeAssignedEvent {
	return &EmployeeAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeAssigned, AggregateTypeOrder, o.ID),
		AssignmentID:    a.ID,
		EmployeeID:      a.EmployeeID,
		Role:            a.Role,
		PaymentAmount:   a.PaymentAmount,
	}
}

// EmployeeUnassignedEvent is raised when an assignment is removed
type EmployeeUnassignedEvent struct {
	shared.BaseDomainEvent
	AssignmentID uuid.UUID `json:"assignment_id"`
	EmployeeID   uuid.UUID `json:"employee_id"`
}

// NewEmployeeUnassignedEvent creates a new EmployeeUnassignedEvent
func NewEmployeeUnassignedEvent(o *Order, a *EmployeeAssignment) *EmployeeUnassignedEvent {
	return &EmployeeUnassignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeUnassigned, AggregateTypeOrder, o.ID),
		AssignmentID:    a.ID,
		EmployeeID:      a.EmployeeID,
	}
}

// AssignmentFinalizedEvent is raised when an assignment is paid out
type AssignmentFinalizedEvent struct {
	shared.BaseDomainEvent
	AssignmentID  uuid.UUID       `json:"assignment_id"`
	EmployeeID    uuid.UUID       `json:"employee_id"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
}

// NewAssignmentFinalizedEvent creates a new AssignmentFinalizedEvent
func NewAssignmentFinalizedEvent(o *Order, a *EmployeeAssignment) *AssignmentFinalizedEvent {
	return &AssignmentFinalizedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAssignmentFinalized, AggregateTypeOrder, o.ID),
		AssignmentID:    a.ID,
		EmployeeID:      a.EmployeeID,
		PaymentAmount:   a.PaymentAmount,
	}
}

// InventoryUsageRecordedEvent is raised when stock is attributed to an order
type InventoryUsageRecordedEvent struct {
	shared.BaseDomainEvent
	UsageID         uuid.UUID       `json:"usage_id"`
	InventoryItemID uuid.UUID       `json:"inventory_item_id"`
	Quantity        int             `json:"quantity"`
	TotalCost       decimal.Decimal `json:"total_cost"`
}

// NewInventoryUsageRecordedEvent creates a new InventoryUsageRecordedEvent
func NewInventoryUsageRecordedEvent(o *Order, u *InventoryUsage) *InventoryUsageRecordedEvent {
	return &InventoryUsageRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInventoryUsageRecorded, AggregateTypeOrder, o.ID),
		UsageID:         u.ID,
		InventoryItemID: u.InventoryItemID,
		Quantity:        u.QuantityUsed,
		TotalCost:       u.TotalCost,
	}
}

// InventoryUsageRemovedEvent is raised when a usage line is detached
type InventoryUsageRemovedEvent struct {
	shared.BaseDomainEvent
	UsageID         uuid.UUID `json:"usage_id"`
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	Quantity        int       `json:"quantity"`
}

// NewInventoryUsageRemovedEvent creates a new InventoryUsageRemovedEvent
func NewInventoryUsageRemovedEvent(o *Order, u *InventoryUsage) *InventoryUsageRemovedEvent {
	return &InventoryUsageRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInventoryUsageRemoved, AggregateTypeOrder, o.ID),
		UsageID:         u.ID,
		InventoryItemID: u.InventoryItemID,
		Quantity:        u.QuantityUsed,
	}
}

// TaskStatusChangedEvent is raised on task status moves
type TaskStatusChangedEvent struct {
	shared.BaseDomainEvent
	From       TaskStatus `json:"from"`
	To         TaskStatus `json:"to"`
	AssignedTo *uuid.UUID `json:"assigned_to,omitempty"`
}

// NewTaskStatusChangedEvent creates a new TaskStatusChangedEvent
func NewTaskStatusChangedEvent(t *Task, from TaskStatus) *TaskStatusChangedEvent {
	return &TaskStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTaskStatusChanged, AggregateTypeTask, t.ID),
		From:            from,
		To:              t.Status,
		AssignedTo:      t.AssignedTo,
	}
}
