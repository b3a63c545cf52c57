package catering

import (
	"fmt"
	"strings"
	"time"

	"github.com/catering/backend/internal/domain/shared"
	"github.com/catering/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Field limits
const (
	MaxOrderNumberLength = 30
	MaxEventNameLength   = 200
	MaxRoleLength        = 50
	EventTimeLayout      = "15:04"
)

// OrderType is the service level booked by the customer
type OrderType string

const (
	OrderTypeFullCatering OrderType = "FULL_CATERING"
	OrderTypeHalfCatering OrderType = "HALF_CATERING"
)

// IsValid checks if the type is a valid OrderType
func (t OrderType) IsValid() bool {
	return t == OrderTypeFullCatering || t == OrderTypeHalfCatering
}

// DisplayName returns a human readable label
func (t OrderType) DisplayName() string {
	return shared.DisplayName(string(t))
}

// OrderStatus represents the lifecycle state of a catering order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusInProgress || target == OrderStatusCancelled
	case OrderStatusInProgress:
		return target == OrderStatusCompleted || target == OrderStatusCancelled
	}
	return false
}

// IsTerminal reports COMPLETED or CANCELLED
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// BlocksAvailability reports whether staff booked on an order in this
// status are unavailable for other orders on the same day
func (s OrderStatus) BlocksAvailability() bool {
	return s == OrderStatusPending || s == OrderStatusInProgress
}

// Order is the aggregate root for a catering engagement. It owns the
// money ledger (RemainingAmount and PaymentStatus are always derived from
// TotalAmount and AdvanceAmount) and its assignment, usage and task children.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber         string
	CustomerID          *uuid.UUID
	OrderType           OrderType
	EventName           string
	EventDate           time.Time
	EventTime           string
	VenueAddress        string
	GuestCount          int
	MenuDetails         string
	SpecialRequirements string
	Notes               string
	Status              OrderStatus
	TotalAmount         decimal.Decimal
	AdvanceAmount       decimal.Decimal
	RemainingAmount     decimal.Decimal
	PaymentStatus       PaymentStatus
	CancelReason        string
	CompletedAt         *time.Time
	CancelledAt         *time.Time

	Assignments     []EmployeeAssignment
	InventoryUsages []InventoryUsage
	Tasks           []Task
}

// NewOrder creates a PENDING order with zero amounts. Payment status starts
// at PENDING and is derived from the first amount setter onwards.
func NewOrder(orderNumber string, orderType OrderType, eventName string, eventDate time.Time, guestCount int) (*Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	eventName = strings.TrimSpace(eventName)
	if orderNumber == "" {
		return nil, shared.NewValidationError("Order number cannot be empty")
	}
	if len(orderNumber) > MaxOrderNumberLength {
		return nil, shared.NewValidationError(fmt.Sprintf("Order number cannot exceed %d characters", MaxOrderNumberLength))
	}
	if !orderType.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("Unknown order type %q", orderType))
	}
	if len(eventName) > MaxEventNameLength {
		return nil, shared.NewValidationError(fmt.Sprintf("Event name cannot exceed %d characters", MaxEventNameLength))
	}
	if eventDate.IsZero() {
		return nil, shared.NewValidationError("Event date is required")
	}
	if guestCount < 0 {
		return nil, shared.NewValidationError("Guest count cannot be negative")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		OrderType:         orderType,
		EventName:         eventName,
		EventDate:         shared.StartOfDay(eventDate),
		GuestCount:        guestCount,
		Status:            OrderStatusPending,
		TotalAmount:       decimal.Zero,
		AdvanceAmount:     decimal.Zero,
		RemainingAmount:   decimal.Zero,
		PaymentStatus:     PaymentStatusPending,
		Assignments:       make([]EmployeeAssignment, 0),
		InventoryUsages:   make([]InventoryUsage, 0),
		Tasks:             make([]Task, 0),
	}
	order.AddDomainEvent(NewOrderCreatedEvent(order))
	return order, nil
}

// AssignCustomer links the order to the customer who booked it
func (o *Order) AssignCustomer(customerID uuid.UUID) error {
	if customerID == uuid.Nil {
		return shared.NewValidationError("Customer ID cannot be empty")
	}
	o.CustomerID = &customerID
	o.Touch()
	return nil
}

// ClearCustomer unlinks the order from its customer
func (o *Order) ClearCustomer() {
	o.CustomerID = nil
	o.Touch()
}

// BelongsTo reports whether the order is linked to customerID
func (o *Order) BelongsTo(customerID uuid.UUID) bool {
	return o.CustomerID != nil && *o.CustomerID == customerID
}

// SetEventDetails updates the event description fields
func (o *Order) SetEventDetails(eventName, venue string, guestCount int) error {
	eventName = strings.TrimSpace(eventName)
	if len(eventName) > MaxEventNameLength {
		return shared.NewValidationError(fmt.Sprintf("Event name cannot exceed %d characters", MaxEventNameLength))
	}
	if guestCount < 0 {
		return shared.NewValidationError("Guest count cannot be negative")
	}
	o.EventName = eventName
	o.VenueAddress = strings.TrimSpace(venue)
	o.GuestCount = guestCount
	o.Touch()
	return nil
}

// SetMenu records menu and special requirements
func (o *Order) SetMenu(menu, requirements string) {
	o.MenuDetails = menu
	o.SpecialRequirements = requirements
	o.Touch()
}

// SetNotes sets free-form notes
func (o *Order) SetNotes(notes string) {
	o.Notes = notes
	o.Touch()
}

// Reschedule moves the event to another day and optional "HH:MM" start time
func (o *Order) Reschedule(eventDate time.Time, eventTime string) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot reschedule order in %s status", o.Status))
	}
	if eventDate.IsZero() {
		return shared.NewValidationError("Event date is required")
	}
	if eventTime != "" {
		if _, err := time.Parse(EventTimeLayout, eventTime); err != nil {
			return shared.NewValidationError(fmt.Sprintf("Event time %q must be HH:MM", eventTime))
		}
	}
	o.EventDate = shared.StartOfDay(eventDate)
	o.EventTime = eventTime
	o.Touch()
	return nil
}

// SetTotalAmount sets the contract total and re-derives the ledger
func (o *Order) SetTotalAmount(total decimal.Decimal) error {
	if err := shared.CheckAmount("Total amount", total); err != nil {
		return err
	}
	o.TotalAmount = total
	o.recompute()
	return nil
}

// SetAdvanceAmount sets the amount received so far and re-derives the ledger
func (o *Order) SetAdvanceAmount(advance decimal.Decimal) error {
	if err := shared.CheckAmount("Advance amount", advance); err != nil {
		return err
	}
	o.AdvanceAmount = advance
	o.recompute()
	return nil
}

// RecordPayment adds an incoming payment to the advance
func (o *Order) RecordPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("Payment amount must be positive")
	}
	if err := shared.CheckAmountScale("Payment amount", amount); err != nil {
		return err
	}
	return o.SetAdvanceAmount(o.AdvanceAmount.Add(amount))
}

// recompute is the single derivation path for both amount setters
func (o *Order) recompute() {
	o.RemainingAmount = RemainingAmount(o.TotalAmount, o.AdvanceAmount)
	previous := o.PaymentStatus
	o.PaymentStatus = DerivePaymentStatus(o.RemainingAmount, o.AdvanceAmount)
	o.Touch()

	if previous != o.PaymentStatus {
		o.AddDomainEvent(NewOrderPaymentStatusChangedEvent(o, previous))
	}
}

// Start moves a PENDING order to IN_PROGRESS
func (o *Order) Start() error {
	return o.transition(OrderStatusInProgress)
}

// Complete moves an IN_PROGRESS order to COMPLETED
func (o *Order) Complete() error {
	if err := o.transition(OrderStatusCompleted); err != nil {
		return err
	}
	now := o.UpdatedAt
	o.CompletedAt = &now
	return nil
}

// Cancel ends the order without deleting it
func (o *Order) Cancel(reason string) error {
	if err := o.transition(OrderStatusCancelled); err != nil {
		return err
	}
	now := o.UpdatedAt
	o.CancelledAt = &now
	o.CancelReason = strings.TrimSpace(reason)
	return nil
}

func (o *Order) transition(target OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot move order %s from %s to %s", o.OrderNumber, o.Status, target))
	}
	previous := o.Status
	o.Status = target
	o.Touch()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))
	return nil
}

func (o *Order) ensureOpen(action string) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot %s on %s order %s", action, strings.ToLower(string(o.Status)), o.OrderNumber))
	}
	return nil
}

// BlocksEmployee reports whether employeeID is committed to this order
// in a way that makes them unavailable on the event day
func (o *Order) BlocksEmployee(employeeID uuid.UUID) bool {
	if !o.Status.BlocksAvailability() {
		return false
	}
	return o.FindAssignmentByEmployee(employeeID) != nil
}

// Total returns TotalAmount as Money in the given currency
func (o *Order) Total(currency valueobject.Currency) valueobject.Money {
	return valueobject.MoneyIn(o.TotalAmount, currency)
}

// Advance returns AdvanceAmount as Money in the given currency
func (o *Order) Advance(currency valueobject.Currency) valueobject.Money {
	return valueobject.MoneyIn(o.AdvanceAmount, currency)
}

// Remaining returns RemainingAmount as Money in the given currency
func (o *Order) Remaining(currency valueobject.Currency) valueobject.Money {
	return valueobject.MoneyIn(o.RemainingAmount, currency)
}

// HasOutstandingBalance reports a positive remaining amount
func (o *Order) HasOutstandingBalance() bool {
	return o.RemainingAmount.IsPositive()
}

// IsPending reports PENDING status
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsCompleted reports COMPLETED status
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

// IsCancelled reports CANCELLED status
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}
