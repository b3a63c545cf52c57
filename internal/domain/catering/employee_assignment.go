package catering

import (
	"fmt"
	"strings"
	"time"

	"github.com/catering/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssignmentPaymentStatus tracks whether the crew member has been paid
type AssignmentPaymentStatus string

const (
	AssignmentPaymentPending AssignmentPaymentStatus = "PENDING"
	AssignmentPaymentPaid    AssignmentPaymentStatus = "PAID"
)

// EmployeeAssignment books one employee onto one order. It refers to the
// employee by ID only; the employee record is owned elsewhere.
type EmployeeAssignment struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	EmployeeID    uuid.UUID
	Role          string
	PaymentAmount decimal.Decimal
	PaymentStatus AssignmentPaymentStatus
	AssignedAt    time.Time
	PaidAt        *time.Time
}

// IsPaid reports whether the assignment has been finalized
func (a *EmployeeAssignment) IsPaid() bool {
	return a.PaymentStatus == AssignmentPaymentPaid
}

// AddEmployeeAssignment books an employee onto the order. It has no payroll
// side effect; employee counters move only when the assignment is finalized.
func (o *Order) AddEmployeeAssignment(employeeID uuid.UUID, role string, paymentAmount decimal.Decimal) (*EmployeeAssignment, error) {
	if err := o.ensureOpen("assign staff"); err != nil {
		return nil, err
	}
	role = strings.TrimSpace(role)
	if employeeID == uuid.Nil {
		return nil, shared.NewValidationError("Employee ID cannot be empty")
	}
	if len(role) > MaxRoleLength {
		return nil, shared.NewValidationError(fmt.Sprintf("Role cannot exceed %d characters", MaxRoleLength))
	}
	if err := shared.CheckAmount("Payment amount", paymentAmount); err != nil {
		return nil, err
	}
	if o.FindAssignmentByEmployee(employeeID) != nil {
		return nil, shared.NewDuplicateError(fmt.Sprintf("Employee %s is already assigned to order %s", employeeID, o.OrderNumber))
	}

	assignment := EmployeeAssignment{
		ID:            uuid.New(),
		OrderID:       o.ID,
		EmployeeID:    employeeID,
		Role:          role,
		PaymentAmount: paymentAmount,
		PaymentStatus: AssignmentPaymentPending,
		AssignedAt:    time.Now(),
	}
	o.Assignments = append(o.Assignments, assignment)
	o.Touch()

	o.AddDomainEvent(NewEmployeeAssignedEvent(o, &assignment))
	return &assignment, nil
}

// RemoveEmployeeAssignment detaches an assignment. The returned record no
// longer refers to the order. Paid assignments are kept for payroll history.
func (o *Order) RemoveEmployeeAssignment(assignmentID uuid.UUID) (*EmployeeAssignment, error) {
	for idx := range o.Assignments {
		if o.Assignments[idx].ID != assignmentID {
			continue
		}
		if o.Assignments[idx].IsPaid() {
			return nil, shared.NewDomainError(shared.CodeInvalidState, "Cannot remove an assignment that has been paid")
		}
		removed := o.Assignments[idx]
		o.Assignments = append(o.Assignments[:idx], o.Assignments[idx+1:]...)
		removed.OrderID = uuid.Nil
		o.Touch()

		o.AddDomainEvent(NewEmployeeUnassignedEvent(o, &removed))
		return &removed, nil
	}
	return nil, shared.NewNotFoundError(fmt.Sprintf("Assignment %s not found on order %s", assignmentID, o.OrderNumber))
}

// FinalizeAssignment marks an assignment PAID. The caller credits the
// employee with the returned payment in the same unit of work.
func (o *Order) FinalizeAssignment(assignmentID uuid.UUID, paidAt time.Time) (*EmployeeAssignment, error) {
	a := o.GetAssignment(assignmentID)
	if a == nil {
		return nil, shared.NewNotFoundError(fmt.Sprintf("Assignment %s not found on order %s", assignmentID, o.OrderNumber))
	}
	if o.Status == OrderStatusCancelled {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Cannot finalize assignments on a cancelled order")
	}
	if a.IsPaid() {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Assignment has already been paid")
	}
	a.PaymentStatus = AssignmentPaymentPaid
	a.PaidAt = &paidAt
	o.Touch()

	o.AddDomainEvent(NewAssignmentFinalizedEvent(o, a))
	result := *a
	return &result, nil
}

// GetAssignment returns the assignment with the given ID, or nil
func (o *Order) GetAssignment(assignmentID uuid.UUID) *EmployeeAssignment {
	for idx := range o.Assignments {
		if o.Assignments[idx].ID == assignmentID {
			return &o.Assignments[idx]
		}
	}
	return nil
}

// FindAssignmentByEmployee returns the employee's assignment on this order, or nil
func (o *Order) FindAssignmentByEmployee(employeeID uuid.UUID) *EmployeeAssignment {
	for idx := range o.Assignments {
		if o.Assignments[idx].EmployeeID == employeeID {
			return &o.Assignments[idx]
		}
	}
	return nil
}

// LabourCost sums the payment amounts of all assignments
func (o *Order) LabourCost() decimal.Decimal {
	total := decimal.Zero
	for _, a := range o.Assignments {
		total = total.Add(a.PaymentAmount)
	}
	return total
}
