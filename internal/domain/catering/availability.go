package catering

import (
	"time"

	"github.com/catering/backend/internal/domain/shared"
	"github.com/catering/backend/internal/domain/staff"
	"github.com/google/uuid"
)

// BookedEmployees returns the IDs of employees committed on date through an
// order that is still PENDING or IN_PROGRESS.
func BookedEmployees(orders []Order, date time.Time) map[uuid.UUID]struct{} {
	booked := make(map[uuid.UUID]struct{})
	for i := range orders {
		o := &orders[i]
		if !o.Status.BlocksAvailability() || !shared.SameDay(o.EventDate, date) {
			continue
		}
		for _, a := range o.Assignments {
			booked[a.EmployeeID] = struct{}{}
		}
	}
	return booked
}

// AvailableEmployees is the set difference
// {active employees of employeeType} - {employees booked on date}.
// A nil employeeType matches every type. Input order is preserved.
func AvailableEmployees(employees []staff.Employee, orders []Order, date time.Time, employeeType *staff.EmployeeType) []staff.Employee {
	booked := BookedEmployees(orders, date)
	available := make([]staff.Employee, 0, len(employees))
	for _, e := range employees {
		if !e.Active {
			continue
		}
		if employeeType != nil && e.Type != *employeeType {
			continue
		}
		if _, ok := booked[e.ID]; ok {
			continue
		}
		available = append(available, e)
	}
	return available
}

// BookingConflict returns an open order other than self that already books
// employeeID on date, or nil when the employee is free that day
func BookingConflict(orders []Order, self uuid.UUID, date time.Time, employeeID uuid.UUID) *Order {
	for i := range orders {
		o := &orders[i]
		if o.ID == self || !shared.SameDay(o.EventDate, date) {
			continue
		}
		if o.BlocksEmployee(employeeID) {
			return o
		}
	}
	return nil
}
