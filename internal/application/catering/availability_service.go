package catering

import (
	"context"
	"time"

	"github.com/catering/backend/internal/domain/catering"
	"github.com/catering/backend/internal/domain/staff"
)

// AvailabilityService answers "who is free on day D" from committed state
type AvailabilityService struct {
	orderRepo    catering.OrderRepository
	employeeRepo staff.EmployeeRepository
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(orderRepo catering.OrderRepository, employeeRepo staff.EmployeeRepository) *AvailabilityService {
	return &AvailabilityService{orderRepo: orderRepo, employeeRepo: employeeRepo}
}

// FindAvailableEmployees lists active employees of the given type (any type
// when nil) with no assignment on a PENDING or IN_PROGRESS order that day
func (s *AvailabilityService) FindAvailableEmployees(ctx context.Context, date time.Time, employeeType *staff.EmployeeType) ([]AvailableEmployeeResponse, error) {
	employees, err := s.employeeRepo.FindActive(ctx, employeeType)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindByEventDate(ctx, date)
	if err != nil {
		return nil, err
	}

	available := catering.AvailableEmployees(employees, orders, date, employeeType)
	out := make([]AvailableEmployeeResponse, 0, len(available))
	for i := range available {
		out = append(out, ToAvailableEmployeeResponse(&available[i]))
	}
	return out, nil
}
