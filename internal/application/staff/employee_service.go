package staff

import (
	"context"
	"fmt"

	"github.com/catering/backend/internal/domain/shared"
	"github.com/catering/backend/internal/domain/staff"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EmployeeService handles employee records
type EmployeeService struct {
	employeeRepo   staff.EmployeeRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo staff.EmployeeRepository, logger *zap.Logger) *EmployeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{employeeRepo: employeeRepo, logger: logger}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *EmployeeService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *EmployeeService) publishDomainEvents(ctx context.Context, employee *staff.Employee) {
	events := employee.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
	employee.ClearDomainEvents()
}

// Create hires an employee. Employee codes must be unique.
func (s *EmployeeService) Create(ctx context.Context, input CreateEmployeeInput) (*EmployeeResponse, error) {
	exists, err := s.employeeRepo.ExistsByCode(ctx, input.EmployeeCode)
	if err != nil {
		return nil, fmt.Errorf("check employee code: %w", err)
	}
	if exists {
		return nil, shared.NewDuplicateError(fmt.Sprintf("Employee code %s already exists", input.EmployeeCode))
	}

	employee, err := staff.NewEmployee(input.EmployeeCode, input.Name, input.Type, input.SalaryPerOrder)
	if err != nil {
		return nil, err
	}
	if err := employee.SetContact(input.Phone, input.Email, input.Address); err != nil {
		return nil, err
	}
	if err := employee.SetBaseSalary(input.BaseSalary); err != nil {
		return nil, err
	}
	if input.HireDate != nil {
		employee.SetHireDate(*input.HireDate)
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	s.logger.Info("employee created",
		zap.String("employee_code", employee.EmployeeCode),
		zap.String("type", string(employee.Type)),
	)
	s.publishDomainEvents(ctx, employee)

	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// Get loads an employee
func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// GetByCode loads an employee by code
func (s *EmployeeService) GetByCode(ctx context.Context, code string) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// List lists employees matching the filter (type, active, search)
func (s *EmployeeService) List(ctx context.Context, filter shared.Filter) ([]EmployeeResponse, error) {
	employees, err := s.employeeRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToEmployeeResponses(employees), nil
}

// ListActive lists active employees, optionally of one type
func (s *EmployeeService) ListActive(ctx context.Context, employeeType *staff.EmployeeType) ([]EmployeeResponse, error) {
	if employeeType != nil && !employeeType.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("Unknown employee type %q", *employeeType))
	}
	employees, err := s.employeeRepo.FindActive(ctx, employeeType)
	if err != nil {
		return nil, err
	}
	return ToEmployeeResponses(employees), nil
}

// Update edits profile, contact and pay fields
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, input UpdateEmployeeInput) (*EmployeeResponse, error) {
	return s.mutate(ctx, id, func(e *staff.Employee) error {
		if input.Name != nil {
			if err := e.Rename(*input.Name); err != nil {
				return err
			}
		}
		if input.Phone != nil || input.Email != nil || input.Address != nil {
			phone, email, address := e.Phone, e.Email, e.Address
			if input.Phone != nil {
				phone = *input.Phone
			}
			if input.Email != nil {
				email = *input.Email
			}
			if input.Address != nil {
				address = *input.Address
			}
			if err := e.SetContact(phone, email, address); err != nil {
				return err
			}
		}
		if input.HireDate != nil {
			e.SetHireDate(*input.HireDate)
		}
		if input.SalaryPerOrder != nil {
			if err := e.SetSalaryPerOrder(*input.SalaryPerOrder); err != nil {
				return err
			}
		}
		if input.BaseSalary != nil {
			if err := e.SetBaseSalary(*input.BaseSalary); err != nil {
				return err
			}
		}
		return nil
	})
}

// Deactivate hides the employee from availability
func (s *EmployeeService) Deactivate(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	return s.mutate(ctx, id, func(e *staff.Employee) error {
		return e.Deactivate()
	})
}

// Activate makes the employee bookable again
func (s *EmployeeService) Activate(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	return s.mutate(ctx, id, func(e *staff.Employee) error {
		return e.Activate()
	})
}

// CountActive counts active employees
func (s *EmployeeService) CountActive(ctx context.Context) (int64, error) {
	return s.employeeRepo.CountActive(ctx)
}

func (s *EmployeeService) mutate(ctx context.Context, id uuid.UUID, fn func(e *staff.Employee) error) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(employee); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, employee)
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}
