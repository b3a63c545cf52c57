package staff

import (
	"context"

	"github.com/catering/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EmployeeRepository defines the interface for employee persistence
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByCode(ctx context.Context, code string) (*Employee, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Employee, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Employee, error)

	// FindActive lists active employees, optionally restricted to one type
	FindActive(ctx context.Context, employeeType *EmployeeType) ([]Employee, error)

	ExistsByCode(ctx context.Context, code string) (bool, error)
	CountActive(ctx context.Context) (int64, error)

	// Create inserts a new employee
	Create(ctx context.Context, employee *Employee) error

	// Save updates an existing employee with an optimistic version check
	Save(ctx context.Context, employee *Employee) error
}
