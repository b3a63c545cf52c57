package catering

import (
	"context"

	"github.com/catering/backend/internal/domain/catering"
	"github.com/catering/backend/internal/domain/customer"
	"github.com/catering/backend/internal/domain/inventory"
	"github.com/catering/backend/internal/domain/staff"
)

// TransactionScope runs a unit of work against repositories that share one
// database transaction. Returning an error from fn rolls everything back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes every aggregate repository touched by
// order workflows, all bound to the same transaction.
type TransactionalRepositories interface {
	OrderRepo() catering.OrderRepository
	TaskRepo() catering.TaskRepository
	EmployeeRepo() staff.EmployeeRepository
	InventoryRepo() inventory.InventoryItemRepository
	CustomerRepo() customer.CustomerRepository
}

// NoOpTransactionScope runs fn directly on the given repositories.
// Used by tests and by callers without transaction support.
type NoOpTransactionScope struct {
	orderRepo     catering.OrderRepository
	taskRepo      catering.TaskRepository
	employeeRepo  staff.EmployeeRepository
	inventoryRepo inventory.InventoryItemRepository
	customerRepo  customer.CustomerRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	orderRepo catering.OrderRepository,
	taskRepo catering.TaskRepository,
	employeeRepo staff.EmployeeRepository,
	inventoryRepo inventory.InventoryItemRepository,
	customerRepo customer.CustomerRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:     orderRepo,
		taskRepo:      taskRepo,
		employeeRepo:  employeeRepo,
		inventoryRepo: inventoryRepo,
		customerRepo:  customerRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() catering.OrderRepository { return s.orderRepo }

// TaskRepo returns the task repository
func (s *NoOpTransactionScope) TaskRepo() catering.TaskRepository { return s.taskRepo }

// EmployeeRepo returns the employee repository
func (s *NoOpTransactionScope) EmployeeRepo() staff.EmployeeRepository { return s.employeeRepo }

// InventoryRepo returns the inventory item repository
func (s *NoOpTransactionScope) InventoryRepo() inventory.InventoryItemRepository {
	return s.inventoryRepo
}

// CustomerRepo returns the customer repository
func (s *NoOpTransactionScope) CustomerRepo() customer.CustomerRepository { return s.customerRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
