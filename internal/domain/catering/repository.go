package catering

import (
	"context"
	"time"

	"github.com/catering/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderRepository defines the interface for order persistence.
// Loaded orders carry their assignments, inventory usages and tasks.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindAll lists orders matching the filter (status, payment_status, search)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByEventDate lists orders held on the calendar day of date
	FindByEventDate(ctx context.Context, date time.Time) ([]Order, error)

	// FindByStatus lists orders in the given status
	FindByStatus(ctx context.Context, status OrderStatus) ([]Order, error)

	// FindWithOutstandingPayments lists non-cancelled orders with a positive remaining amount
	FindWithOutstandingPayments(ctx context.Context) ([]Order, error)

	// FindByEmployee lists orders the employee is assigned to
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Order, error)

	// FindByCustomer lists the customer's orders, latest event first
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]Order, error)

	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status OrderStatus) (int64, error)

	// SumCompletedRevenue sums TotalAmount over COMPLETED orders
	SumCompletedRevenue(ctx context.Context) (decimal.Decimal, error)

	// SumOutstanding sums positive RemainingAmount over non-cancelled orders
	SumOutstanding(ctx context.Context) (decimal.Decimal, error)

	// CountDistinctCustomers counts customers with at least one order
	CountDistinctCustomers(ctx context.Context) (int64, error)

	// Create inserts a new order with its children
	Create(ctx context.Context, order *Order) error

	// Save updates the order and replaces its assignments and usages,
	// failing with CONCURRENCY_CONFLICT on a stale version
	Save(ctx context.Context, order *Order) error
}

// TaskRepository defines the interface for task persistence
type TaskRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Task, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Task, error)
	FindByAssignee(ctx context.Context, employeeID uuid.UUID) ([]Task, error)

	// FindOverdue lists open tasks due before the day of now
	FindOverdue(ctx context.Context, now time.Time) ([]Task, error)

	// FindDueToday lists open tasks due on the day of now
	FindDueToday(ctx context.Context, now time.Time) ([]Task, error)

	// FindDueWithin lists open tasks due from the day of now through now+days
	FindDueWithin(ctx context.Context, now time.Time, days int) ([]Task, error)

	// FindUnassigned lists open tasks with no assignee
	FindUnassigned(ctx context.Context) ([]Task, error)

	// FindPending lists open (TODO or IN_PROGRESS) tasks
	FindPending(ctx context.Context) ([]Task, error)

	CountPendingByEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error)
	CountCompletedByEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error)

	Create(ctx context.Context, task *Task) error
	Save(ctx context.Context, task *Task) error
}
