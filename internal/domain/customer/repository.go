package customer

import (
	"context"

	"github.com/catering/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByCode(ctx context.Context, code string) (*Customer, error)
	FindByPhone(ctx context.Context, phone string) ([]Customer, error)

	// FindAll lists customers matching the filter (type, business_type, active, search)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindWithOutstanding lists customers whose outstanding amount is positive
	FindWithOutstanding(ctx context.Context) ([]Customer, error)

	// FindTopByTotalAmount lists the highest-billing customers first
	FindTopByTotalAmount(ctx context.Context, limit int) ([]Customer, error)

	// FindWithOrdersAbove lists customers with more than minOrders orders
	FindWithOrdersAbove(ctx context.Context, minOrders int) ([]Customer, error)

	CountByType(ctx context.Context, customerType CustomerType) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// Create inserts a new customer
	Create(ctx context.Context, customer *Customer) error

	// Save updates an existing customer with an optimistic version check
	Save(ctx context.Context, customer *Customer) error
}
