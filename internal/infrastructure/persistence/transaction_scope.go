package persistence

import (
	"context"

	appcatering "github.com/catering/backend/internal/application/catering"
	"github.com/catering/backend/internal/domain/catering"
	"github.com/catering/backend/internal/domain/customer"
	"github.com/catering/backend/internal/domain/inventory"
	"github.com/catering/backend/internal/domain/staff"
	"gorm.io/gorm"
)

// GormTransactionScope runs order workflows in one database transaction.
// If fn returns an error, everything it wrote is rolled back.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appcatering.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) OrderRepo() catering.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) TaskRepo() catering.TaskRepository {
	return NewGormTaskRepository(r.tx)
}

func (r *gormTransactionalRepositories) EmployeeRepo() staff.EmployeeRepository {
	return NewGormEmployeeRepository(r.tx)
}

func (r *gormTransactionalRepositories) CustomerRepo() customer.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

func (r *gormTransactionalRepositories) InventoryRepo() inventory.InventoryItemRepository {
	return NewGormInventoryItemRepository(r.tx)
}

var _ appcatering.TransactionScope = (*GormTransactionScope)(nil)
var _ appcatering.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
