package catering

import (
	"context"
	"sync"
	"time"

	"github.com/catering/backend/internal/domain/catering"
	"github.com/catering/backend/internal/domain/customer"
	"github.com/catering/backend/internal/domain/inventory"
	"github.com/catering/backend/internal/domain/shared"
	"github.com/catering/backend/internal/domain/staff"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher collects published events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{events: make([]shared.DomainEvent, 0)}
}

func (m *MockEventPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*catering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*catering.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catering.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByEventDate(ctx context.Context, date time.Time) ([]catering.Order, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]catering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status catering.OrderStatus) ([]catering.Order, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]catering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindWithOutstandingPayments(ctx context.Context) ([]catering.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]catering.Order, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).([]catering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]catering.Order, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]catering.Order), args.Error(1)
}

func (m *MockOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	args := m.Called(ctx, orderNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context, status catering.OrderStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) SumCompletedRevenue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockOrderRepository) SumOutstanding(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockOrderRepository) CountDistinctCustomers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *catering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *catering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*catering.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catering.Task), args.Error(1)
}

func (m *MockTaskRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catering.Task, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catering.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]catering.Task, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]catering.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByAssignee(ctx context.Context, employeeID uuid.UUID) ([]catering.Task, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).([]catering.Task), args.Error(1)
}

func (m *MockTaskRepository) FindOverdue(ctx context.Context, now time.Time) ([]catering.Task, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]catering.Task), args.Error(1)
}

func (m *MockTaskRepository) FindDueToday(ctx context.Context, now time.Time) ([]catering.Task, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]catering.Task), args.Error(1)
}

func (m *MockTaskRepository) FindDueWithin(ctx context.Context, now time.Time, days int) ([]catering.Task, error) {
	args := m.Called(ctx, now, days)
	return args.Get(0).([]catering.Task), args.Error(1)
}

func (m *MockTaskRepository) FindUnassigned(ctx context.Context) ([]catering.Task, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catering.Task), args.Error(1)
}

func (m *MockTaskRepository) FindPending(ctx context.Context) ([]catering.Task, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catering.Task), args.Error(1)
}

func (m *MockTaskRepository) CountPendingByEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) CountCompletedByEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *catering.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Save(ctx context.Context, task *catering.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// MockEmployeeRepository is a mock implementation of EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*staff.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByCode(ctx context.Context, code string) (*staff.Employee, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]staff.Employee, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]staff.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]staff.Employee, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]staff.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindActive(ctx context.Context, employeeType *staff.EmployeeType) ([]staff.Employee, error) {
	args := m.Called(ctx, employeeType)
	return args.Get(0).([]staff.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *staff.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *staff.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

// MockInventoryItemRepository is a mock implementation of InventoryItemRepository
type MockInventoryItemRepository struct {
	mock.Mock
}

func (m *MockInventoryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindByCode(ctx context.Context, code string) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryItem, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindByCategory(ctx context.Context, category inventory.Category) ([]inventory.InventoryItem, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindLowStock(ctx context.Context) ([]inventory.InventoryItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindOutOfStock(ctx context.Context) ([]inventory.InventoryItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventoryItemRepository) SumActiveValue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInventoryItemRepository) CountLowStock(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryItemRepository) Create(ctx context.Context, item *inventory.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByCode(ctx context.Context, code string) (*customer.Customer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) ([]customer.Customer, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]customer.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) FindWithOutstanding(ctx context.Context) ([]customer.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindTopByTotalAmount(ctx context.Context, limit int) ([]customer.Customer, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindWithOrdersAbove(ctx context.Context, minOrders int) ([]customer.Customer, error) {
	args := m.Called(ctx, minOrders)
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) CountByType(ctx context.Context, customerType customer.CustomerType) (int64, error) {
	args := m.Called(ctx, customerType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// testFixture wires mocks into every service in this package
type testFixture struct {
	orders    *MockOrderRepository
	tasks     *MockTaskRepository
	employees *MockEmployeeRepository
	items     *MockInventoryItemRepository
	customers *MockCustomerRepository
	publisher *MockEventPublisher
	orderSvc  *OrderService
	taskSvc   *TaskService
	available *AvailabilityService
	clockAt   time.Time
}

var eventDay = time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)

func newFixture() *testFixture {
	f := &testFixture{
		orders:    new(MockOrderRepository),
		tasks:     new(MockTaskRepository),
		employees: new(MockEmployeeRepository),
		items:     new(MockInventoryItemRepository),
		customers: new(MockCustomerRepository),
		publisher: NewMockEventPublisher(),
		clockAt:   time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC),
	}
	scope := NewNoOpTransactionScope(f.orders, f.tasks, f.employees, f.items, f.customers)
	clock := shared.FixedClock{At: f.clockAt}

	f.orderSvc = NewOrderService(f.orders, scope, nil)
	f.orderSvc.SetEventPublisher(f.publisher)
	f.orderSvc.SetClock(clock)

	f.taskSvc = NewTaskService(f.tasks, scope, nil)
	f.taskSvc.SetEventPublisher(f.publisher)
	f.taskSvc.SetClock(clock)

	f.available = NewAvailabilityService(f.orders, f.employees)
	return f
}

func newTestOrder(number string) *catering.Order {
	o, err := catering.NewOrder(number, catering.OrderTypeFullCatering, "Wedding", eventDay, 150)
	if err != nil {
		panic(err)
	}
	o.ClearDomainEvents()
	return o
}

func newTestEmployee(code string, t staff.EmployeeType, salary string) *staff.Employee {
	e, err := staff.NewEmployee(code, "Employee "+code, t, decimal.RequireFromString(salary))
	if err != nil {
		panic(err)
	}
	e.ClearDomainEvents()
	return e
}

func newTestItem(code string, stock int, cost string) *inventory.InventoryItem {
	item, err := inventory.NewInventoryItem(code, "Item "+code, inventory.CategoryUtensils, "pcs", decimal.RequireFromString(cost), 0)
	if err != nil {
		panic(err)
	}
	if err := item.SetCurrentStock(stock); err != nil {
		panic(err)
	}
	item.ClearDomainEvents()
	return item
}

func newTestCustomer(code string) *customer.Customer {
	c, err := customer.NewCustomer(code, "Customer "+code, customer.CustomerTypePermanent)
	if err != nil {
		panic(err)
	}
	c.ClearDomainEvents()
	return c
}
