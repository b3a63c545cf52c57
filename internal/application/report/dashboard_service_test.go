package report

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/catering/backend/internal/domain/catering"
	"github.com/catering/backend/internal/domain/inventory"
	"github.com/catering/backend/internal/domain/shared"
	"github.com/catering/backend/internal/domain/staff"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Embedded interfaces satisfy the methods the dashboard never calls.

type mockOrderRepo struct {
	catering.OrderRepository
	mock.Mock
}

func (m *mockOrderRepo) CountByStatus(ctx context.Context, status catering.OrderStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepo) SumCompletedRevenue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockOrderRepo) SumOutstanding(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockOrderRepo) CountDistinctCustomers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockTaskRepo struct {
	catering.TaskRepository
	mock.Mock
}

func (m *mockTaskRepo) FindPending(ctx context.Context) ([]catering.Task, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catering.Task), args.Error(1)
}

type mockEmployeeRepo struct {
	staff.EmployeeRepository
	mock.Mock
}

func (m *mockEmployeeRepo) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockInventoryRepo struct {
	inventory.InventoryItemRepository
	mock.Mock
}

func (m *mockInventoryRepo) CountLowStock(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockInventoryRepo) SumActiveValue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// memoryCache is a minimal DashboardCache
type memoryCache struct {
	mu          sync.Mutex
	summary     *DashboardSummary
	sets        int
	invalidated int
}

func (c *memoryCache) Get(context.Context) (*DashboardSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary, nil
}

func (c *memoryCache) Set(_ context.Context, s *DashboardSummary, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary = s
	c.sets++
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary = nil
	c.invalidated++
	return nil
}

type dashboardFixture struct {
	orders    *mockOrderRepo
	tasks     *mockTaskRepo
	employees *mockEmployeeRepo
	items     *mockInventoryRepo
}

func newDashboardFixture(ctx context.Context, now time.Time) *dashboardFixture {
	f := &dashboardFixture{
		orders:    new(mockOrderRepo),
		tasks:     new(mockTaskRepo),
		employees: new(mockEmployeeRepo),
		items:     new(mockInventoryRepo),
	}
	f.orders.On("CountByStatus", ctx, catering.OrderStatusPending).Return(int64(3), nil)
	f.orders.On("CountByStatus", ctx, catering.OrderStatusInProgress).Return(int64(1), nil)
	f.orders.On("CountByStatus", ctx, catering.OrderStatusCompleted).Return(int64(5), nil)
	f.orders.On("CountByStatus", ctx, catering.OrderStatusCancelled).Return(int64(2), nil)
	f.orders.On("SumCompletedRevenue", ctx).Return(decimal.NewFromInt(125000), nil)
	f.orders.On("SumOutstanding", ctx).Return(decimal.NewFromInt(18000), nil)
	f.orders.On("CountDistinctCustomers", ctx).Return(int64(7), nil)
	f.employees.On("CountActive", ctx).Return(int64(12), nil)
	f.items.On("CountLowStock", ctx).Return(int64(2), nil)
	f.items.On("SumActiveValue", ctx).Return(decimal.RequireFromString("4520.50"), nil)

	yesterday := now.Add(-24 * time.Hour)
	late, _ := catering.NewTask("Return rented tables", "", catering.TaskPriorityHigh, &yesterday)
	open, _ := catering.NewTask("Order gas cylinders", "", catering.TaskPriorityLow, nil)
	f.tasks.On("FindPending", ctx).Return([]catering.Task{*late, *open}, nil)
	return f
}

func (f *dashboardFixture) service(cache DashboardCache, now time.Time) *DashboardService {
	s := NewDashboardService(f.orders, f.tasks, f.employees, f.items, cache, nil)
	s.SetClock(shared.FixedClock{At: now})
	return s
}

func TestDashboardService_Summary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC)
	f := newDashboardFixture(ctx, now)

	summary, err := f.service(nil, now).Summary(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(11), summary.TotalOrders)
	assert.Equal(t, int64(5), summary.OrdersByStatus["COMPLETED"])
	assert.True(t, summary.CompletedRevenue.Equal(decimal.NewFromInt(125000)))
	assert.True(t, summary.OutstandingAmount.Equal(decimal.NewFromInt(18000)))
	assert.Equal(t, int64(7), summary.TotalCustomers)
	assert.Equal(t, int64(12), summary.ActiveEmployees)
	assert.Equal(t, int64(2), summary.LowStockItems)
	assert.Equal(t, 2, summary.PendingTasks)
	assert.Equal(t, 1, summary.OverdueTasks)
	assert.Equal(t, now, summary.GeneratedAt)
}

func TestDashboardService_UsesCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC)
	f := newDashboardFixture(ctx, now)
	cache := &memoryCache{}
	service := f.service(cache, now)

	_, err := service.Summary(ctx)
	require.NoError(t, err)
	_, err = service.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.sets)
	f.employees.AssertNumberOfCalls(t, "CountActive", 1)

	handler := NewDashboardInvalidationHandler(cache, nil)
	assert.Nil(t, handler.EventTypes())
	event := shared.NewBaseDomainEvent(catering.EventTypeOrderCreated, catering.AggregateTypeOrder, uuid.New())
	require.NoError(t, handler.Handle(ctx, &event))

	_, err = service.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)
	f.employees.AssertNumberOfCalls(t, "CountActive", 2)
}

func TestDashboardService_RepositoryError(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC)
	f := &dashboardFixture{
		orders:    new(mockOrderRepo),
		tasks:     new(mockTaskRepo),
		employees: new(mockEmployeeRepo),
		items:     new(mockInventoryRepo),
	}
	f.orders.On("CountByStatus", ctx, catering.OrderStatusPending).Return(int64(0), errors.New("db down"))
	cache := &memoryCache{}

	_, err := f.service(cache, now).Summary(ctx)

	assert.ErrorContains(t, err, "db down")
	assert.Equal(t, 0, cache.sets)
}
