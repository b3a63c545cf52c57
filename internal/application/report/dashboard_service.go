package report

import (
	"context"
	"fmt"
	"time"

	"github.com/catering/backend/internal/domain/catering"
	"github.com/catering/backend/internal/domain/inventory"
	"github.com/catering/backend/internal/domain/shared"
	"github.com/catering/backend/internal/domain/staff"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultDashboardTTL bounds how stale a cached summary may get when no
// domain event invalidates it first
const DefaultDashboardTTL = 5 * time.Minute

// DashboardSummary is the business overview shown on the dashboard
type DashboardSummary struct {
	TotalOrders       int64            `json:"total_orders"`
	OrdersByStatus    map[string]int64 `json:"orders_by_status"`
	CompletedRevenue  decimal.Decimal  `json:"completed_revenue"`
	OutstandingAmount decimal.Decimal  `json:"outstanding_amount"`
	TotalCustomers    int64            `json:"total_customers"`
	ActiveEmployees   int64            `json:"active_employees"`
	LowStockItems     int64            `json:"low_stock_items"`
	InventoryValue    decimal.Decimal  `json:"inventory_value"`
	PendingTasks      int              `json:"pending_tasks"`
	OverdueTasks      int              `json:"overdue_tasks"`
	GeneratedAt       time.Time        `json:"generated_at"`
}

// DashboardCache stores the computed summary. Get returns nil, nil on a miss.
type DashboardCache interface {
	Get(ctx context.Context) (*DashboardSummary, error)
	Set(ctx context.Context, summary *DashboardSummary, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// DashboardService aggregates counters across orders, staff, stock and tasks
type DashboardService struct {
	orderRepo     catering.OrderRepository
	taskRepo      catering.TaskRepository
	employeeRepo  staff.EmployeeRepository
	inventoryRepo inventory.InventoryItemRepository
	cache         DashboardCache
	ttl           time.Duration
	clock         shared.Clock
	logger        *zap.Logger
}

// NewDashboardService creates a new DashboardService. cache may be nil.
func NewDashboardService(
	orderRepo catering.OrderRepository,
	taskRepo catering.TaskRepository,
	employeeRepo staff.EmployeeRepository,
	inventoryRepo inventory.InventoryItemRepository,
	cache DashboardCache,
	logger *zap.Logger,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		orderRepo:     orderRepo,
		taskRepo:      taskRepo,
		employeeRepo:  employeeRepo,
		inventoryRepo: inventoryRepo,
		cache:         cache,
		ttl:           DefaultDashboardTTL,
		clock:         shared.SystemClock{},
		logger:        logger,
	}
}

// SetTTL overrides the cache lifetime
func (s *DashboardService) SetTTL(ttl time.Duration) {
	if ttl > 0 {
		s.ttl = ttl
	}
}

// SetClock overrides the time source
func (s *DashboardService) SetClock(clock shared.Clock) {
	s.clock = clock
}

// Summary returns the cached summary or computes a fresh one
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	summary, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, summary, s.ttl); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}

func (s *DashboardService) compute(ctx context.Context) (*DashboardSummary, error) {
	now := s.clock.Now()
	summary := &DashboardSummary{
		OrdersByStatus: make(map[string]int64, 4),
		GeneratedAt:    now,
	}

	for _, status := range []catering.OrderStatus{
		catering.OrderStatusPending,
		catering.OrderStatusInProgress,
		catering.OrderStatusCompleted,
		catering.OrderStatusCancelled,
	} {
		n, err := s.orderRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("count %s orders: %w", status, err)
		}
		summary.OrdersByStatus[string(status)] = n
		summary.TotalOrders += n
	}

	var err error
	if summary.CompletedRevenue, err = s.orderRepo.SumCompletedRevenue(ctx); err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	if summary.OutstandingAmount, err = s.orderRepo.SumOutstanding(ctx); err != nil {
		return nil, fmt.Errorf("sum outstanding: %w", err)
	}
	if summary.TotalCustomers, err = s.orderRepo.CountDistinctCustomers(ctx); err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	if summary.ActiveEmployees, err = s.employeeRepo.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("count employees: %w", err)
	}
	if summary.LowStockItems, err = s.inventoryRepo.CountLowStock(ctx); err != nil {
		return nil, fmt.Errorf("count low stock: %w", err)
	}
	if summary.InventoryValue, err = s.inventoryRepo.SumActiveValue(ctx); err != nil {
		return nil, fmt.Errorf("sum inventory value: %w", err)
	}

	pending, err := s.taskRepo.FindPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending tasks: %w", err)
	}
	summary.PendingTasks = len(pending)
	for i := range pending {
		if pending[i].IsOverdue(now) {
			summary.OverdueTasks++
		}
	}
	return summary, nil
}

// DashboardInvalidationHandler drops the cached summary on any domain event
type DashboardInvalidationHandler struct {
	cache  DashboardCache
	logger *zap.Logger
}

// NewDashboardInvalidationHandler creates a new DashboardInvalidationHandler
func NewDashboardInvalidationHandler(cache DashboardCache, logger *zap.Logger) *DashboardInvalidationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardInvalidationHandler{cache: cache, logger: logger}
}

// EventTypes returns nil so the bus delivers every event
func (h *DashboardInvalidationHandler) EventTypes() []string {
	return nil
}

// Handle invalidates the cache
func (h *DashboardInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate dashboard cache: %w", err)
	}
	h.logger.Debug("dashboard cache invalidated", zap.String("event_type", event.EventType()))
	return nil
}

var _ shared.EventHandler = (*DashboardInvalidationHandler)(nil)
