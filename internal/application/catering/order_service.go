package catering

import (
	"context"
	"fmt"
	"time"

	"github.com/catering/backend/internal/domain/catering"
	"github.com/catering/backend/internal/domain/inventory"
	"github.com/catering/backend/internal/domain/shared"
	"github.com/catering/backend/internal/domain/shared/valueobject"
	"github.com/catering/backend/internal/domain/staff"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService runs order workflows. Every mutation that spans aggregates
// (stock draws, payroll credits) happens inside one TransactionScope.
type OrderService struct {
	orderRepo      catering.OrderRepository
	txScope        TransactionScope
	clock          shared.Clock
	eventPublisher shared.EventPublisher
	currency       valueobject.Currency
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo catering.OrderRepository, txScope TransactionScope, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo: orderRepo,
		txScope:   txScope,
		clock:     shared.SystemClock{},
		currency:  valueobject.DefaultCurrency,
		logger:    logger,
	}
}

// SetCurrency sets the currency order amounts are reported in
func (s *OrderService) SetCurrency(currency valueobject.Currency) {
	s.currency = currency
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetClock overrides the time source
func (s *OrderService) SetClock(clock shared.Clock) {
	s.clock = clock
}

// publish sends the aggregates' pending events once the unit of work committed
func (s *OrderService) publish(ctx context.Context, roots ...shared.AggregateRoot) {
	for _, root := range roots {
		if root == nil {
			continue
		}
		events := root.GetDomainEvents()
		if len(events) == 0 {
			continue
		}
		if s.eventPublisher != nil {
			// errors are logged by the event bus, not propagated
			_ = s.eventPublisher.Publish(ctx, events...)
		}
		root.ClearDomainEvents()
	}
}

// CreateOrder books a new order. Order numbers must be unique and a linked
// customer must exist and be active.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderResponse, error) {
	exists, err := s.orderRepo.ExistsByOrderNumber(ctx, input.OrderNumber)
	if err != nil {
		return nil, fmt.Errorf("check order number: %w", err)
	}
	if exists {
		return nil, shared.NewDuplicateError(fmt.Sprintf("Order number %s already exists", input.OrderNumber))
	}

	order, err := catering.NewOrder(input.OrderNumber, input.OrderType, input.EventName, input.EventDate, input.GuestCount)
	if err != nil {
		return nil, err
	}
	if err := order.SetEventDetails(input.EventName, input.VenueAddress, input.GuestCount); err != nil {
		return nil, err
	}
	if input.EventTime != "" {
		if err := order.Reschedule(input.EventDate, input.EventTime); err != nil {
			return nil, err
		}
	}
	order.SetMenu(input.MenuDetails, input.SpecialRequirements)
	order.SetNotes(input.Notes)
	if err := order.SetTotalAmount(input.TotalAmount); err != nil {
		return nil, err
	}
	if err := order.SetAdvanceAmount(input.AdvanceAmount); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if input.CustomerID != nil {
			if err := s.linkCustomer(ctx, repos, order, *input.CustomerID); err != nil {
				return err
			}
		}
		if err := repos.OrderRepo().Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return s.refreshCustomers(ctx, repos, order.CustomerID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_number", order.OrderNumber),
		zap.String("event_date", order.EventDate.Format("2006-01-02")),
		zap.String("total", order.Total(s.currency).String()),
	)
	s.publish(ctx, order)
	return s.respond(order), nil
}

// GetOrder loads an order with its children
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(order), nil
}

// GetOrderByNumber loads an order by its order number
func (s *OrderService) GetOrderByNumber(ctx context.Context, number string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return s.respond(order), nil
}

// ListOrders returns a page of orders and the total match count
func (s *OrderService) ListOrders(ctx context.Context, filter shared.Filter) ([]OrderResponse, int64, error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]OrderResponse, 0, len(orders))
	now := s.clock.Now()
	for i := range orders {
		out = append(out, ToOrderResponse(&orders[i], now, s.currency))
	}
	return out, total, nil
}

// ListOutstanding returns orders that still owe money
func (s *OrderService) ListOutstanding(ctx context.Context) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindWithOutstandingPayments(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]OrderResponse, 0, len(orders))
	now := s.clock.Now()
	for i := range orders {
		out = append(out, ToOrderResponse(&orders[i], now, s.currency))
	}
	return out, nil
}

// ListOrdersByCustomer returns the customer's orders, latest event first
func (s *OrderService) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]OrderResponse, 0, len(orders))
	now := s.clock.Now()
	for i := range orders {
		out = append(out, ToOrderResponse(&orders[i], now, s.currency))
	}
	return out, nil
}

// UpdateOrder edits descriptive fields. Moving the event to another day
// fails while any assigned employee is booked on a different open order
// that day.
func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*OrderResponse, error) {
	return s.mutateWith(ctx, id, func(repos TransactionalRepositories, order *catering.Order) error {
		if input.CustomerID != nil {
			switch {
			case *input.CustomerID == uuid.Nil:
				order.ClearCustomer()
			case !order.BelongsTo(*input.CustomerID):
				if err := s.linkCustomer(ctx, repos, order, *input.CustomerID); err != nil {
					return err
				}
			}
		}
		if input.EventName != nil || input.VenueAddress != nil || input.GuestCount != nil {
			name, venue, guests := order.EventName, order.VenueAddress, order.GuestCount
			if input.EventName != nil {
				name = *input.EventName
			}
			if input.VenueAddress != nil {
				venue = *input.VenueAddress
			}
			if input.GuestCount != nil {
				guests = *input.GuestCount
			}
			if err := order.SetEventDetails(name, venue, guests); err != nil {
				return err
			}
		}
		if input.EventDate != nil || input.EventTime != nil {
			date, at := order.EventDate, order.EventTime
			if input.EventDate != nil {
				date = *input.EventDate
			}
			if input.EventTime != nil {
				at = *input.EventTime
			}
			previous := order.EventDate
			if err := order.Reschedule(date, at); err != nil {
				return err
			}
			if !shared.SameDay(previous, order.EventDate) {
				if err := s.ensureStaffFree(ctx, repos, order); err != nil {
					return err
				}
			}
		}
		if input.MenuDetails != nil || input.SpecialRequirements != nil {
			menu, req := order.MenuDetails, order.SpecialRequirements
			if input.MenuDetails != nil {
				menu = *input.MenuDetails
			}
			if input.SpecialRequirements != nil {
				req = *input.SpecialRequirements
			}
			order.SetMenu(menu, req)
		}
		if input.Notes != nil {
			order.SetNotes(*input.Notes)
		}
		return nil
	})
}

// SetTotalAmount changes the contract total
func (s *OrderService) SetTotalAmount(ctx context.Context, id uuid.UUID, total decimal.Decimal) (*OrderResponse, error) {
	return s.mutate(ctx, id, func(order *catering.Order) error {
		return order.SetTotalAmount(total)
	})
}

// SetAdvanceAmount overwrites the amount received so far
func (s *OrderService) SetAdvanceAmount(ctx context.Context, id uuid.UUID, advance decimal.Decimal) (*OrderResponse, error) {
	return s.mutate(ctx, id, func(order *catering.Order) error {
		return order.SetAdvanceAmount(advance)
	})
}

// RecordPayment adds a customer payment to the advance
func (s *OrderService) RecordPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*OrderResponse, error) {
	return s.mutate(ctx, id, func(order *catering.Order) error {
		if err := order.RecordPayment(amount); err != nil {
			return err
		}
		s.logger.Info("payment recorded",
			zap.String("order_number", order.OrderNumber),
			zap.String("amount", amount.StringFixed(2)),
			zap.String("payment_status", string(order.PaymentStatus)),
		)
		return nil
	})
}

// StartOrder moves the order to IN_PROGRESS
func (s *OrderService) StartOrder(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, id, func(order *catering.Order) error {
		return order.Start()
	})
}

// CompleteOrder moves the order to COMPLETED
func (s *OrderService) CompleteOrder(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, id, func(order *catering.Order) error {
		return order.Complete()
	})
}

// CancelOrder moves the order to CANCELLED. Stock drawn for it stays
// attributed until the usage lines are removed.
func (s *OrderService) CancelOrder(ctx context.Context, id uuid.UUID, reason string) (*OrderResponse, error) {
	return s.mutate(ctx, id, func(order *catering.Order) error {
		return order.Cancel(reason)
	})
}

// AssignEmployee books an active employee who is not already committed
// to another active order that day
func (s *OrderService) AssignEmployee(ctx context.Context, orderID uuid.UUID, input AssignEmployeeInput) (*OrderResponse, error) {
	var order *catering.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		employee, err := repos.EmployeeRepo().FindByID(ctx, input.EmployeeID)
		if err != nil {
			return err
		}
		if !employee.Active {
			return shared.NewDomainError(shared.CodeInvalidState,
				fmt.Sprintf("Employee %s is inactive", employee.EmployeeCode))
		}
		sameDay, err := repos.OrderRepo().FindByEventDate(ctx, order.EventDate)
		if err != nil {
			return err
		}
		if other := catering.BookingConflict(sameDay, order.ID, order.EventDate, employee.ID); other != nil {
			return shared.NewDomainError(shared.CodeInvalidState,
				fmt.Sprintf("Employee %s is already booked on order %s that day", employee.EmployeeCode, other.OrderNumber))
		}

		payment := employee.SalaryPerOrder
		if input.PaymentAmount != nil {
			payment = *input.PaymentAmount
		}
		role := input.Role
		if role == "" {
			role = employee.Type.DisplayName()
		}
		if _, err := order.AddEmployeeAssignment(employee.ID, role, payment); err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, order)
	return s.respond(order), nil
}

// RemoveAssignment unbooks an unpaid assignment
func (s *OrderService) RemoveAssignment(ctx context.Context, orderID, assignmentID uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, func(order *catering.Order) error {
		_, err := order.RemoveEmployeeAssignment(assignmentID)
		return err
	})
}

// FinalizeAssignment pays an assignment out: the assignment becomes PAID
// and the employee's served-orders and earnings counters advance, atomically.
func (s *OrderService) FinalizeAssignment(ctx context.Context, orderID, assignmentID uuid.UUID) (*OrderResponse, error) {
	var (
		order    *catering.Order
		employee *staff.Employee
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		paid, err := order.FinalizeAssignment(assignmentID, s.clock.Now())
		if err != nil {
			return err
		}
		employee, err = repos.EmployeeRepo().FindByID(ctx, paid.EmployeeID)
		if err != nil {
			return err
		}
		if err := employee.RecordServedOrder(paid.PaymentAmount); err != nil {
			return err
		}
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}
		return repos.EmployeeRepo().Save(ctx, employee)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("assignment finalized",
		zap.String("order_number", order.OrderNumber),
		zap.String("employee_code", employee.EmployeeCode),
		zap.Int("orders_served", employee.TotalOrdersServed),
		zap.String("total_earnings", employee.Earnings(s.currency).String()),
	)
	s.publish(ctx, order, employee)
	return s.respond(order), nil
}

// RecordInventoryUsage draws stock from an item and attributes it to the
// order in one transaction. Insufficient stock aborts both.
func (s *OrderService) RecordInventoryUsage(ctx context.Context, orderID uuid.UUID, input RecordUsageInput) (*OrderResponse, error) {
	var (
		order *catering.Order
		item  *inventory.InventoryItem
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		item, err = repos.InventoryRepo().FindByID(ctx, input.InventoryItemID)
		if err != nil {
			return err
		}
		if !item.Active {
			return shared.NewDomainError(shared.CodeInvalidState,
				fmt.Sprintf("Inventory item %s is inactive", item.ItemCode))
		}
		unitCost := item.UnitCost
		if input.UnitCost != nil {
			unitCost = *input.UnitCost
		}
		if _, err := order.AddInventoryUsage(item.ID, input.Quantity, unitCost); err != nil {
			return err
		}
		if err := item.UseStock(input.Quantity); err != nil {
			return err
		}
		if err := repos.InventoryRepo().Save(ctx, item); err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		if item != nil && shared.IsCode(err, shared.CodeInsufficientStock) {
			s.logger.Warn("stock draw rejected",
				zap.String("item_code", item.ItemCode),
				zap.Int("requested", input.Quantity),
				zap.Int("available", item.CurrentStock),
			)
		}
		return nil, err
	}
	s.publish(ctx, order, item)
	return s.respond(order), nil
}

// AdjustInventoryUsage changes a usage quantity and moves the difference
// in or out of stock
func (s *OrderService) AdjustInventoryUsage(ctx context.Context, orderID, usageID uuid.UUID, quantity int) (*OrderResponse, error) {
	var (
		order *catering.Order
		item  *inventory.InventoryItem
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		usage := order.GetInventoryUsage(usageID)
		if usage == nil {
			return shared.NewNotFoundError(fmt.Sprintf("Inventory usage %s not found", usageID))
		}
		item, err = repos.InventoryRepo().FindByID(ctx, usage.InventoryItemID)
		if err != nil {
			return err
		}
		delta, err := order.UpdateInventoryUsageQuantity(usageID, quantity)
		if err != nil {
			return err
		}
		switch {
		case delta > 0:
			err = item.UseStock(delta)
		case delta < 0:
			err = item.UpdateStock(-delta)
		}
		if err != nil {
			return err
		}
		if err := repos.InventoryRepo().Save(ctx, item); err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, order, item)
	return s.respond(order), nil
}

// RemoveInventoryUsage detaches a usage line and returns its quantity to stock
func (s *OrderService) RemoveInventoryUsage(ctx context.Context, orderID, usageID uuid.UUID) (*OrderResponse, error) {
	var (
		order *catering.Order
		item  *inventory.InventoryItem
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		removed, err := order.RemoveInventoryUsage(usageID)
		if err != nil {
			return err
		}
		item, err = repos.InventoryRepo().FindByID(ctx, removed.InventoryItemID)
		if err != nil {
			return err
		}
		if err := item.UpdateStock(removed.QuantityUsed); err != nil {
			return err
		}
		if err := repos.InventoryRepo().Save(ctx, item); err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, order, item)
	return s.respond(order), nil
}

// mutate loads, changes and saves a single order
func (s *OrderService) mutate(ctx context.Context, id uuid.UUID, fn func(order *catering.Order) error) (*OrderResponse, error) {
	return s.mutateWith(ctx, id, func(_ TransactionalRepositories, order *catering.Order) error {
		return fn(order)
	})
}

// mutateWith is mutate for changes that read other aggregates. The
// counters of the customers linked before and after the change are
// refreshed in the same transaction.
func (s *OrderService) mutateWith(ctx context.Context, id uuid.UUID, fn func(repos TransactionalRepositories, order *catering.Order) error) (*OrderResponse, error) {
	var order *catering.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		previous := order.CustomerID
		if err := fn(repos, order); err != nil {
			return err
		}
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}
		return s.refreshCustomers(ctx, repos, previous, order.CustomerID)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, order)
	return s.respond(order), nil
}

// linkCustomer attaches an active customer to the order
func (s *OrderService) linkCustomer(ctx context.Context, repos TransactionalRepositories, order *catering.Order, customerID uuid.UUID) error {
	c, err := repos.CustomerRepo().FindByID(ctx, customerID)
	if err != nil {
		return err
	}
	if !c.Active {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Customer %s is inactive", c.CustomerCode))
	}
	return order.AssignCustomer(c.ID)
}

// refreshCustomers recomputes the order counters of every linked customer
func (s *OrderService) refreshCustomers(ctx context.Context, repos TransactionalRepositories, ids ...*uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == nil {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}

		c, err := repos.CustomerRepo().FindByID(ctx, *id)
		if err != nil {
			return err
		}
		orders, err := repos.OrderRepo().FindByCustomer(ctx, *id)
		if err != nil {
			return err
		}
		changed, err := c.RefreshOrderTotals(catering.SummarizeCustomerOrders(orders))
		if err != nil {
			return err
		}
		if !changed {
			continue
		}
		if err := repos.CustomerRepo().Save(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// ensureStaffFree rejects the order's event day when one of its assigned
// employees is already booked on another open order that day
func (s *OrderService) ensureStaffFree(ctx context.Context, repos TransactionalRepositories, order *catering.Order) error {
	if len(order.Assignments) == 0 {
		return nil
	}
	sameDay, err := repos.OrderRepo().FindByEventDate(ctx, order.EventDate)
	if err != nil {
		return err
	}
	for _, a := range order.Assignments {
		if other := catering.BookingConflict(sameDay, order.ID, order.EventDate, a.EmployeeID); other != nil {
			return shared.NewDomainError(shared.CodeInvalidState,
				fmt.Sprintf("Cannot move order %s to %s: employee %s is already booked on order %s that day",
					order.OrderNumber, order.EventDate.Format(time.DateOnly), a.EmployeeID, other.OrderNumber))
		}
	}
	return nil
}

func (s *OrderService) respond(order *catering.Order) *OrderResponse {
	resp := ToOrderResponse(order, s.clock.Now(), s.currency)
	return &resp
}
