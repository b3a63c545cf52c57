package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	appcatering "github.com/catering/backend/internal/application/catering"
	"github.com/catering/backend/internal/domain/catering"
	"github.com/catering/backend/internal/domain/customer"
	"github.com/catering/backend/internal/domain/inventory"
	"github.com/catering/backend/internal/domain/shared"
	"github.com/catering/backend/internal/domain/staff"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var eventDay = time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewSQLiteDatabase(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db.DB
}

func seedEmployee(t *testing.T, repo *GormEmployeeRepository, code string, typ staff.EmployeeType) *staff.Employee {
	t.Helper()
	e, err := staff.NewEmployee(code, "Employee "+code, typ, decimal.NewFromInt(500))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), e))
	return e
}

func seedItem(t *testing.T, repo *GormInventoryItemRepository, code string, stock, minimum int, cost int64) *inventory.InventoryItem {
	t.Helper()
	item, err := inventory.NewInventoryItem(code, "Item "+code, inventory.CategoryUtensils, "pcs", decimal.NewFromInt(cost), minimum)
	require.NoError(t, err)
	require.NoError(t, item.SetCurrentStock(stock))
	item.ClearDomainEvents()
	require.NoError(t, repo.Create(context.Background(), item))
	return item
}

func seedCustomer(t *testing.T, repo *GormCustomerRepository, code string, typ customer.CustomerType) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(code, "Customer "+code, typ)
	require.NoError(t, err)
	c.ClearDomainEvents()
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func newOrder(t *testing.T, number string, day time.Time, total, advance int64) *catering.Order {
	t.Helper()
	o, err := catering.NewOrder(number, catering.OrderTypeFullCatering, "Wedding", day, 120)
	require.NoError(t, err)
	require.NoError(t, o.SetTotalAmount(decimal.NewFromInt(total)))
	require.NoError(t, o.SetAdvanceAmount(decimal.NewFromInt(advance)))
	return o
}

func TestGormOrderRepository_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	orders := NewGormOrderRepository(db)
	employees := NewGormEmployeeRepository(db)
	items := NewGormInventoryItemRepository(db)

	cook := seedEmployee(t, employees, "C1", staff.EmployeeTypeCook)
	plates := seedItem(t, items, "PLT", 100, 10, 5)

	order := newOrder(t, "ORD-1", eventDay, 1000, 300)
	_, err := order.AddEmployeeAssignment(cook.ID, "Head cook", decimal.NewFromInt(800))
	require.NoError(t, err)
	_, err = order.AddInventoryUsage(plates.ID, 20, plates.UnitCost)
	require.NoError(t, err)
	require.NoError(t, orders.Create(ctx, order))

	t.Run("loads children and money fields", func(t *testing.T) {
		got, err := orders.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "ORD-1", got.OrderNumber)
		assert.True(t, got.RemainingAmount.Equal(decimal.NewFromInt(700)))
		assert.Equal(t, catering.PaymentStatusAdvancePaid, got.PaymentStatus)
		assert.True(t, got.EventDate.Equal(eventDay))
		require.Len(t, got.Assignments, 1)
		assert.Equal(t, cook.ID, got.Assignments[0].EmployeeID)
		require.Len(t, got.InventoryUsages, 1)
		assert.Equal(t, 20, got.InventoryUsages[0].QuantityUsed)
		assert.True(t, got.InventoryUsages[0].TotalCost.Equal(decimal.NewFromInt(100)))
	})

	t.Run("save replaces children and bumps version", func(t *testing.T) {
		got, err := orders.FindByID(ctx, order.ID)
		require.NoError(t, err)
		_, err = got.RemoveEmployeeAssignment(got.Assignments[0].ID)
		require.NoError(t, err)
		require.NoError(t, got.RecordPayment(decimal.NewFromInt(700)))
		require.NoError(t, orders.Save(ctx, got))
		assert.Equal(t, 2, got.Version)

		reloaded, err := orders.FindByOrderNumber(ctx, "ORD-1")
		require.NoError(t, err)
		assert.Empty(t, reloaded.Assignments)
		assert.Len(t, reloaded.InventoryUsages, 1)
		assert.Equal(t, catering.PaymentStatusFullyPaid, reloaded.PaymentStatus)
		assert.Equal(t, 2, reloaded.Version)
	})

	t.Run("stale version is a conflict", func(t *testing.T) {
		stale := newOrder(t, "ORD-1", eventDay, 1000, 0)
		stale.ID = order.ID
		stale.Version = 1
		err := orders.Save(ctx, stale)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeConcurrencyConflict))
	})

	t.Run("duplicate order number", func(t *testing.T) {
		err := orders.Create(ctx, newOrder(t, "ORD-1", eventDay, 10, 0))
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeAlreadyExists))
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := orders.FindByOrderNumber(ctx, "NOPE")
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("orders by employee", func(t *testing.T) {
		other := newOrder(t, "ORD-2", eventDay, 500, 0)
		_, err := other.AddEmployeeAssignment(cook.ID, "", decimal.NewFromInt(500))
		require.NoError(t, err)
		require.NoError(t, orders.Create(ctx, other))

		found, err := orders.FindByEmployee(ctx, cook.ID)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "ORD-2", found[0].OrderNumber)
	})
}

func TestGormOrderRepository_Queries(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	orders := NewGormOrderRepository(db)
	repo := NewGormCustomerRepository(db)
	taj := seedCustomer(t, repo, "TAJ", customer.CustomerTypePermanent)
	asha := seedCustomer(t, repo, "ASHA", customer.CustomerTypeOneTime)

	a := newOrder(t, "A", eventDay, 1000, 1000)
	require.NoError(t, a.AssignCustomer(taj.ID))
	require.NoError(t, a.Start())
	require.NoError(t, a.Complete())
	b := newOrder(t, "B", eventDay.Add(13*time.Hour), 800, 200)
	require.NoError(t, b.AssignCustomer(taj.ID))
	c := newOrder(t, "C", eventDay.AddDate(0, 0, 1), 400, 0)
	require.NoError(t, c.AssignCustomer(asha.ID))
	d := newOrder(t, "D", eventDay, 900, 100)
	require.NoError(t, d.Cancel("rain"))
	for _, o := range []*catering.Order{a, b, c, d} {
		require.NoError(t, orders.Create(ctx, o))
	}

	onDay, err := orders.FindByEventDate(ctx, eventDay.Add(18*time.Hour))
	require.NoError(t, err)
	assert.Len(t, onDay, 3)

	revenue, err := orders.SumCompletedRevenue(ctx)
	require.NoError(t, err)
	assert.True(t, revenue.Equal(decimal.NewFromInt(1000)), revenue.String())

	outstanding, err := orders.SumOutstanding(ctx)
	require.NoError(t, err)
	assert.True(t, outstanding.Equal(decimal.NewFromInt(1000)), outstanding.String())

	owing, err := orders.FindWithOutstandingPayments(ctx)
	require.NoError(t, err)
	assert.Len(t, owing, 2)

	pending, err := orders.CountByStatus(ctx, catering.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pending)

	customers, err := orders.CountDistinctCustomers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), customers)

	byCustomer, err := orders.FindByCustomer(ctx, taj.ID)
	require.NoError(t, err)
	require.Len(t, byCustomer, 2)
	assert.Equal(t, "A", byCustomer[0].OrderNumber)

	filtered, err := orders.FindAll(ctx, shared.Filter{Filters: map[string]any{"customer_id": asha.ID}})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "C", filtered[0].OrderNumber)

	filter := shared.Filter{Filters: map[string]any{"status": "PENDING"}, OrderBy: "order_number", OrderDir: "asc"}
	listed, err := orders.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "B", listed[0].OrderNumber)

	total, err := orders.Count(ctx, shared.Filter{Search: "wed"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	exists, err := orders.ExistsByOrderNumber(ctx, "C")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGormTaskRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	tasks := NewGormTaskRepository(db)
	employees := NewGormEmployeeRepository(db)
	now := time.Date(2026, 11, 10, 15, 0, 0, 0, time.UTC)

	waiter := seedEmployee(t, employees, "W1", staff.EmployeeTypeWaiter)
	due := func(days int) *time.Time {
		d := now.AddDate(0, 0, days)
		return &d
	}

	overdue, _ := catering.NewTask("Order napkins", "", catering.TaskPriorityHigh, due(-2))
	today, _ := catering.NewTask("Call florist", "", catering.TaskPriorityMedium, due(0))
	require.NoError(t, today.Assign(waiter.ID))
	soon, _ := catering.NewTask("Pick up chairs", "", catering.TaskPriorityLow, due(3))
	done, _ := catering.NewTask("Book van", "", catering.TaskPriorityLow, due(-1))
	require.NoError(t, done.Assign(waiter.ID))
	require.NoError(t, done.MarkCompleted(now))
	for _, task := range []*catering.Task{overdue, today, soon, done} {
		require.NoError(t, tasks.Create(ctx, task))
	}

	found, err := tasks.FindOverdue(ctx, now)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, overdue.ID, found[0].ID)

	found, err = tasks.FindDueToday(ctx, now)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, today.ID, found[0].ID)

	found, err = tasks.FindDueWithin(ctx, now, 3)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = tasks.FindUnassigned(ctx)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	pending, err := tasks.CountPendingByEmployee(ctx, waiter.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)
	completed, err := tasks.CountCompletedByEmployee(ctx, waiter.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), completed)

	t.Run("save bumps version and hides deleted", func(t *testing.T) {
		got, err := tasks.FindByID(ctx, soon.ID)
		require.NoError(t, err)
		require.NoError(t, got.MarkDeleted(now))
		require.NoError(t, tasks.Save(ctx, got))
		assert.Equal(t, 2, got.Version)

		all, err := tasks.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		deleted, err := tasks.FindAll(ctx, shared.Filter{Filters: map[string]any{"status": "DELETED"}})
		require.NoError(t, err)
		assert.Len(t, deleted, 1)

		got.Version = 1
		err = tasks.Save(ctx, got)
		assert.True(t, shared.IsCode(err, shared.CodeConcurrencyConflict))
	})
}

func TestGormEmployeeRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormEmployeeRepository(db)

	c1 := seedEmployee(t, repo, "C1", staff.EmployeeTypeCook)
	c2 := seedEmployee(t, repo, "C2", staff.EmployeeTypeCook)
	d1 := seedEmployee(t, repo, "D1", staff.EmployeeTypeDriver)

	got, err := repo.FindByCode(ctx, "C2")
	require.NoError(t, err)
	require.NoError(t, got.Deactivate())
	require.NoError(t, repo.Save(ctx, got))

	cook := staff.EmployeeTypeCook
	active, err := repo.FindActive(ctx, &cook)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, c1.ID, active[0].ID)

	count, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	byIDs, err := repo.FindByIDs(ctx, []uuid.UUID{c1.ID, c2.ID, d1.ID})
	require.NoError(t, err)
	assert.Len(t, byIDs, 3)

	listed, err := repo.FindAll(ctx, shared.Filter{Filters: map[string]any{"active": "false"}})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "C2", listed[0].EmployeeCode)

	err = repo.Create(ctx, c1)
	assert.True(t, shared.IsCode(err, shared.CodeAlreadyExists))
}

func TestGormInventoryItemRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormInventoryItemRepository(db)

	seedItem(t, repo, "PLT", 100, 10, 5)
	seedItem(t, repo, "CUP", 5, 10, 2)
	seedItem(t, repo, "JUG", 0, 2, 40)

	value, err := repo.SumActiveValue(ctx)
	require.NoError(t, err)
	assert.True(t, value.Equal(decimal.NewFromInt(510)), value.String())

	low, err := repo.FindLowStock(ctx)
	require.NoError(t, err)
	assert.Len(t, low, 2)

	out, err := repo.FindOutOfStock(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "JUG", out[0].ItemCode)

	item, err := repo.FindByCode(ctx, "CUP")
	require.NoError(t, err)
	require.NoError(t, item.UpdateStock(20))
	require.NoError(t, repo.Save(ctx, item))

	lowCount, err := repo.CountLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), lowCount)

	byCategory, err := repo.FindByCategory(ctx, inventory.CategoryUtensils)
	require.NoError(t, err)
	assert.Len(t, byCategory, 3)
}

func TestGormTransactionScope(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	scope := NewGormTransactionScope(db)
	items := NewGormInventoryItemRepository(db)
	seedItem(t, items, "PLT", 10, 0, 5)

	boom := errors.New("boom")
	err := scope.Execute(ctx, func(repos appcatering.TransactionalRepositories) error {
		item, err := repos.InventoryRepo().FindByCode(ctx, "PLT")
		if err != nil {
			return err
		}
		if err := item.UseStock(4); err != nil {
			return err
		}
		if err := repos.InventoryRepo().Save(ctx, item); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	item, err := items.FindByCode(ctx, "PLT")
	require.NoError(t, err)
	assert.Equal(t, 10, item.CurrentStock)
	assert.Equal(t, 1, item.Version)
}

func TestGormCustomerRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormCustomerRepository(db)
	d := decimal.NewFromInt

	taj := seedCustomer(t, repo, "TAJ", customer.CustomerTypePermanent)
	oberoi := seedCustomer(t, repo, "OBEROI", customer.CustomerTypePermanent)
	asha := seedCustomer(t, repo, "asha", customer.CustomerTypeOneTime)

	require.NoError(t, taj.SetContact("Mr. Iyer", "9845012345", "", "MG Road"))
	require.NoError(t, taj.Classify(customer.CustomerTypePermanent, customer.BusinessTypeHotel))
	_, err := taj.RefreshOrderTotals(customer.OrderTotals{Orders: 5, Amount: d(90000), Outstanding: d(12000)})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, taj))
	assert.Equal(t, 2, taj.Version)

	_, err = oberoi.RefreshOrderTotals(customer.OrderTotals{Orders: 2, Amount: d(150000)})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, oberoi))
	require.NoError(t, asha.Deactivate())
	require.NoError(t, repo.Save(ctx, asha))

	got, err := repo.FindByCode(ctx, "taj")
	require.NoError(t, err)
	assert.Equal(t, customer.BusinessTypeHotel, got.BusinessType)
	assert.True(t, got.OutstandingAmount.Equal(d(12000)))

	byPhone, err := repo.FindByPhone(ctx, "9845012345")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, taj.ID, byPhone[0].ID)

	owing, err := repo.FindWithOutstanding(ctx)
	require.NoError(t, err)
	require.Len(t, owing, 1)
	assert.Equal(t, "TAJ", owing[0].CustomerCode)

	top, err := repo.FindTopByTotalAmount(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "OBEROI", top[0].CustomerCode)

	frequent, err := repo.FindWithOrdersAbove(ctx, 2)
	require.NoError(t, err)
	require.Len(t, frequent, 1)
	assert.Equal(t, "TAJ", frequent[0].CustomerCode)

	permanent, err := repo.CountByType(ctx, customer.CustomerTypePermanent)
	require.NoError(t, err)
	assert.Equal(t, int64(2), permanent)
	active, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), active)

	listed, err := repo.FindAll(ctx, shared.Filter{Search: "iyer"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	inactive, err := repo.Count(ctx, shared.Filter{Filters: map[string]any{"active": "false"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), inactive)
	hotels, err := repo.Count(ctx, shared.Filter{Filters: map[string]any{"business_type": "HOTEL"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), hotels)

	exists, err := repo.ExistsByCode(ctx, " Oberoi ")
	require.NoError(t, err)
	assert.True(t, exists)

	err = repo.Create(ctx, taj)
	assert.True(t, shared.IsCode(err, shared.CodeAlreadyExists))

	stale := *got
	stale.Version = 1
	assert.True(t, shared.IsCode(repo.Save(ctx, &stale), shared.CodeConcurrencyConflict))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
