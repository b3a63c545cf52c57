package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/catering/backend/internal/domain/catering"
	"github.com/catering/backend/internal/domain/shared"
	"github.com/catering/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// loaded returns a query that preloads every child collection
func (r *GormOrderRepository) loaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Assignments", func(db *gorm.DB) *gorm.DB { return db.Order("assigned_at") }).
		Preload("InventoryUsages", func(db *gorm.DB) *gorm.DB { return db.Order("used_at") }).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") })
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*catering.Order, error) {
	var model models.OrderModel
	if err := r.loaded(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("Order %s not found", id))
	}
	return model.ToDomain(), nil
}

// FindByOrderNumber finds an order by its unique number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*catering.Order, error) {
	var model models.OrderModel
	if err := r.loaded(ctx).First(&model, "order_number = ?", orderNumber).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("Order %s not found", orderNumber))
	}
	return model.ToDomain(), nil
}

// FindAll lists orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catering.Order, error) {
	q := r.applyFilter(r.loaded(ctx).Model(&models.OrderModel{}), filter)
	return r.find(pageAndSort(q, filter, OrderSortFields, "created_at"))
}

// FindByEventDate lists orders on the calendar day of date
func (r *GormOrderRepository) FindByEventDate(ctx context.Context, date time.Time) ([]catering.Order, error) {
	from, to := dayRange(date, 1)
	return r.find(r.loaded(ctx).
		Where("event_date >= ? AND event_date < ?", from, to).
		Order("order_number"))
}

// FindByStatus lists orders in the given status
func (r *GormOrderRepository) FindByStatus(ctx context.Context, status catering.OrderStatus) ([]catering.Order, error) {
	return r.find(r.loaded(ctx).Where("status = ?", string(status)).Order("event_date"))
}

// FindWithOutstandingPayments lists live orders that still owe money
func (r *GormOrderRepository) FindWithOutstandingPayments(ctx context.Context) ([]catering.Order, error) {
	return r.find(r.loaded(ctx).
		Where("remaining_amount > 0 AND status <> ?", string(catering.OrderStatusCancelled)).
		Order("event_date"))
}

// FindByEmployee lists orders the employee is assigned to
func (r *GormOrderRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]catering.Order, error) {
	sub := r.db.Model(&models.EmployeeAssignmentModel{}).Select("order_id").Where("employee_id = ?", employeeID)
	return r.find(r.loaded(ctx).Where("id IN (?)", sub).Order("event_date DESC"))
}

// FindByCustomer lists the customer's orders, latest event first
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]catering.Order, error) {
	return r.find(r.loaded(ctx).Where("customer_id = ?", customerID).Order("event_date DESC").Order("order_number"))
}

// ExistsByOrderNumber checks whether an order number is taken
func (r *GormOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("order_number = ?", orderNumber).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts orders matching the filter, ignoring pagination
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter).Count(&count).Error
	return count, err
}

// CountByStatus counts orders in the given status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, status catering.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("status = ?", string(status)).Count(&count).Error
	return count, err
}

// SumCompletedRevenue sums TotalAmount over COMPLETED orders
func (r *GormOrderRepository) SumCompletedRevenue(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, "total_amount", "status = ?", string(catering.OrderStatusCompleted))
}

// SumOutstanding sums positive RemainingAmount over non-cancelled orders
func (r *GormOrderRepository) SumOutstanding(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, "remaining_amount", "remaining_amount > 0 AND status <> ?", string(catering.OrderStatusCancelled))
}

// CountDistinctCustomers counts customers with at least one order
func (r *GormOrderRepository) CountDistinctCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("customer_id IS NOT NULL").
		Distinct("customer_id").
		Count(&count).Error
	return count, err
}

// Create inserts a new order with its assignments and usages
func (r *GormOrderRepository) Create(ctx context.Context, order *catering.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			return translate(err, "")
		}
		return writeChildren(tx, model)
	})
}

// Save updates the order under an optimistic version check and replaces
// its assignments and usages. On success the in-memory version is bumped.
func (r *GormOrderRepository) Save(ctx context.Context, order *catering.Order) error {
	model := models.OrderModelFromDomain(order)
	now := time.Now().UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.OrderModel{}).
			Where("id = ? AND version = ?", order.ID, order.Version).
			Updates(map[string]any{
				"customer_id":          model.CustomerID,
				"order_type":           model.OrderType,
				"event_name":           model.EventName,
				"event_date":           model.EventDate,
				"event_time":           model.EventTime,
				"venue_address":        model.VenueAddress,
				"guest_count":          model.GuestCount,
				"menu_details":         model.MenuDetails,
				"special_requirements": model.SpecialRequirements,
				"notes":                model.Notes,
				"status":               model.Status,
				"total_amount":         model.TotalAmount,
				"advance_amount":       model.AdvanceAmount,
				"remaining_amount":     model.RemainingAmount,
				"payment_status":       model.PaymentStatus,
				"cancel_reason":        model.CancelReason,
				"completed_at":         model.CompletedAt,
				"cancelled_at":         model.CancelledAt,
				"version":              order.Version + 1,
				"updated_at":           now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError(shared.CodeConcurrencyConflict,
				fmt.Sprintf("Order %s was modified by another transaction", order.OrderNumber))
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.EmployeeAssignmentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.InventoryUsageModel{}).Error; err != nil {
			return err
		}
		return writeChildren(tx, model)
	})
	if err != nil {
		return translate(err, "")
	}

	order.Version++
	order.UpdatedAt = now
	return nil
}

func writeChildren(tx *gorm.DB, model *models.OrderModel) error {
	if len(model.Assignments) > 0 {
		if err := tx.Create(&model.Assignments).Error; err != nil {
			return err
		}
	}
	if len(model.InventoryUsages) > 0 {
		if err := tx.Create(&model.InventoryUsages).Error; err != nil {
			return err
		}
	}
	return nil
}

// applyFilter handles status, payment_status, order_type, event date bounds and search
func (r *GormOrderRepository) applyFilter(q *gorm.DB, filter shared.Filter) *gorm.DB {
	if v, ok := filterString(filter, "status"); ok {
		q = q.Where("status = ?", v)
	}
	if v, ok := filterString(filter, "payment_status"); ok {
		q = q.Where("payment_status = ?", v)
	}
	if v, ok := filterString(filter, "order_type"); ok {
		q = q.Where("order_type = ?", v)
	}
	if v, ok := filter.Filters["customer_id"].(uuid.UUID); ok {
		q = q.Where("customer_id = ?", v)
	}
	if v, ok := filter.Filters["event_date_from"].(time.Time); ok {
		q = q.Where("event_date >= ?", shared.StartOfDay(v))
	}
	if v, ok := filter.Filters["event_date_to"].(time.Time); ok {
		_, end := dayRange(v, 1)
		q = q.Where("event_date < ?", end)
	}
	return search(q, filter.Search, "order_number", "event_name", "venue_address")
}

func (r *GormOrderRepository) sum(ctx context.Context, column, where string, args ...any) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Select(fmt.Sprintf("COALESCE(SUM(%s), 0)", column)).
		Where(where, args...).
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *GormOrderRepository) find(q *gorm.DB) ([]catering.Order, error) {
	var rows []models.OrderModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]catering.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

var _ catering.OrderRepository = (*GormOrderRepository)(nil)
