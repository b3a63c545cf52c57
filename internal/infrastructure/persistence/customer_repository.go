package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/catering/backend/internal/domain/customer"
	"github.com/catering/backend/internal/domain/shared"
	"github.com/catering/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("Customer %s not found", id))
	}
	return model.ToDomain(), nil
}

// FindByCode finds a customer by unique code; codes are stored upper case
func (r *GormCustomerRepository) FindByCode(ctx context.Context, code string) (*customer.Customer, error) {
	var model models.CustomerModel
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := r.db.WithContext(ctx).First(&model, "customer_code = ?", code).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("Customer %s not found", code))
	}
	return model.ToDomain(), nil
}

// FindByPhone lists customers registered with the phone number
func (r *GormCustomerRepository) FindByPhone(ctx context.Context, phone string) ([]customer.Customer, error) {
	return r.find(r.db.WithContext(ctx).Where("phone = ?", strings.TrimSpace(phone)).Order("customer_code"))
}

// FindAll lists customers matching the filter (type, business_type, active, search)
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]customer.Customer, error) {
	q := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter)
	return r.find(pageAndSort(q, filter, CustomerSortFields, "created_at"))
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter).Count(&count).Error
	return count, err
}

// FindWithOutstanding lists customers who still owe money, largest debt first
func (r *GormCustomerRepository) FindWithOutstanding(ctx context.Context) ([]customer.Customer, error) {
	return r.find(r.db.WithContext(ctx).Where("outstanding_amount > 0").Order("outstanding_amount DESC"))
}

// FindTopByTotalAmount lists the highest-billing customers first
func (r *GormCustomerRepository) FindTopByTotalAmount(ctx context.Context, limit int) ([]customer.Customer, error) {
	q := r.db.WithContext(ctx).Order("total_amount DESC").Order("customer_code")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return r.find(q)
}

// FindWithOrdersAbove lists customers with more than minOrders orders
func (r *GormCustomerRepository) FindWithOrdersAbove(ctx context.Context, minOrders int) ([]customer.Customer, error) {
	return r.find(r.db.WithContext(ctx).Where("total_orders > ?", minOrders).Order("total_orders DESC"))
}

// CountByType counts customers of one type
func (r *GormCustomerRepository) CountByType(ctx context.Context, customerType customer.CustomerType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).Where("type = ?", string(customerType)).Count(&count).Error
	return count, err
}

// CountActive counts active customers
func (r *GormCustomerRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).Where("active = ?", true).Count(&count).Error
	return count, err
}

// ExistsByCode checks whether a customer code is taken
func (r *GormCustomerRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Where("customer_code = ?", strings.ToUpper(strings.TrimSpace(code))).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new customer
func (r *GormCustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	return translate(r.db.WithContext(ctx).Create(models.CustomerModelFromDomain(c)).Error, "")
}

// Save updates a customer under an optimistic version check
func (r *GormCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	model := models.CustomerModelFromDomain(c)
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Where("id = ? AND version = ?", c.ID, c.Version).
		Updates(map[string]any{
			"name":               model.Name,
			"contact_person":     model.ContactPerson,
			"phone":              model.Phone,
			"email":              model.Email,
			"address":            model.Address,
			"type":               model.Type,
			"business_type":      model.BusinessType,
			"payment_terms":      model.PaymentTerms,
			"credit_limit":       model.CreditLimit,
			"total_orders":       model.TotalOrders,
			"total_amount":       model.TotalAmount,
			"outstanding_amount": model.OutstandingAmount,
			"active":             model.Active,
			"version":            c.Version + 1,
			"updated_at":         now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeConcurrencyConflict,
			fmt.Sprintf("Customer %s was modified by another transaction", c.CustomerCode))
	}
	c.Version++
	c.UpdatedAt = now
	return nil
}

func (r *GormCustomerRepository) applyFilter(q *gorm.DB, filter shared.Filter) *gorm.DB {
	if v, ok := filterString(filter, "type"); ok {
		q = q.Where("type = ?", v)
	}
	if v, ok := filterString(filter, "business_type"); ok {
		q = q.Where("business_type = ?", v)
	}
	if v, ok := filterBool(filter, "active"); ok {
		q = q.Where("active = ?", v)
	}
	return search(q, filter.Search, "customer_code", "name", "contact_person", "phone")
}

func (r *GormCustomerRepository) find(q *gorm.DB) ([]customer.Customer, error) {
	var rows []models.CustomerModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	customers := make([]customer.Customer, len(rows))
	for i := range rows {
		customers[i] = *rows[i].ToDomain()
	}
	return customers, nil
}

var _ customer.CustomerRepository = (*GormCustomerRepository)(nil)
