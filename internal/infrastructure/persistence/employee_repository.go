package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/catering/backend/internal/domain/shared"
	"github.com/catering/backend/internal/domain/staff"
	"github.com/catering/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*staff.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("Employee %s not found", id))
	}
	return model.ToDomain(), nil
}

// FindByCode finds an employee by unique code
func (r *GormEmployeeRepository) FindByCode(ctx context.Context, code string) (*staff.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).First(&model, "employee_code = ?", code).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("Employee %s not found", code))
	}
	return model.ToDomain(), nil
}

// FindByIDs loads several employees at once; unknown IDs are skipped
func (r *GormEmployeeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]staff.Employee, error) {
	if len(ids) == 0 {
		return []staff.Employee{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("id IN ?", ids).Order("employee_code"))
}

// FindAll lists employees matching the filter (type, active, search)
func (r *GormEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]staff.Employee, error) {
	q := r.db.WithContext(ctx).Model(&models.EmployeeModel{})
	if v, ok := filterString(filter, "type"); ok {
		q = q.Where("type = ?", v)
	}
	if v, ok := filterBool(filter, "active"); ok {
		q = q.Where("active = ?", v)
	}
	q = search(q, filter.Search, "employee_code", "name", "phone")
	return r.find(pageAndSort(q, filter, EmployeeSortFields, "created_at"))
}

// FindActive lists active employees, optionally of one type
func (r *GormEmployeeRepository) FindActive(ctx context.Context, employeeType *staff.EmployeeType) ([]staff.Employee, error) {
	q := r.db.WithContext(ctx).Where("active = ?", true)
	if employeeType != nil {
		q = q.Where("type = ?", string(*employeeType))
	}
	return r.find(q.Order("employee_code"))
}

// ExistsByCode checks whether an employee code is taken
func (r *GormEmployeeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.EmployeeModel{}).
		Where("employee_code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountActive counts active employees
func (r *GormEmployeeRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EmployeeModel{}).Where("active = ?", true).Count(&count).Error
	return count, err
}

// Create inserts a new employee
func (r *GormEmployeeRepository) Create(ctx context.Context, employee *staff.Employee) error {
	return translate(r.db.WithContext(ctx).Create(models.EmployeeModelFromDomain(employee)).Error, "")
}

// Save updates an employee under an optimistic version check
func (r *GormEmployeeRepository) Save(ctx context.Context, employee *staff.Employee) error {
	model := models.EmployeeModelFromDomain(employee)
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&models.EmployeeModel{}).
		Where("id = ? AND version = ?", employee.ID, employee.Version).
		Updates(map[string]any{
			"name":                model.Name,
			"phone":               model.Phone,
			"email":               model.Email,
			"address":             model.Address,
			"type":                model.Type,
			"hire_date":           model.HireDate,
			"salary_per_order":    model.SalaryPerOrder,
			"base_salary":         model.BaseSalary,
			"total_orders_served": model.TotalOrdersServed,
			"total_earnings":      model.TotalEarnings,
			"active":              model.Active,
			"version":             employee.Version + 1,
			"updated_at":          now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeConcurrencyConflict,
			fmt.Sprintf("Employee %s was modified by another transaction", employee.EmployeeCode))
	}
	employee.Version++
	employee.UpdatedAt = now
	return nil
}

func (r *GormEmployeeRepository) find(q *gorm.DB) ([]staff.Employee, error) {
	var rows []models.EmployeeModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	employees := make([]staff.Employee, len(rows))
	for i := range rows {
		employees[i] = *rows[i].ToDomain()
	}
	return employees, nil
}

var _ staff.EmployeeRepository = (*GormEmployeeRepository)(nil)
