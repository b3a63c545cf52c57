package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/catering/backend/internal/domain/catering"
	"github.com/catering/backend/internal/domain/shared"
	"github.com/catering/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var openTaskStatuses = []string{string(catering.TaskStatusTodo), string(catering.TaskStatusInProgress)}

// GormTaskRepository implements TaskRepository using GORM
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GormTaskRepository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// FindByID finds a task by its ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*catering.Task, error) {
	var model models.TaskModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("Task %s not found", id))
	}
	return model.ToDomain(), nil
}

// FindAll lists tasks matching the filter. Deleted tasks are hidden
// unless the filter asks for them by status.
func (r *GormTaskRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catering.Task, error) {
	q := r.db.WithContext(ctx).Model(&models.TaskModel{})
	if v, ok := filterString(filter, "status"); ok {
		q = q.Where("status = ?", v)
	} else {
		q = q.Where("status <> ?", string(catering.TaskStatusDeleted))
	}
	if v, ok := filterString(filter, "priority"); ok {
		q = q.Where("priority = ?", v)
	}
	if v, ok := filter.Filters["assigned_to"].(uuid.UUID); ok {
		q = q.Where("assigned_to = ?", v)
	}
	if v, ok := filter.Filters["order_id"].(uuid.UUID); ok {
		q = q.Where("order_id = ?", v)
	}
	q = search(q, filter.Search, "title", "description")
	return r.find(pageAndSort(q, filter, TaskSortFields, "created_at"))
}

// FindByOrder lists tasks attached to an order
func (r *GormTaskRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]catering.Task, error) {
	return r.find(r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at"))
}

// FindByAssignee lists tasks assigned to an employee
func (r *GormTaskRepository) FindByAssignee(ctx context.Context, employeeID uuid.UUID) ([]catering.Task, error) {
	return r.find(r.db.WithContext(ctx).
		Where("assigned_to = ? AND status <> ?", employeeID, string(catering.TaskStatusDeleted)).
		Order("due_date"))
}

// FindOverdue lists open tasks due before the day of now
func (r *GormTaskRepository) FindOverdue(ctx context.Context, now time.Time) ([]catering.Task, error) {
	today, _ := dayRange(now, 0)
	return r.find(r.open(ctx).Where("due_date < ?", today).Order("due_date"))
}

// FindDueToday lists open tasks due on the day of now
func (r *GormTaskRepository) FindDueToday(ctx context.Context, now time.Time) ([]catering.Task, error) {
	return r.FindDueWithin(ctx, now, 0)
}

// FindDueWithin lists open tasks due from the day of now through now+days
func (r *GormTaskRepository) FindDueWithin(ctx context.Context, now time.Time, days int) ([]catering.Task, error) {
	from, to := dayRange(now, days+1)
	return r.find(r.open(ctx).Where("due_date >= ? AND due_date < ?", from, to).Order("due_date"))
}

// FindUnassigned lists open tasks with no assignee
func (r *GormTaskRepository) FindUnassigned(ctx context.Context) ([]catering.Task, error) {
	return r.find(r.open(ctx).Where("assigned_to IS NULL").Order("created_at"))
}

// FindPending lists open tasks
func (r *GormTaskRepository) FindPending(ctx context.Context) ([]catering.Task, error) {
	return r.find(r.open(ctx).Order("created_at"))
}

// CountPendingByEmployee counts the employee's open tasks
func (r *GormTaskRepository) CountPendingByEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error) {
	var count int64
	err := r.open(ctx).Model(&models.TaskModel{}).Where("assigned_to = ?", employeeID).Count(&count).Error
	return count, err
}

// CountCompletedByEmployee counts the employee's DONE tasks
func (r *GormTaskRepository) CountCompletedByEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TaskModel{}).
		Where("assigned_to = ? AND status = ?", employeeID, string(catering.TaskStatusDone)).
		Count(&count).Error
	return count, err
}

// Create inserts a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *catering.Task) error {
	return translate(r.db.WithContext(ctx).Create(models.TaskModelFromDomain(task)).Error, "")
}

// Save updates the task under an optimistic version check
func (r *GormTaskRepository) Save(ctx context.Context, task *catering.Task) error {
	model := models.TaskModelFromDomain(task)
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&models.TaskModel{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]any{
			"title":        model.Title,
			"description":  model.Description,
			"status":       model.Status,
			"priority":     model.Priority,
			"assigned_to":  model.AssignedTo,
			"order_id":     model.OrderID,
			"due_date":     model.DueDate,
			"completed_at": model.CompletedAt,
			"version":      task.Version + 1,
			"updated_at":   now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeConcurrencyConflict,
			fmt.Sprintf("Task %s was modified by another transaction", task.ID))
	}
	task.Version++
	task.UpdatedAt = now
	return nil
}

func (r *GormTaskRepository) open(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("status IN ?", openTaskStatuses)
}

func (r *GormTaskRepository) find(q *gorm.DB) ([]catering.Task, error) {
	var rows []models.TaskModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	tasks := make([]catering.Task, len(rows))
	for i := range rows {
		tasks[i] = *rows[i].ToDomain()
	}
	return tasks, nil
}

var _ catering.TaskRepository = (*GormTaskRepository)(nil)
