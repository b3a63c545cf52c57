package catering

import (
	"context"
	"fmt"

	"github.com/catering/backend/internal/domain/catering"
	"github.com/catering/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskService manages tasks and their links to orders and employees
type TaskService struct {
	taskRepo       catering.TaskRepository
	txScope        TransactionScope
	clock          shared.Clock
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo catering.TaskRepository, txScope TransactionScope, logger *zap.Logger) *TaskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{
		taskRepo: taskRepo,
		txScope:  txScope,
		clock:    shared.SystemClock{},
		logger:   logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *TaskService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetClock overrides the time source
func (s *TaskService) SetClock(clock shared.Clock) {
	s.clock = clock
}

func (s *TaskService) publish(ctx context.Context, task *catering.Task) {
	events := task.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
	task.ClearDomainEvents()
}

// CreateTask creates a task, optionally assigned and attached to an order
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*TaskResponse, error) {
	task, err := catering.NewTask(input.Title, input.Description, input.Priority, input.DueDate)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if input.AssignedTo != nil {
			if _, err := repos.EmployeeRepo().FindByID(ctx, *input.AssignedTo); err != nil {
				return err
			}
			if err := task.Assign(*input.AssignedTo); err != nil {
				return err
			}
		}
		if input.OrderID != nil {
			order, err := repos.OrderRepo().FindByID(ctx, *input.OrderID)
			if err != nil {
				return err
			}
			if err := order.AttachTask(task); err != nil {
				return err
			}
		}
		return repos.TaskRepo().Create(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, task)
	return s.respond(task), nil
}

// GetTask loads a task
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(task), nil
}

// ListTasks lists tasks matching the filter (status, priority)
func (s *TaskService) ListTasks(ctx context.Context, filter shared.Filter) ([]TaskResponse, error) {
	tasks, err := s.taskRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToTaskResponses(tasks, s.clock.Now()), nil
}

// ChangeStatus moves a task to another status
func (s *TaskService) ChangeStatus(ctx context.Context, id uuid.UUID, status catering.TaskStatus) (*TaskResponse, error) {
	return s.mutate(ctx, id, func(_ TransactionalRepositories, task *catering.Task) error {
		return task.SetStatus(status, s.clock.Now())
	})
}

// AssignTask hands the task to an existing employee
func (s *TaskService) AssignTask(ctx context.Context, id, employeeID uuid.UUID) (*TaskResponse, error) {
	return s.mutate(ctx, id, func(repos TransactionalRepositories, task *catering.Task) error {
		if _, err := repos.EmployeeRepo().FindByID(ctx, employeeID); err != nil {
			return err
		}
		return task.Assign(employeeID)
	})
}

// UnassignTask clears the assignee
func (s *TaskService) UnassignTask(ctx context.Context, id uuid.UUID) (*TaskResponse, error) {
	return s.mutate(ctx, id, func(_ TransactionalRepositories, task *catering.Task) error {
		task.Unassign()
		return nil
	})
}

// AttachToOrder ties the task to an open order
func (s *TaskService) AttachToOrder(ctx context.Context, id, orderID uuid.UUID) (*TaskResponse, error) {
	return s.mutate(ctx, id, func(repos TransactionalRepositories, task *catering.Task) error {
		order, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		return order.AttachTask(task)
	})
}

// DetachFromOrder removes the task's order link
func (s *TaskService) DetachFromOrder(ctx context.Context, id uuid.UUID) (*TaskResponse, error) {
	var detached *catering.Task
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		task, err := repos.TaskRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if task.OrderID == nil {
			return shared.NewDomainError(shared.CodeInvalidState, "Task is not attached to an order")
		}
		order, err := repos.OrderRepo().FindByID(ctx, *task.OrderID)
		if err != nil {
			return err
		}
		detached, err = order.DetachTask(task.ID)
		if err != nil {
			return err
		}
		return repos.TaskRepo().Save(ctx, detached)
	})
	if err != nil {
		return nil, err
	}
	return s.respond(detached), nil
}

// Overdue lists open tasks past their due day
func (s *TaskService) Overdue(ctx context.Context) ([]TaskResponse, error) {
	now := s.clock.Now()
	tasks, err := s.taskRepo.FindOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	return ToTaskResponses(tasks, now), nil
}

// DueToday lists open tasks due today
func (s *TaskService) DueToday(ctx context.Context) ([]TaskResponse, error) {
	now := s.clock.Now()
	tasks, err := s.taskRepo.FindDueToday(ctx, now)
	if err != nil {
		return nil, err
	}
	return ToTaskResponses(tasks, now), nil
}

// DueWithin lists open tasks due in the next days days, today included
func (s *TaskService) DueWithin(ctx context.Context, days int) ([]TaskResponse, error) {
	if days < 0 {
		return nil, shared.NewValidationError("Days cannot be negative")
	}
	now := s.clock.Now()
	tasks, err := s.taskRepo.FindDueWithin(ctx, now, days)
	if err != nil {
		return nil, err
	}
	return ToTaskResponses(tasks, now), nil
}

// Unassigned lists open tasks nobody owns
func (s *TaskService) Unassigned(ctx context.Context) ([]TaskResponse, error) {
	tasks, err := s.taskRepo.FindUnassigned(ctx)
	if err != nil {
		return nil, err
	}
	return ToTaskResponses(tasks, s.clock.Now()), nil
}

// EmployeeTasks lists the tasks assigned to an employee
func (s *TaskService) EmployeeTasks(ctx context.Context, employeeID uuid.UUID) ([]TaskResponse, error) {
	tasks, err := s.taskRepo.FindByAssignee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return ToTaskResponses(tasks, s.clock.Now()), nil
}

// EmployeeTaskStats counts an employee's pending and completed tasks
func (s *TaskService) EmployeeTaskStats(ctx context.Context, employeeID uuid.UUID) (*EmployeeTaskStats, error) {
	pending, err := s.taskRepo.CountPendingByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("count pending tasks: %w", err)
	}
	completed, err := s.taskRepo.CountCompletedByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("count completed tasks: %w", err)
	}
	return &EmployeeTaskStats{EmployeeID: employeeID, Pending: pending, Completed: completed}, nil
}

func (s *TaskService) mutate(ctx context.Context, id uuid.UUID, fn func(repos TransactionalRepositories, task *catering.Task) error) (*TaskResponse, error) {
	var task *catering.Task
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		task, err = repos.TaskRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(repos, task); err != nil {
			return err
		}
		return repos.TaskRepo().Save(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, task)
	return s.respond(task), nil
}

func (s *TaskService) respond(task *catering.Task) *TaskResponse {
	resp := ToTaskResponse(task, s.clock.Now())
	return &resp
}
