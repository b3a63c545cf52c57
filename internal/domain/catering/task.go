package catering

import (
	"fmt"
	"strings"
	"time"

	"github.com/catering/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxTaskTitleLength bounds Task.Title
const MaxTaskTitleLength = 200

// TaskStatus represents the state of a task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusDeleted    TaskStatus = "DELETED"
)

// IsValid checks if the status is a valid TaskStatus
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusDeleted:
		return true
	}
	return false
}

// String returns the string representation of TaskStatus
func (s TaskStatus) String() string {
	return string(s)
}

// CanTransitionTo allows any move between live states; DELETED is reachable
// from everywhere and is final.
func (s TaskStatus) CanTransitionTo(target TaskStatus) bool {
	if !target.IsValid() || s == TaskStatusDeleted {
		return false
	}
	return true
}

// IsOpen reports TODO or IN_PROGRESS
func (s TaskStatus) IsOpen() bool {
	return s == TaskStatusTodo || s == TaskStatusInProgress
}

// TaskPriority ranks tasks
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// IsValid checks if the priority is a valid TaskPriority
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task is a to-do item, optionally tied to an order and an employee.
// CompletedAt is set exactly while the task is DONE.
type Task struct {
	shared.BaseAggregateRoot
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	AssignedTo  *uuid.UUID
	OrderID     *uuid.UUID
	DueDate     *time.Time
	CompletedAt *time.Time
}

// NewTask creates a TODO task. A nil due date means no deadline.
func NewTask(title, description string, priority TaskPriority, dueDate *time.Time) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewValidationError("Task title cannot be empty")
	}
	if len(title) > MaxTaskTitleLength {
		return nil, shared.NewValidationError(fmt.Sprintf("Task title cannot exceed %d characters", MaxTaskTitleLength))
	}
	if priority == "" {
		priority = TaskPriorityMedium
	}
	if !priority.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("Unknown task priority %q", priority))
	}

	task := &Task{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Description:       description,
		Status:            TaskStatusTodo,
		Priority:          priority,
	}
	if dueDate != nil {
		d := shared.StartOfDay(*dueDate)
		task.DueDate = &d
	}
	return task, nil
}

// SetStatus moves the task; entering DONE stamps CompletedAt (once),
// any other status clears it.
func (t *Task) SetStatus(status TaskStatus, now time.Time) error {
	if !status.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Unknown task status %q", status))
	}
	if status == t.Status {
		return nil
	}
	if !t.Status.CanTransitionTo(status) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot move task from %s to %s", t.Status, status))
	}

	previous := t.Status
	t.Status = status
	if status == TaskStatusDone {
		if t.CompletedAt == nil {
			t.CompletedAt = &now
		}
	} else {
		t.CompletedAt = nil
	}
	t.Touch()

	t.AddDomainEvent(NewTaskStatusChangedEvent(t, previous))
	return nil
}

// MarkCompleted moves the task to DONE
func (t *Task) MarkCompleted(now time.Time) error {
	return t.SetStatus(TaskStatusDone, now)
}

// MarkDeleted soft-deletes the task
func (t *Task) MarkDeleted(now time.Time) error {
	return t.SetStatus(TaskStatusDeleted, now)
}

// Assign hands the task to an employee
func (t *Task) Assign(employeeID uuid.UUID) error {
	if t.Status == TaskStatusDeleted {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot assign a deleted task")
	}
	if employeeID == uuid.Nil {
		return shared.NewValidationError("Employee ID cannot be empty")
	}
	t.AssignedTo = &employeeID
	t.Touch()
	return nil
}

// Unassign clears the assignee
func (t *Task) Unassign() {
	t.AssignedTo = nil
	t.Touch()
}

// SetDueDate changes the deadline; nil removes it
func (t *Task) SetDueDate(due *time.Time) {
	if due == nil {
		t.DueDate = nil
	} else {
		d := shared.StartOfDay(*due)
		t.DueDate = &d
	}
	t.Touch()
}

// IsOverdue reports an open task whose due day is before today
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || !t.Status.IsOpen() {
		return false
	}
	return shared.StartOfDay(now).After(*t.DueDate)
}

// IsDueToday reports an open task due on now's calendar day
func (t *Task) IsDueToday(now time.Time) bool {
	if t.DueDate == nil || !t.Status.IsOpen() {
		return false
	}
	return shared.SameDay(*t.DueDate, now)
}

// IsPending reports TODO or IN_PROGRESS; DELETED and DONE never count
func (t *Task) IsPending() bool {
	return t.Status.IsOpen()
}

// AttachTask ties a task to this order
func (o *Order) AttachTask(task *Task) error {
	if err := o.ensureOpen("attach tasks"); err != nil {
		return err
	}
	if task.Status == TaskStatusDeleted {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot attach a deleted task")
	}
	if task.OrderID != nil && *task.OrderID != o.ID {
		return shared.NewDomainError(shared.CodeInvalidState, "Task already belongs to another order")
	}
	orderID := o.ID
	task.OrderID = &orderID
	task.Touch()

	for idx := range o.Tasks {
		if o.Tasks[idx].ID == task.ID {
			o.Tasks[idx] = *task
			return nil
		}
	}
	o.Tasks = append(o.Tasks, *task)
	o.Touch()
	return nil
}

// DetachTask unlinks a task from this order and clears its order reference
func (o *Order) DetachTask(taskID uuid.UUID) (*Task, error) {
	for idx := range o.Tasks {
		if o.Tasks[idx].ID != taskID {
			continue
		}
		detached := o.Tasks[idx]
		o.Tasks = append(o.Tasks[:idx], o.Tasks[idx+1:]...)
		detached.OrderID = nil
		detached.Touch()
		o.Touch()
		return &detached, nil
	}
	return nil, shared.NewNotFoundError(fmt.Sprintf("Task %s not found on order %s", taskID, o.OrderNumber))
}

// PendingTasks returns the order's open tasks
func (o *Order) PendingTasks() []Task {
	var pending []Task
	for _, t := range o.Tasks {
		if t.IsPending() {
			pending = append(pending, t)
		}
	}
	return pending
}
