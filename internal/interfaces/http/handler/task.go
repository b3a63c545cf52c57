package handler

import (
	"strconv"

	cateringapp "github.com/catering/backend/internal/application/catering"
	"github.com/catering/backend/internal/domain/catering"
	"github.com/catering/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler serves the task endpoints
type TaskHandler struct {
	BaseHandler
	taskService *cateringapp.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *cateringapp.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// RegisterRoutes mounts the task routes under /tasks
func (h *TaskHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tasks := rg.Group("/tasks")
	tasks.POST("", h.Create)
	tasks.GET("", h.List)
	tasks.GET("/overdue", h.Overdue)
	tasks.GET("/due-today", h.DueToday)
	tasks.GET("/due-within/:days", h.DueWithin)
	tasks.GET("/unassigned", h.Unassigned)
	tasks.GET("/:id", h.GetByID)
	tasks.PUT("/:id/status", h.ChangeStatus)
	tasks.PUT("/:id/assignee", h.Assign)
	tasks.DELETE("/:id/assignee", h.Unassign)
	tasks.PUT("/:id/order", h.AttachToOrder)
	tasks.DELETE("/:id/order", h.DetachFromOrder)
}

// CreateTaskRequest is the body of POST /tasks
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     string  `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	AssignedTo  *string `json:"assigned_to" binding:"omitempty,uuid"`
	OrderID     *string `json:"order_id" binding:"omitempty,uuid"`
}

// TaskStatusRequest moves a task to another status
type TaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=TODO IN_PROGRESS DONE DELETED"`
}

// TaskAssigneeRequest names the employee taking the task
type TaskAssigneeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

// TaskOrderRequest names the order the task belongs to
type TaskOrderRequest struct {
	OrderID string `json:"order_id" binding:"required,uuid"`
}

// TaskListQuery holds the list filters for GET /tasks. DELETED tasks are
// only listed when asked for by status.
type TaskListQuery struct {
	dto.ListRequest
	Status     string `form:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE DELETED"`
	Priority   string `form:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	AssignedTo string `form:"assigned_to" binding:"omitempty,uuid"`
	OrderID    string `form:"order_id" binding:"omitempty,uuid"`
}

// Create adds a task
func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if !h.bindJSON(c, &req) {
		return
	}
	dueDate, err := optionalDate(req.DueDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	priority := catering.TaskPriorityMedium
	if req.Priority != "" {
		priority = catering.TaskPriority(req.Priority)
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), cateringapp.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     dueDate,
		AssignedTo:  optionalTaskUUID(req.AssignedTo),
		OrderID:     optionalTaskUUID(req.OrderID),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, task)
}

// List returns tasks matching the filters
func (h *TaskHandler) List(c *gin.Context) {
	var q TaskListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	filter := q.ToFilter()
	if q.Status != "" {
		filter.Filters["status"] = q.Status
	}
	if q.Priority != "" {
		filter.Filters["priority"] = q.Priority
	}
	if id := optionalTaskUUID(&q.AssignedTo); id != nil {
		filter.Filters["assigned_to"] = *id
	}
	if id := optionalTaskUUID(&q.OrderID); id != nil {
		filter.Filters["order_id"] = *id
	}
	h.respondList(c)(h.taskService.ListTasks(c.Request.Context(), filter))
}

// Overdue lists open tasks past their due day
func (h *TaskHandler) Overdue(c *gin.Context) {
	h.respondList(c)(h.taskService.Overdue(c.Request.Context()))
}

// DueToday lists open tasks due today
func (h *TaskHandler) DueToday(c *gin.Context) {
	h.respondList(c)(h.taskService.DueToday(c.Request.Context()))
}

// DueWithin lists open tasks due in the next N days
func (h *TaskHandler) DueWithin(c *gin.Context) {
	days, err := strconv.Atoi(c.Param("days"))
	if err != nil {
		h.BadRequest(c, "days must be a whole number")
		return
	}
	h.respondList(c)(h.taskService.DueWithin(c.Request.Context(), days))
}

// Unassigned lists open tasks nobody owns
func (h *TaskHandler) Unassigned(c *gin.Context) {
	h.respondList(c)(h.taskService.Unassigned(c.Request.Context()))
}

// GetByID returns one task
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	h.respond(c)(h.taskService.GetTask(c.Request.Context(), id))
}

// ChangeStatus moves the task through its workflow
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req TaskStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.taskService.ChangeStatus(c.Request.Context(), id, catering.TaskStatus(req.Status)))
}

// Assign hands the task to an employee
func (h *TaskHandler) Assign(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req TaskAssigneeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.taskService.AssignTask(c.Request.Context(), id, uuid.MustParse(req.EmployeeID)))
}

// Unassign clears the assignee
func (h *TaskHandler) Unassign(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	h.respond(c)(h.taskService.UnassignTask(c.Request.Context(), id))
}

// AttachToOrder ties the task to an order
func (h *TaskHandler) AttachToOrder(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req TaskOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.taskService.AttachToOrder(c.Request.Context(), id, uuid.MustParse(req.OrderID)))
}

// DetachFromOrder removes the task's order link
func (h *TaskHandler) DetachFromOrder(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	h.respond(c)(h.taskService.DetachFromOrder(c.Request.Context(), id))
}

func (h *TaskHandler) respond(c *gin.Context) func(*cateringapp.TaskResponse, error) {
	return func(task *cateringapp.TaskResponse, err error) {
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, task)
	}
}

func (h *TaskHandler) respondList(c *gin.Context) func([]cateringapp.TaskResponse, error) {
	return func(tasks []cateringapp.TaskResponse, err error) {
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, tasks)
	}
}

// optionalTaskUUID parses an already validated id; empty means none
func optionalTaskUUID(s *string) *uuid.UUID {
	if s == nil || *s == "" {
		return nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil
	}
	return &id
}
