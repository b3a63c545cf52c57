package handler

import (
	cateringapp "github.com/catering/backend/internal/application/catering"
	staffapp "github.com/catering/backend/internal/application/staff"
	"github.com/catering/backend/internal/domain/staff"
	"github.com/catering/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// EmployeeHandler serves the staff endpoints, including day availability
// and per-employee task views
type EmployeeHandler struct {
	BaseHandler
	employeeService     *staffapp.EmployeeService
	availabilityService *cateringapp.AvailabilityService
	taskService         *cateringapp.TaskService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(
	employeeService *staffapp.EmployeeService,
	availabilityService *cateringapp.AvailabilityService,
	taskService *cateringapp.TaskService,
) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService:     employeeService,
		availabilityService: availabilityService,
		taskService:         taskService,
	}
}

// RegisterRoutes mounts the employee routes under /employees
func (h *EmployeeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	employees := rg.Group("/employees")
	employees.POST("", h.Create)
	employees.GET("", h.List)
	employees.GET("/available", h.Available)
	employees.GET("/code/:code", h.GetByCode)
	employees.GET("/:id", h.GetByID)
	employees.PATCH("/:id", h.Update)
	employees.POST("/:id/activate", h.Activate)
	employees.POST("/:id/deactivate", h.Deactivate)
	employees.GET("/:id/tasks", h.Tasks)
	employees.GET("/:id/task-stats", h.TaskStats)
}

// CreateEmployeeRequest is the body of POST /employees
type CreateEmployeeRequest struct {
	EmployeeCode   string          `json:"employee_code" binding:"required,max=20"`
	Name           string          `json:"name" binding:"required,max=100"`
	Type           string          `json:"type" binding:"required,oneof=COOK BAI WAITER DRIVER DISPLAY_TABLE_BOY SERVICE_BOY"`
	Phone          string          `json:"phone" binding:"max=20"`
	Email          string          `json:"email" binding:"omitempty,email,max=100"`
	Address        string          `json:"address" binding:"max=500"`
	HireDate       string          `json:"hire_date" binding:"omitempty,datetime=2006-01-02"`
	SalaryPerOrder decimal.Decimal `json:"salary_per_order" binding:"gte=0"`
	BaseSalary     decimal.Decimal `json:"base_salary" binding:"gte=0"`
}

// UpdateEmployeeRequest is the body of PATCH /employees/:id
type UpdateEmployeeRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Phone          *string          `json:"phone" binding:"omitempty,max=20"`
	Email          *string          `json:"email" binding:"omitempty,max=100"`
	Address        *string          `json:"address" binding:"omitempty,max=500"`
	HireDate       *string          `json:"hire_date" binding:"omitempty,datetime=2006-01-02"`
	SalaryPerOrder *decimal.Decimal `json:"salary_per_order" binding:"omitempty,gte=0"`
	BaseSalary     *decimal.Decimal `json:"base_salary" binding:"omitempty,gte=0"`
}

// EmployeeListQuery holds the list filters for GET /employees
type EmployeeListQuery struct {
	dto.ListRequest
	Type   string `form:"type" binding:"omitempty,oneof=COOK BAI WAITER DRIVER DISPLAY_TABLE_BOY SERVICE_BOY"`
	Active string `form:"active" binding:"omitempty,oneof=true false"`
}

// AvailabilityQuery holds the parameters of GET /employees/available
type AvailabilityQuery struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
	Type string `form:"type" binding:"omitempty,oneof=COOK BAI WAITER DRIVER DISPLAY_TABLE_BOY SERVICE_BOY"`
}

// Create hires an employee
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	hireDate, err := optionalDate(req.HireDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	employee, err := h.employeeService.Create(c.Request.Context(), staffapp.CreateEmployeeInput{
		EmployeeCode:   req.EmployeeCode,
		Name:           req.Name,
		Type:           staff.EmployeeType(req.Type),
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		HireDate:       hireDate,
		SalaryPerOrder: req.SalaryPerOrder,
		BaseSalary:     req.BaseSalary,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, employee)
}

// List returns employees matching the filters
func (h *EmployeeHandler) List(c *gin.Context) {
	var q EmployeeListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	filter := q.ToFilter()
	if q.Type != "" {
		filter.Filters["type"] = q.Type
	}
	if q.Active != "" {
		filter.Filters["active"] = q.Active
	}

	employees, err := h.employeeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employees)
}

// Available lists active employees not booked on any order that day
func (h *EmployeeHandler) Available(c *gin.Context) {
	var q AvailabilityQuery
	if !h.bindQuery(c, &q) {
		return
	}
	date, err := dto.ParseDate(q.Date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var employeeType *staff.EmployeeType
	if q.Type != "" {
		t := staff.EmployeeType(q.Type)
		employeeType = &t
	}

	employees, err := h.availabilityService.FindAvailableEmployees(c.Request.Context(), date, employeeType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employees)
}

// GetByID returns one employee
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	h.respond(c)(h.employeeService.Get(c.Request.Context(), id))
}

// GetByCode looks an employee up by employee code
func (h *EmployeeHandler) GetByCode(c *gin.Context) {
	h.respond(c)(h.employeeService.GetByCode(c.Request.Context(), c.Param("code")))
}

// Update edits the employee's details
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req UpdateEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	input := staffapp.UpdateEmployeeInput{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		SalaryPerOrder: req.SalaryPerOrder,
		BaseSalary:     req.BaseSalary,
	}
	if req.HireDate != nil {
		d, err := dto.ParseDate(*req.HireDate)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		input.HireDate = &d
	}
	h.respond(c)(h.employeeService.Update(c.Request.Context(), id, input))
}

// Activate returns the employee to the active roster
func (h *EmployeeHandler) Activate(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	h.respond(c)(h.employeeService.Activate(c.Request.Context(), id))
}

// Deactivate removes the employee from the active roster
func (h *EmployeeHandler) Deactivate(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	h.respond(c)(h.employeeService.Deactivate(c.Request.Context(), id))
}

// Tasks lists the tasks assigned to the employee
func (h *EmployeeHandler) Tasks(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	tasks, err := h.taskService.EmployeeTasks(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tasks)
}

// TaskStats counts the employee's pending and completed tasks
func (h *EmployeeHandler) TaskStats(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	stats, err := h.taskService.EmployeeTaskStats(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

func (h *EmployeeHandler) respond(c *gin.Context) func(*staffapp.EmployeeResponse, error) {
	return func(employee *staffapp.EmployeeResponse, err error) {
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, employee)
	}
}
