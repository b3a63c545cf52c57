package catering

import (
	"time"

	"github.com/catering/backend/internal/domain/catering"
	"github.com/catering/backend/internal/domain/shared/valueobject"
	"github.com/catering/backend/internal/domain/staff"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderInput carries the fields needed to book an order
type CreateOrderInput struct {
	OrderNumber         string
	OrderType           catering.OrderType
	CustomerID          *uuid.UUID
	EventName           string
	EventDate           time.Time
	EventTime           string
	VenueAddress        string
	GuestCount          int
	MenuDetails         string
	SpecialRequirements string
	Notes               string
	TotalAmount         decimal.Decimal
	AdvanceAmount       decimal.Decimal
}

// UpdateOrderInput carries editable order details; nil fields are left alone.
// A CustomerID of uuid.Nil unlinks the customer.
type UpdateOrderInput struct {
	CustomerID          *uuid.UUID
	EventName           *string
	EventDate           *time.Time
	EventTime           *string
	VenueAddress        *string
	GuestCount          *int
	MenuDetails         *string
	SpecialRequirements *string
	Notes               *string
}

// AssignEmployeeInput books an employee onto an order. A nil PaymentAmount
// falls back to the employee's salary per order.
type AssignEmployeeInput struct {
	EmployeeID    uuid.UUID
	Role          string
	PaymentAmount *decimal.Decimal
}

// RecordUsageInput draws stock for an order. A nil UnitCost snapshots the
// item's current unit cost.
type RecordUsageInput struct {
	InventoryItemID uuid.UUID
	Quantity        int
	UnitCost        *decimal.Decimal
}

// CreateTaskInput carries the fields needed to create a task
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    catering.TaskPriority
	DueDate     *time.Time
	AssignedTo  *uuid.UUID
	OrderID     *uuid.UUID
}

// AssignmentResponse is the read model of an EmployeeAssignment
type AssignmentResponse struct {
	ID            uuid.UUID       `json:"id"`
	EmployeeID    uuid.UUID       `json:"employee_id"`
	Role          string          `json:"role"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	PaymentStatus string          `json:"payment_status"`
	AssignedAt    time.Time       `json:"assigned_at"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
}

// UsageResponse is the read model of an InventoryUsage
type UsageResponse struct {
	ID              uuid.UUID       `json:"id"`
	InventoryItemID uuid.UUID       `json:"inventory_item_id"`
	QuantityUsed    int             `json:"quantity_used"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	UsedAt          time.Time       `json:"used_at"`
}

// TaskResponse is the read model of a Task
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	OrderID     *uuid.UUID `json:"order_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Overdue     bool       `json:"overdue"`
	DueToday    bool       `json:"due_today"`
	Version     int        `json:"version"`
}

// OrderResponse is the full read model of an Order
type OrderResponse struct {
	ID                  uuid.UUID            `json:"id"`
	OrderNumber         string               `json:"order_number"`
	OrderType           string               `json:"order_type"`
	CustomerID          *uuid.UUID           `json:"customer_id,omitempty"`
	EventName           string               `json:"event_name"`
	EventDate           string               `json:"event_date"`
	EventTime           string               `json:"event_time,omitempty"`
	VenueAddress        string               `json:"venue_address,omitempty"`
	GuestCount          int                  `json:"guest_count"`
	MenuDetails         string               `json:"menu_details,omitempty"`
	SpecialRequirements string               `json:"special_requirements,omitempty"`
	Notes               string               `json:"notes,omitempty"`
	Status              string               `json:"status"`
	TotalAmount         decimal.Decimal      `json:"total_amount"`
	AdvanceAmount       decimal.Decimal      `json:"advance_amount"`
	RemainingAmount     decimal.Decimal      `json:"remaining_amount"`
	Currency            valueobject.Currency `json:"currency"`
	Balance             string               `json:"balance"`
	PaymentStatus       string               `json:"payment_status"`
	LabourCost          decimal.Decimal      `json:"labour_cost"`
	InventoryCost       decimal.Decimal      `json:"inventory_cost"`
	CancelReason        string               `json:"cancel_reason,omitempty"`
	Assignments         []AssignmentResponse `json:"assignments"`
	InventoryUsages     []UsageResponse      `json:"inventory_usages"`
	Tasks               []TaskResponse       `json:"tasks"`
	Version             int                  `json:"version"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// AvailableEmployeeResponse lists an employee free on a given day
type AvailableEmployeeResponse struct {
	ID             uuid.UUID       `json:"id"`
	EmployeeCode   string          `json:"employee_code"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	TypeName       string          `json:"type_name"`
	Phone          string          `json:"phone,omitempty"`
	SalaryPerOrder decimal.Decimal `json:"salary_per_order"`
}

// EmployeeTaskStats counts an employee's tasks
type EmployeeTaskStats struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	Pending    int64     `json:"pending"`
	Completed  int64     `json:"completed"`
}

// ToOrderResponse maps the aggregate to its read model
func ToOrderResponse(o *catering.Order, now time.Time, currency valueobject.Currency) OrderResponse {
	resp := OrderResponse{
		ID:                  o.ID,
		OrderNumber:         o.OrderNumber,
		OrderType:           string(o.OrderType),
		CustomerID:          o.CustomerID,
		EventName:           o.EventName,
		EventDate:           o.EventDate.Format(time.DateOnly),
		EventTime:           o.EventTime,
		VenueAddress:        o.VenueAddress,
		GuestCount:          o.GuestCount,
		MenuDetails:         o.MenuDetails,
		SpecialRequirements: o.SpecialRequirements,
		Notes:               o.Notes,
		Status:              string(o.Status),
		TotalAmount:         o.TotalAmount,
		AdvanceAmount:       o.AdvanceAmount,
		RemainingAmount:     o.RemainingAmount,
		Currency:            currency,
		Balance:             o.Remaining(currency).String(),
		PaymentStatus:       string(o.PaymentStatus),
		LabourCost:          o.LabourCost(),
		InventoryCost:       o.InventoryCost(),
		CancelReason:        o.CancelReason,
		Assignments:         make([]AssignmentResponse, 0, len(o.Assignments)),
		InventoryUsages:     make([]UsageResponse, 0, len(o.InventoryUsages)),
		Tasks:               make([]TaskResponse, 0, len(o.Tasks)),
		Version:             o.Version,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
	for _, a := range o.Assignments {
		resp.Assignments = append(resp.Assignments, AssignmentResponse{
			ID:            a.ID,
			EmployeeID:    a.EmployeeID,
			Role:          a.Role,
			PaymentAmount: a.PaymentAmount,
			PaymentStatus: string(a.PaymentStatus),
			AssignedAt:    a.AssignedAt,
			PaidAt:        a.PaidAt,
		})
	}
	for _, u := range o.InventoryUsages {
		resp.InventoryUsages = append(resp.InventoryUsages, UsageResponse{
			ID:              u.ID,
			InventoryItemID: u.InventoryItemID,
			QuantityUsed:    u.QuantityUsed,
			UnitCost:        u.UnitCost,
			TotalCost:       u.TotalCost,
			UsedAt:          u.UsedAt,
		})
	}
	for i := range o.Tasks {
		resp.Tasks = append(resp.Tasks, ToTaskResponse(&o.Tasks[i], now))
	}
	return resp
}

// ToTaskResponse maps a task to its read model
func ToTaskResponse(t *catering.Task, now time.Time) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		AssignedTo:  t.AssignedTo,
		OrderID:     t.OrderID,
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		Overdue:     t.IsOverdue(now),
		DueToday:    t.IsDueToday(now),
		Version:     t.Version,
	}
}

// ToTaskResponses maps a slice of tasks
func ToTaskResponses(tasks []catering.Task, now time.Time) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, ToTaskResponse(&tasks[i], now))
	}
	return out
}

// ToAvailableEmployeeResponse maps an employee for availability listings
func ToAvailableEmployeeResponse(e *staff.Employee) AvailableEmployeeResponse {
	return AvailableEmployeeResponse{
		ID:             e.ID,
		EmployeeCode:   e.EmployeeCode,
		Name:           e.Name,
		Type:           string(e.Type),
		TypeName:       e.Type.DisplayName(),
		Phone:          e.Phone,
		SalaryPerOrder: e.SalaryPerOrder,
	}
}
