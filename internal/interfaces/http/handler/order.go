package handler

import (
	cateringapp "github.com/catering/backend/internal/application/catering"
	"github.com/catering/backend/internal/domain/catering"
	"github.com/catering/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderHandler serves the order endpoints: booking, money, lifecycle,
// staff assignments and inventory usage
type OrderHandler struct {
	BaseHandler
	orderService *cateringapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *cateringapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes mounts the order routes under /orders
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.POST("", h.Create)
	orders.GET("", h.List)
	orders.GET("/outstanding", h.ListOutstanding)
	orders.GET("/number/:number", h.GetByNumber)
	orders.GET("/:id", h.GetByID)
	orders.PATCH("/:id", h.Update)
	orders.PUT("/:id/total", h.SetTotal)
	orders.PUT("/:id/advance", h.SetAdvance)
	orders.POST("/:id/payments", h.RecordPayment)
	orders.POST("/:id/start", h.Start)
	orders.POST("/:id/complete", h.Complete)
	orders.POST("/:id/cancel", h.Cancel)
	orders.POST("/:id/assignments", h.AssignEmployee)
	orders.DELETE("/:id/assignments/:assignment_id", h.RemoveAssignment)
	orders.POST("/:id/assignments/:assignment_id/finalize", h.FinalizeAssignment)
	orders.POST("/:id/usages", h.RecordUsage)
	orders.PATCH("/:id/usages/:usage_id", h.AdjustUsage)
	orders.DELETE("/:id/usages/:usage_id", h.RemoveUsage)
}

// CreateOrderRequest is the body of POST /orders
type CreateOrderRequest struct {
	OrderNumber         string          `json:"order_number" binding:"required,max=30"`
	OrderType           string          `json:"order_type" binding:"required,oneof=FULL_CATERING HALF_CATERING"`
	CustomerID          string          `json:"customer_id" binding:"omitempty,uuid"`
	EventName           string          `json:"event_name" binding:"max=200"`
	EventDate           string          `json:"event_date" binding:"required,datetime=2006-01-02"`
	EventTime           string          `json:"event_time" binding:"omitempty,datetime=15:04"`
	VenueAddress        string          `json:"venue_address" binding:"max=500"`
	GuestCount          int             `json:"guest_count" binding:"gte=0"`
	MenuDetails         string          `json:"menu_details"`
	SpecialRequirements string          `json:"special_requirements"`
	Notes               string          `json:"notes"`
	TotalAmount         decimal.Decimal `json:"total_amount" binding:"gte=0"`
	AdvanceAmount       decimal.Decimal `json:"advance_amount" binding:"gte=0"`
}

// UpdateOrderRequest is the body of PATCH /orders/:id; absent fields are kept
type UpdateOrderRequest struct {
	CustomerID          *string `json:"customer_id"`
	EventName           *string `json:"event_name" binding:"omitempty,max=200"`
	EventDate           *string `json:"event_date" binding:"omitempty,datetime=2006-01-02"`
	EventTime           *string `json:"event_time" binding:"omitempty,datetime=15:04"`
	VenueAddress        *string `json:"venue_address" binding:"omitempty,max=500"`
	GuestCount          *int    `json:"guest_count" binding:"omitempty,gte=0"`
	MenuDetails         *string `json:"menu_details"`
	SpecialRequirements *string `json:"special_requirements"`
	Notes               *string `json:"notes"`
}

// AmountRequest carries a single money amount
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"gte=0"`
}

// PaymentRequest carries a received payment
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"gt=0"`
}

// CancelOrderRequest carries the cancellation reason
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// AssignEmployeeRequest books an employee onto the order
type AssignEmployeeRequest struct {
	EmployeeID    string           `json:"employee_id" binding:"required,uuid"`
	Role          string           `json:"role" binding:"max=50"`
	PaymentAmount *decimal.Decimal `json:"payment_amount" binding:"omitempty,gte=0"`
}

// RecordUsageRequest draws inventory for the order
type RecordUsageRequest struct {
	InventoryItemID string           `json:"inventory_item_id" binding:"required,uuid"`
	Quantity        int              `json:"quantity" binding:"required,gt=0"`
	UnitCost        *decimal.Decimal `json:"unit_cost" binding:"omitempty,gte=0"`
}

// AdjustUsageRequest changes a recorded usage quantity
type AdjustUsageRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// OrderListQuery holds the list filters for GET /orders
type OrderListQuery struct {
	dto.ListRequest
	Status        string `form:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=PENDING ADVANCE_PAID FULLY_PAID"`
	OrderType     string `form:"order_type" binding:"omitempty,oneof=FULL_CATERING HALF_CATERING"`
	EventDateFrom string `form:"event_date_from" binding:"omitempty,datetime=2006-01-02"`
	EventDateTo   string `form:"event_date_to" binding:"omitempty,datetime=2006-01-02"`
	CustomerID    string `form:"customer_id" binding:"omitempty,uuid"`
}

// Create books a new order
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	eventDate, err := dto.ParseDate(req.EventDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	customerID, err := optionalUUID("customer_id", req.CustomerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), cateringapp.CreateOrderInput{
		OrderNumber:         req.OrderNumber,
		OrderType:           catering.OrderType(req.OrderType),
		CustomerID:          customerID,
		EventName:           req.EventName,
		EventDate:           eventDate,
		EventTime:           req.EventTime,
		VenueAddress:        req.VenueAddress,
		GuestCount:          req.GuestCount,
		MenuDetails:         req.MenuDetails,
		SpecialRequirements: req.SpecialRequirements,
		Notes:               req.Notes,
		TotalAmount:         req.TotalAmount,
		AdvanceAmount:       req.AdvanceAmount,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// List returns a filtered page of orders
func (h *OrderHandler) List(c *gin.Context) {
	var q OrderListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	filter := q.ToFilter()
	for key, v := range map[string]string{
		"status":         q.Status,
		"payment_status": q.PaymentStatus,
		"order_type":     q.OrderType,
	} {
		if v != "" {
			filter.Filters[key] = v
		}
	}
	for key, v := range map[string]string{"event_date_from": q.EventDateFrom, "event_date_to": q.EventDateTo} {
		d, err := optionalDate(v)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		if d != nil {
			filter.Filters[key] = *d
		}
	}

	if q.CustomerID != "" {
		filter.Filters["customer_id"] = uuid.MustParse(q.CustomerID)
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// ListOutstanding returns open orders that still owe money
func (h *OrderHandler) ListOutstanding(c *gin.Context) {
	orders, err := h.orderService.ListOutstanding(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// GetByID returns one order with its assignments, usages and tasks
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	h.respond(c)(h.orderService.GetOrder(c.Request.Context(), id))
}

// GetByNumber looks an order up by its order number
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	h.respond(c)(h.orderService.GetOrderByNumber(c.Request.Context(), c.Param("number")))
}

// Update edits descriptive order fields
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	input := cateringapp.UpdateOrderInput{
		EventName:           req.EventName,
		EventTime:           req.EventTime,
		VenueAddress:        req.VenueAddress,
		GuestCount:          req.GuestCount,
		MenuDetails:         req.MenuDetails,
		SpecialRequirements: req.SpecialRequirements,
		Notes:               req.Notes,
	}
	if req.EventDate != nil {
		d, err := dto.ParseDate(*req.EventDate)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		input.EventDate = &d
	}
	if req.CustomerID != nil {
		// an empty customer_id unlinks the customer
		id := uuid.Nil
		if *req.CustomerID != "" {
			parsed, err := optionalUUID("customer_id", *req.CustomerID)
			if err != nil {
				h.HandleError(c, err)
				return
			}
			id = *parsed
		}
		input.CustomerID = &id
	}
	h.respond(c)(h.orderService.UpdateOrder(c.Request.Context(), id, input))
}

// SetTotal replaces the contract total and re-derives the payment state
func (h *OrderHandler) SetTotal(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req AmountRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.orderService.SetTotalAmount(c.Request.Context(), id, req.Amount))
}

// SetAdvance replaces the advance received and re-derives the payment state
func (h *OrderHandler) SetAdvance(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req AmountRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.orderService.SetAdvanceAmount(c.Request.Context(), id, req.Amount))
}

// RecordPayment adds a payment to the advance
func (h *OrderHandler) RecordPayment(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req PaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.orderService.RecordPayment(c.Request.Context(), id, req.Amount))
}

// Start moves the order to IN_PROGRESS
func (h *OrderHandler) Start(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	h.respond(c)(h.orderService.StartOrder(c.Request.Context(), id))
}

// Complete moves the order to COMPLETED
func (h *OrderHandler) Complete(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	h.respond(c)(h.orderService.CompleteOrder(c.Request.Context(), id))
}

// Cancel cancels the order. The body is optional.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req CancelOrderRequest
	if c.Request.ContentLength > 0 && !h.bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.orderService.CancelOrder(c.Request.Context(), id, req.Reason))
}

// AssignEmployee books an employee onto the order
func (h *OrderHandler) AssignEmployee(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req AssignEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.AssignEmployee(c.Request.Context(), id, cateringapp.AssignEmployeeInput{
		EmployeeID:    uuid.MustParse(req.EmployeeID),
		Role:          req.Role,
		PaymentAmount: req.PaymentAmount,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// RemoveAssignment takes an employee off the order
func (h *OrderHandler) RemoveAssignment(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	assignmentID, ok := h.pathUUID(c, "assignment_id")
	if !ok {
		return
	}
	h.respond(c)(h.orderService.RemoveAssignment(c.Request.Context(), id, assignmentID))
}

// FinalizeAssignment marks the assignment paid and credits the employee
func (h *OrderHandler) FinalizeAssignment(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	assignmentID, ok := h.pathUUID(c, "assignment_id")
	if !ok {
		return
	}
	h.respond(c)(h.orderService.FinalizeAssignment(c.Request.Context(), id, assignmentID))
}

// RecordUsage draws stock for the order
func (h *OrderHandler) RecordUsage(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req RecordUsageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.RecordInventoryUsage(c.Request.Context(), id, cateringapp.RecordUsageInput{
		InventoryItemID: uuid.MustParse(req.InventoryItemID),
		Quantity:        req.Quantity,
		UnitCost:        req.UnitCost,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// AdjustUsage changes a usage quantity, moving the difference in stock
func (h *OrderHandler) AdjustUsage(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	usageID, ok := h.pathUUID(c, "usage_id")
	if !ok {
		return
	}
	var req AdjustUsageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.orderService.AdjustInventoryUsage(c.Request.Context(), id, usageID, req.Quantity))
}

// RemoveUsage deletes a usage and returns its stock
func (h *OrderHandler) RemoveUsage(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	usageID, ok := h.pathUUID(c, "usage_id")
	if !ok {
		return
	}
	h.respond(c)(h.orderService.RemoveInventoryUsage(c.Request.Context(), id, usageID))
}

func (h *OrderHandler) respond(c *gin.Context) func(*cateringapp.OrderResponse, error) {
	return func(order *cateringapp.OrderResponse, err error) {
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, order)
	}
}
