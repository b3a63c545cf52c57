package handler

import (
	cateringapp "github.com/catering/backend/internal/application/catering"
	customerapp "github.com/catering/backend/internal/application/customer"
	"github.com/catering/backend/internal/domain/customer"
	"github.com/catering/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CustomerHandler serves the customer endpoints and the per-customer
// order history
type CustomerHandler struct {
	BaseHandler
	customerService *customerapp.CustomerService
	orderService    *cateringapp.OrderService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *customerapp.CustomerService, orderService *cateringapp.OrderService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, orderService: orderService}
}

// RegisterRoutes mounts the customer routes under /customers
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	customers.POST("", h.Create)
	customers.GET("", h.List)
	customers.GET("/outstanding", h.ListOutstanding)
	customers.GET("/top", h.ListTop)
	customers.GET("/frequent", h.ListFrequent)
	customers.GET("/counts", h.Counts)
	customers.GET("/phone/:phone", h.FindByPhone)
	customers.GET("/code/:code", h.GetByCode)
	customers.GET("/:id", h.GetByID)
	customers.PATCH("/:id", h.Update)
	customers.POST("/:id/activate", h.Activate)
	customers.POST("/:id/deactivate", h.Deactivate)
	customers.GET("/:id/orders", h.Orders)
}

// CreateCustomerRequest is the body of POST /customers
type CreateCustomerRequest struct {
	CustomerCode  string          `json:"customer_code" binding:"required,max=20"`
	Name          string          `json:"name" binding:"required,max=100"`
	ContactPerson string          `json:"contact_person" binding:"max=100"`
	Phone         string          `json:"phone" binding:"max=20"`
	Email         string          `json:"email" binding:"omitempty,email,max=100"`
	Address       string          `json:"address" binding:"max=500"`
	Type          string          `json:"type" binding:"omitempty,oneof=ONE_TIME PERMANENT"`
	BusinessType  string          `json:"business_type" binding:"omitempty,oneof=HOTEL EVENT_MANAGER CATERING_SERVICE INDIVIDUAL"`
	PaymentTerms  string          `json:"payment_terms" binding:"max=50"`
	CreditLimit   decimal.Decimal `json:"credit_limit" binding:"gte=0"`
}

// UpdateCustomerRequest is the body of PATCH /customers/:id
type UpdateCustomerRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=100"`
	ContactPerson *string          `json:"contact_person" binding:"omitempty,max=100"`
	Phone         *string          `json:"phone" binding:"omitempty,max=20"`
	Email         *string          `json:"email" binding:"omitempty,max=100"`
	Address       *string          `json:"address" binding:"omitempty,max=500"`
	Type          *string          `json:"type" binding:"omitempty,oneof=ONE_TIME PERMANENT"`
	BusinessType  *string          `json:"business_type" binding:"omitempty,oneof=HOTEL EVENT_MANAGER CATERING_SERVICE INDIVIDUAL"`
	PaymentTerms  *string          `json:"payment_terms" binding:"omitempty,max=50"`
	CreditLimit   *decimal.Decimal `json:"credit_limit" binding:"omitempty,gte=0"`
}

// CustomerListQuery holds the list filters for GET /customers
type CustomerListQuery struct {
	dto.ListRequest
	Type         string `form:"type" binding:"omitempty,oneof=ONE_TIME PERMANENT"`
	BusinessType string `form:"business_type" binding:"omitempty,oneof=HOTEL EVENT_MANAGER CATERING_SERVICE INDIVIDUAL"`
	Active       string `form:"active" binding:"omitempty,oneof=true false"`
}

// TopCustomersQuery holds the parameters of GET /customers/top
type TopCustomersQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// FrequentCustomersQuery holds the parameters of GET /customers/frequent
type FrequentCustomersQuery struct {
	MinOrders int `form:"min_orders" binding:"omitempty,min=0"`
}

// Create registers a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	created, err := h.customerService.Create(c.Request.Context(), customerapp.CreateCustomerInput{
		CustomerCode:  req.CustomerCode,
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Type:          customer.CustomerType(req.Type),
		BusinessType:  customer.BusinessType(req.BusinessType),
		PaymentTerms:  req.PaymentTerms,
		CreditLimit:   req.CreditLimit,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

// List returns a filtered page of customers
func (h *CustomerHandler) List(c *gin.Context) {
	var q CustomerListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	filter := q.ToFilter()
	for key, v := range map[string]string{
		"type":          q.Type,
		"business_type": q.BusinessType,
		"active":        q.Active,
	} {
		if v != "" {
			filter.Filters[key] = v
		}
	}

	customers, total, err := h.customerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, customers, total, filter.Page, filter.PageSize)
}

// ListOutstanding returns customers that still owe money
func (h *CustomerHandler) ListOutstanding(c *gin.Context) {
	h.respondList(c)(h.customerService.ListOutstanding(c.Request.Context()))
}

// ListTop returns the highest-billing customers
func (h *CustomerHandler) ListTop(c *gin.Context) {
	var q TopCustomersQuery
	if !h.bindQuery(c, &q) {
		return
	}
	h.respondList(c)(h.customerService.ListTop(c.Request.Context(), q.Limit))
}

// ListFrequent returns customers with more than min_orders orders
func (h *CustomerHandler) ListFrequent(c *gin.Context) {
	var q FrequentCustomersQuery
	if !h.bindQuery(c, &q) {
		return
	}
	h.respondList(c)(h.customerService.ListFrequent(c.Request.Context(), q.MinOrders))
}

// Counts returns customer counts per type
func (h *CustomerHandler) Counts(c *gin.Context) {
	counts, err := h.customerService.Counts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counts)
}

// FindByPhone lists customers registered with a phone number
func (h *CustomerHandler) FindByPhone(c *gin.Context) {
	h.respondList(c)(h.customerService.FindByPhone(c.Request.Context(), c.Param("phone")))
}

// GetByCode looks a customer up by code
func (h *CustomerHandler) GetByCode(c *gin.Context) {
	h.respond(c)(h.customerService.GetByCode(c.Request.Context(), c.Param("code")))
}

// GetByID returns one customer
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	h.respond(c)(h.customerService.Get(c.Request.Context(), id))
}

// Update edits profile, classification and terms
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req UpdateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	input := customerapp.UpdateCustomerInput{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		PaymentTerms:  req.PaymentTerms,
		CreditLimit:   req.CreditLimit,
	}
	if req.Type != nil {
		t := customer.CustomerType(*req.Type)
		input.Type = &t
	}
	if req.BusinessType != nil {
		b := customer.BusinessType(*req.BusinessType)
		input.BusinessType = &b
	}
	h.respond(c)(h.customerService.Update(c.Request.Context(), id, input))
}

// Activate lets the customer book orders again
func (h *CustomerHandler) Activate(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	h.respond(c)(h.customerService.Activate(c.Request.Context(), id))
}

// Deactivate stops the customer from taking new orders
func (h *CustomerHandler) Deactivate(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	h.respond(c)(h.customerService.Deactivate(c.Request.Context(), id))
}

// Orders lists the customer's orders, newest event first
func (h *CustomerHandler) Orders(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if _, err := h.customerService.Get(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	orders, err := h.orderService.ListOrdersByCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

func (h *CustomerHandler) respond(c *gin.Context) func(*customerapp.CustomerResponse, error) {
	return func(resp *customerapp.CustomerResponse, err error) {
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, resp)
	}
}

func (h *CustomerHandler) respondList(c *gin.Context) func([]customerapp.CustomerResponse, error) {
	return func(list []customerapp.CustomerResponse, err error) {
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, list)
	}
}
