package handler

import (
	inventoryapp "github.com/catering/backend/internal/application/inventory"
	"github.com/catering/backend/internal/domain/inventory"
	"github.com/catering/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// InventoryHandler serves the stock endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// RegisterRoutes mounts the inventory routes under /inventory
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/inventory")
	items.POST("", h.Create)
	items.GET("", h.List)
	items.GET("/low-stock", h.LowStock)
	items.GET("/out-of-stock", h.OutOfStock)
	items.GET("/value", h.TotalValue)
	items.GET("/category/:category", h.ByCategory)
	items.GET("/code/:code", h.GetByCode)
	items.GET("/:id", h.GetByID)
	items.POST("/:id/receive", h.Receive)
	items.POST("/:id/use", h.Use)
	items.POST("/:id/adjust", h.Adjust)
	items.PUT("/:id/stock", h.SetStock)
	items.PUT("/:id/unit-cost", h.SetUnitCost)
	items.PUT("/:id/minimum-stock", h.SetMinimumStock)
	items.PUT("/:id/supplier", h.SetSupplier)
	items.POST("/:id/activate", h.Activate)
	items.POST("/:id/deactivate", h.Deactivate)
}

// CreateItemRequest is the body of POST /inventory
type CreateItemRequest struct {
	ItemCode     string          `json:"item_code" binding:"required,max=20"`
	ItemName     string          `json:"item_name" binding:"required,max=100"`
	Category     string          `json:"category" binding:"required,oneof=UTENSILS DISPLAY_TABLES WATER_CANS VEGETABLES GROCERY EQUIPMENT"`
	Unit         string          `json:"unit" binding:"max=20"`
	UnitCost     decimal.Decimal `json:"unit_cost" binding:"gte=0"`
	MinimumStock int             `json:"minimum_stock" binding:"gte=0"`
	InitialStock int             `json:"initial_stock" binding:"gte=0"`
	Supplier     string          `json:"supplier" binding:"max=100"`
	Location     string          `json:"location" binding:"max=100"`
}

// QuantityRequest carries a positive quantity
type QuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// AdjustStockRequest carries a signed stock correction
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// SetStockRequest carries a counted stock level
type SetStockRequest struct {
	CurrentStock *int `json:"current_stock" binding:"required,gte=0"`
}

// UnitCostRequest carries a new unit cost
type UnitCostRequest struct {
	UnitCost decimal.Decimal `json:"unit_cost" binding:"gte=0"`
}

// MinimumStockRequest carries a new reorder threshold
type MinimumStockRequest struct {
	MinimumStock *int `json:"minimum_stock" binding:"required,gte=0"`
}

// SupplierRequest carries supplier and storage details
type SupplierRequest struct {
	Supplier string `json:"supplier" binding:"max=100"`
	Location string `json:"location" binding:"max=100"`
}

// ItemListQuery holds the list filters for GET /inventory
type ItemListQuery struct {
	dto.ListRequest
	Category string `form:"category" binding:"omitempty,oneof=UTENSILS DISPLAY_TABLES WATER_CANS VEGETABLES GROCERY EQUIPMENT"`
	Active   string `form:"active" binding:"omitempty,oneof=true false"`
}

// Create registers an inventory item
func (h *InventoryHandler) Create(c *gin.Context) {
	var req CreateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	item, err := h.inventoryService.Create(c.Request.Context(), inventoryapp.CreateItemInput{
		ItemCode:     req.ItemCode,
		ItemName:     req.ItemName,
		Category:     inventory.Category(req.Category),
		Unit:         req.Unit,
		UnitCost:     req.UnitCost,
		MinimumStock: req.MinimumStock,
		InitialStock: req.InitialStock,
		Supplier:     req.Supplier,
		Location:     req.Location,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// List returns items matching the filters
func (h *InventoryHandler) List(c *gin.Context) {
	var q ItemListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	filter := q.ToFilter()
	if q.Category != "" {
		filter.Filters["category"] = q.Category
	}
	if q.Active != "" {
		filter.Filters["active"] = q.Active
	}
	h.respondList(c)(h.inventoryService.List(c.Request.Context(), filter))
}

// LowStock lists active items at or below their minimum
func (h *InventoryHandler) LowStock(c *gin.Context) {
	h.respondList(c)(h.inventoryService.ListLowStock(c.Request.Context()))
}

// OutOfStock lists active items with nothing on hand
func (h *InventoryHandler) OutOfStock(c *gin.Context) {
	h.respondList(c)(h.inventoryService.ListOutOfStock(c.Request.Context()))
}

// ByCategory lists active items in one category
func (h *InventoryHandler) ByCategory(c *gin.Context) {
	h.respondList(c)(h.inventoryService.ListByCategory(c.Request.Context(), inventory.Category(c.Param("category"))))
}

// TotalValue sums the value of active stock
func (h *InventoryHandler) TotalValue(c *gin.Context) {
	value, err := h.inventoryService.TotalValue(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, value)
}

// GetByID returns one item
func (h *InventoryHandler) GetByID(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	h.respond(c)(h.inventoryService.GetByID(c.Request.Context(), id))
}

// GetByCode looks an item up by item code
func (h *InventoryHandler) GetByCode(c *gin.Context) {
	h.respond(c)(h.inventoryService.GetByCode(c.Request.Context(), c.Param("code")))
}

// Receive books delivered stock
func (h *InventoryHandler) Receive(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req QuantityRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.inventoryService.ReceiveStock(c.Request.Context(), id, req.Quantity))
}

// Use deducts stock not tied to an order; fails with 422 when short
func (h *InventoryHandler) Use(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req QuantityRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.inventoryService.UseStock(c.Request.Context(), id, req.Quantity))
}

// Adjust applies a signed correction
func (h *InventoryHandler) Adjust(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req AdjustStockRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.inventoryService.AdjustStock(c.Request.Context(), id, req.Delta))
}

// SetStock overwrites the stock level after a count
func (h *InventoryHandler) SetStock(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req SetStockRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.inventoryService.SetCurrentStock(c.Request.Context(), id, *req.CurrentStock))
}

// SetUnitCost revalues the item
func (h *InventoryHandler) SetUnitCost(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req UnitCostRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.inventoryService.SetUnitCost(c.Request.Context(), id, req.UnitCost))
}

// SetMinimumStock changes the reorder threshold
func (h *InventoryHandler) SetMinimumStock(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req MinimumStockRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.inventoryService.SetMinimumStock(c.Request.Context(), id, *req.MinimumStock))
}

// SetSupplier updates supplier and location
func (h *InventoryHandler) SetSupplier(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req SupplierRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.inventoryService.SetSupplierInfo(c.Request.Context(), id, req.Supplier, req.Location))
}

// Activate brings a retired item back
func (h *InventoryHandler) Activate(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	h.respond(c)(h.inventoryService.Activate(c.Request.Context(), id))
}

// Deactivate retires an item
func (h *InventoryHandler) Deactivate(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	h.respond(c)(h.inventoryService.Deactivate(c.Request.Context(), id))
}

func (h *InventoryHandler) respond(c *gin.Context) func(*inventoryapp.InventoryItemResponse, error) {
	return func(item *inventoryapp.InventoryItemResponse, err error) {
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, item)
	}
}

func (h *InventoryHandler) respondList(c *gin.Context) func([]inventoryapp.InventoryItemResponse, error) {
	return func(items []inventoryapp.InventoryItemResponse, err error) {
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, items)
	}
}
