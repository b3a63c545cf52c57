package inventory

import (
	"time"

	"github.com/catering/backend/internal/domain/inventory"
	"github.com/catering/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateItemInput carries the fields needed to register an item
type CreateItemInput struct {
	ItemCode     string
	ItemName     string
	Category     inventory.Category
	Unit         string
	UnitCost     decimal.Decimal
	MinimumStock int
	InitialStock int
	Supplier     string
	Location     string
}

// InventoryItemResponse represents an inventory item in API responses
type InventoryItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ItemCode     string          `json:"item_code"`
	ItemName     string          `json:"item_name"`
	Category     string          `json:"category"`
	CategoryName string          `json:"category_name"`
	Unit         string          `json:"unit,omitempty"`
	CurrentStock int             `json:"current_stock"`
	MinimumStock int             `json:"minimum_stock"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalValue   decimal.Decimal `json:"total_value"`
	Supplier     string          `json:"supplier,omitempty"`
	Location     string          `json:"location,omitempty"`
	Active       bool            `json:"active"`
	IsLowStock   bool            `json:"is_low_stock"`
	IsOutOfStock bool            `json:"is_out_of_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// InventoryValueResponse is the value of all active stock
type InventoryValueResponse struct {
	TotalValue decimal.Decimal      `json:"total_value"`
	Currency   valueobject.Currency `json:"currency"`
	Formatted  string               `json:"formatted"`
}

// ToInventoryItemResponse converts a domain InventoryItem to a response
func ToInventoryItemResponse(item *inventory.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:           item.ID,
		ItemCode:     item.ItemCode,
		ItemName:     item.ItemName,
		Category:     string(item.Category),
		CategoryName: item.Category.DisplayName(),
		Unit:         item.Unit,
		CurrentStock: item.CurrentStock,
		MinimumStock: item.MinimumStock,
		UnitCost:     item.UnitCost,
		TotalValue:   item.TotalValue,
		Supplier:     item.Supplier,
		Location:     item.Location,
		Active:       item.Active,
		IsLowStock:   item.IsLowStock(),
		IsOutOfStock: item.IsOutOfStock(),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
		Version:      item.GetVersion(),
	}
}

// ToInventoryItemResponses converts a slice of items
func ToInventoryItemResponses(items []inventory.InventoryItem) []InventoryItemResponse {
	out := make([]InventoryItemResponse, 0, len(items))
	for i := range items {
		out = append(out, ToInventoryItemResponse(&items[i]))
	}
	return out
}
