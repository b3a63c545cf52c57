package inventory

import (
	"github.com/catering/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeInventoryItem = "InventoryItem"

// Event type constants
const (
	EventTypeStockReceived            = "StockReceived"
	EventTypeStockUsed                = "StockUsed"
	EventTypeInventoryCostChanged     = "InventoryCostChanged"
	EventTypeStockBelowThreshold      = "StockBelowThreshold"
	EventTypeInventoryItemCreated     = "InventoryItemCreated"
	EventTypeInventoryItemActivated   = "InventoryItemActivated"
	EventTypeInventoryItemDeactivated = "InventoryItemDeactivated"
)

// StockReceivedEvent is raised when stock is added to an item
type StockReceivedEvent struct {
	shared.BaseDomainEvent
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	ItemCode        string    `json:"item_code"`
	Quantity        int       `json:"quantity"`
	StockAfter      int       `json:"stock_after"`
}

// NewStockReceivedEvent creates a new StockReceivedEvent
func NewStockReceivedEvent(item *InventoryItem, quantity int) *StockReceivedEvent {
	return &StockReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReceived, AggregateTypeInventoryItem, item.ID),
		InventoryItemID: item.ID,
		ItemCode:        item.ItemCode,
		Quantity:        quantity,
		StockAfter:      item.CurrentStock,
	}
}

// StockUsedEvent is raised when stock is drawn from an item
type StockUsedEvent struct {
	shared.BaseDomainEvent
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	ItemCode        string    `json:"item_code"`
	Quantity        int       `json:"quantity"`
	StockAfter      int       `json:"stock_after"`
}

// NewStockUsedEvent creates a new StockUsedEvent
func NewStockUsedEvent(item *InventoryItem, quantity int) *StockUsedEvent {
	return &StockUsedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockUsed, AggregateTypeInventoryItem, item.ID),
		InventoryItemID: item.ID,
		ItemCode:        item.ItemCode,
		Quantity:        quantity,
		StockAfter:      item.CurrentStock,
	}
}

// InventoryCostChangedEvent is raised when the unit cost changes
type InventoryCostChangedEvent struct {
	shared.BaseDomainEvent
	InventoryItemID uuid.UUID       `json:"inventory_item_id"`
	OldCost         decimal.Decimal `json:"old_cost"`
	NewCost         decimal.Decimal `json:"new_cost"`
}

// NewInventoryCostChangedEvent creates a new InventoryCostChangedEvent
func NewInventoryCostChangedEvent(item *InventoryItem, oldCost decimal.Decimal) *InventoryCostChangedEvent {
	return &InventoryCostChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInventoryCostChanged, AggregateTypeInventoryItem, item.ID),
		InventoryItemID: item.ID,
		OldCost:         oldCost,
		NewCost:         item.UnitCost,
	}
}

// StockBelowThresholdEvent is raised when an item falls to or below its minimum
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	ItemCode        string    `json:"item_code"`
	ItemName        string    `json:"item_name"`
	CurrentStock    int       `json:"current_stock"`
	MinimumStock    int       `json:"minimum_stock"`
}

// NewStockBelowThresholdEvent creates a new StockBelowThresholdEvent
func NewStockBelowThresholdEvent(item *InventoryItem) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, AggregateTypeInventoryItem, item.ID),
		InventoryItemID: item.ID,
		ItemCode:        item.ItemCode,
		ItemName:        item.ItemName,
		CurrentStock:    item.CurrentStock,
		MinimumStock:    item.MinimumStock,
	}
}

// InventoryItemCreatedEvent is raised when a new item is registered
type InventoryItemCreatedEvent struct {
	shared.BaseDomainEvent
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	ItemCode        string    `json:"item_code"`
	ItemName        string    `json:"item_name"`
	Category        Category  `json:"category"`
}

// NewInventoryItemCreatedEvent creates a new InventoryItemCreatedEvent
func NewInventoryItemCreatedEvent(item *InventoryItem) *InventoryItemCreatedEvent {
	return &InventoryItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInventoryItemCreated, AggregateTypeInventoryItem, item.ID),
		InventoryItemID: item.ID,
		ItemCode:        item.ItemCode,
		ItemName:        item.ItemName,
		Category:        item.Category,
	}
}

// InventoryItemStatusEvent is raised when an item is activated or deactivated
type InventoryItemStatusEvent struct {
	shared.BaseDomainEvent
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	ItemCode        string    `json:"item_code"`
	Active          bool      `json:"active"`
}

// NewInventoryItemStatusEvent creates the activation or deactivation event
// matching the item's current state
func NewInventoryItemStatusEvent(item *InventoryItem) *InventoryItemStatusEvent {
	eventType := EventTypeInventoryItemDeactivated
	if item.Active {
		eventType = EventTypeInventoryItemActivated
	}
	return &InventoryItemStatusEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeInventoryItem, item.ID),
		InventoryItemID: item.ID,
		ItemCode:        item.ItemCode,
		Active:          item.Active,
	}
}
