package inventory

import (
	"fmt"
	"strings"

	"github.com/catering/backend/internal/domain/shared"
	"github.com/catering/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Field limits
const (
	MaxItemCodeLength = 30
	MaxItemNameLength = 100
	MaxUnitLength     = 20
)

// Category groups stock items the way the store room is organised
type Category string

const (
	CategoryUtensils      Category = "UTENSILS"
	CategoryDisplayTables Category = "DISPLAY_TABLES"
	CategoryWaterCans     Category = "WATER_CANS"
	CategoryVegetables    Category = "VEGETABLES"
	CategoryGrocery       Category = "GROCERY"
	CategoryEquipment     Category = "EQUIPMENT"
)

// AllCategories lists every valid category
func AllCategories() []Category {
	return []Category{
		CategoryUtensils,
		CategoryDisplayTables,
		CategoryWaterCans,
		CategoryVegetables,
		CategoryGrocery,
		CategoryEquipment,
	}
}

// IsValid checks if the category is known
func (c Category) IsValid() bool {
	for _, v := range AllCategories() {
		if c == v {
			return true
		}
	}
	return false
}

// String returns the category code
func (c Category) String() string {
	return string(c)
}

// DisplayName returns a human readable label
func (c Category) DisplayName() string {
	return shared.DisplayName(string(c))
}

// InventoryItem is a stock-keeping unit. It owns the stock ledger:
// CurrentStock never drops below zero and TotalValue always equals
// CurrentStock * UnitCost.
type InventoryItem struct {
	shared.BaseAggregateRoot
	ItemCode     string
	ItemName     string
	Category     Category
	Unit         string
	CurrentStock int
	MinimumStock int
	UnitCost     decimal.Decimal
	TotalValue   decimal.Decimal
	Supplier     string
	Location     string
	Active       bool
}

// NewInventoryItem creates an active item with zero stock
func NewInventoryItem(code, name string, category Category, unit string, unitCost decimal.Decimal, minimumStock int) (*InventoryItem, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, shared.NewValidationError("Item code cannot be empty")
	}
	if len(code) > MaxItemCodeLength {
		return nil, shared.NewValidationError(fmt.Sprintf("Item code cannot exceed %d characters", MaxItemCodeLength))
	}
	if name == "" {
		return nil, shared.NewValidationError("Item name cannot be empty")
	}
	if len(name) > MaxItemNameLength {
		return nil, shared.NewValidationError(fmt.Sprintf("Item name cannot exceed %d characters", MaxItemNameLength))
	}
	if !category.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("Unknown inventory category %q", category))
	}
	if len(unit) > MaxUnitLength {
		return nil, shared.NewValidationError(fmt.Sprintf("Unit cannot exceed %d characters", MaxUnitLength))
	}
	if err := shared.CheckAmount("Unit cost", unitCost); err != nil {
		return nil, err
	}
	if minimumStock < 0 {
		return nil, shared.NewValidationError("Minimum stock cannot be negative")
	}

	item := &InventoryItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ItemCode:          code,
		ItemName:          name,
		Category:          category,
		Unit:              unit,
		MinimumStock:      minimumStock,
		UnitCost:          unitCost,
		TotalValue:        decimal.Zero,
		Active:            true,
	}
	item.AddDomainEvent(NewInventoryItemCreatedEvent(item))
	return item, nil
}

// UpdateStock applies a signed delta; positive deltas are receipts.
// A delta that would take stock below zero fails with INSUFFICIENT_STOCK.
func (i *InventoryItem) UpdateStock(delta int) error {
	if delta == 0 {
		return nil
	}
	if i.CurrentStock+delta < 0 {
		return shared.NewDomainError(shared.CodeInsufficientStock,
			fmt.Sprintf("Cannot remove %d %s of %s: only %d in stock", -delta, i.Unit, i.ItemCode, i.CurrentStock))
	}

	i.CurrentStock += delta
	i.recompute()
	i.Touch()

	if delta > 0 {
		i.AddDomainEvent(NewStockReceivedEvent(i, delta))
	} else {
		i.AddDomainEvent(NewStockUsedEvent(i, -delta))
		i.checkThreshold()
	}
	return nil
}

// UseStock deducts quantity. Insufficient stock is reported as
// INSUFFICIENT_STOCK and leaves the item untouched.
func (i *InventoryItem) UseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewValidationError("Quantity to use must be positive")
	}
	if i.CurrentStock < quantity {
		return shared.NewDomainError(shared.CodeInsufficientStock,
			fmt.Sprintf("Insufficient stock for %s: requested %d, available %d", i.ItemCode, quantity, i.CurrentStock))
	}

	i.CurrentStock -= quantity
	i.recompute()
	i.Touch()

	i.AddDomainEvent(NewStockUsedEvent(i, quantity))
	i.checkThreshold()
	return nil
}

// SetCurrentStock overwrites the stock level, e.g. after a physical count
func (i *InventoryItem) SetCurrentStock(stock int) error {
	if stock < 0 {
		return shared.NewValidationError("Current stock cannot be negative")
	}
	i.CurrentStock = stock
	i.recompute()
	i.Touch()
	i.checkThreshold()
	return nil
}

// SetUnitCost changes the per-unit cost and revalues the stock
func (i *InventoryItem) SetUnitCost(cost decimal.Decimal) error {
	if err := shared.CheckAmount("Unit cost", cost); err != nil {
		return err
	}
	old := i.UnitCost
	i.UnitCost = cost
	i.recompute()
	i.Touch()

	if !old.Equal(cost) {
		i.AddDomainEvent(NewInventoryCostChangedEvent(i, old))
	}
	return nil
}

// SetMinimumStock changes the low-stock threshold
func (i *InventoryItem) SetMinimumStock(minimum int) error {
	if minimum < 0 {
		return shared.NewValidationError("Minimum stock cannot be negative")
	}
	i.MinimumStock = minimum
	i.Touch()
	i.checkThreshold()
	return nil
}

// SetSupplierInfo records where the item comes from and where it is kept
func (i *InventoryItem) SetSupplierInfo(supplier, location string) {
	i.Supplier = strings.TrimSpace(supplier)
	i.Location = strings.TrimSpace(location)
	i.Touch()
}

// Deactivate hides the item from stock listings and valuation.
// Deactivating an inactive item changes nothing.
func (i *InventoryItem) Deactivate() {
	if !i.Active {
		return
	}
	i.Active = false
	i.Touch()
	i.AddDomainEvent(NewInventoryItemStatusEvent(i))
}

// Activate re-enables the item
func (i *InventoryItem) Activate() {
	if i.Active {
		return
	}
	i.Active = true
	i.Touch()
	i.AddDomainEvent(NewInventoryItemStatusEvent(i))
}

// IsLowStock reports CurrentStock <= MinimumStock
func (i *InventoryItem) IsLowStock() bool {
	return i.CurrentStock <= i.MinimumStock
}

// IsOutOfStock reports an empty shelf
func (i *InventoryItem) IsOutOfStock() bool {
	return i.CurrentStock == 0
}

// HasStock reports whether quantity can be drawn
func (i *InventoryItem) HasStock(quantity int) bool {
	return i.CurrentStock >= quantity
}

// Value returns TotalValue as Money in the given currency
func (i *InventoryItem) Value(currency valueobject.Currency) valueobject.Money {
	return valueobject.MoneyIn(i.TotalValue, currency)
}

func (i *InventoryItem) recompute() {
	i.TotalValue = i.UnitCost.Mul(decimal.NewFromInt(int64(i.CurrentStock)))
}

func (i *InventoryItem) checkThreshold() {
	if i.Active && i.IsLowStock() {
		i.AddDomainEvent(NewStockBelowThresholdEvent(i))
	}
}
