package inventory

import (
	"context"

	"github.com/catering/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItemRepository defines the interface for inventory item persistence
type InventoryItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)

	// FindByCode finds an item by its unique item code
	FindByCode(ctx context.Context, code string) (*InventoryItem, error)

	// FindAll lists items matching the filter (category, active, search)
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryItem, error)

	// FindByCategory lists active items in a category
	FindByCategory(ctx context.Context, category Category) ([]InventoryItem, error)

	// FindLowStock lists active items at or below their minimum stock
	FindLowStock(ctx context.Context) ([]InventoryItem, error)

	// FindOutOfStock lists active items with no stock
	FindOutOfStock(ctx context.Context) ([]InventoryItem, error)

	// ExistsByCode checks whether an item code is taken
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// SumActiveValue sums TotalValue over active items
	SumActiveValue(ctx context.Context) (decimal.Decimal, error)

	// CountLowStock counts active items at or below their minimum stock
	CountLowStock(ctx context.Context) (int64, error)

	// Create inserts a new item
	Create(ctx context.Context, item *InventoryItem) error

	// Save updates an existing item, failing with CONCURRENCY_CONFLICT
	// if it was modified since it was loaded
	Save(ctx context.Context, item *InventoryItem) error
}
