package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/catering/backend/internal/domain/inventory"
	"github.com/catering/backend/internal/domain/shared"
	"github.com/catering/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormInventoryItemRepository implements InventoryItemRepository using GORM
type GormInventoryItemRepository struct {
	db *gorm.DB
}

// NewGormInventoryItemRepository creates a new GormInventoryItemRepository
func NewGormInventoryItemRepository(db *gorm.DB) *GormInventoryItemRepository {
	return &GormInventoryItemRepository{db: db}
}

// FindByID finds an inventory item by its ID
func (r *GormInventoryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	var model models.InventoryItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("Inventory item %s not found", id))
	}
	return model.ToDomain(), nil
}

// FindByCode finds an item by its unique code
func (r *GormInventoryItemRepository) FindByCode(ctx context.Context, code string) (*inventory.InventoryItem, error) {
	var model models.InventoryItemModel
	if err := r.db.WithContext(ctx).First(&model, "item_code = ?", code).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("Inventory item %s not found", code))
	}
	return model.ToDomain(), nil
}

// FindAll lists items matching the filter (category, active, search)
func (r *GormInventoryItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryItem, error) {
	q := r.db.WithContext(ctx).Model(&models.InventoryItemModel{})
	if v, ok := filterString(filter, "category"); ok {
		q = q.Where("category = ?", v)
	}
	if v, ok := filterBool(filter, "active"); ok {
		q = q.Where("active = ?", v)
	}
	q = search(q, filter.Search, "item_code", "item_name", "supplier")
	return r.find(pageAndSort(q, filter, InventoryItemSortFields, "created_at"))
}

// FindByCategory lists active items in a category
func (r *GormInventoryItemRepository) FindByCategory(ctx context.Context, category inventory.Category) ([]inventory.InventoryItem, error) {
	return r.find(r.active(ctx).Where("category = ?", string(category)).Order("item_code"))
}

// FindLowStock lists active items at or below their minimum stock
func (r *GormInventoryItemRepository) FindLowStock(ctx context.Context) ([]inventory.InventoryItem, error) {
	return r.find(r.active(ctx).Where("current_stock <= minimum_stock").Order("current_stock"))
}

// FindOutOfStock lists active items with no stock
func (r *GormInventoryItemRepository) FindOutOfStock(ctx context.Context) ([]inventory.InventoryItem, error) {
	return r.find(r.active(ctx).Where("current_stock = 0").Order("item_code"))
}

// ExistsByCode checks whether an item code is taken
func (r *GormInventoryItemRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.InventoryItemModel{}).
		Where("item_code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SumActiveValue sums TotalValue over active items
func (r *GormInventoryItemRepository) SumActiveValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.active(ctx).Model(&models.InventoryItemModel{}).
		Select("COALESCE(SUM(total_value), 0)").
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

// CountLowStock counts active items at or below their minimum stock
func (r *GormInventoryItemRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.active(ctx).Model(&models.InventoryItemModel{}).
		Where("current_stock <= minimum_stock").Count(&count).Error
	return count, err
}

// Create inserts a new item
func (r *GormInventoryItemRepository) Create(ctx context.Context, item *inventory.InventoryItem) error {
	return translate(r.db.WithContext(ctx).Create(models.InventoryItemModelFromDomain(item)).Error, "")
}

// Save updates an item under an optimistic version check
func (r *GormInventoryItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	model := models.InventoryItemModelFromDomain(item)
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&models.InventoryItemModel{}).
		Where("id = ? AND version = ?", item.ID, item.Version).
		Updates(map[string]any{
			"item_name":     model.ItemName,
			"category":      model.Category,
			"unit":          model.Unit,
			"current_stock": model.CurrentStock,
			"minimum_stock": model.MinimumStock,
			"unit_cost":     model.UnitCost,
			"total_value":   model.TotalValue,
			"supplier":      model.Supplier,
			"location":      model.Location,
			"active":        model.Active,
			"version":       item.Version + 1,
			"updated_at":    now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeConcurrencyConflict,
			fmt.Sprintf("Inventory item %s was modified by another transaction", item.ItemCode))
	}
	item.Version++
	item.UpdatedAt = now
	return nil
}

func (r *GormInventoryItemRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("active = ?", true)
}

func (r *GormInventoryItemRepository) find(q *gorm.DB) ([]inventory.InventoryItem, error) {
	var rows []models.InventoryItemModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]inventory.InventoryItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, nil
}

var _ inventory.InventoryItemRepository = (*GormInventoryItemRepository)(nil)
