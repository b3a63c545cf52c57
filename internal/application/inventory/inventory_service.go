package inventory

import (
	"context"
	"fmt"

	"github.com/catering/backend/internal/domain/inventory"
	"github.com/catering/backend/internal/domain/shared"
	"github.com/catering/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InventoryService handles inventory-related business operations.
// Stock draws attributed to an order go through the order workflow instead.
type InventoryService struct {
	inventoryRepo  inventory.InventoryItemRepository
	eventPublisher shared.EventPublisher
	currency       valueobject.Currency
	logger         *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(inventoryRepo inventory.InventoryItemRepository, logger *zap.Logger) *InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{inventoryRepo: inventoryRepo, currency: valueobject.DefaultCurrency, logger: logger}
}

// SetCurrency sets the currency stock values are reported in
func (s *InventoryService) SetCurrency(currency valueobject.Currency) {
	s.currency = currency
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *InventoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *InventoryService) publishDomainEvents(ctx context.Context, item *inventory.InventoryItem) {
	events := item.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
	item.ClearDomainEvents()
}

// Create registers a new item. Item codes must be unique.
func (s *InventoryService) Create(ctx context.Context, input CreateItemInput) (*InventoryItemResponse, error) {
	exists, err := s.inventoryRepo.ExistsByCode(ctx, input.ItemCode)
	if err != nil {
		return nil, fmt.Errorf("check item code: %w", err)
	}
	if exists {
		return nil, shared.NewDuplicateError(fmt.Sprintf("Item code %s already exists", input.ItemCode))
	}

	item, err := inventory.NewInventoryItem(input.ItemCode, input.ItemName, input.Category, input.Unit, input.UnitCost, input.MinimumStock)
	if err != nil {
		return nil, err
	}
	if err := item.SetCurrentStock(input.InitialStock); err != nil {
		return nil, err
	}
	item.SetSupplierInfo(input.Supplier, input.Location)

	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create inventory item: %w", err)
	}
	s.logger.Info("inventory item created",
		zap.String("item_code", item.ItemCode),
		zap.Int("stock", item.CurrentStock),
	)
	s.publishDomainEvents(ctx, item)

	resp := ToInventoryItemResponse(item)
	return &resp, nil
}

// GetByID retrieves an inventory item by ID
func (s *InventoryService) GetByID(ctx context.Context, id uuid.UUID) (*InventoryItemResponse, error) {
	item, err := s.inventoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToInventoryItemResponse(item)
	return &resp, nil
}

// GetByCode retrieves an inventory item by its code
func (s *InventoryService) GetByCode(ctx context.Context, code string) (*InventoryItemResponse, error) {
	item, err := s.inventoryRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := ToInventoryItemResponse(item)
	return &resp, nil
}

// List retrieves items matching the filter
func (s *InventoryService) List(ctx context.Context, filter shared.Filter) ([]InventoryItemResponse, error) {
	items, err := s.inventoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToInventoryItemResponses(items), nil
}

// ListByCategory retrieves active items in one category
func (s *InventoryService) ListByCategory(ctx context.Context, category inventory.Category) ([]InventoryItemResponse, error) {
	if !category.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("Unknown inventory category %q", category))
	}
	items, err := s.inventoryRepo.FindByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return ToInventoryItemResponses(items), nil
}

// ListLowStock retrieves active items at or below their minimum
func (s *InventoryService) ListLowStock(ctx context.Context) ([]InventoryItemResponse, error) {
	items, err := s.inventoryRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return ToInventoryItemResponses(items), nil
}

// ListOutOfStock retrieves active items with no stock
func (s *InventoryService) ListOutOfStock(ctx context.Context) ([]InventoryItemResponse, error) {
	items, err := s.inventoryRepo.FindOutOfStock(ctx)
	if err != nil {
		return nil, err
	}
	return ToInventoryItemResponses(items), nil
}

// TotalValue sums the value of all active stock
func (s *InventoryService) TotalValue(ctx context.Context) (*InventoryValueResponse, error) {
	total, err := s.inventoryRepo.SumActiveValue(ctx)
	if err != nil {
		return nil, err
	}
	return &InventoryValueResponse{
		TotalValue: total,
		Currency:   s.currency,
		Formatted:  valueobject.MoneyIn(total, s.currency).String(),
	}, nil
}

// ReceiveStock adds delivered quantity to an item
func (s *InventoryService) ReceiveStock(ctx context.Context, id uuid.UUID, quantity int) (*InventoryItemResponse, error) {
	if quantity <= 0 {
		return nil, shared.NewValidationError("Quantity to receive must be positive")
	}
	return s.mutate(ctx, id, func(item *inventory.InventoryItem) error {
		return item.UpdateStock(quantity)
	})
}

// UseStock deducts stock not attributed to any order, e.g. breakage
func (s *InventoryService) UseStock(ctx context.Context, id uuid.UUID, quantity int) (*InventoryItemResponse, error) {
	return s.mutate(ctx, id, func(item *inventory.InventoryItem) error {
		return item.UseStock(quantity)
	})
}

// AdjustStock applies a signed correction
func (s *InventoryService) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*InventoryItemResponse, error) {
	return s.mutate(ctx, id, func(item *inventory.InventoryItem) error {
		return item.UpdateStock(delta)
	})
}

// SetCurrentStock overwrites the stock level after a physical count
func (s *InventoryService) SetCurrentStock(ctx context.Context, id uuid.UUID, stock int) (*InventoryItemResponse, error) {
	return s.mutate(ctx, id, func(item *inventory.InventoryItem) error {
		return item.SetCurrentStock(stock)
	})
}

// SetUnitCost revalues the item
func (s *InventoryService) SetUnitCost(ctx context.Context, id uuid.UUID, cost decimal.Decimal) (*InventoryItemResponse, error) {
	return s.mutate(ctx, id, func(item *inventory.InventoryItem) error {
		return item.SetUnitCost(cost)
	})
}

// SetMinimumStock changes the reorder threshold
func (s *InventoryService) SetMinimumStock(ctx context.Context, id uuid.UUID, minimum int) (*InventoryItemResponse, error) {
	return s.mutate(ctx, id, func(item *inventory.InventoryItem) error {
		return item.SetMinimumStock(minimum)
	})
}

// SetSupplierInfo updates supplier and storage location
func (s *InventoryService) SetSupplierInfo(ctx context.Context, id uuid.UUID, supplier, location string) (*InventoryItemResponse, error) {
	return s.mutate(ctx, id, func(item *inventory.InventoryItem) error {
		item.SetSupplierInfo(supplier, location)
		return nil
	})
}

// Deactivate retires an item
func (s *InventoryService) Deactivate(ctx context.Context, id uuid.UUID) (*InventoryItemResponse, error) {
	return s.mutate(ctx, id, func(item *inventory.InventoryItem) error {
		item.Deactivate()
		return nil
	})
}

// Activate brings an item back
func (s *InventoryService) Activate(ctx context.Context, id uuid.UUID) (*InventoryItemResponse, error) {
	return s.mutate(ctx, id, func(item *inventory.InventoryItem) error {
		item.Activate()
		return nil
	})
}

func (s *InventoryService) mutate(ctx context.Context, id uuid.UUID, fn func(item *inventory.InventoryItem) error) (*InventoryItemResponse, error) {
	item, err := s.inventoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(item); err != nil {
		return nil, err
	}
	if err := s.inventoryRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, item)

	resp := ToInventoryItemResponse(item)
	return &resp, nil
}
