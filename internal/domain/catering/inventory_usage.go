package catering

import (
	"fmt"
	"time"

	"github.com/catering/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryUsage records stock drawn for an order. UnitCost is a snapshot
// taken when the stock was used; TotalCost is always QuantityUsed * UnitCost.
type InventoryUsage struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	InventoryItemID uuid.UUID
	QuantityUsed    int
	UnitCost        decimal.Decimal
	TotalCost       decimal.Decimal
	UsedAt          time.Time
}

// NewInventoryUsage builds a usage line with its cost computed
func NewInventoryUsage(orderID, itemID uuid.UUID, quantity int, unitCost decimal.Decimal) (*InventoryUsage, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewValidationError("Inventory item ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewValidationError("Quantity used must be positive")
	}
	if err := shared.CheckAmount("Unit cost", unitCost); err != nil {
		return nil, err
	}
	u := &InventoryUsage{
		ID:              uuid.New(),
		OrderID:         orderID,
		InventoryItemID: itemID,
		QuantityUsed:    quantity,
		UnitCost:        unitCost,
		UsedAt:          time.Now(),
	}
	u.recompute()
	return u, nil
}

// SetQuantity changes the quantity and recomputes the cost
func (u *InventoryUsage) SetQuantity(quantity int) error {
	if quantity < 0 {
		return shared.NewValidationError("Quantity used cannot be negative")
	}
	u.QuantityUsed = quantity
	u.recompute()
	return nil
}

// SetUnitCost changes the unit cost and recomputes the cost
func (u *InventoryUsage) SetUnitCost(cost decimal.Decimal) error {
	if err := shared.CheckAmount("Unit cost", cost); err != nil {
		return err
	}
	u.UnitCost = cost
	u.recompute()
	return nil
}

func (u *InventoryUsage) recompute() {
	u.TotalCost = u.UnitCost.Mul(decimal.NewFromInt(int64(u.QuantityUsed)))
}

// AddInventoryUsage attaches a usage line to the order. It does not touch
// the item's stock; callers deduct stock in the same unit of work.
func (o *Order) AddInventoryUsage(itemID uuid.UUID, quantity int, unitCost decimal.Decimal) (*InventoryUsage, error) {
	if err := o.ensureOpen("record inventory usage"); err != nil {
		return nil, err
	}
	usage, err := NewInventoryUsage(o.ID, itemID, quantity, unitCost)
	if err != nil {
		return nil, err
	}
	o.InventoryUsages = append(o.InventoryUsages, *usage)
	o.Touch()

	o.AddDomainEvent(NewInventoryUsageRecordedEvent(o, usage))
	return usage, nil
}

// UpdateInventoryUsageQuantity changes a usage line's quantity and returns
// the stock delta (new minus old) the caller must draw from the item.
func (o *Order) UpdateInventoryUsageQuantity(usageID uuid.UUID, quantity int) (int, error) {
	if err := o.ensureOpen("change inventory usage"); err != nil {
		return 0, err
	}
	if quantity <= 0 {
		return 0, shared.NewValidationError("Quantity used must be positive; remove the usage instead")
	}
	u := o.GetInventoryUsage(usageID)
	if u == nil {
		return 0, shared.NewNotFoundError(fmt.Sprintf("Inventory usage %s not found on order %s", usageID, o.OrderNumber))
	}
	delta := quantity - u.QuantityUsed
	if err := u.SetQuantity(quantity); err != nil {
		return 0, err
	}
	o.Touch()
	return delta, nil
}

// RemoveInventoryUsage detaches a usage line. The returned record no longer
// refers to the order; its quantity is what the caller should restock.
func (o *Order) RemoveInventoryUsage(usageID uuid.UUID) (*InventoryUsage, error) {
	if o.Status == OrderStatusCompleted {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Cannot remove inventory usage from a completed order")
	}
	for idx := range o.InventoryUsages {
		if o.InventoryUsages[idx].ID != usageID {
			continue
		}
		removed := o.InventoryUsages[idx]
		o.InventoryUsages = append(o.InventoryUsages[:idx], o.InventoryUsages[idx+1:]...)
		removed.OrderID = uuid.Nil
		o.Touch()

		o.AddDomainEvent(NewInventoryUsageRemovedEvent(o, &removed))
		return &removed, nil
	}
	return nil, shared.NewNotFoundError(fmt.Sprintf("Inventory usage %s not found on order %s", usageID, o.OrderNumber))
}

// GetInventoryUsage returns the usage line with the given ID, or nil
func (o *Order) GetInventoryUsage(usageID uuid.UUID) *InventoryUsage {
	for idx := range o.InventoryUsages {
		if o.InventoryUsages[idx].ID == usageID {
			return &o.InventoryUsages[idx]
		}
	}
	return nil
}

// InventoryCost sums TotalCost over all usage lines
func (o *Order) InventoryCost() decimal.Decimal {
	total := decimal.Zero
	for _, u := range o.InventoryUsages {
		total = total.Add(u.TotalCost)
	}
	return total
}
