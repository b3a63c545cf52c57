package models

import (
	"github.com/catering/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// InventoryItemModel is the persistence model for the InventoryItem aggregate root
type InventoryItemModel struct {
	AggregateModel
	ItemCode     string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	ItemName     string          `gorm:"type:varchar(100);not null"`
	Category     string          `gorm:"type:varchar(30);not null;index"`
	Unit         string          `gorm:"type:varchar(20)"`
	CurrentStock int             `gorm:"not null;default:0"`
	MinimumStock int             `gorm:"not null;default:0"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalValue   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Supplier     string          `gorm:"type:varchar(100)"`
	Location     string          `gorm:"type:varchar(100)"`
	Active       bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain InventoryItem
func (m *InventoryItemModel) ToDomain() *inventory.InventoryItem {
	return &inventory.InventoryItem{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ItemCode:          m.ItemCode,
		ItemName:          m.ItemName,
		Category:          inventory.Category(m.Category),
		Unit:              m.Unit,
		CurrentStock:      m.CurrentStock,
		MinimumStock:      m.MinimumStock,
		UnitCost:          m.UnitCost,
		TotalValue:        m.TotalValue,
		Supplier:          m.Supplier,
		Location:          m.Location,
		Active:            m.Active,
	}
}

// FromDomain populates the model from a domain InventoryItem
func (m *InventoryItemModel) FromDomain(i *inventory.InventoryItem) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.ItemCode = i.ItemCode
	m.ItemName = i.ItemName
	m.Category = string(i.Category)
	m.Unit = i.Unit
	m.CurrentStock = i.CurrentStock
	m.MinimumStock = i.MinimumStock
	m.UnitCost = i.UnitCost
	m.TotalValue = i.TotalValue
	m.Supplier = i.Supplier
	m.Location = i.Location
	m.Active = i.Active
}

// InventoryItemModelFromDomain creates a new persistence model from a domain InventoryItem
func InventoryItemModelFromDomain(i *inventory.InventoryItem) *InventoryItemModel {
	m := &InventoryItemModel{}
	m.FromDomain(i)
	return m
}
