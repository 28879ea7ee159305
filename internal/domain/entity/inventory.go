package entity

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem holds the quantity on hand for one product. Quantity is
// never allowed below zero; every mutation goes through a conditional
// update so concurrent checkouts cannot oversell.
type InventoryItem struct {
	ProductID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"product_id"`
	Quantity      int       `gorm:"not null;default:0" json:"quantity"`
	QuantityAlert int       `gorm:"not null;default:0" json:"quantity_alert"`
	UpdatedAt     time.Time `json:"updated_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName returns the table name for the InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// IsLow reports whether the stock has reached its alert threshold.
func (i *InventoryItem) IsLow() bool {
	return i.QuantityAlert > 0 && i.Quantity <= i.QuantityAlert
}
