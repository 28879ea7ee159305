package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	CategoryID *uuid.UUID      `json:"category_id"`
	Name       string          `json:"name" binding:"required,min=1,max=255"`
	Price      decimal.Decimal `json:"price" binding:"required"`
	Active     *bool           `json:"active"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoryID *uuid.UUID       `json:"category_id"`
	Name       *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Price      *decimal.Decimal `json:"price"`
	Active     *bool            `json:"active"`
}

// CategoryRequest represents a category create/rename request
type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// SetStockRequest represents an administrative stock overwrite request
type SetStockRequest struct {
	Quantity      int `json:"quantity" binding:"min=0"`
	QuantityAlert int `json:"quantity_alert" binding:"min=0"`
}
