package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one requested line of a checkout
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	Note      *string   `json:"note" binding:"omitempty,max=255"`
}

// CreateOrderRequest represents an order creation request
type CreateOrderRequest struct {
	CashierName          string             `json:"cashier_name" binding:"required,min=1,max=100"`
	CustomerName         *string            `json:"customer_name" binding:"omitempty,max=100"`
	FulfillmentType      string             `json:"fulfillment_type" binding:"omitempty,oneof=pickup delivery"`
	PaymentMethod        string             `json:"payment_method" binding:"required"`
	BankName             string             `json:"bank_name" binding:"omitempty,max=100"`
	HospitalityRecipient string             `json:"hospitality_recipient" binding:"omitempty,max=100"`
	Discount             decimal.Decimal    `json:"discount"`
	Notes                string             `json:"notes"`
	Items                []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest represents an order status change request
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderFilterRequest represents order filter parameters
type OrderFilterRequest struct {
	Search        string `form:"search"`
	Status        string `form:"status"`
	PaymentMethod string `form:"payment_method"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}
