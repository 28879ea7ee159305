package entity

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mataampos/mataam-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Order represents one sale in the current open period. Ids come from the
// orders sequence and restart from the configured start value after every
// close-day, so they are only unique within the open period; archived rows
// keep the original value in OrderNo.
type Order struct {
	ID                   uint                 `gorm:"primaryKey" json:"id"`
	UserID               *uuid.UUID           `gorm:"type:uuid;index" json:"user_id,omitempty"`
	CashierName          string               `gorm:"size:100;not null" json:"cashier_name"`
	CustomerName         *string              `gorm:"size:100" json:"customer_name,omitempty"`
	Status               enum.OrderStatus     `gorm:"default:0;index" json:"status"`
	FulfillmentType      enum.FulfillmentType `gorm:"size:20;not null;default:pickup" json:"fulfillment_type"`
	PaymentMethod        enum.PaymentMethod   `gorm:"size:20;not null" json:"payment_method"`
	BankName             *string              `gorm:"size:100" json:"bank_name,omitempty"`
	HospitalityRecipient *string              `gorm:"size:100" json:"hospitality_recipient,omitempty"`
	SubTotal             decimal.Decimal      `gorm:"type:decimal(20,4);not null" json:"sub_total"`
	Discount             decimal.Decimal      `gorm:"type:decimal(20,4);not null" json:"discount"`
	FinalAmount          decimal.Decimal      `gorm:"type:decimal(20,4);not null" json:"final_amount"`
	Notes                string               `gorm:"type:text" json:"notes"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// Payment returns the order's payment details as a tagged variant.
func (o *Order) Payment() PaymentDetails {
	d := PaymentDetails{Method: o.PaymentMethod}
	if o.BankName != nil {
		d.BankName = *o.BankName
	}
	if o.HospitalityRecipient != nil {
		d.Recipient = *o.HospitalityRecipient
	}
	return d
}

// OrderItem is a product snapshot line inside an order. Name and unit price
// are copied at the time of sale so later catalog edits cannot rewrite
// history.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Note      *string         `gorm:"size:255" json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal is unit price times quantity.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// PaymentDetails is the per-method payment variant. Exactly the fields the
// method needs are allowed to be set: bank for network/transfer, recipient
// for hospitality, nothing extra for cash/card.
type PaymentDetails struct {
	Method    enum.PaymentMethod `json:"method"`
	BankName  string             `json:"bank_name,omitempty"`
	Recipient string             `json:"recipient,omitempty"`
}

var (
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrBankRequired         = errors.New("bank name is required for network and transfer payments")
	ErrRecipientRequired    = errors.New("recipient is required for hospitality orders")
)

// Validate checks that the details are consistent with the method.
func (d PaymentDetails) Validate() error {
	if !d.Method.Valid() {
		return ErrUnknownPaymentMethod
	}
	if d.Method.RequiresBank() && d.BankName == "" {
		return ErrBankRequired
	}
	if d.Method == enum.PaymentMethodHospitality && d.Recipient == "" {
		return ErrRecipientRequired
	}
	return nil
}

// ArchivedOrder is a closed-day order moved out of the working set. It keeps
// its own surrogate id; OrderNo preserves the id the order had in the period
// it was sold, and BusinessDate records which settlement archived it. Line
// items are frozen as a JSON document since archived orders are read-only.
type ArchivedOrder struct {
	ID                   uint                 `gorm:"primaryKey" json:"id"`
	OrderNo              uint                 `gorm:"not null;index" json:"order_no"`
	BusinessDate         time.Time            `gorm:"type:date;not null;index" json:"business_date"`
	UserID               *uuid.UUID           `gorm:"type:uuid" json:"user_id,omitempty"`
	CashierName          string               `gorm:"size:100;not null" json:"cashier_name"`
	CustomerName         *string              `gorm:"size:100" json:"customer_name,omitempty"`
	Status               enum.OrderStatus     `gorm:"not null" json:"status"`
	FulfillmentType      enum.FulfillmentType `gorm:"size:20;not null" json:"fulfillment_type"`
	PaymentMethod        enum.PaymentMethod   `gorm:"size:20;not null" json:"payment_method"`
	BankName             *string              `gorm:"size:100" json:"bank_name,omitempty"`
	HospitalityRecipient *string              `gorm:"size:100" json:"hospitality_recipient,omitempty"`
	SubTotal             decimal.Decimal      `gorm:"type:decimal(20,4);not null" json:"sub_total"`
	Discount             decimal.Decimal      `gorm:"type:decimal(20,4);not null" json:"discount"`
	FinalAmount          decimal.Decimal      `gorm:"type:decimal(20,4);not null" json:"final_amount"`
	Notes                string               `gorm:"type:text" json:"notes"`
	OrderedAt            time.Time            `gorm:"not null" json:"ordered_at"`
	ItemsJSON            string               `gorm:"type:text" json:"-"`
	ArchivedAt           time.Time            `gorm:"autoCreateTime" json:"archived_at"`
}

// TableName returns the table name for the ArchivedOrder model
func (ArchivedOrder) TableName() string {
	return "archived_orders"
}

// NewArchivedOrder freezes an active order for the given business date.
func NewArchivedOrder(o *Order, businessDate time.Time) (*ArchivedOrder, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, err
	}
	return &ArchivedOrder{
		OrderNo:              o.ID,
		BusinessDate:         businessDate,
		UserID:               o.UserID,
		CashierName:          o.CashierName,
		CustomerName:         o.CustomerName,
		Status:               o.Status,
		FulfillmentType:      o.FulfillmentType,
		PaymentMethod:        o.PaymentMethod,
		BankName:             o.BankName,
		HospitalityRecipient: o.HospitalityRecipient,
		SubTotal:             o.SubTotal,
		Discount:             o.Discount,
		FinalAmount:          o.FinalAmount,
		Notes:                o.Notes,
		OrderedAt:            o.CreatedAt,
		ItemsJSON:            string(items),
	}, nil
}

// DecodeItems returns the frozen line items of an archived order.
func (a *ArchivedOrder) DecodeItems() ([]OrderItem, error) {
	if a.ItemsJSON == "" {
		return nil, nil
	}
	var items []OrderItem
	if err := json.Unmarshal([]byte(a.ItemsJSON), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MarshalJSON inlines the decoded line items for API consumers.
func (a ArchivedOrder) MarshalJSON() ([]byte, error) {
	type Alias ArchivedOrder
	items, err := a.DecodeItems()
	if err != nil {
		return nil, err
	}
	return json.Marshal(&struct {
		Alias
		Items []OrderItem `json:"items,omitempty"`
	}{
		Alias: Alias(a),
		Items: items,
	})
}
