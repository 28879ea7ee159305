package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bank is a payment-channel reference row. Orders and summaries refer to
// banks by name only (soft reference); deleting a bank leaves history intact.
type Bank struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:100;not null;unique" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Bank) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bank model
func (Bank) TableName() string {
	return "banks"
}

// Currency is a configured currency. The symbol is what transactions are
// tagged with; the exchange rate is informational display data and is never
// applied to ledger totals.
type Currency struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name         string          `gorm:"size:100;not null" json:"name"`
	Symbol       string          `gorm:"size:10;not null;unique" json:"symbol"`
	ExchangeRate decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"exchange_rate"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (c *Currency) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Currency model
func (Currency) TableName() string {
	return "currencies"
}

// Branch represents a restaurant location
type Branch struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Address   string         `gorm:"size:255" json:"address"`
	Phone     string         `gorm:"size:30" json:"phone"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Branch model
func (Branch) TableName() string {
	return "branches"
}

// Employee is a staff member; salary payouts post expense transactions that
// soft-reference the employee id.
type Employee struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BranchID  *uuid.UUID      `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	Phone     string          `gorm:"size:30" json:"phone"`
	Salary    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"salary"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`

	Branch *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}
