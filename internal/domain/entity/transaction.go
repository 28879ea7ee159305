package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mataampos/mataam-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Transaction is a revenue or expense posting in the multi-currency ledger.
// Amounts are recorded against a currency symbol and are never converted;
// aggregation keeps currencies apart. RelatedID is a soft reference (for
// example the employee a salary payout was made to); orphans are tolerated.
type Transaction struct {
	ID          uint                  `gorm:"primaryKey" json:"id"`
	OccurredAt  time.Time             `gorm:"not null;index" json:"occurred_at"`
	Type        enum.TransactionType  `gorm:"size:20;not null;index" json:"type"`
	Class       enum.TransactionClass `gorm:"size:30;not null" json:"classification"`
	Amount      decimal.Decimal       `gorm:"type:decimal(20,4);not null" json:"amount"`
	Currency    string                `gorm:"size:10;not null;index" json:"currency"`
	Description string                `gorm:"size:255;not null" json:"description"`
	RelatedID   *uuid.UUID            `gorm:"type:uuid" json:"related_id,omitempty"`
	UserID      *uuid.UUID            `gorm:"type:uuid" json:"user_id,omitempty"`
	BranchID    *uuid.UUID            `gorm:"type:uuid" json:"branch_id,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
