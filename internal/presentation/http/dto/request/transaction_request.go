package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PostTransactionRequest represents a ledger posting request
type PostTransactionRequest struct {
	OccurredAt     *time.Time      `json:"occurred_at"`
	Type           string          `json:"type" binding:"required,oneof=revenue expense"`
	Classification string          `json:"classification" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Currency       string          `json:"currency" binding:"required,max=10"`
	Description    string          `json:"description" binding:"required,max=255"`
	RelatedID      *uuid.UUID      `json:"related_id"`
	BranchID       *uuid.UUID      `json:"branch_id"`
}

// PaySalaryRequest represents a salary payout request
type PaySalaryRequest struct {
	EmployeeID uuid.UUID       `json:"employee_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency" binding:"required,max=10"`
}

// TransactionFilterRequest represents ledger filter parameters
type TransactionFilterRequest struct {
	Type           string `form:"type"`
	Classification string `form:"classification"`
	Currency       string `form:"currency"`
	StartDate      string `form:"start_date"`
	EndDate        string `form:"end_date"`
	Page           int    `form:"page"`
	PerPage        int    `form:"per_page"`
}
