package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBankRequest represents a bank creation request
type CreateBankRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateCurrencyRequest represents a currency configuration request
type CreateCurrencyRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=100"`
	Symbol       string          `json:"symbol" binding:"required,min=1,max=10"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}

// UpdateCurrencyRateRequest represents an exchange rate update request
type UpdateCurrencyRateRequest struct {
	ExchangeRate decimal.Decimal `json:"exchange_rate" binding:"required"`
}

// CreateBranchRequest represents a branch creation request
type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Address string `json:"address" binding:"omitempty,max=255"`
	Phone   string `json:"phone" binding:"omitempty,max=30"`
}

// UpdateBranchRequest represents a branch update request
type UpdateBranchRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=100"`
	Address *string `json:"address" binding:"omitempty,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=30"`
}

// CreateEmployeeRequest represents an employee creation request
type CreateEmployeeRequest struct {
	BranchID *uuid.UUID      `json:"branch_id"`
	Name     string          `json:"name" binding:"required,min=1,max=100"`
	Phone    string          `json:"phone" binding:"omitempty,max=30"`
	Salary   decimal.Decimal `json:"salary"`
}

// UpdateEmployeeRequest represents an employee update request
type UpdateEmployeeRequest struct {
	BranchID *uuid.UUID       `json:"branch_id"`
	Name     *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Phone    *string          `json:"phone" binding:"omitempty,max=30"`
	Salary   *decimal.Decimal `json:"salary"`
}
