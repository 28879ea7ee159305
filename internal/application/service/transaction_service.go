package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mataampos/mataam-api/internal/domain/entity"
	"github.com/mataampos/mataam-api/internal/domain/enum"
	"github.com/mataampos/mataam-api/internal/domain/repository"
	"github.com/mataampos/mataam-api/pkg/apperror"
	"github.com/mataampos/mataam-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionService handles the revenue/expense ledger
type TransactionService struct {
	transactionRepo repository.TransactionRepository
	currencyRepo    repository.CurrencyRepository
	employeeRepo    repository.EmployeeRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repository.TransactionRepository,
	currencyRepo repository.CurrencyRepository,
	employeeRepo repository.EmployeeRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		currencyRepo:    currencyRepo,
		employeeRepo:    employeeRepo,
	}
}

// PostTransactionInput represents the post transaction input
type PostTransactionInput struct {
	OccurredAt  *time.Time
	Type        enum.TransactionType
	Class       enum.TransactionClass
	Amount      decimal.Decimal
	Currency    string
	Description string
	RelatedID   *uuid.UUID
	UserID      *uuid.UUID
	BranchID    *uuid.UUID
}

// PostTransaction records one ledger posting. The currency must be one of
// the configured symbols; amounts are stored as given and never converted.
func (s *TransactionService) PostTransaction(ctx context.Context, input *PostTransactionInput) (*entity.Transaction, error) {
	if !input.Type.Valid() {
		return nil, apperror.NewBadRequestError("Unknown transaction type")
	}
	if !input.Class.Valid() {
		return nil, apperror.NewBadRequestError("Unknown transaction classification")
	}
	if !input.Amount.IsPositive() {
		return nil, apperror.NewBadRequestError("Amount must be positive")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperror.NewBadRequestError("Description is required")
	}

	currency, err := s.currencyRepo.GetBySymbol(ctx, input.Currency)
	if err != nil {
		return nil, err
	}
	if currency == nil {
		return nil, apperror.NewBadRequestError("Unknown currency: " + input.Currency)
	}

	occurredAt := time.Now()
	if input.OccurredAt != nil {
		occurredAt = *input.OccurredAt
	}

	txn := &entity.Transaction{
		OccurredAt:  occurredAt,
		Type:        input.Type,
		Class:       input.Class,
		Amount:      input.Amount,
		Currency:    currency.Symbol,
		Description: input.Description,
		RelatedID:   input.RelatedID,
		UserID:      input.UserID,
		BranchID:    input.BranchID,
	}

	if err := s.transactionRepo.Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// PaySalaryInput represents the salary payout input
type PaySalaryInput struct {
	EmployeeID uuid.UUID
	Amount     decimal.Decimal
	Currency   string
	UserID     *uuid.UUID
}

// PaySalary posts an expense/salary transaction referencing the employee.
// A zero amount falls back to the employee's configured salary.
func (s *TransactionService) PaySalary(ctx context.Context, input *PaySalaryInput) (*entity.Transaction, error) {
	employee, err := s.employeeRepo.GetByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}

	amount := input.Amount
	if amount.IsZero() {
		amount = employee.Salary
	}
	if !amount.IsPositive() {
		return nil, apperror.NewBadRequestError("Salary amount must be positive")
	}

	relatedID := employee.ID
	return s.PostTransaction(ctx, &PostTransactionInput{
		Type:        enum.TransactionTypeExpense,
		Class:       enum.TransactionClassSalary,
		Amount:      amount,
		Currency:    input.Currency,
		Description: "Salary payout: " + employee.Name,
		RelatedID:   &relatedID,
		UserID:      input.UserID,
		BranchID:    employee.BranchID,
	})
}

// GetTransaction retrieves a posting by id
func (s *TransactionService) GetTransaction(ctx context.Context, id uint) (*entity.Transaction, error) {
	txn, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return txn, nil
}

// ListTransactions lists postings with filtering
func (s *TransactionService) ListTransactions(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	txns, total, err := s.transactionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(txns, pag), nil
}

// DeleteTransaction removes one posting
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uint) error {
	err := s.transactionRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NewNotFoundError("Transaction")
	}
	return err
}

// ClearTransactions wipes the whole ledger; administrative.
func (s *TransactionService) ClearTransactions(ctx context.Context) error {
	return s.transactionRepo.Clear(ctx)
}

// Aggregate returns per-currency revenue and expense sums for the window.
// Different currencies are reported side by side, never merged.
func (s *TransactionService) Aggregate(ctx context.Context, filter *repository.TransactionAggregateFilter) (map[string]repository.CurrencyTotals, error) {
	return s.transactionRepo.Aggregate(ctx, filter)
}
