package repository

import (
	"context"
	"time"

	"github.com/mataampos/mataam-api/internal/domain/entity"
	"github.com/mataampos/mataam-api/internal/domain/enum"
	"github.com/mataampos/mataam-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CurrencyTotals is the aggregate of one currency's postings. Totals for
// different currencies are never combined.
type CurrencyTotals struct {
	Revenue decimal.Decimal `json:"revenue"`
	Expense decimal.Decimal `json:"expense"`
}

// TransactionRepository defines the interface for the revenue/expense ledger
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	GetByID(ctx context.Context, id uint) (*entity.Transaction, error)
	Delete(ctx context.Context, id uint) error
	// Clear removes every posting; administrative and irreversible.
	Clear(ctx context.Context) error
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	// Aggregate returns per-currency revenue/expense sums for the filter.
	Aggregate(ctx context.Context, filter *TransactionAggregateFilter) (map[string]CurrencyTotals, error)
}

// TransactionFilterParams contains filtering parameters for ledger queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	Type       *enum.TransactionType
	Class      *enum.TransactionClass
	Currency   string
	StartDate  *time.Time
	EndDate    *time.Time
}

// TransactionAggregateFilter bounds an aggregation window
type TransactionAggregateFilter struct {
	Type      *enum.TransactionType
	Currency  string
	StartDate *time.Time
	EndDate   *time.Time
}
