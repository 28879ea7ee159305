package repository

import (
	"context"
	"errors"

	"github.com/mataampos/mataam-api/internal/domain/entity"
	domainRepo "github.com/mataampos/mataam-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction ledger repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id uint) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := r.db.WithContext(ctx).First(&txn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &txn, err
}

func (r *transactionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *transactionRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&entity.Transaction{}).Error
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var txns []entity.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Transaction{})

	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}

	if params.Class != nil {
		query = query.Where("class = ?", *params.Class)
	}

	if params.Currency != "" {
		query = query.Where("currency = ?", params.Currency)
	}

	if params.StartDate != nil {
		query = query.Where("occurred_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("occurred_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("id DESC").
		Find(&txns).Error

	return txns, total, err
}

// Aggregate sums postings per currency. Currencies are the GROUP BY key and
// are never folded together; the caller gets one bucket per symbol.
func (r *transactionRepository) Aggregate(ctx context.Context, filter *domainRepo.TransactionAggregateFilter) (map[string]domainRepo.CurrencyTotals, error) {
	var rows []struct {
		Currency string
		Revenue  decimal.Decimal
		Expense  decimal.Decimal
	}

	query := r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Select(`currency,
			COALESCE(SUM(CASE WHEN type = 'revenue' THEN amount ELSE 0 END), 0) AS revenue,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expense`).
		Group("currency")

	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}

	if filter.Currency != "" {
		query = query.Where("currency = ?", filter.Currency)
	}

	if filter.StartDate != nil {
		query = query.Where("occurred_at >= ?", *filter.StartDate)
	}

	if filter.EndDate != nil {
		query = query.Where("occurred_at <= ?", *filter.EndDate)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(map[string]domainRepo.CurrencyTotals, len(rows))
	for _, row := range rows {
		totals[row.Currency] = domainRepo.CurrencyTotals{
			Revenue: row.Revenue,
			Expense: row.Expense,
		}
	}
	return totals, nil
}
