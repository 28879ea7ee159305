package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mataampos/mataam-api/internal/domain/entity"
	domainRepo "github.com/mataampos/mataam-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settlementRepository struct {
	db *gorm.DB
}

// NewSettlementRepository creates a new settlement repository
func NewSettlementRepository(db *gorm.DB) domainRepo.SettlementRepository {
	return &settlementRepository{db: db}
}

// CloseDay is the settlement unit of work. Everything runs inside one
// transaction: the summary row, the archive copies, the working-set purge
// and the sequence restart either all land or none do. The active orders
// are read inside the same transaction the summary is computed from, so the
// summary can never describe orders that were not archived.
func (r *settlementRepository) CloseDay(ctx context.Context, businessDate time.Time, sequenceStart int, compute domainRepo.SummaryComputeFunc) (*entity.DailySummary, error) {
	day := truncateToDate(businessDate)
	var summary *entity.DailySummary

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&entity.DailySummary{}).
			Where("summary_date = ?", day).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return domainRepo.ErrDayAlreadyClosed
		}

		var orders []entity.Order
		if err := tx.Preload("Items").Order("id ASC").Find(&orders).Error; err != nil {
			return err
		}

		s, err := compute(orders)
		if err != nil {
			return err
		}
		s.SummaryDate = day

		// The unique index on summary_date backs the existence check above
		// against a concurrent close that slipped past it.
		if err := tx.Create(s).Error; err != nil {
			return err
		}

		ids := make([]uint, 0, len(orders))
		for i := range orders {
			archived, err := entity.NewArchivedOrder(&orders[i], day)
			if err != nil {
				return err
			}
			if err := tx.Create(archived).Error; err != nil {
				return err
			}
			ids = append(ids, orders[i].ID)
		}

		// Purge exactly the rows that were summarized; an order created
		// while the close runs belongs to the next business day.
		if len(ids) > 0 {
			if err := tx.Where("order_id IN ?", ids).Delete(&entity.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", ids).Delete(&entity.Order{}).Error; err != nil {
				return err
			}
		}

		if err := resetOrderSequence(tx, sequenceStart); err != nil {
			return err
		}

		summary = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// resetOrderSequence restarts order numbering for the next business day.
func resetOrderSequence(tx *gorm.DB, start int) error {
	switch tx.Dialector.Name() {
	case "postgres":
		return tx.Exec(fmt.Sprintf("ALTER SEQUENCE orders_id_seq RESTART WITH %d", start)).Error
	case "sqlite":
		// Without an AUTOINCREMENT table sqlite reuses max(rowid)+1, which
		// is the configured start once the working set is empty. Drop any
		// stale sequence bookkeeping and rely on that.
		return tx.Exec("DELETE FROM sqlite_sequence WHERE name = 'orders'").Error
	default:
		return fmt.Errorf("unsupported dialect for sequence reset: %s", tx.Dialector.Name())
	}
}

func (r *settlementRepository) GetSummary(ctx context.Context, id uint) (*entity.DailySummary, error) {
	var summary entity.DailySummary
	err := r.db.WithContext(ctx).First(&summary, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &summary, err
}

func (r *settlementRepository) GetSummaryByDate(ctx context.Context, date time.Time) (*entity.DailySummary, error) {
	var summary entity.DailySummary
	err := r.db.WithContext(ctx).First(&summary, "summary_date = ?", truncateToDate(date)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &summary, err
}

func (r *settlementRepository) ListSummaries(ctx context.Context, params *domainRepo.SummaryFilterParams) ([]entity.DailySummary, int64, error) {
	var summaries []entity.DailySummary
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.DailySummary{})

	if params.StartDate != nil {
		query = query.Where("summary_date >= ?", truncateToDate(*params.StartDate))
	}

	if params.EndDate != nil {
		query = query.Where("summary_date <= ?", truncateToDate(*params.EndDate))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("summary_date DESC").
		Find(&summaries).Error

	return summaries, total, err
}

func (r *settlementRepository) DeleteSummary(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.DailySummary{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *settlementRepository) ClearSummaries(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&entity.DailySummary{}).Error
}

func (r *settlementRepository) ListArchivedOrders(ctx context.Context, params *domainRepo.ArchivedOrderFilterParams) ([]entity.ArchivedOrder, int64, error) {
	var orders []entity.ArchivedOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ArchivedOrder{})

	if params.BusinessDate != nil {
		query = query.Where("business_date = ?", truncateToDate(*params.BusinessDate))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("business_date DESC, order_no ASC").
		Find(&orders).Error

	return orders, total, err
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
