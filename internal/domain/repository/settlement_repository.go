package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mataampos/mataam-api/internal/domain/entity"
	"github.com/mataampos/mataam-api/pkg/pagination"
)

// ErrDayAlreadyClosed is returned when a close is attempted for a business
// date that already has a summary.
var ErrDayAlreadyClosed = errors.New("business day is already closed")

// SummaryComputeFunc builds the day's summary from the active order set.
// It runs inside the close transaction so the computed summary and the
// archived rows always describe the same set of orders.
type SummaryComputeFunc func(orders []entity.Order) (*entity.DailySummary, error)

// SettlementRepository owns daily summaries, the order archive and the
// close-day unit of work.
type SettlementRepository interface {
	// CloseDay executes the settlement as one transaction: read the active
	// order set, compute the summary through compute, persist it, archive
	// exactly the orders that were read, purge them from the working set and
	// restart the order sequence at sequenceStart. Any failure rolls the
	// whole operation back. Returns ErrDayAlreadyClosed if businessDate is
	// already settled.
	CloseDay(ctx context.Context, businessDate time.Time, sequenceStart int, compute SummaryComputeFunc) (*entity.DailySummary, error)

	GetSummary(ctx context.Context, id uint) (*entity.DailySummary, error)
	GetSummaryByDate(ctx context.Context, date time.Time) (*entity.DailySummary, error)
	ListSummaries(ctx context.Context, params *SummaryFilterParams) ([]entity.DailySummary, int64, error)
	DeleteSummary(ctx context.Context, id uint) error
	// ClearSummaries wipes the whole settlement log; administrative.
	ClearSummaries(ctx context.Context) error

	ListArchivedOrders(ctx context.Context, params *ArchivedOrderFilterParams) ([]entity.ArchivedOrder, int64, error)
}

// SummaryFilterParams contains filtering parameters for summary queries
type SummaryFilterParams struct {
	Pagination *pagination.PaginationParams
	StartDate  *time.Time
	EndDate    *time.Time
}

// ArchivedOrderFilterParams contains filtering parameters for archive queries
type ArchivedOrderFilterParams struct {
	Pagination   *pagination.PaginationParams
	BusinessDate *time.Time
}
