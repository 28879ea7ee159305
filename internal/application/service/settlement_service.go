package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mataampos/mataam-api/internal/config"
	"github.com/mataampos/mataam-api/internal/domain/entity"
	"github.com/mataampos/mataam-api/internal/domain/enum"
	"github.com/mataampos/mataam-api/internal/domain/repository"
	"github.com/mataampos/mataam-api/pkg/apperror"
	"github.com/mataampos/mataam-api/pkg/lock"
	"github.com/mataampos/mataam-api/pkg/logger"
	"github.com/mataampos/mataam-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// settlementLockKey names the exclusive section every close-day runs under.
const settlementLockKey = "settlement:close-day"

// unknownBank is the bucket for bank payments whose bank could not be
// determined.
const unknownBank = "unknown"

// legacyBankNote matches bank names that old till clients wrote into the
// order notes instead of the bank field ("bank transfer via: X").
var legacyBankNote = regexp.MustCompile(`تحويل بنكي عبر:\s*(\S[^\n]*)`)

// SettlementService owns daily summaries and the close-day operation
type SettlementService struct {
	settlementRepo repository.SettlementRepository
	locker         lock.Locker
	cfg            config.SettlementConfig
}

// NewSettlementService creates a new settlement service
func NewSettlementService(settlementRepo repository.SettlementRepository, locker lock.Locker, cfg config.SettlementConfig) *SettlementService {
	return &SettlementService{
		settlementRepo: settlementRepo,
		locker:         locker,
		cfg:            cfg,
	}
}

// ComputeSummary folds the day's active orders into an immutable summary.
// Rejected orders count as refunds and contribute nothing to the totals, so
// cash + card + network + hospitality always equals net sales. Hospitality
// has no bank, so the per-bank breakdown covers network and transfer only.
func (s *SettlementService) ComputeSummary(orders []entity.Order) (*entity.DailySummary, error) {
	summary := &entity.DailySummary{
		NetSales:         decimal.Zero,
		CashTotal:        decimal.Zero,
		CardTotal:        decimal.Zero,
		NetworkTotal:     decimal.Zero,
		HospitalityTotal: decimal.Zero,
	}

	byBank := map[string]decimal.Decimal{}
	itemQty := map[string]int{}
	cashiers := map[string]*entity.CashierPerformance{}
	excluded := make(map[string]bool, len(s.cfg.ExcludedCashiers))
	for _, name := range s.cfg.ExcludedCashiers {
		excluded[strings.ToLower(name)] = true
	}

	for i := range orders {
		o := &orders[i]
		if o.Status == enum.OrderStatusRejected {
			summary.TotalRefunds++
			continue
		}
		summary.TotalOrders++
		summary.NetSales = summary.NetSales.Add(o.FinalAmount)

		switch o.PaymentMethod {
		case enum.PaymentMethodCash:
			summary.CashTotal = summary.CashTotal.Add(o.FinalAmount)
		case enum.PaymentMethodCard:
			summary.CardTotal = summary.CardTotal.Add(o.FinalAmount)
		case enum.PaymentMethodNetwork, enum.PaymentMethodTransfer:
			summary.NetworkTotal = summary.NetworkTotal.Add(o.FinalAmount)
			bank := bankOf(o)
			byBank[bank] = byBank[bank].Add(o.FinalAmount)
		case enum.PaymentMethodHospitality:
			summary.HospitalityTotal = summary.HospitalityTotal.Add(o.FinalAmount)
		}

		for j := range o.Items {
			itemQty[o.Items[j].Name] += o.Items[j].Quantity
		}

		if !excluded[strings.ToLower(o.CashierName)] {
			perf, ok := cashiers[o.CashierName]
			if !ok {
				perf = &entity.CashierPerformance{Cashier: o.CashierName, TotalSales: decimal.Zero}
				cashiers[o.CashierName] = perf
			}
			perf.Orders++
			perf.TotalSales = perf.TotalSales.Add(o.FinalAmount)
		}
	}

	topItems := rankTopItems(itemQty, s.cfg.TopItemsLimit)
	cashierStats := rankCashiers(cashiers)

	byBankJSON, err := json.Marshal(byBank)
	if err != nil {
		return nil, err
	}
	topItemsJSON, err := json.Marshal(topItems)
	if err != nil {
		return nil, err
	}
	cashiersJSON, err := json.Marshal(cashierStats)
	if err != nil {
		return nil, err
	}

	summary.NetworkByBank = string(byBankJSON)
	summary.TopItems = string(topItemsJSON)
	summary.CashierStats = string(cashiersJSON)
	return summary, nil
}

// bankOf resolves the bank behind a network or transfer payment, falling
// back to the notes shim and finally the unknown bucket.
func bankOf(o *entity.Order) string {
	if o.BankName != nil && *o.BankName != "" {
		return *o.BankName
	}
	if m := legacyBankNote.FindStringSubmatch(o.Notes); m != nil {
		if bank := strings.TrimSpace(m[1]); bank != "" {
			return bank
		}
	}
	return unknownBank
}

func rankTopItems(itemQty map[string]int, limit int) []entity.TopItem {
	items := make([]entity.TopItem, 0, len(itemQty))
	for name, qty := range itemQty {
		items = append(items, entity.TopItem{Name: name, Quantity: qty})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Quantity != items[j].Quantity {
			return items[i].Quantity > items[j].Quantity
		}
		return items[i].Name < items[j].Name
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func rankCashiers(cashiers map[string]*entity.CashierPerformance) []entity.CashierPerformance {
	stats := make([]entity.CashierPerformance, 0, len(cashiers))
	for _, perf := range cashiers {
		stats = append(stats, *perf)
	}
	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].TotalSales.Equal(stats[j].TotalSales) {
			return stats[i].TotalSales.GreaterThan(stats[j].TotalSales)
		}
		return stats[i].Cashier < stats[j].Cashier
	})
	return stats
}

// CloseDay settles the given business date. The whole operation runs under
// the settlement lock so two closes cannot interleave; the summary write,
// archive and purge are one transaction in the repository.
func (s *SettlementService) CloseDay(ctx context.Context, businessDate time.Time) (*entity.DailySummary, error) {
	release, err := s.locker.Acquire(ctx, settlementLockKey, s.cfg.LockTTL)
	if errors.Is(err, lock.ErrNotAcquired) {
		return nil, apperror.NewConflictError("A close-day is already in progress")
	}
	if err != nil {
		return nil, err
	}
	defer release()

	summary, err := s.settlementRepo.CloseDay(ctx, businessDate, s.cfg.SequenceStart, s.ComputeSummary)
	if errors.Is(err, repository.ErrDayAlreadyClosed) {
		return nil, apperror.NewConflictError("This business day is already closed")
	}
	if err != nil {
		return nil, err
	}

	logger.WithModule("settlement").WithField("summary_date", summary.SummaryDate.Format("2006-01-02")).
		Info("business day closed")
	return summary, nil
}

// GetSummary retrieves a summary by id
func (s *SettlementService) GetSummary(ctx context.Context, id uint) (*entity.DailySummary, error) {
	summary, err := s.settlementRepo.GetSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, apperror.NewNotFoundError("Summary")
	}
	return summary, nil
}

// GetSummaryByDate retrieves the summary of one business date
func (s *SettlementService) GetSummaryByDate(ctx context.Context, date time.Time) (*entity.DailySummary, error) {
	summary, err := s.settlementRepo.GetSummaryByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, apperror.NewNotFoundError("Summary")
	}
	return summary, nil
}

// ListSummaries lists summaries with date-range filtering
func (s *SettlementService) ListSummaries(ctx context.Context, params *repository.SummaryFilterParams) (*pagination.PaginatedResult[entity.DailySummary], error) {
	summaries, total, err := s.settlementRepo.ListSummaries(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(summaries, pag), nil
}

// DeleteSummary removes one summary row; administrative.
func (s *SettlementService) DeleteSummary(ctx context.Context, id uint) error {
	err := s.settlementRepo.DeleteSummary(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NewNotFoundError("Summary")
	}
	return err
}

// ClearSummaries wipes the settlement log; administrative.
func (s *SettlementService) ClearSummaries(ctx context.Context) error {
	return s.settlementRepo.ClearSummaries(ctx)
}

// ListArchivedOrders lists archived orders, optionally for one business date
func (s *SettlementService) ListArchivedOrders(ctx context.Context, params *repository.ArchivedOrderFilterParams) (*pagination.PaginatedResult[entity.ArchivedOrder], error) {
	orders, total, err := s.settlementRepo.ListArchivedOrders(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}
