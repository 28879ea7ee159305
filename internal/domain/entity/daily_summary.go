package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TopItem is one entry of a summary's best-seller ranking.
type TopItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CashierPerformance is one cashier's completed-order tally for a day.
type CashierPerformance struct {
	Cashier    string          `json:"cashier"`
	Orders     int             `json:"orders"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

// DailySummary is the immutable snapshot of one closed business day. It is
// written exactly once by close-day and never recomputed; the breakdown
// columns are frozen JSON documents. Amount columns are in the till's
// operating currency.
type DailySummary struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	SummaryDate      time.Time       `gorm:"type:date;not null;uniqueIndex" json:"summary_date"`
	NetSales         decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"net_sales"`
	CashTotal        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"cash_total"`
	CardTotal        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"card_total"`
	NetworkTotal     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"network_total"`
	HospitalityTotal decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"hospitality_total"`
	TotalOrders      int             `gorm:"not null" json:"total_orders"`
	TotalRefunds     int             `gorm:"not null" json:"total_refunds"`
	NetworkByBank    string          `gorm:"type:text" json:"-"`
	TopItems         string          `gorm:"type:text" json:"-"`
	CashierStats     string          `gorm:"type:text" json:"-"`
	CreatedAt        time.Time       `json:"created_at"`
}

// TableName returns the table name for the DailySummary model
func (DailySummary) TableName() string {
	return "daily_summaries"
}

// DecodeNetworkByBank returns the per-bank network/transfer breakdown.
func (s *DailySummary) DecodeNetworkByBank() (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	if s.NetworkByBank == "" {
		return out, nil
	}
	err := json.Unmarshal([]byte(s.NetworkByBank), &out)
	return out, err
}

// DecodeTopItems returns the ranked best-seller list.
func (s *DailySummary) DecodeTopItems() ([]TopItem, error) {
	if s.TopItems == "" {
		return nil, nil
	}
	var items []TopItem
	err := json.Unmarshal([]byte(s.TopItems), &items)
	return items, err
}

// DecodeCashierStats returns the per-cashier performance list.
func (s *DailySummary) DecodeCashierStats() ([]CashierPerformance, error) {
	if s.CashierStats == "" {
		return nil, nil
	}
	var stats []CashierPerformance
	err := json.Unmarshal([]byte(s.CashierStats), &stats)
	return stats, err
}

// MarshalJSON inlines the decoded breakdowns for API consumers.
func (s DailySummary) MarshalJSON() ([]byte, error) {
	type Alias DailySummary
	byBank, err := s.DecodeNetworkByBank()
	if err != nil {
		return nil, err
	}
	topItems, err := s.DecodeTopItems()
	if err != nil {
		return nil, err
	}
	cashiers, err := s.DecodeCashierStats()
	if err != nil {
		return nil, err
	}
	return json.Marshal(&struct {
		Alias
		SummaryDate   string                     `json:"summary_date"`
		NetworkByBank map[string]decimal.Decimal `json:"network_by_bank"`
		TopItems      []TopItem                  `json:"top_selling_items"`
		CashierStats  []CashierPerformance       `json:"cashier_performance"`
	}{
		Alias:         Alias(s),
		SummaryDate:   s.SummaryDate.Format("2006-01-02"),
		NetworkByBank: byBank,
		TopItems:      topItems,
		CashierStats:  cashiers,
	})
}
