package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/mataampos/mataam-api/internal/config"
	"github.com/mataampos/mataam-api/internal/domain/entity"
	"github.com/mataampos/mataam-api/internal/domain/enum"
	infra "github.com/mataampos/mataam-api/internal/infrastructure/repository"
	"github.com/mataampos/mataam-api/pkg/apperror"
	"github.com/mataampos/mataam-api/pkg/lock"
	"github.com/shopspring/decimal"
)

func testSettlementConfig() config.SettlementConfig {
	return config.SettlementConfig{
		OperatingCurrency: "ر.ي",
		SequenceStart:     1,
		TopItemsLimit:     5,
		ExcludedCashiers:  []string{"unregistered"},
		LockTTL:           time.Second,
	}
}

func newComputeService(cfg config.SettlementConfig) *SettlementService {
	return NewSettlementService(nil, lock.NewLocalLocker(), cfg)
}

func paidOrder(cashier string, method enum.PaymentMethod, amount int64) entity.Order {
	total := decimal.NewFromInt(amount)
	return entity.Order{
		CashierName:   cashier,
		Status:        enum.OrderStatusCompleted,
		PaymentMethod: method,
		SubTotal:      total,
		Discount:      decimal.Zero,
		FinalAmount:   total,
	}
}

func TestComputeSummaryTotalsAddUp(t *testing.T) {
	svc := newComputeService(testSettlementConfig())

	bank := "Al-Amal"
	network := paidOrder("sara", enum.PaymentMethodNetwork, 50)
	network.BankName = &bank
	rejected := paidOrder("sara", enum.PaymentMethodCash, 999)
	rejected.Status = enum.OrderStatusRejected

	summary, err := svc.ComputeSummary([]entity.Order{
		paidOrder("sara", enum.PaymentMethodCash, 100),
		paidOrder("omar", enum.PaymentMethodCard, 80),
		network,
		paidOrder("omar", enum.PaymentMethodHospitality, 20),
		rejected,
	})
	if err != nil {
		t.Fatalf("ComputeSummary: %v", err)
	}

	if summary.TotalOrders != 4 {
		t.Errorf("total orders = %d, want 4", summary.TotalOrders)
	}
	if summary.TotalRefunds != 1 {
		t.Errorf("total refunds = %d, want 1", summary.TotalRefunds)
	}
	if !summary.NetSales.Equal(decimal.NewFromInt(250)) {
		t.Errorf("net sales = %s, want 250", summary.NetSales)
	}

	sum := summary.CashTotal.Add(summary.CardTotal).Add(summary.NetworkTotal).Add(summary.HospitalityTotal)
	if !sum.Equal(summary.NetSales) {
		t.Errorf("method totals sum to %s, net sales is %s", sum, summary.NetSales)
	}
	if !summary.CashTotal.Equal(decimal.NewFromInt(100)) {
		t.Errorf("cash = %s, want 100", summary.CashTotal)
	}
	if !summary.HospitalityTotal.Equal(decimal.NewFromInt(20)) {
		t.Errorf("hospitality = %s, want 20", summary.HospitalityTotal)
	}
}

func TestComputeSummaryBankBreakdown(t *testing.T) {
	svc := newComputeService(testSettlementConfig())

	amal := "Al-Amal"
	kuraimi := "Al-Kuraimi"
	withBank := paidOrder("sara", enum.PaymentMethodNetwork, 50)
	withBank.BankName = &amal
	transfer := paidOrder("sara", enum.PaymentMethodTransfer, 30)
	transfer.BankName = &kuraimi

	// Old till clients put the bank in the notes instead of the bank field.
	legacy := paidOrder("sara", enum.PaymentMethodTransfer, 25)
	legacy.Notes = "تحويل بنكي عبر: بنك التضامن"

	bare := paidOrder("sara", enum.PaymentMethodNetwork, 10)

	summary, err := svc.ComputeSummary([]entity.Order{withBank, transfer, legacy, bare})
	if err != nil {
		t.Fatalf("ComputeSummary: %v", err)
	}

	byBank, err := summary.DecodeNetworkByBank()
	if err != nil {
		t.Fatalf("DecodeNetworkByBank: %v", err)
	}
	if !byBank["Al-Amal"].Equal(decimal.NewFromInt(50)) {
		t.Errorf("Al-Amal = %s, want 50", byBank["Al-Amal"])
	}
	if !byBank["Al-Kuraimi"].Equal(decimal.NewFromInt(30)) {
		t.Errorf("Al-Kuraimi = %s, want 30", byBank["Al-Kuraimi"])
	}
	if !byBank["بنك التضامن"].Equal(decimal.NewFromInt(25)) {
		t.Errorf("notes bank = %s, want 25", byBank["بنك التضامن"])
	}
	if !byBank["unknown"].Equal(decimal.NewFromInt(10)) {
		t.Errorf("unknown bucket = %s, want 10", byBank["unknown"])
	}
	if !summary.NetworkTotal.Equal(decimal.NewFromInt(115)) {
		t.Errorf("network total = %s, want 115", summary.NetworkTotal)
	}
}

func TestComputeSummaryTopItems(t *testing.T) {
	cfg := testSettlementConfig()
	cfg.TopItemsLimit = 2
	svc := newComputeService(cfg)

	order := paidOrder("sara", enum.PaymentMethodCash, 100)
	order.Items = []entity.OrderItem{
		{Name: "Shawarma", Quantity: 5},
		{Name: "Cola", Quantity: 3},
		{Name: "Burger", Quantity: 3},
		{Name: "Fries", Quantity: 1},
	}

	summary, err := svc.ComputeSummary([]entity.Order{order})
	if err != nil {
		t.Fatalf("ComputeSummary: %v", err)
	}

	top, err := summary.DecodeTopItems()
	if err != nil {
		t.Fatalf("DecodeTopItems: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("top items len = %d, want 2", len(top))
	}
	if top[0].Name != "Shawarma" || top[0].Quantity != 5 {
		t.Errorf("top[0] = %+v, want Shawarma x5", top[0])
	}
	// Ties break by name.
	if top[1].Name != "Burger" || top[1].Quantity != 3 {
		t.Errorf("top[1] = %+v, want Burger x3", top[1])
	}
}

func TestComputeSummaryExcludesPlaceholderCashiers(t *testing.T) {
	svc := newComputeService(testSettlementConfig())

	summary, err := svc.ComputeSummary([]entity.Order{
		paidOrder("sara", enum.PaymentMethodCash, 60),
		paidOrder("sara", enum.PaymentMethodCash, 40),
		paidOrder("Unregistered", enum.PaymentMethodCash, 500),
	})
	if err != nil {
		t.Fatalf("ComputeSummary: %v", err)
	}

	stats, err := summary.DecodeCashierStats()
	if err != nil {
		t.Fatalf("DecodeCashierStats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("cashier stats len = %d, want 1", len(stats))
	}
	if stats[0].Cashier != "sara" || stats[0].Orders != 2 {
		t.Errorf("stats[0] = %+v, want sara with 2 orders", stats[0])
	}
	if !stats[0].TotalSales.Equal(decimal.NewFromInt(100)) {
		t.Errorf("sara total = %s, want 100", stats[0].TotalSales)
	}

	// The excluded cashier's orders still count toward the day's sales.
	if !summary.NetSales.Equal(decimal.NewFromInt(600)) {
		t.Errorf("net sales = %s, want 600", summary.NetSales)
	}
}

func TestCloseDaySettlesTheTill(t *testing.T) {
	db := newServiceTestDB(t)
	orderSvc := NewOrderService(
		infra.NewOrderRepository(db),
		infra.NewProductRepository(db),
		infra.NewInventoryRepository(db),
	)
	settlementSvc := NewSettlementService(
		infra.NewSettlementRepository(db), lock.NewLocalLocker(), testSettlementConfig())

	shawarma := addProduct(t, db, "Shawarma", 100, 10)
	juice := addProduct(t, db, "Juice", 50, 10)
	fries := addProduct(t, db, "Fries", 30, 10)

	ctx := context.Background()
	checkouts := []struct {
		product *entity.Product
		payment entity.PaymentDetails
	}{
		{shawarma, entity.PaymentDetails{Method: enum.PaymentMethodCash}},
		{juice, entity.PaymentDetails{Method: enum.PaymentMethodNetwork, BankName: "Al-Amal"}},
		{fries, entity.PaymentDetails{Method: enum.PaymentMethodCard}},
	}
	for _, c := range checkouts {
		if _, err := orderSvc.CreateOrder(ctx, &CreateOrderInput{
			CashierName:     "sara",
			FulfillmentType: enum.FulfillmentPickup,
			Payment:         c.payment,
			Items:           []CreateOrderItemInput{{ProductID: c.product.ID, Quantity: 1}},
		}); err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
	}

	summary, err := settlementSvc.CloseDay(ctx, time.Date(2025, 6, 1, 22, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CloseDay: %v", err)
	}

	if summary.TotalOrders != 3 || summary.TotalRefunds != 0 {
		t.Errorf("orders/refunds = %d/%d, want 3/0", summary.TotalOrders, summary.TotalRefunds)
	}
	if !summary.NetSales.Equal(decimal.NewFromInt(180)) {
		t.Errorf("net sales = %s, want 180", summary.NetSales)
	}
	if !summary.CashTotal.Equal(decimal.NewFromInt(100)) {
		t.Errorf("cash = %s, want 100", summary.CashTotal)
	}
	if !summary.NetworkTotal.Equal(decimal.NewFromInt(50)) {
		t.Errorf("network = %s, want 50", summary.NetworkTotal)
	}
	if !summary.CardTotal.Equal(decimal.NewFromInt(30)) {
		t.Errorf("card = %s, want 30", summary.CardTotal)
	}
	byBank, err := summary.DecodeNetworkByBank()
	if err != nil {
		t.Fatalf("DecodeNetworkByBank: %v", err)
	}
	if !byBank["Al-Amal"].Equal(decimal.NewFromInt(50)) {
		t.Errorf("Al-Amal = %s, want 50", byBank["Al-Amal"])
	}

	var open int64
	if err := db.Model(&entity.Order{}).Count(&open).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if open != 0 {
		t.Errorf("open orders after close = %d, want 0", open)
	}

	// The next period's numbering restarts from the configured start.
	next, err := orderSvc.CreateOrder(ctx, &CreateOrderInput{
		CashierName:     "sara",
		FulfillmentType: enum.FulfillmentPickup,
		Payment:         entity.PaymentDetails{Method: enum.PaymentMethodCash},
		Items:           []CreateOrderItemInput{{ProductID: shawarma.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder after close: %v", err)
	}
	if next.ID != 1 {
		t.Errorf("first order of the new period has id %d, want 1", next.ID)
	}
}

func TestCloseDayWhileLockHeld(t *testing.T) {
	locker := lock.NewLocalLocker()
	svc := NewSettlementService(nil, locker, testSettlementConfig())

	release, err := locker.Acquire(context.Background(), "settlement:close-day", time.Second)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer release()

	_, err = svc.CloseDay(context.Background(), time.Now())
	if err == nil {
		t.Fatal("expected close-day to be rejected while the lock is held")
	}
	if code := apperror.GetAppError(err).Code; code != http.StatusConflict {
		t.Errorf("code = %d, want %d", code, http.StatusConflict)
	}
}
