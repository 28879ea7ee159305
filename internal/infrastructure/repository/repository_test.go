package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/mataampos/mataam-api/internal/domain/entity"
	"github.com/mataampos/mataam-api/internal/domain/enum"
	domainRepo "github.com/mataampos/mataam-api/internal/domain/repository"
	"github.com/mataampos/mataam-api/internal/infrastructure/database"
	"github.com/mataampos/mataam-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// One connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedProductWithStock(t *testing.T, db *gorm.DB, name string, price decimal.Decimal, stock int) *entity.Product {
	t.Helper()

	product := &entity.Product{Name: name, Price: price, Active: true}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	item := &entity.InventoryItem{ProductID: product.ID, Quantity: stock}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed inventory: %v", err)
	}
	return product
}

func stockOf(t *testing.T, db *gorm.DB, productID uuid.UUID) int {
	t.Helper()

	var item entity.InventoryItem
	if err := db.First(&item, "product_id = ?", productID).Error; err != nil {
		t.Fatalf("read stock: %v", err)
	}
	return item.Quantity
}

func TestDecrementBatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewInventoryRepository(db)
	ctx := context.Background()

	burger := seedProductWithStock(t, db, "Burger", decimal.NewFromInt(5), 10)
	cola := seedProductWithStock(t, db, "Cola", decimal.NewFromInt(2), 3)

	failed, err := repo.DecrementBatch(ctx, map[uuid.UUID]int{
		burger.ID: 4,
		cola.ID:   2,
	})
	if err != nil {
		t.Fatalf("DecrementBatch: %v", err)
	}
	if len(failed) != 0 {
		t.Fatalf("expected no failures, got %v", failed)
	}
	if got := stockOf(t, db, burger.ID); got != 6 {
		t.Errorf("burger stock = %d, want 6", got)
	}
	if got := stockOf(t, db, cola.ID); got != 1 {
		t.Errorf("cola stock = %d, want 1", got)
	}
}

func TestDecrementBatchInsufficientRollsBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewInventoryRepository(db)
	ctx := context.Background()

	burger := seedProductWithStock(t, db, "Burger", decimal.NewFromInt(5), 10)
	cola := seedProductWithStock(t, db, "Cola", decimal.NewFromInt(2), 1)

	failed, err := repo.DecrementBatch(ctx, map[uuid.UUID]int{
		burger.ID: 4,
		cola.ID:   2,
	})
	if err != nil {
		t.Fatalf("DecrementBatch: %v", err)
	}
	if len(failed) != 1 || failed[0] != cola.ID {
		t.Fatalf("failed = %v, want [%s]", failed, cola.ID)
	}

	// Nothing moved, not even the product that had enough.
	if got := stockOf(t, db, burger.ID); got != 10 {
		t.Errorf("burger stock = %d, want 10", got)
	}
	if got := stockOf(t, db, cola.ID); got != 1 {
		t.Errorf("cola stock = %d, want 1", got)
	}
}

func TestDecrementBatchUnderConcurrentLoad(t *testing.T) {
	db := newTestDB(t)
	repo := NewInventoryRepository(db)
	ctx := context.Background()

	const stock = 5
	const checkouts = 20
	burger := seedProductWithStock(t, db, "Burger", decimal.NewFromInt(5), stock)

	var wg sync.WaitGroup
	var successes atomic.Int32
	for i := 0; i < checkouts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			failed, err := repo.DecrementBatch(ctx, map[uuid.UUID]int{burger.ID: 1})
			if err != nil {
				t.Errorf("DecrementBatch: %v", err)
				return
			}
			if len(failed) == 0 {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	// Exactly one checkout per unit; the rest come back short-stocked.
	if got := successes.Load(); got != stock {
		t.Errorf("successful decrements = %d, want %d", got, stock)
	}
	if got := stockOf(t, db, burger.ID); got != 0 {
		t.Errorf("final stock = %d, want 0", got)
	}
}

func TestIncrementBatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewInventoryRepository(db)
	ctx := context.Background()

	burger := seedProductWithStock(t, db, "Burger", decimal.NewFromInt(5), 2)

	if err := repo.IncrementBatch(ctx, map[uuid.UUID]int{burger.ID: 3}); err != nil {
		t.Fatalf("IncrementBatch: %v", err)
	}
	if got := stockOf(t, db, burger.ID); got != 5 {
		t.Errorf("stock = %d, want 5", got)
	}
}

func seedOrder(t *testing.T, db *gorm.DB, product *entity.Product, qty int, method enum.PaymentMethod) *entity.Order {
	t.Helper()

	total := product.Price.Mul(decimal.NewFromInt(int64(qty)))
	order := &entity.Order{
		CashierName:     "sara",
		Status:          enum.OrderStatusCompleted,
		FulfillmentType: enum.FulfillmentPickup,
		PaymentMethod:   method,
		SubTotal:        total,
		Discount:        decimal.Zero,
		FinalAmount:     total,
		Items: []entity.OrderItem{
			{ProductID: product.ID, Name: product.Name, UnitPrice: product.Price, Quantity: qty},
		},
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func TestRefundCreditsStockOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	burger := seedProductWithStock(t, db, "Burger", decimal.NewFromInt(5), 10)
	order := seedOrder(t, db, burger, 3, enum.PaymentMethodCash)

	refunded, err := repo.Refund(ctx, order.ID)
	if err != nil {
		t.Fatalf("Refund: %v", err)
	}
	if refunded.Status != enum.OrderStatusRejected {
		t.Errorf("status = %v, want rejected", refunded.Status)
	}
	if got := stockOf(t, db, burger.ID); got != 13 {
		t.Errorf("stock = %d, want 13", got)
	}

	// A second refund must not credit stock again.
	if _, err := repo.Refund(ctx, order.ID); err != domainRepo.ErrAlreadyRejected {
		t.Fatalf("second refund err = %v, want ErrAlreadyRejected", err)
	}
	if got := stockOf(t, db, burger.ID); got != 13 {
		t.Errorf("stock after double refund = %d, want 13", got)
	}
}

func TestOrderListFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	burger := seedProductWithStock(t, db, "Burger", decimal.NewFromInt(5), 100)
	seedOrder(t, db, burger, 1, enum.PaymentMethodCash)
	rejected := seedOrder(t, db, burger, 1, enum.PaymentMethodCash)
	if _, err := repo.Refund(ctx, rejected.ID); err != nil {
		t.Fatalf("Refund: %v", err)
	}

	status := enum.OrderStatusRejected
	orders, total, err := repo.List(ctx, &domainRepo.OrderFilterParams{
		Pagination: pagination.DefaultPagination(),
		Status:     &status,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Fatalf("total = %d len = %d, want 1/1", total, len(orders))
	}
	if orders[0].ID != rejected.ID {
		t.Errorf("listed order %d, want %d", orders[0].ID, rejected.ID)
	}
}

func TestTransactionAggregateKeepsCurrenciesApart(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	postings := []entity.Transaction{
		{OccurredAt: time.Now(), Type: enum.TransactionTypeRevenue, Class: enum.TransactionClassSales, Amount: decimal.NewFromInt(100), Currency: "ر.ي", Description: "sales"},
		{OccurredAt: time.Now(), Type: enum.TransactionTypeRevenue, Class: enum.TransactionClassSales, Amount: decimal.NewFromInt(40), Currency: "ر.ي", Description: "sales"},
		{OccurredAt: time.Now(), Type: enum.TransactionTypeExpense, Class: enum.TransactionClassPurchases, Amount: decimal.NewFromInt(30), Currency: "ر.ي", Description: "supplies"},
		{OccurredAt: time.Now(), Type: enum.TransactionTypeRevenue, Class: enum.TransactionClassOther, Amount: decimal.NewFromInt(7), Currency: "$", Description: "misc"},
	}
	for i := range postings {
		if err := repo.Create(ctx, &postings[i]); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	totals, err := repo.Aggregate(ctx, &domainRepo.TransactionAggregateFilter{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	rial := totals["ر.ي"]
	if !rial.Revenue.Equal(decimal.NewFromInt(140)) {
		t.Errorf("rial revenue = %s, want 140", rial.Revenue)
	}
	if !rial.Expense.Equal(decimal.NewFromInt(30)) {
		t.Errorf("rial expense = %s, want 30", rial.Expense)
	}

	dollar := totals["$"]
	if !dollar.Revenue.Equal(decimal.NewFromInt(7)) {
		t.Errorf("dollar revenue = %s, want 7", dollar.Revenue)
	}
	if !dollar.Expense.Equal(decimal.Zero) {
		t.Errorf("dollar expense = %s, want 0", dollar.Expense)
	}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func passthroughSummary(orders []entity.Order) (*entity.DailySummary, error) {
	s := &entity.DailySummary{
		NetSales:         decimal.Zero,
		CashTotal:        decimal.Zero,
		CardTotal:        decimal.Zero,
		NetworkTotal:     decimal.Zero,
		HospitalityTotal: decimal.Zero,
	}
	for i := range orders {
		if orders[i].Status == enum.OrderStatusRejected {
			s.TotalRefunds++
			continue
		}
		s.TotalOrders++
		s.NetSales = s.NetSales.Add(orders[i].FinalAmount)
	}
	return s, nil
}

func TestCloseDayArchivesAndPurges(t *testing.T) {
	db := newTestDB(t)
	repo := NewSettlementRepository(db)
	ctx := context.Background()

	burger := seedProductWithStock(t, db, "Burger", decimal.NewFromInt(5), 100)
	seedOrder(t, db, burger, 2, enum.PaymentMethodCash)
	seedOrder(t, db, burger, 1, enum.PaymentMethodCard)

	day := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)
	summary, err := repo.CloseDay(ctx, day, 1, passthroughSummary)
	if err != nil {
		t.Fatalf("CloseDay: %v", err)
	}

	if summary.TotalOrders != 2 {
		t.Errorf("total orders = %d, want 2", summary.TotalOrders)
	}
	if !summary.NetSales.Equal(decimal.NewFromInt(15)) {
		t.Errorf("net sales = %s, want 15", summary.NetSales)
	}
	if !summary.SummaryDate.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("summary date = %v, want midnight UTC", summary.SummaryDate)
	}

	if n := countRows(t, db, &entity.Order{}); n != 0 {
		t.Errorf("orders left after close = %d, want 0", n)
	}
	if n := countRows(t, db, &entity.OrderItem{}); n != 0 {
		t.Errorf("order items left after close = %d, want 0", n)
	}
	if n := countRows(t, db, &entity.ArchivedOrder{}); n != 2 {
		t.Errorf("archived orders = %d, want 2", n)
	}

	var archived entity.ArchivedOrder
	if err := db.First(&archived, "order_no = ?", 1).Error; err != nil {
		t.Fatalf("read archived order: %v", err)
	}
	items, err := archived.DecodeItems()
	if err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Errorf("archived items = %+v, want the frozen line", items)
	}
}

func TestCloseDayTwiceConflicts(t *testing.T) {
	db := newTestDB(t)
	repo := NewSettlementRepository(db)
	ctx := context.Background()

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if _, err := repo.CloseDay(ctx, day, 1, passthroughSummary); err != nil {
		t.Fatalf("first CloseDay: %v", err)
	}

	// Same date later in the day still conflicts.
	later := day.Add(20 * time.Hour)
	if _, err := repo.CloseDay(ctx, later, 1, passthroughSummary); err != domainRepo.ErrDayAlreadyClosed {
		t.Fatalf("second CloseDay err = %v, want ErrDayAlreadyClosed", err)
	}
}

func TestCloseDayRollsBackOnArchiveFailure(t *testing.T) {
	db := newTestDB(t)
	repo := NewSettlementRepository(db)
	ctx := context.Background()

	burger := seedProductWithStock(t, db, "Burger", decimal.NewFromInt(5), 100)
	seedOrder(t, db, burger, 2, enum.PaymentMethodCash)

	// Force the archive insert to fail mid-transaction.
	if err := db.Migrator().DropTable(&entity.ArchivedOrder{}); err != nil {
		t.Fatalf("drop archive table: %v", err)
	}

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if _, err := repo.CloseDay(ctx, day, 1, passthroughSummary); err == nil {
		t.Fatal("expected CloseDay to fail")
	}

	// Everything rolled back: no summary, orders still active.
	if n := countRows(t, db, &entity.DailySummary{}); n != 0 {
		t.Errorf("summaries after failed close = %d, want 0", n)
	}
	if n := countRows(t, db, &entity.Order{}); n != 1 {
		t.Errorf("orders after failed close = %d, want 1", n)
	}
}

func TestGetSummaryByDate(t *testing.T) {
	db := newTestDB(t)
	repo := NewSettlementRepository(db)
	ctx := context.Background()

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if _, err := repo.CloseDay(ctx, day, 1, passthroughSummary); err != nil {
		t.Fatalf("CloseDay: %v", err)
	}

	summary, err := repo.GetSummaryByDate(ctx, day.Add(9*time.Hour))
	if err != nil {
		t.Fatalf("GetSummaryByDate: %v", err)
	}
	if summary == nil {
		t.Fatal("summary not found for its own date")
	}

	missing, err := repo.GetSummaryByDate(ctx, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("GetSummaryByDate: %v", err)
	}
	if missing != nil {
		t.Fatal("found a summary for an unclosed date")
	}
}
