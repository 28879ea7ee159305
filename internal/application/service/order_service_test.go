package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/mataampos/mataam-api/internal/domain/entity"
	"github.com/mataampos/mataam-api/internal/domain/enum"
	"github.com/mataampos/mataam-api/internal/infrastructure/database"
	infra "github.com/mataampos/mataam-api/internal/infrastructure/repository"
	"github.com/mataampos/mataam-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
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

func newTestOrderService(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	db := newServiceTestDB(t)
	svc := NewOrderService(
		infra.NewOrderRepository(db),
		infra.NewProductRepository(db),
		infra.NewInventoryRepository(db),
	)
	return svc, db
}

func addProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) *entity.Product {
	t.Helper()

	product := &entity.Product{Name: name, Price: decimal.NewFromInt(price), Active: true}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	if err := db.Create(&entity.InventoryItem{ProductID: product.ID, Quantity: stock}).Error; err != nil {
		t.Fatalf("create inventory: %v", err)
	}
	return product
}

func quantityOf(t *testing.T, db *gorm.DB, productID uuid.UUID) int {
	t.Helper()
	var item entity.InventoryItem
	if err := db.First(&item, "product_id = ?", productID).Error; err != nil {
		t.Fatalf("read inventory: %v", err)
	}
	return item.Quantity
}

func TestCreateOrderDebitsStock(t *testing.T) {
	svc, db := newTestOrderService(t)
	burger := addProduct(t, db, "Burger", 5, 10)
	cola := addProduct(t, db, "Cola", 2, 10)

	order, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		CashierName:     "sara",
		FulfillmentType: enum.FulfillmentPickup,
		Payment:         entity.PaymentDetails{Method: enum.PaymentMethodCash},
		Discount:        decimal.NewFromInt(2),
		Items: []CreateOrderItemInput{
			{ProductID: burger.ID, Quantity: 2},
			{ProductID: cola.ID, Quantity: 3},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.Status != enum.OrderStatusCompleted {
		t.Errorf("status = %v, want completed", order.Status)
	}
	if !order.SubTotal.Equal(decimal.NewFromInt(16)) {
		t.Errorf("sub total = %s, want 16", order.SubTotal)
	}
	if !order.FinalAmount.Equal(decimal.NewFromInt(14)) {
		t.Errorf("final amount = %s, want 14", order.FinalAmount)
	}
	if len(order.Items) != 2 {
		t.Fatalf("items len = %d, want 2", len(order.Items))
	}
	// Lines are priced from the catalog at the time of sale.
	if !order.Items[0].UnitPrice.Equal(decimal.NewFromInt(5)) {
		t.Errorf("unit price = %s, want 5", order.Items[0].UnitPrice)
	}

	if got := quantityOf(t, db, burger.ID); got != 8 {
		t.Errorf("burger stock = %d, want 8", got)
	}
	if got := quantityOf(t, db, cola.ID); got != 7 {
		t.Errorf("cola stock = %d, want 7", got)
	}
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	svc, db := newTestOrderService(t)
	burger := addProduct(t, db, "Burger", 5, 1)

	_, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		CashierName:     "sara",
		FulfillmentType: enum.FulfillmentPickup,
		Payment:         entity.PaymentDetails{Method: enum.PaymentMethodCash},
		Items: []CreateOrderItemInput{
			{ProductID: burger.ID, Quantity: 2},
		},
	})
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != http.StatusBadRequest {
		t.Errorf("code = %d, want %d", appErr.Code, http.StatusBadRequest)
	}
	if !strings.Contains(appErr.Message, "Burger") {
		t.Errorf("message %q does not name the product", appErr.Message)
	}
	if got := quantityOf(t, db, burger.ID); got != 1 {
		t.Errorf("stock = %d, want untouched 1", got)
	}
}

func TestCreateOrderPaymentValidation(t *testing.T) {
	svc, db := newTestOrderService(t)
	burger := addProduct(t, db, "Burger", 5, 10)

	cases := []struct {
		name    string
		payment entity.PaymentDetails
	}{
		{"network without bank", entity.PaymentDetails{Method: enum.PaymentMethodNetwork}},
		{"transfer without bank", entity.PaymentDetails{Method: enum.PaymentMethodTransfer}},
		{"hospitality without recipient", entity.PaymentDetails{Method: enum.PaymentMethodHospitality}},
		{"unknown method", entity.PaymentDetails{Method: enum.PaymentMethod("crypto")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
				CashierName:     "sara",
				FulfillmentType: enum.FulfillmentPickup,
				Payment:         tc.payment,
				Items:           []CreateOrderItemInput{{ProductID: burger.ID, Quantity: 1}},
			})
			if err == nil {
				t.Fatal("expected a payment validation error")
			}
			if code := apperror.GetAppError(err).Code; code != http.StatusBadRequest {
				t.Errorf("code = %d, want %d", code, http.StatusBadRequest)
			}
		})
	}

	if got := quantityOf(t, db, burger.ID); got != 10 {
		t.Errorf("stock = %d, want untouched 10", got)
	}
}

func TestCreateOrderDiscountExceedsSubtotal(t *testing.T) {
	svc, db := newTestOrderService(t)
	burger := addProduct(t, db, "Burger", 5, 10)

	_, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		CashierName:     "sara",
		FulfillmentType: enum.FulfillmentPickup,
		Payment:         entity.PaymentDetails{Method: enum.PaymentMethodCash},
		Discount:        decimal.NewFromInt(100),
		Items:           []CreateOrderItemInput{{ProductID: burger.ID, Quantity: 1}},
	})
	if err == nil {
		t.Fatal("expected discount error")
	}
	if code := apperror.GetAppError(err).Code; code != http.StatusBadRequest {
		t.Errorf("code = %d, want %d", code, http.StatusBadRequest)
	}
	if got := quantityOf(t, db, burger.ID); got != 10 {
		t.Errorf("stock = %d, want untouched 10", got)
	}
}

func createTestOrder(t *testing.T, svc *OrderService, productID uuid.UUID) *entity.Order {
	t.Helper()
	order, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		CashierName:     "sara",
		FulfillmentType: enum.FulfillmentPickup,
		Payment:         entity.PaymentDetails{Method: enum.PaymentMethodCash},
		Items:           []CreateOrderItemInput{{ProductID: productID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	return order
}

func TestUpdateOrderStatusRejectsDirectRejection(t *testing.T) {
	svc, db := newTestOrderService(t)
	burger := addProduct(t, db, "Burger", 5, 10)
	order := createTestOrder(t, svc, burger.ID)

	_, err := svc.UpdateOrderStatus(context.Background(), order.ID, enum.OrderStatusRejected)
	if err == nil {
		t.Fatal("expected direct rejection to be refused")
	}
	if code := apperror.GetAppError(err).Code; code != http.StatusBadRequest {
		t.Errorf("code = %d, want %d", code, http.StatusBadRequest)
	}
}

func TestRefundOrderTwice(t *testing.T) {
	svc, db := newTestOrderService(t)
	burger := addProduct(t, db, "Burger", 5, 10)
	order := createTestOrder(t, svc, burger.ID)

	refunded, err := svc.RefundOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("RefundOrder: %v", err)
	}
	if refunded.Status != enum.OrderStatusRejected {
		t.Errorf("status = %v, want rejected", refunded.Status)
	}
	// The sold unit comes back.
	if got := quantityOf(t, db, burger.ID); got != 10 {
		t.Errorf("stock = %d, want 10", got)
	}

	_, err = svc.RefundOrder(context.Background(), order.ID)
	if err == nil {
		t.Fatal("expected second refund to conflict")
	}
	if code := apperror.GetAppError(err).Code; code != http.StatusConflict {
		t.Errorf("code = %d, want %d", code, http.StatusConflict)
	}
}
