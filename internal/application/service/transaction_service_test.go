package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/mataampos/mataam-api/internal/domain/entity"
	"github.com/mataampos/mataam-api/internal/domain/enum"
	"github.com/mataampos/mataam-api/internal/domain/repository"
	infra "github.com/mataampos/mataam-api/internal/infrastructure/repository"
	"github.com/mataampos/mataam-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestTransactionService(t *testing.T) (*TransactionService, *gorm.DB) {
	t.Helper()
	db := newServiceTestDB(t)
	svc := NewTransactionService(
		infra.NewTransactionRepository(db),
		infra.NewCurrencyRepository(db),
		infra.NewEmployeeRepository(db),
	)
	if err := db.Create(&entity.Currency{Name: "Yemeni Rial", Symbol: "ر.ي", ExchangeRate: decimal.NewFromInt(1)}).Error; err != nil {
		t.Fatalf("seed currency: %v", err)
	}
	return svc, db
}

func TestPostTransaction(t *testing.T) {
	svc, _ := newTestTransactionService(t)

	txn, err := svc.PostTransaction(context.Background(), &PostTransactionInput{
		Type:        enum.TransactionTypeExpense,
		Class:       enum.TransactionClassPurchases,
		Amount:      decimal.NewFromInt(350),
		Currency:    "ر.ي",
		Description: "vegetable supplier",
	})
	if err != nil {
		t.Fatalf("PostTransaction: %v", err)
	}
	if txn.ID == 0 {
		t.Error("posting was not persisted")
	}
	if txn.OccurredAt.IsZero() {
		t.Error("occurred_at was not defaulted")
	}
}

func TestPostTransactionRejectsUnknownCurrency(t *testing.T) {
	svc, _ := newTestTransactionService(t)

	_, err := svc.PostTransaction(context.Background(), &PostTransactionInput{
		Type:        enum.TransactionTypeRevenue,
		Class:       enum.TransactionClassSales,
		Amount:      decimal.NewFromInt(10),
		Currency:    "EUR",
		Description: "sales",
	})
	if err == nil {
		t.Fatal("expected unknown currency to be rejected")
	}
	if code := apperror.GetAppError(err).Code; code != http.StatusBadRequest {
		t.Errorf("code = %d, want %d", code, http.StatusBadRequest)
	}
}

func TestPostTransactionRejectsNonPositiveAmount(t *testing.T) {
	svc, _ := newTestTransactionService(t)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := svc.PostTransaction(context.Background(), &PostTransactionInput{
			Type:        enum.TransactionTypeRevenue,
			Class:       enum.TransactionClassSales,
			Amount:      amount,
			Currency:    "ر.ي",
			Description: "sales",
		})
		if err == nil {
			t.Fatalf("amount %s was accepted", amount)
		}
	}
}

func TestPaySalaryFallsBackToConfiguredSalary(t *testing.T) {
	svc, db := newTestTransactionService(t)

	employee := &entity.Employee{Name: "Ahmed", Salary: decimal.NewFromInt(1200)}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}

	txn, err := svc.PaySalary(context.Background(), &PaySalaryInput{
		EmployeeID: employee.ID,
		Amount:     decimal.Zero,
		Currency:   "ر.ي",
	})
	if err != nil {
		t.Fatalf("PaySalary: %v", err)
	}

	if txn.Type != enum.TransactionTypeExpense || txn.Class != enum.TransactionClassSalary {
		t.Errorf("posted %s/%s, want expense/salary", txn.Type, txn.Class)
	}
	if !txn.Amount.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("amount = %s, want the configured salary 1200", txn.Amount)
	}
	if txn.RelatedID == nil || *txn.RelatedID != employee.ID {
		t.Error("posting does not reference the employee")
	}
}

func TestAggregateThroughService(t *testing.T) {
	svc, _ := newTestTransactionService(t)

	postings := []struct {
		typ    enum.TransactionType
		amount int64
	}{
		{enum.TransactionTypeRevenue, 100},
		{enum.TransactionTypeRevenue, 50},
		{enum.TransactionTypeExpense, 30},
	}
	for _, p := range postings {
		if _, err := svc.PostTransaction(context.Background(), &PostTransactionInput{
			Type:        p.typ,
			Class:       enum.TransactionClassOther,
			Amount:      decimal.NewFromInt(p.amount),
			Currency:    "ر.ي",
			Description: "posting",
		}); err != nil {
			t.Fatalf("PostTransaction: %v", err)
		}
	}

	totals, err := svc.Aggregate(context.Background(), &repository.TransactionAggregateFilter{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	rial := totals["ر.ي"]
	if !rial.Revenue.Equal(decimal.NewFromInt(150)) {
		t.Errorf("revenue = %s, want 150", rial.Revenue)
	}
	if !rial.Expense.Equal(decimal.NewFromInt(30)) {
		t.Errorf("expense = %s, want 30", rial.Expense)
	}
}
