package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mataampos/mataam-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

func mustUUID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.NewRandom()
	if err != nil {
		t.Fatalf("uuid: %v", err)
	}
	return id
}

func TestPaymentDetailsValidate(t *testing.T) {
	cases := []struct {
		name    string
		details PaymentDetails
		wantErr error
	}{
		{"cash", PaymentDetails{Method: enum.PaymentMethodCash}, nil},
		{"card", PaymentDetails{Method: enum.PaymentMethodCard}, nil},
		{"network with bank", PaymentDetails{Method: enum.PaymentMethodNetwork, BankName: "Al-Amal"}, nil},
		{"network without bank", PaymentDetails{Method: enum.PaymentMethodNetwork}, ErrBankRequired},
		{"transfer without bank", PaymentDetails{Method: enum.PaymentMethodTransfer}, ErrBankRequired},
		{"hospitality with recipient", PaymentDetails{Method: enum.PaymentMethodHospitality, Recipient: "mayor's office"}, nil},
		{"hospitality without recipient", PaymentDetails{Method: enum.PaymentMethodHospitality}, ErrRecipientRequired},
		{"unknown method", PaymentDetails{Method: enum.PaymentMethod("barter")}, ErrUnknownPaymentMethod},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.details.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewArchivedOrderFreezesItems(t *testing.T) {
	bank := "Al-Amal"
	order := &Order{
		ID:            7,
		CashierName:   "sara",
		Status:        enum.OrderStatusCompleted,
		PaymentMethod: enum.PaymentMethodNetwork,
		BankName:      &bank,
		SubTotal:      decimal.NewFromInt(12),
		Discount:      decimal.Zero,
		FinalAmount:   decimal.NewFromInt(12),
		Items: []OrderItem{
			{ProductID: mustUUID(t), Name: "Shawarma", UnitPrice: decimal.NewFromInt(4), Quantity: 3},
		},
	}

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	archived, err := NewArchivedOrder(order, day)
	if err != nil {
		t.Fatalf("NewArchivedOrder: %v", err)
	}

	if archived.OrderNo != 7 {
		t.Errorf("order no = %d, want the period-local id 7", archived.OrderNo)
	}
	if !archived.BusinessDate.Equal(day) {
		t.Errorf("business date = %v, want %v", archived.BusinessDate, day)
	}
	if archived.BankName == nil || *archived.BankName != "Al-Amal" {
		t.Error("bank name was not carried over")
	}

	items, err := archived.DecodeItems()
	if err != nil {
		t.Fatalf("DecodeItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items len = %d, want 1", len(items))
	}
	if items[0].Name != "Shawarma" || items[0].Quantity != 3 {
		t.Errorf("item = %+v, want the frozen Shawarma line", items[0])
	}
	if !items[0].UnitPrice.Equal(decimal.NewFromInt(4)) {
		t.Errorf("unit price = %s, want 4", items[0].UnitPrice)
	}
}

func TestOrderItemLineTotal(t *testing.T) {
	item := OrderItem{UnitPrice: decimal.RequireFromString("2.5"), Quantity: 3}
	if got := item.LineTotal(); !got.Equal(decimal.RequireFromString("7.5")) {
		t.Errorf("line total = %s, want 7.5", got)
	}
}
