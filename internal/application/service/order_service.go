package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mataampos/mataam-api/internal/domain/entity"
	"github.com/mataampos/mataam-api/internal/domain/enum"
	"github.com/mataampos/mataam-api/internal/domain/repository"
	"github.com/mataampos/mataam-api/pkg/apperror"
	"github.com/mataampos/mataam-api/pkg/logger"
	"github.com/mataampos/mataam-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService handles order ledger operations
type OrderService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

// CreateOrderItemInput is one requested line of a checkout.
type CreateOrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Note      *string
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	UserID          *uuid.UUID
	CashierName     string
	CustomerName    *string
	FulfillmentType enum.FulfillmentType
	Payment         entity.PaymentDetails
	Discount        decimal.Decimal
	Notes           string
	Items           []CreateOrderItemInput
}

// CreateOrder records a sale. The order is paid at the till, so it is created
// already completed; stock is debited atomically before the order row is
// written and credited back if the write fails.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if err := input.Payment.Validate(); err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	if !input.FulfillmentType.Valid() {
		return nil, apperror.NewBadRequestError("Unknown fulfillment type")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Order must contain at least one item")
	}
	if strings.TrimSpace(input.CashierName) == "" {
		return nil, apperror.NewBadRequestError("Cashier name is required")
	}
	if input.Discount.IsNegative() {
		return nil, apperror.NewBadRequestError("Discount cannot be negative")
	}

	decrements := make(map[uuid.UUID]int, len(input.Items))
	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		if _, seen := decrements[item.ProductID]; !seen {
			ids = append(ids, item.ProductID)
		}
		decrements[item.ProductID] += item.Quantity
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Unknown product %s", id))
		}
	}

	subTotal := decimal.Zero
	items := make([]entity.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		p := byID[in.ProductID]
		line := entity.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  in.Quantity,
			Note:      in.Note,
		}
		subTotal = subTotal.Add(line.LineTotal())
		items = append(items, line)
	}

	if input.Discount.GreaterThan(subTotal) {
		return nil, apperror.NewBadRequestError("Discount cannot exceed the order subtotal")
	}

	insufficient, err := s.inventoryRepo.DecrementBatch(ctx, decrements)
	if err != nil {
		return nil, err
	}
	if len(insufficient) > 0 {
		names := make([]string, 0, len(insufficient))
		for _, id := range insufficient {
			if p, ok := byID[id]; ok {
				names = append(names, p.Name)
			} else {
				names = append(names, id.String())
			}
		}
		return nil, apperror.NewBadRequestError("Insufficient stock for: " + strings.Join(names, ", "))
	}

	var bankName, recipient *string
	if input.Payment.BankName != "" {
		b := input.Payment.BankName
		bankName = &b
	}
	if input.Payment.Recipient != "" {
		r := input.Payment.Recipient
		recipient = &r
	}

	order := &entity.Order{
		UserID:               input.UserID,
		CashierName:          input.CashierName,
		CustomerName:         input.CustomerName,
		Status:               enum.OrderStatusCompleted,
		FulfillmentType:      input.FulfillmentType,
		PaymentMethod:        input.Payment.Method,
		BankName:             bankName,
		HospitalityRecipient: recipient,
		SubTotal:             subTotal,
		Discount:             input.Discount,
		FinalAmount:          subTotal.Sub(input.Discount),
		Notes:                input.Notes,
		Items:                items,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		// Stock was already debited; hand it back before failing.
		if credErr := s.inventoryRepo.IncrementBatch(ctx, decrements); credErr != nil {
			logger.Get().WithError(credErr).Error("failed to credit stock back after order create failure")
		}
		return nil, err
	}

	return s.orderRepo.GetByID(ctx, order.ID)
}

// GetOrder retrieves an order by id
func (s *OrderService) GetOrder(ctx context.Context, id uint) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists active orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// UpdateOrderStatus moves an order through its lifecycle. Rejections must go
// through RefundOrder so stock is credited back.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, next enum.OrderStatus) (*entity.Order, error) {
	if next == enum.OrderStatusRejected {
		return nil, apperror.NewBadRequestError("Use the refund endpoint to reject an order")
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, apperror.NewConflictError(
			fmt.Sprintf("Cannot move order from %s to %s", order.Status, next))
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	order.Status = next
	return order, nil
}

// RefundOrder rejects an order and credits its items back to stock.
func (s *OrderService) RefundOrder(ctx context.Context, id uint) (*entity.Order, error) {
	order, err := s.orderRepo.Refund(ctx, id)
	if errors.Is(err, repository.ErrAlreadyRejected) {
		return nil, apperror.NewConflictError("Order is already rejected")
	}
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	logger.Get().WithField("order_id", id).Info("order refunded")
	return order, nil
}

// DeleteOrder removes an order without touching inventory; administrative.
func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	err := s.orderRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NewNotFoundError("Order")
	}
	return err
}
