package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mataampos/mataam-api/internal/domain/entity"
	"github.com/mataampos/mataam-api/internal/domain/enum"
	"github.com/mataampos/mataam-api/pkg/pagination"
)

// ErrAlreadyRejected is returned when a refund targets an order that is
// already in the rejected state (guards against double stock credit).
var ErrAlreadyRejected = errors.New("order is already rejected")

// OrderRepository defines the interface for order ledger data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uint) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	UpdateStatus(ctx context.Context, id uint, status enum.OrderStatus) error
	// Refund flips the order to rejected and credits stock back for every
	// line item in a single transaction. Returns ErrAlreadyRejected if the
	// order is already rejected.
	Refund(ctx context.Context, id uint) (*entity.Order, error)
	// Delete hard-deletes an order and its items without touching inventory.
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string // matched against the order id
	Status        *enum.OrderStatus
	PaymentMethod *enum.PaymentMethod
	StartDate     *time.Time
	EndDate       *time.Time
}
