package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mataampos/mataam-api/internal/domain/entity"
	"github.com/mataampos/mataam-api/pkg/pagination"
)

// InventoryRepository defines the interface for stock data operations
type InventoryRepository interface {
	GetByProductID(ctx context.Context, productID uuid.UUID) (*entity.InventoryItem, error)
	List(ctx context.Context, params *InventoryFilterParams) ([]entity.InventoryItem, int64, error)
	// Ensure creates a zero-quantity row for the product if none exists.
	Ensure(ctx context.Context, productID uuid.UUID) error
	// SetQuantity is the administrative overwrite; negative quantities are
	// rejected by the caller, this is a plain write.
	SetQuantity(ctx context.Context, productID uuid.UUID, quantity, alert int) error
	// DecrementBatch atomically decrements stock for every product in one
	// transaction; products whose remaining stock is insufficient are
	// returned and nothing is written.
	DecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error)
	// IncrementBatch credits stock back (refunds).
	IncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error
}

// InventoryFilterParams contains filtering parameters for inventory queries
type InventoryFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string // matched against the product name
	LowStock   bool
}
