package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mataampos/mataam-api/internal/domain/entity"
	"github.com/mataampos/mataam-api/internal/domain/repository"
	"github.com/mataampos/mataam-api/pkg/apperror"
	"github.com/mataampos/mataam-api/pkg/pagination"
)

// InventoryService handles stock administration
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(inventoryRepo repository.InventoryRepository, productRepo repository.ProductRepository) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
	}
}

// GetStock retrieves the stock row of one product
func (s *InventoryService) GetStock(ctx context.Context, productID uuid.UUID) (*entity.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Inventory item")
	}
	return item, nil
}

// ListStock lists inventory rows with filtering
func (s *InventoryService) ListStock(ctx context.Context, params *repository.InventoryFilterParams) (*pagination.PaginatedResult[entity.InventoryItem], error) {
	items, total, err := s.inventoryRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// SetStock overwrites a product's quantity and alert threshold. This is the
// administrative correction path, not the sale path; sales go through the
// conditional decrement.
func (s *InventoryService) SetStock(ctx context.Context, productID uuid.UUID, quantity, alert int) (*entity.InventoryItem, error) {
	if quantity < 0 {
		return nil, apperror.NewBadRequestError("Quantity cannot be negative")
	}
	if alert < 0 {
		return nil, apperror.NewBadRequestError("Alert threshold cannot be negative")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if err := s.inventoryRepo.Ensure(ctx, productID); err != nil {
		return nil, err
	}
	if err := s.inventoryRepo.SetQuantity(ctx, productID, quantity, alert); err != nil {
		return nil, err
	}

	return s.inventoryRepo.GetByProductID(ctx, productID)
}
