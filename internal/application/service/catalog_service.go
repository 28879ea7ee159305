package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mataampos/mataam-api/internal/domain/entity"
	"github.com/mataampos/mataam-api/internal/domain/repository"
	"github.com/mataampos/mataam-api/pkg/apperror"
	"github.com/mataampos/mataam-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CatalogService handles the menu: products and categories
type CatalogService struct {
	productRepo   repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	inventoryRepo repository.InventoryRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	inventoryRepo repository.InventoryRepository,
) *CatalogService {
	return &CatalogService{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		inventoryRepo: inventoryRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	CategoryID *uuid.UUID
	Name       string
	Price      decimal.Decimal
	Active     *bool
}

// CreateProduct adds a menu item and opens its zero-quantity stock row.
func (s *CatalogService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Price.IsNegative() {
		return nil, apperror.NewBadRequestError("Price cannot be negative")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	product := &entity.Product{
		CategoryID: input.CategoryID,
		Name:       input.Name,
		Price:      input.Price,
		Active:     true,
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	if err := s.inventoryRepo.Ensure(ctx, product.ID); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by id
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *CatalogService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	CategoryID *uuid.UUID
	Name       *string
	Price      *decimal.Decimal
	Active     *bool
}

// UpdateProduct edits catalog data. Existing orders keep their snapshots,
// so price edits never rewrite history.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = input.CategoryID
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperror.NewBadRequestError("Price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, product.ID)
}

// DeleteProduct soft-deletes a menu item
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return notFoundAs(s.productRepo.Delete(ctx, id), "Product")
}

// CreateCategory adds a menu category
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	category := &entity.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists all categories
func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx)
}

// UpdateCategory renames a category
func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	category.Name = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory soft-deletes a category; its products keep a dangling
// category id, which product reads tolerate.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return notFoundAs(s.categoryRepo.Delete(ctx, id), "Category")
}
