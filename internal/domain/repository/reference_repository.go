package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mataampos/mataam-api/internal/domain/entity"
	"github.com/mataampos/mataam-api/pkg/pagination"
)

// ProductRepository defines the interface for catalog data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
	ActiveOnly bool
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Category, error)
}

// BankRepository defines the interface for bank reference rows
type BankRepository interface {
	Create(ctx context.Context, bank *entity.Bank) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bank, error)
	GetByName(ctx context.Context, name string) (*entity.Bank, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Bank, error)
}

// CurrencyRepository defines the interface for configured currencies
type CurrencyRepository interface {
	Create(ctx context.Context, currency *entity.Currency) error
	GetBySymbol(ctx context.Context, symbol string) (*entity.Currency, error)
	Update(ctx context.Context, currency *entity.Currency) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Currency, error)
}

// BranchRepository defines the interface for branch reference rows
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Branch, error)
}

// EmployeeRepository defines the interface for staff rows
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Employee, error)
}
