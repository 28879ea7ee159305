package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mataampos/mataam-api/internal/domain/entity"
	domainRepo "github.com/mataampos/mataam-api/internal/domain/repository"
	"gorm.io/gorm"
)

// errInsufficientStock forces the decrement transaction to roll back when a
// product comes up short; it never leaves the repository.
var errInsufficientStock = errors.New("insufficient stock")

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) domainRepo.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) GetByProductID(ctx context.Context, productID uuid.UUID) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		First(&item, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *inventoryRepository) List(ctx context.Context, params *domainRepo.InventoryFilterParams) ([]entity.InventoryItem, int64, error) {
	var items []entity.InventoryItem
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.InventoryItem{})

	if params.Search != "" {
		query = query.Where(
			"product_id IN (?)",
			r.db.Model(&entity.Product{}).Select("id").Where("name LIKE ?", "%"+params.Search+"%"),
		)
	}

	if params.LowStock {
		query = query.Where("quantity_alert > 0 AND quantity <= quantity_alert")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Product").
		Order("product_id ASC").
		Find(&items).Error

	return items, total, err
}

func (r *inventoryRepository) Ensure(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		FirstOrCreate(&entity.InventoryItem{ProductID: productID}).Error
}

func (r *inventoryRepository) SetQuantity(ctx context.Context, productID uuid.UUID, quantity, alert int) error {
	return r.db.WithContext(ctx).Model(&entity.InventoryItem{}).
		Where("product_id = ?", productID).
		Updates(map[string]interface{}{
			"quantity":       quantity,
			"quantity_alert": alert,
		}).Error
}

// DecrementBatch atomically decrements stock for multiple products in a single
// transaction. The conditional update is the stock check: a row is only
// touched while it still has enough quantity, so two concurrent checkouts can
// never both take the last unit. If any product comes up short the whole
// transaction is rolled back and the short products are returned.
func (r *inventoryRepository) DecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	if len(decrements) == 0 {
		return nil, nil
	}

	var failedIDs []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range decrements {
			result := tx.Model(&entity.InventoryItem{}).
				Where("product_id = ? AND quantity >= ?", id, amount).
				Update("quantity", gorm.Expr("quantity - ?", amount))

			if result.Error != nil {
				return result.Error
			}

			if result.RowsAffected == 0 {
				failedIDs = append(failedIDs, id)
			}
		}

		if len(failedIDs) > 0 {
			return errInsufficientStock
		}

		return nil
	})

	// Rolled back because of insufficient stock: report the short products
	// without surfacing the sentinel used to force the rollback.
	if errors.Is(err, errInsufficientStock) {
		return failedIDs, nil
	}

	return failedIDs, err
}

// IncrementBatch atomically credits stock back (refunds, compensation).
func (r *inventoryRepository) IncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	if len(increments) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range increments {
			if err := tx.Model(&entity.InventoryItem{}).
				Where("product_id = ?", id).
				Update("quantity", gorm.Expr("quantity + ?", amount)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
