package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/makarov13/gastrobot/internal/domain/shop/deps"
	"github.com/makarov13/gastrobot/internal/domain/shop/entities"
	shoperrors "github.com/makarov13/gastrobot/internal/domain/shop/errors"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) deps.CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, title string) (*entities.Category, error) {
	category := entities.Category{Title: title}
	result := r.db.WithContext(ctx).Create(&category)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, shoperrors.ErrCategoryExists
		}
		return nil, shoperrors.ErrDatabaseOperation
	}

	return &category, nil
}

func (r *CatalogRepository) GetCategory(ctx context.Context, id uint) (*entities.Category, error) {
	var category entities.Category
	result := r.db.WithContext(ctx).First(&category, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shoperrors.ErrCategoryNotFound
		}
		return nil, shoperrors.ErrDatabaseOperation
	}

	return &category, nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]entities.Category, error) {
	var categories []entities.Category
	result := r.db.WithContext(ctx).
		Order("title ASC").
		Find(&categories)

	if result.Error != nil {
		return nil, shoperrors.ErrDatabaseOperation
	}

	return categories, nil
}

func (r *CatalogRepository) UpdateCategoryTitle(ctx context.Context, id uint, title string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Category{}).
		Where("id = ?", id).
		Update("title", title)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return shoperrors.ErrCategoryExists
		}
		return shoperrors.ErrDatabaseOperation
	}

	if result.RowsAffected == 0 {
		return shoperrors.ErrCategoryNotFound
	}

	return nil
}

// DeleteCategory removes the category; its products are detached and
// deactivated, disappearing from the storefront until an admin reactivates
// them.
func (r *CatalogRepository) DeleteCategory(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Product{}).
			Where("category_id = ?", id).
			Updates(map[string]interface{}{"category_id": nil, "is_active": false}).Error; err != nil {
			return err
		}

		result := tx.Delete(&entities.Category{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shoperrors.ErrCategoryNotFound
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, shoperrors.ErrCategoryNotFound) {
			return shoperrors.ErrCategoryNotFound
		}
		return shoperrors.ErrDatabaseOperation
	}

	return nil
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, product *entities.Product) error {
	result := r.db.WithContext(ctx).Create(product)
	if result.Error != nil {
		return shoperrors.ErrDatabaseOperation
	}
	return nil
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id uint) (*entities.Product, error) {
	var product entities.Product
	result := r.db.WithContext(ctx).First(&product, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shoperrors.ErrProductNotFound
		}
		return nil, shoperrors.ErrDatabaseOperation
	}

	return &product, nil
}

func (r *CatalogRepository) ListProductsByCategory(ctx context.Context, categoryID uint) ([]entities.Product, error) {
	var products []entities.Product
	result := r.db.WithContext(ctx).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Order("title ASC").
		Find(&products)

	if result.Error != nil {
		return nil, shoperrors.ErrDatabaseOperation
	}

	return products, nil
}

func (r *CatalogRepository) ListProducts(ctx context.Context, active bool) ([]entities.Product, error) {
	var products []entities.Product
	result := r.db.WithContext(ctx).
		Where("is_active = ?", active).
		Order("title ASC").
		Find(&products)

	if result.Error != nil {
		return nil, shoperrors.ErrDatabaseOperation
	}

	return products, nil
}

func (r *CatalogRepository) GetProductsByIDs(ctx context.Context, ids []uint) ([]entities.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var products []entities.Product
	result := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products)

	if result.Error != nil {
		return nil, shoperrors.ErrDatabaseOperation
	}

	return products, nil
}

func (r *CatalogRepository) UpdateProduct(ctx context.Context, product *entities.Product) error {
	result := r.db.WithContext(ctx).Save(product)
	if result.Error != nil {
		return shoperrors.ErrDatabaseOperation
	}
	return nil
}

func (r *CatalogRepository) SetProductActive(ctx context.Context, id uint, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Product{}).
		Where("id = ?", id).
		Update("is_active", active)

	if result.Error != nil {
		return shoperrors.ErrDatabaseOperation
	}

	if result.RowsAffected == 0 {
		return shoperrors.ErrProductNotFound
	}

	return nil
}
