package postgres

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/makarov13/gastrobot/internal/domain/shop/consts"
	"github.com/makarov13/gastrobot/internal/domain/shop/deps"
	"github.com/makarov13/gastrobot/internal/domain/shop/dto"
	"github.com/makarov13/gastrobot/internal/domain/shop/entities"
	shoperrors "github.com/makarov13/gastrobot/internal/domain/shop/errors"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) deps.OrderRepository {
	return &OrderRepository{db: db}
}

// CreateWithItems writes the order and all of its items in one transaction.
// A failed item insert rolls back the order row as well.
func (r *OrderRepository) CreateWithItems(ctx context.Context, order *entities.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})

	if err != nil {
		return shoperrors.ErrDatabaseOperation
	}

	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uint) (*entities.Order, error) {
	var order entities.Order
	result := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shoperrors.ErrOrderNotFound
		}
		return nil, shoperrors.ErrDatabaseOperation
	}

	return &order, nil
}

func (r *OrderRepository) ListActive(ctx context.Context) ([]dto.OrderSummary, error) {
	var orders []entities.Order
	result := r.db.WithContext(ctx).
		Where("status IN ?", []string{consts.OrderStatusAccepted, consts.OrderStatusInProgress}).
		Order("created_at ASC").
		Find(&orders)

	if result.Error != nil {
		return nil, shoperrors.ErrDatabaseOperation
	}

	summaries := make([]dto.OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, dto.OrderSummary{
			ID:         o.ID,
			Status:     o.Status,
			Title:      o.Title,
			TotalPrice: o.TotalPrice,
			CreatedAt:  o.CreatedAt,
		})
	}

	return summaries, nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]entities.Order, error) {
	var orders []entities.Order
	result := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders)

	if result.Error != nil {
		return nil, shoperrors.ErrDatabaseOperation
	}

	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("id = ?", id).
		Update("status", status)

	if result.Error != nil {
		return shoperrors.ErrDatabaseOperation
	}

	if result.RowsAffected == 0 {
		return shoperrors.ErrOrderNotFound
	}

	return nil
}

func (r *OrderRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("status = ?", status).
		Count(&count)

	if result.Error != nil {
		return 0, shoperrors.ErrDatabaseOperation
	}

	return count, nil
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Count(&count)

	if result.Error != nil {
		return 0, shoperrors.ErrDatabaseOperation
	}

	return count, nil
}

func (r *OrderRepository) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var revenue decimal.NullDecimal
	result := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("status = ?", consts.OrderStatusCompleted).
		Select("SUM(total_price)").
		Scan(&revenue)

	if result.Error != nil {
		return decimal.Zero, shoperrors.ErrDatabaseOperation
	}

	if !revenue.Valid {
		return decimal.Zero, nil
	}

	return revenue.Decimal, nil
}
