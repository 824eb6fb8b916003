package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/makarov13/gastrobot/internal/domain/shop/deps"
	"github.com/makarov13/gastrobot/internal/domain/shop/entities"
	shoperrors "github.com/makarov13/gastrobot/internal/domain/shop/errors"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) deps.SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Purchase moves the user's subscription expiry and inserts the purchase
// record in one transaction, so the entitlement never exists without its
// audit row.
func (r *SubscriptionRepository) Purchase(ctx context.Context, userID uint, sub *entities.Subscription) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.User{}).
			Where("id = ?", userID).
			Update("subscription_end", sub.ExpiresAt)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shoperrors.ErrUserNotFound
		}

		return tx.Create(sub).Error
	})

	if err != nil {
		if errors.Is(err, shoperrors.ErrUserNotFound) {
			return shoperrors.ErrUserNotFound
		}
		return shoperrors.ErrDatabaseOperation
	}

	return nil
}

func (r *SubscriptionRepository) CountActive(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Where("expires_at > ?", now).
		Count(&count)

	if result.Error != nil {
		return 0, shoperrors.ErrDatabaseOperation
	}

	return count, nil
}
