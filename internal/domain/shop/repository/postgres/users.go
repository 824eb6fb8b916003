// Package postgres contains gorm-backed repositories for the shop domain
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

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) deps.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetOrCreate(ctx context.Context, telegramID int64, fullName string) (*entities.User, error) {
	var user entities.User
	result := r.db.WithContext(ctx).
		Where(entities.User{TelegramID: telegramID}).
		Attrs(entities.User{FullName: fullName}).
		FirstOrCreate(&user)

	if result.Error != nil {
		return nil, shoperrors.ErrDatabaseOperation
	}

	return &user, nil
}

func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*entities.User, error) {
	var user entities.User
	result := r.db.WithContext(ctx).
		Where("telegram_id = ?", telegramID).
		First(&user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shoperrors.ErrUserNotFound
		}
		return nil, shoperrors.ErrDatabaseOperation
	}

	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	result := r.db.WithContext(ctx).First(&user, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shoperrors.ErrUserNotFound
		}
		return nil, shoperrors.ErrDatabaseOperation
	}

	return &user, nil
}

func (r *UserRepository) SetPhone(ctx context.Context, telegramID int64, phone string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("telegram_id = ?", telegramID).
		Update("phone", phone)

	if result.Error != nil {
		return shoperrors.ErrDatabaseOperation
	}

	if result.RowsAffected == 0 {
		return shoperrors.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("created_at >= ?", since).
		Count(&count)

	if result.Error != nil {
		return 0, shoperrors.ErrDatabaseOperation
	}

	return count, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Count(&count)

	if result.Error != nil {
		return 0, shoperrors.ErrDatabaseOperation
	}

	return count, nil
}
