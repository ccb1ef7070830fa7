package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tkreindler/InventoryManagementAPI/internal/domain"
)

// UserRepository handles database operations for operators
type UserRepository interface {
	Count(ctx context.Context) (int64, error)

	// GetByUsername retrieves a user, gorm.ErrRecordNotFound when absent
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	Create(ctx context.Context, user *domain.User) error

	UpdatePasswordHash(ctx context.Context, username, hash string) error

	TouchLastLogin(ctx context.Context, username string, at time.Time) error

	Delete(ctx context.Context, username string) error
}

// GormUserRepository is the GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&count).Error
	return count, err
}

func (r *GormUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *GormUserRepository) UpdatePasswordHash(ctx context.Context, username, hash string) error {
	return r.updateOne(ctx, username, "password_hash", hash)
}

func (r *GormUserRepository) TouchLastLogin(ctx context.Context, username string, at time.Time) error {
	return r.updateOne(ctx, username, "last_login", at)
}

func (r *GormUserRepository) updateOne(ctx context.Context, username, column string, value interface{}) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("username = ?", username).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormUserRepository) Delete(ctx context.Context, username string) error {
	res := r.db.WithContext(ctx).Where("username = ?", username).Delete(&domain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
