package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/tkreindler/InventoryManagementAPI/internal/domain"
)

// ErrItemTypeInUse is returned when deleting an item type that items still reference.
var ErrItemTypeInUse = errors.New("item type is referenced by items")

// ItemTypeRepository handles database operations for item types
type ItemTypeRepository interface {
	// List returns every item type ordered by name
	List(ctx context.Context) ([]domain.ItemType, error)

	// GetByUPC retrieves an item type, gorm.ErrRecordNotFound when absent
	GetByUPC(ctx context.Context, upc int64) (*domain.ItemType, error)

	// Exists reports whether an item type with this UPC exists
	Exists(ctx context.Context, upc int64) (bool, error)

	// NameTaken reports whether another item type (UPC != exceptUPC) uses name
	NameTaken(ctx context.Context, name string, exceptUPC int64) (bool, error)

	Create(ctx context.Context, t *domain.ItemType) error

	Update(ctx context.Context, t *domain.ItemType) error

	// Delete removes an item type, ErrItemTypeInUse while items reference it
	Delete(ctx context.Context, upc int64) error
}

// GormItemTypeRepository is the GORM implementation of ItemTypeRepository
type GormItemTypeRepository struct {
	db *gorm.DB
}

func NewGormItemTypeRepository(db *gorm.DB) *GormItemTypeRepository {
	return &GormItemTypeRepository{db: db}
}

func (r *GormItemTypeRepository) List(ctx context.Context) ([]domain.ItemType, error) {
	var types []domain.ItemType
	err := r.db.WithContext(ctx).Order("name ASC, upc ASC").Find(&types).Error
	return types, err
}

func (r *GormItemTypeRepository) GetByUPC(ctx context.Context, upc int64) (*domain.ItemType, error) {
	var t domain.ItemType
	err := r.db.WithContext(ctx).Where("upc = ?", upc).First(&t).Error
	return &t, err
}

func (r *GormItemTypeRepository) Exists(ctx context.Context, upc int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ItemType{}).Where("upc = ?", upc).Count(&count).Error
	return count > 0, err
}

func (r *GormItemTypeRepository) NameTaken(ctx context.Context, name string, exceptUPC int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ItemType{}).
		Where("name = ? AND upc <> ?", name, exceptUPC).
		Count(&count).Error
	return count > 0, err
}

func (r *GormItemTypeRepository) Create(ctx context.Context, t *domain.ItemType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *GormItemTypeRepository) Update(ctx context.Context, t *domain.ItemType) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *GormItemTypeRepository) Delete(ctx context.Context, upc int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&domain.Item{}).Where("item_type_upc = ?", upc).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrItemTypeInUse
		}
		res := tx.Where("upc = ?", upc).Delete(&domain.ItemType{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
