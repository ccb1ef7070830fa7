package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tkreindler/InventoryManagementAPI/internal/domain"
)

// ItemFilter narrows ItemRepository.List. Zero fields do not filter.
type ItemFilter struct {
	Status        *domain.ItemStatus
	OrderedAfter  time.Time
	OrderedBefore time.Time
}

// ItemRepository handles database operations for items
type ItemRepository interface {
	// List returns items ordered by id
	List(ctx context.Context, filter ItemFilter) ([]domain.Item, error)

	GetByID(ctx context.Context, id int64) (*domain.Item, error)

	GetByQRCode(ctx context.Context, code string) (*domain.Item, error)

	ListByOrderNumberToSeller(ctx context.Context, number string) ([]domain.Item, error)

	ListByOrderNumberToBuyer(ctx context.Context, number string) ([]domain.Item, error)

	ListByType(ctx context.Context, upc int64) ([]domain.Item, error)

	// QRCodeTaken reports whether an item other than exceptID carries code
	QRCodeTaken(ctx context.Context, code string, exceptID int64) (bool, error)

	// CreateBatch inserts all items in one transaction and fills in their ids
	CreateBatch(ctx context.Context, items []domain.Item) error

	Update(ctx context.Context, item *domain.Item) error

	Delete(ctx context.Context, id int64) error
}

// GormItemRepository is the GORM implementation of ItemRepository
type GormItemRepository struct {
	db *gorm.DB
}

func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

func (r *GormItemRepository) List(ctx context.Context, filter ItemFilter) ([]domain.Item, error) {
	query := r.db.WithContext(ctx)
	if filter.Status != nil {
		query = query.Where("item_status = ?", *filter.Status)
	}
	if !filter.OrderedAfter.IsZero() {
		query = query.Where("time_stamp_ordered >= ?", filter.OrderedAfter)
	}
	if !filter.OrderedBefore.IsZero() {
		query = query.Where("time_stamp_ordered < ?", filter.OrderedBefore)
	}

	var items []domain.Item
	err := query.Order("id ASC").Find(&items).Error
	return items, err
}

func (r *GormItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	var item domain.Item
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	return &item, err
}

func (r *GormItemRepository) GetByQRCode(ctx context.Context, code string) (*domain.Item, error) {
	var item domain.Item
	err := r.db.WithContext(ctx).Where("qr_code = ?", code).First(&item).Error
	return &item, err
}

func (r *GormItemRepository) ListByOrderNumberToSeller(ctx context.Context, number string) ([]domain.Item, error) {
	return r.listWhere(ctx, "order_number_to_seller = ?", number)
}

func (r *GormItemRepository) ListByOrderNumberToBuyer(ctx context.Context, number string) ([]domain.Item, error) {
	return r.listWhere(ctx, "order_number_to_buyer = ?", number)
}

func (r *GormItemRepository) ListByType(ctx context.Context, upc int64) ([]domain.Item, error) {
	return r.listWhere(ctx, "item_type_upc = ?", upc)
}

func (r *GormItemRepository) listWhere(ctx context.Context, cond string, arg interface{}) ([]domain.Item, error) {
	var items []domain.Item
	err := r.db.WithContext(ctx).Where(cond, arg).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *GormItemRepository) QRCodeTaken(ctx context.Context, code string, exceptID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Item{}).
		Where("qr_code = ? AND id <> ?", code, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormItemRepository) CreateBatch(ctx context.Context, items []domain.Item) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(items, 100).Error
	})
}

func (r *GormItemRepository) Update(ctx context.Context, item *domain.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *GormItemRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Item{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
