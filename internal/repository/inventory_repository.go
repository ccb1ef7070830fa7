package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/tkreindler/InventoryManagementAPI/internal/domain"
	"github.com/tkreindler/InventoryManagementAPI/internal/interchange"
)

const insertBatchSize = 200

// GormInventoryRepository gives the interchange engine whole-dataset access
// to item types and items.
type GormInventoryRepository struct {
	db *gorm.DB
}

var _ interchange.Repository = (*GormInventoryRepository)(nil)

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// Snapshot reads both collections inside one read transaction. On postgres
// it runs at REPEATABLE READ so a concurrent import is seen entirely or not at all.
func (r *GormInventoryRepository) Snapshot(ctx context.Context) (*interchange.Dataset, error) {
	var ds interchange.Dataset
	err := r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		tx := &gormTx{db: db}
		var err error
		if ds.ItemTypes, err = tx.FetchAllItemTypes(); err != nil {
			return err
		}
		ds.Items, err = tx.FetchAllItems()
		return err
	}, r.snapshotOptions()...)
	if err != nil {
		return nil, errors.Wrap(err, "snapshot inventory")
	}
	return &ds, nil
}

func (r *GormInventoryRepository) snapshotOptions() []*sql.TxOptions {
	if r.db.Dialector.Name() != "postgres" {
		return nil
	}
	return []*sql.TxOptions{{Isolation: sql.LevelRepeatableRead, ReadOnly: true}}
}

func (r *GormInventoryRepository) Transaction(ctx context.Context, fn func(tx interchange.Tx) error) error {
	return r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&gormTx{db: db})
	})
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) FetchAllItemTypes() ([]domain.ItemType, error) {
	var types []domain.ItemType
	err := t.db.Order("name ASC, upc ASC").Find(&types).Error
	return types, err
}

func (t *gormTx) FetchAllItems() ([]domain.Item, error) {
	var items []domain.Item
	err := t.db.Order("id ASC").Find(&items).Error
	return items, err
}

func (t *gormTx) DeleteAllItems() error {
	return t.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.Item{}).Error
}

func (t *gormTx) DeleteAllItemTypes() error {
	return t.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.ItemType{}).Error
}

func (t *gormTx) InsertItemTypes(types []domain.ItemType) error {
	if len(types) == 0 {
		return nil
	}
	return t.db.CreateInBatches(types, insertBatchSize).Error
}

func (t *gormTx) InsertItems(items []domain.Item) error {
	if len(items) == 0 {
		return nil
	}
	return t.db.CreateInBatches(items, insertBatchSize).Error
}
