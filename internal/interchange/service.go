// Package interchange exports the whole inventory to an XLSX workbook and
// replaces it from an edited one.
//
// An import is all or nothing: the workbook is parsed and every row decoded
// before storage is touched, and the replace runs in a single transaction.
package interchange

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tkreindler/InventoryManagementAPI/internal/domain"
)

// Dataset is a full copy of both collections.
type Dataset struct {
	ItemTypes []domain.ItemType
	Items     []domain.Item
}

// Repository is the storage the engine needs.
type Repository interface {
	// Snapshot reads both collections from one consistent view,
	// item types ordered by name and items by id.
	Snapshot(ctx context.Context) (*Dataset, error)
	// Transaction runs fn in one write transaction, committing when fn
	// returns nil and rolling back otherwise.
	Transaction(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the set of operations available inside Repository.Transaction.
type Tx interface {
	FetchAllItemTypes() ([]domain.ItemType, error)
	FetchAllItems() ([]domain.Item, error)
	DeleteAllItems() error
	DeleteAllItemTypes() error
	InsertItemTypes(types []domain.ItemType) error
	// InsertItems assigns a fresh ID to every item.
	InsertItems(items []domain.Item) error
}

type ImportResult struct {
	ItemTypes int `json:"item_types"`
	Items     int `json:"items"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Export writes the current dataset to w as a workbook.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	ds, err := s.repo.Snapshot(ctx)
	if err != nil {
		return errors.Wrap(err, "snapshot")
	}
	if err := WriteWorkbook(w, ds); err != nil {
		return err
	}
	zap.S().Infof("exported %d item types, %d items", len(ds.ItemTypes), len(ds.Items))
	return nil
}

// Import replaces the whole dataset with the content of the workbook in r.
// Every returned error matches ErrImportFailed and storage is unchanged.
func (s *Service) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	ds, err := ReadWorkbook(r)
	if err != nil {
		zap.S().Warnf("import rejected: %v", err)
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx Tx) error {
		return replace(tx, ds)
	})
	if err != nil {
		zap.S().Errorf("import rolled back: %v", err)
		return nil, &TransactionError{Err: err}
	}

	zap.S().Infof("imported %d item types, %d items", len(ds.ItemTypes), len(ds.Items))
	return &ImportResult{ItemTypes: len(ds.ItemTypes), Items: len(ds.Items)}, nil
}

// replace clears both collections, items first, then inserts the new rows.
// Imported item ids are discarded; storage assigns new ones.
func replace(tx Tx, ds *Dataset) error {
	if err := tx.DeleteAllItems(); err != nil {
		return errors.Wrap(err, "delete items")
	}
	if err := tx.DeleteAllItemTypes(); err != nil {
		return errors.Wrap(err, "delete item types")
	}
	if err := tx.InsertItemTypes(ds.ItemTypes); err != nil {
		return errors.Wrap(err, "insert item types")
	}

	items := make([]domain.Item, len(ds.Items))
	for i, it := range ds.Items {
		it.ID = 0
		items[i] = it
	}
	return errors.Wrap(tx.InsertItems(items), "insert items")
}
