package interchange

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tkreindler/InventoryManagementAPI/internal/domain"
)

// field binds one sheet column to one attribute of T.
type field[T any] struct {
	name   string
	kind   FieldKind
	width  float64
	encode func(*T) Cell
	decode func(*T, string) error
}

var itemTypeFields = []field[domain.ItemType]{
	textField("Name", func(t *domain.ItemType) **string { return &t.Name }),
	{
		name:   "UPC",
		kind:   KindIdentifier,
		width:  16,
		encode: func(t *domain.ItemType) Cell { return EncodeIdentifier(t.UPC) },
		decode: func(t *domain.ItemType, raw string) (err error) {
			t.UPC, err = DecodeIdentifier(raw)
			return
		},
	},
	textField("ImageURL", func(t *domain.ItemType) **string { return &t.ImageURL }),
}

var itemFields = []field[domain.Item]{
	{
		name:   "Id",
		kind:   KindIdentifier,
		width:  10,
		encode: func(it *domain.Item) Cell { return EncodeIdentifier(it.ID) },
		decode: func(it *domain.Item, raw string) (err error) {
			it.ID, err = decodeOptionalIdentifier(raw)
			return
		},
	},
	{
		name:   "ItemTypeUPC",
		kind:   KindIdentifier,
		width:  16,
		encode: func(it *domain.Item) Cell { return EncodeIdentifier(it.ItemTypeUPC) },
		decode: func(it *domain.Item, raw string) (err error) {
			it.ItemTypeUPC, err = DecodeIdentifier(raw)
			return
		},
	},
	textField("OrderNumberToSeller", func(it *domain.Item) **string { return &it.OrderNumberToSeller }),
	textField("OrderNumberToBuyer", func(it *domain.Item) **string { return &it.OrderNumberToBuyer }),
	textField("QRCode", func(it *domain.Item) **string { return &it.QRCode }),
	{
		name:   "ItemStatus",
		kind:   KindStatus,
		width:  12,
		encode: func(it *domain.Item) Cell { return EncodeStatus(it.ItemStatus) },
		decode: func(it *domain.Item, raw string) (err error) {
			it.ItemStatus, err = DecodeStatus(raw)
			return
		},
	},
	moneyField("PricePaidBySeller", func(it *domain.Item) *decimal.Decimal { return &it.PricePaidBySeller }),
	moneyField("TaxPaidBySeller", func(it *domain.Item) *decimal.Decimal { return &it.TaxPaidBySeller }),
	moneyField("ShippingCostToSeller", func(it *domain.Item) *decimal.Decimal { return &it.ShippingCostToSeller }),
	moneyField("ShippingCostToBuyer", func(it *domain.Item) *decimal.Decimal { return &it.ShippingCostToBuyer }),
	moneyField("Fees", func(it *domain.Item) *decimal.Decimal { return &it.Fees }),
	moneyField("OtherExpenses", func(it *domain.Item) *decimal.Decimal { return &it.OtherExpenses }),
	moneyField("ShippingPaidByBuyer", func(it *domain.Item) *decimal.Decimal { return &it.ShippingPaidByBuyer }),
	moneyField("PricePaidByBuyer", func(it *domain.Item) *decimal.Decimal { return &it.PricePaidByBuyer }),
	timeField("TimeStampOrdered", func(it *domain.Item) *time.Time { return &it.TimeStampOrdered }),
	timeField("TimeStampReceived", func(it *domain.Item) *time.Time { return &it.TimeStampReceived }),
	timeField("TimeStampSold", func(it *domain.Item) *time.Time { return &it.TimeStampSold }),
}

func textField[T any](name string, get func(*T) **string) field[T] {
	return field[T]{
		name:   name,
		kind:   KindText,
		width:  24,
		encode: func(v *T) Cell { return EncodeText(*get(v)) },
		decode: func(v *T, raw string) error {
			*get(v) = DecodeText(raw)
			return nil
		},
	}
}

func moneyField[T any](name string, get func(*T) *decimal.Decimal) field[T] {
	return field[T]{
		name:   name,
		kind:   KindMoney,
		width:  14,
		encode: func(v *T) Cell { return EncodeMoney(*get(v)) },
		decode: func(v *T, raw string) (err error) {
			*get(v), err = DecodeMoney(raw)
			return
		},
	}
}

func timeField[T any](name string, get func(*T) *time.Time) field[T] {
	return field[T]{
		name:   name,
		kind:   KindTimestamp,
		width:  20,
		encode: func(v *T) Cell { return EncodeTimestamp(*get(v)) },
		decode: func(v *T, raw string) error {
			*get(v) = DecodeTimestamp(raw)
			return nil
		},
	}
}

func fieldNames[T any](fields []field[T]) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}

func encodeRow[T any](fields []field[T], v *T) []Cell {
	cells := make([]Cell, len(fields))
	for i, f := range fields {
		cells[i] = f.encode(v)
	}
	return cells
}

// decodeRow builds a T from one sheet row. rowNum is the 1-based sheet row
// reported in a RowDecodeError.
func decodeRow[T any](sheet string, rowNum int, fields []field[T], idx ColumnIndex, row []string) (T, error) {
	var v T
	for _, f := range fields {
		raw := idx.Cell(row, f.name)
		if err := f.decode(&v, raw); err != nil {
			return v, &RowDecodeError{Sheet: sheet, Row: rowNum, Column: f.name, Value: raw, Err: err}
		}
	}
	return v, nil
}

// ItemTypeColumns is the header of the ItemTypes sheet, in export order.
func ItemTypeColumns() []string { return fieldNames(itemTypeFields) }

// ItemColumns is the header of the Items sheet, in export order.
func ItemColumns() []string { return fieldNames(itemFields) }

func EncodeItemType(t domain.ItemType) []Cell { return encodeRow(itemTypeFields, &t) }

func EncodeItem(it domain.Item) []Cell { return encodeRow(itemFields, &it) }

func DecodeItemType(idx ColumnIndex, row []string, rowNum int) (domain.ItemType, error) {
	return decodeRow(SheetItemTypes, rowNum, itemTypeFields, idx, row)
}

func DecodeItem(idx ColumnIndex, row []string, rowNum int) (domain.Item, error) {
	return decodeRow(SheetItems, rowNum, itemFields, idx, row)
}
