package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is an individual unit in inventory.
//
// Money fields are exact decimals. A zero timestamp means the event has not
// happened yet.
type Item struct {
	ID                  int64      `gorm:"primaryKey;autoIncrement" json:"id,string"`
	ItemTypeUPC         int64      `gorm:"index;not null" json:"item_type_upc,string"`
	ItemType            *ItemType  `gorm:"foreignKey:ItemTypeUPC;references:UPC;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	OrderNumberToSeller *string    `gorm:"index" json:"order_number_to_seller"`
	OrderNumberToBuyer  *string    `gorm:"index" json:"order_number_to_buyer"`
	QRCode              *string    `gorm:"uniqueIndex" json:"qr_code"`
	ItemStatus          ItemStatus `gorm:"type:varchar(16);not null" json:"item_status"`

	PricePaidBySeller    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"price_paid_by_seller"`
	TaxPaidBySeller      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"tax_paid_by_seller"`
	ShippingCostToSeller decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"shipping_cost_to_seller"`
	ShippingCostToBuyer  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"shipping_cost_to_buyer"`
	Fees                 decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"fees"`
	OtherExpenses        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"other_expenses"`
	ShippingPaidByBuyer  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"shipping_paid_by_buyer"`
	PricePaidByBuyer     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"price_paid_by_buyer"`

	TimeStampOrdered  time.Time `json:"time_stamp_ordered"`
	TimeStampReceived time.Time `json:"time_stamp_received"`
	TimeStampSold     time.Time `json:"time_stamp_sold"`
}

// TableName returns table name
func (Item) TableName() string {
	return "items"
}

// Expenses is everything spent on the item.
func (i Item) Expenses() decimal.Decimal {
	return decimal.Sum(i.PricePaidBySeller, i.TaxPaidBySeller, i.ShippingCostToSeller,
		i.ShippingCostToBuyer, i.Fees, i.OtherExpenses)
}

// Revenue is everything the buyer paid.
func (i Item) Revenue() decimal.Decimal {
	return i.ShippingPaidByBuyer.Add(i.PricePaidByBuyer)
}

func (i Item) Profit() decimal.Decimal {
	return i.Revenue().Sub(i.Expenses())
}

// ItemInput is the caller-editable part of an Item (everything but the
// identity and the lifecycle timestamps).
type ItemInput struct {
	ItemTypeUPC          int64           `json:"item_type_upc,string" validate:"required"`
	OrderNumberToSeller  *string         `json:"order_number_to_seller"`
	OrderNumberToBuyer   *string         `json:"order_number_to_buyer"`
	QRCode               *string         `json:"qr_code"`
	ItemStatus           ItemStatus      `json:"item_status"`
	PricePaidBySeller    decimal.Decimal `json:"price_paid_by_seller"`
	TaxPaidBySeller      decimal.Decimal `json:"tax_paid_by_seller"`
	ShippingCostToSeller decimal.Decimal `json:"shipping_cost_to_seller"`
	ShippingCostToBuyer  decimal.Decimal `json:"shipping_cost_to_buyer"`
	Fees                 decimal.Decimal `json:"fees"`
	OtherExpenses        decimal.Decimal `json:"other_expenses"`
	ShippingPaidByBuyer  decimal.Decimal `json:"shipping_paid_by_buyer"`
	PricePaidByBuyer     decimal.Decimal `json:"price_paid_by_buyer"`
}

// NewItem builds a fresh item from input, stamped as ordered at now.
func NewItem(in ItemInput, now time.Time) Item {
	var it Item
	it.copyInput(in)
	it.TimeStampOrdered = now
	return it
}

// Apply copies in over the item. A status change into InStock or Sold stamps
// the matching timestamp with now.
func (i *Item) Apply(in ItemInput, now time.Time) {
	old := i.ItemStatus
	i.copyInput(in)
	if in.ItemStatus == old {
		return
	}
	switch in.ItemStatus {
	case ItemStatusInStock:
		i.TimeStampReceived = now
	case ItemStatusSold:
		i.TimeStampSold = now
	}
}

func (i *Item) copyInput(in ItemInput) {
	i.ItemTypeUPC = in.ItemTypeUPC
	i.OrderNumberToSeller = in.OrderNumberToSeller
	i.OrderNumberToBuyer = in.OrderNumberToBuyer
	i.QRCode = in.QRCode
	i.ItemStatus = in.ItemStatus
	i.PricePaidBySeller = in.PricePaidBySeller
	i.TaxPaidBySeller = in.TaxPaidBySeller
	i.ShippingCostToSeller = in.ShippingCostToSeller
	i.ShippingCostToBuyer = in.ShippingCostToBuyer
	i.Fees = in.Fees
	i.OtherExpenses = in.OtherExpenses
	i.ShippingPaidByBuyer = in.ShippingPaidByBuyer
	i.PricePaidByBuyer = in.PricePaidByBuyer
}
