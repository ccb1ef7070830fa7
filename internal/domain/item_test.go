package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestItemDerivedAmounts(t *testing.T) {
	it := Item{
		PricePaidBySeller:    dec("10.00"),
		TaxPaidBySeller:      dec("0.80"),
		ShippingCostToSeller: dec("2.50"),
		ShippingCostToBuyer:  dec("4.25"),
		Fees:                 dec("3.10"),
		OtherExpenses:        dec("0.35"),
		ShippingPaidByBuyer:  dec("5.00"),
		PricePaidByBuyer:     dec("29.99"),
	}

	if got, want := it.Expenses(), dec("21.00"); !got.Equal(want) {
		t.Errorf("Expenses() = %s, want %s", got, want)
	}
	if got, want := it.Revenue(), dec("34.99"); !got.Equal(want) {
		t.Errorf("Revenue() = %s, want %s", got, want)
	}
	if got, want := it.Profit(), dec("13.99"); !got.Equal(want) {
		t.Errorf("Profit() = %s, want %s", got, want)
	}
}

func TestNewItemStampsOrdered(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	it := NewItem(ItemInput{ItemTypeUPC: 42, ItemStatus: ItemStatusOrdered}, now)

	if it.ID != 0 {
		t.Errorf("ID = %d, want 0", it.ID)
	}
	if !it.TimeStampOrdered.Equal(now) {
		t.Errorf("TimeStampOrdered = %v, want %v", it.TimeStampOrdered, now)
	}
	if !it.TimeStampReceived.IsZero() || !it.TimeStampSold.IsZero() {
		t.Error("received/sold timestamps should be unset")
	}
}

func TestItemApplyStatusTransitions(t *testing.T) {
	ordered := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := ordered.Add(48 * time.Hour)

	tests := []struct {
		name         string
		from, to     ItemStatus
		wantReceived bool
		wantSold     bool
	}{
		{"ordered to in stock", ItemStatusOrdered, ItemStatusInStock, true, false},
		{"in stock to sold", ItemStatusInStock, ItemStatusSold, false, true},
		{"ordered to sold", ItemStatusOrdered, ItemStatusSold, false, true},
		{"unchanged", ItemStatusInStock, ItemStatusInStock, false, false},
		{"back to ordered", ItemStatusSold, ItemStatusOrdered, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := Item{ID: 7, ItemStatus: tt.from, TimeStampOrdered: ordered}
			it.Apply(ItemInput{ItemTypeUPC: 1, ItemStatus: tt.to}, later)

			if it.ID != 7 {
				t.Errorf("ID changed to %d", it.ID)
			}
			if it.ItemStatus != tt.to {
				t.Errorf("ItemStatus = %v, want %v", it.ItemStatus, tt.to)
			}
			if got := it.TimeStampReceived.Equal(later); got != tt.wantReceived {
				t.Errorf("received stamped = %v, want %v", got, tt.wantReceived)
			}
			if got := it.TimeStampSold.Equal(later); got != tt.wantSold {
				t.Errorf("sold stamped = %v, want %v", got, tt.wantSold)
			}
			if !it.TimeStampOrdered.Equal(ordered) {
				t.Error("TimeStampOrdered must not change on update")
			}
		})
	}
}

func TestItemJSONUsesStatusNames(t *testing.T) {
	it := Item{ID: 3, ItemTypeUPC: 123456789012, ItemStatus: ItemStatusInStock}
	data, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if raw["item_status"] != "InStock" {
		t.Errorf("item_status = %v, want InStock", raw["item_status"])
	}
	if raw["item_type_upc"] != "123456789012" {
		t.Errorf("item_type_upc = %v, want string UPC", raw["item_type_upc"])
	}
	if _, ok := raw["ItemType"]; ok {
		t.Error("association must not be serialized")
	}
}
