package domain

import (
	"encoding/json"
	"testing"
)

func TestParseItemStatus(t *testing.T) {
	for _, s := range ItemStatuses() {
		got, err := ParseItemStatus(s.String())
		if err != nil {
			t.Fatalf("ParseItemStatus(%q) error = %v", s.String(), err)
		}
		if got != s {
			t.Errorf("ParseItemStatus(%q) = %v, want %v", s.String(), got, s)
		}
	}

	for _, bad := range []string{"", "Returned", "instock", "SOLD", " Sold"} {
		if _, err := ParseItemStatus(bad); err == nil {
			t.Errorf("ParseItemStatus(%q) expected error", bad)
		}
	}
}

func TestItemStatusNames(t *testing.T) {
	want := []string{"Ordered", "InStock", "Sold"}
	got := ItemStatuses()
	if len(got) != len(want) {
		t.Fatalf("ItemStatuses() len = %d, want %d", len(got), len(want))
	}
	for i, s := range got {
		if s.String() != want[i] {
			t.Errorf("status %d = %q, want %q", i, s.String(), want[i])
		}
	}
	if ItemStatus(99).Valid() {
		t.Error("ItemStatus(99) should be invalid")
	}
}

func TestItemStatusJSON(t *testing.T) {
	var s ItemStatus
	if err := json.Unmarshal([]byte(`"Sold"`), &s); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if s != ItemStatusSold {
		t.Errorf("got %v, want Sold", s)
	}
	if err := json.Unmarshal([]byte(`"Lost"`), &s); err == nil {
		t.Error("expected error for unknown status")
	}
	if err := json.Unmarshal([]byte(`2`), &s); err == nil {
		t.Error("expected error for numeric status")
	}
}

func TestItemStatusScanValue(t *testing.T) {
	v, err := ItemStatusInStock.Value()
	if err != nil || v != "InStock" {
		t.Fatalf("Value() = %v, %v", v, err)
	}

	var s ItemStatus
	if err := s.Scan([]byte("Sold")); err != nil || s != ItemStatusSold {
		t.Errorf("Scan([]byte) = %v, %v", s, err)
	}
	if err := s.Scan(int64(1)); err == nil {
		t.Error("Scan(int64) expected error")
	}
}
