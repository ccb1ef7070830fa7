package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ItemStatus is the lifecycle state of an inventory item.
type ItemStatus int

const (
	ItemStatusOrdered ItemStatus = iota
	ItemStatusInStock
	ItemStatusSold

	itemStatusCount
)

// itemStatusNames is the canonical text of every status, used on the wire,
// in the database and in exported workbooks.
var itemStatusNames = [...]string{
	ItemStatusOrdered: "Ordered",
	ItemStatusInStock: "InStock",
	ItemStatusSold:    "Sold",
}

// Adding a status without a name (or the reverse) fails to compile here.
var _ = [1]struct{}{}[len(itemStatusNames)-int(itemStatusCount)]

// ItemStatuses lists every status in declaration order.
func ItemStatuses() []ItemStatus {
	out := make([]ItemStatus, 0, itemStatusCount)
	for s := ItemStatus(0); s < itemStatusCount; s++ {
		out = append(out, s)
	}
	return out
}

// Valid reports whether s is a member of the closed status set.
func (s ItemStatus) Valid() bool {
	return s >= 0 && s < itemStatusCount
}

func (s ItemStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf("ItemStatus(%d)", int(s))
	}
	return itemStatusNames[s]
}

// ParseItemStatus matches name exactly (case-sensitive) against the status names.
func ParseItemStatus(name string) (ItemStatus, error) {
	for i, n := range itemStatusNames {
		if n == name {
			return ItemStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown item status %q", name)
}

func (s ItemStatus) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid item status %d", int(s))
	}
	return json.Marshal(itemStatusNames[s])
}

func (s *ItemStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("item status must be a string: %w", err)
	}
	parsed, err := ParseItemStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value stores the status by name.
func (s ItemStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid item status %d", int(s))
	}
	return itemStatusNames[s], nil
}

func (s *ItemStatus) Scan(src interface{}) error {
	var name string
	switch v := src.(type) {
	case string:
		name = v
	case []byte:
		name = string(v)
	default:
		return fmt.Errorf("cannot scan %T into ItemStatus", src)
	}
	parsed, err := ParseItemStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
