package domain

// ItemType is a unique kind of product (doll, toy, ...) classified by UPC.
// The UPC never changes once assigned and items reference it.
type ItemType struct {
	UPC      int64   `gorm:"primaryKey;autoIncrement:false" json:"upc,string"`
	Name     *string `gorm:"index" json:"name"`
	ImageURL *string `gorm:"size:1024" json:"image_url"`
}

// TableName returns table name
func (ItemType) TableName() string {
	return "item_types"
}

// NameOrEmpty returns the item type name, or "" when unset.
func (t ItemType) NameOrEmpty() string {
	if t.Name == nil {
		return ""
	}
	return *t.Name
}
