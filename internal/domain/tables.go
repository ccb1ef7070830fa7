package domain

// Tables in migration order: item types before the items that reference them.
var Tables = []interface{}{
	&User{},
	&ItemType{},
	&Item{},
}
