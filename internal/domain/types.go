package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned by lookups, updates and deletes whose identifier
// matches no stored record.
var ErrNotFound = errors.New("not found")

type Category struct {
	ID        int64 `gorm:"column:category_id;primaryKey"`
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Item struct {
	ID          int64 `gorm:"column:item_id;primaryKey"`
	Description string
	Completed   bool
	CategoryID  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemWithCategory is an item with its category loaded alongside it.
type ItemWithCategory struct {
	*Item
	Category *Category
}

// Option is one (identifier, label) entry of a selectable list.
type Option struct {
	ID    int64
	Label string
}
