package models

import (
	"gorm.io/gorm"
)

type Sweet struct {
	gorm.Model
	Name            string  `gorm:"uniqueIndex;not null" json:"name"`
	Category        string  `gorm:"index;not null" json:"category"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `gorm:"not null;check:price >= 0" json:"price"`
	QuantityInStock int     `gorm:"not null;default:0;check:quantity_in_stock >= 0" json:"quantity_in_stock"`
	ImageURL        string  `json:"image_url,omitempty"`
	ImageFileID     string  `json:"-"`
}

// MaxPageSize caps list and search page sizes.
const MaxPageSize = 100

// SweetFilter narrows a sweets listing. All set fields compose with
// logical AND; name and category match as case-insensitive
// substrings, the price bounds are inclusive.
type SweetFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Offset   int
	Limit    int
}

// Scope applies the filter to a query. Meant for use with db.Scopes.
func (f SweetFilter) Scope(db *gorm.DB) *gorm.DB {
	if f.Name != "" {
		db = db.Where("name ILIKE ?", "%"+f.Name+"%")
	}
	if f.Category != "" {
		db = db.Where("category ILIKE ?", "%"+f.Category+"%")
	}
	if f.MinPrice != nil {
		db = db.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		db = db.Where("price <= ?", *f.MaxPrice)
	}
	limit := f.Limit
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}
	if f.Offset > 0 {
		db = db.Offset(f.Offset)
	}
	return db.Limit(limit)
}

func GetSweetByID(db *gorm.DB, id uint) (Sweet, error) {
	var sweet Sweet
	if res := db.First(&sweet, id); res.Error != nil {
		return Sweet{}, res.Error
	}
	return sweet, nil
}
