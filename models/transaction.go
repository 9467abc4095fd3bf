package models

import "gorm.io/gorm"

const (
	TransactionPurchase = "purchase"
	TransactionRestock  = "restock"
)

// Transaction is the append-only audit record of a stock change.
// Rows are only ever inserted; nothing in the service updates or
// deletes them. SweetID deliberately carries no foreign key so the
// history survives deletion of the sweet.
type Transaction struct {
	gorm.Model
	SweetID     uint    `gorm:"index;not null" json:"sweet_id"`
	UserID      *uint   `json:"user_id"`
	User        User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:UserID" json:"-"`
	Type        string  `gorm:"not null" json:"transaction_type"`
	Quantity    int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	PriceAtTime float64 `gorm:"not null" json:"price_at_time"`
}
