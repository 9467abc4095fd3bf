// Package ledger implements the stock mutation protocol: every stock
// change is atomic with its audit record, and stock never goes
// negative.
package ledger

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sweetshop/apperr"
	"sweetshop/models"
)

// Purchase decrements a sweet's stock by quantity and appends the
// purchase record, all inside one storage transaction. The sweet row
// is locked for the duration so two concurrent purchases cannot both
// pass the sufficiency check against a stale stock value.
func Purchase(db *gorm.DB, sweetID uint, quantity int, userID *uint) (*models.Transaction, *models.Sweet, error) {
	return mutate(db, sweetID, quantity, userID, models.TransactionPurchase)
}

// Restock increments a sweet's stock by quantity and appends the
// restock record. There is no upper bound on the resulting stock.
func Restock(db *gorm.DB, sweetID uint, quantity int, userID *uint) (*models.Transaction, *models.Sweet, error) {
	return mutate(db, sweetID, quantity, userID, models.TransactionRestock)
}

func mutate(db *gorm.DB, sweetID uint, quantity int, userID *uint, kind string) (*models.Transaction, *models.Sweet, error) {
	if quantity <= 0 {
		return nil, nil, apperr.Validation("quantity must be greater than zero")
	}

	var sweet models.Sweet
	var entry models.Transaction

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sweet, sweetID).Error; err != nil {
			return apperr.FromDB(err, "")
		}

		delta := quantity
		if kind == models.TransactionPurchase {
			if sweet.QuantityInStock < quantity {
				return &apperr.InsufficientStockError{
					Available: sweet.QuantityInStock,
					Requested: quantity,
				}
			}
			delta = -quantity
		}
		newStock := sweet.QuantityInStock + delta

		result := tx.Model(&sweet).Update("quantity_in_stock", newStock)
		if result.Error != nil {
			return apperr.FromDB(result.Error, "")
		}
		if result.RowsAffected == 0 {
			return apperr.Internal(fmt.Errorf("stock update touched no rows for sweet %d", sweetID))
		}
		sweet.QuantityInStock = newStock

		// PriceAtTime is snapshotted from the locked row so history
		// stays correct after later price changes.
		entry = models.Transaction{
			SweetID:     sweet.ID,
			UserID:      userID,
			Type:        kind,
			Quantity:    quantity,
			PriceAtTime: sweet.Price,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return apperr.FromDB(err, "")
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &entry, &sweet, nil
}
