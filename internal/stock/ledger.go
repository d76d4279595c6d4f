package stock

import (
	"errors"
	"fmt"

	"canteen-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrNonPositiveAmount  = errors.New("decrement amount must be positive")
)

// Ledger owns the only write path to Ingredient.CurrentStockQty. Deltas are
// applied inside a single UPDATE so two fulfillments hitting the same
// ingredient serialize at the database and never lose an update.
type Ledger struct {
	allowNegative bool
}

func NewLedger(allowNegative bool) *Ledger {
	return &Ledger{allowNegative: allowNegative}
}

// Decrement subtracts amount from the ingredient's current stock and returns
// the freshly committed quantity. It must never be replaced by a
// read-subtract-write sequence in application memory.
//
// With allowNegative the stock may go below zero (temporary oversell);
// otherwise the update is conditional and ErrInsufficientStock is returned
// when the ingredient cannot cover the amount.
func (l *Ledger) Decrement(tx *gorm.DB, ingredientID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrNonPositiveAmount
	}

	var row struct {
		CurrentStockQty decimal.Decimal `gorm:"column:current_stock_qty"`
	}
	var res *gorm.DB
	if l.allowNegative {
		res = tx.Raw(`
			UPDATE ingredients
			SET current_stock_qty = current_stock_qty - ?, updated_at = NOW()
			WHERE id = ?
			RETURNING current_stock_qty`,
			amount, ingredientID,
		).Scan(&row)
	} else {
		res = tx.Raw(`
			UPDATE ingredients
			SET current_stock_qty = current_stock_qty - ?, updated_at = NOW()
			WHERE id = ? AND current_stock_qty >= ?
			RETURNING current_stock_qty`,
			amount, ingredientID, amount,
		).Scan(&row)
	}
	if res.Error != nil {
		return decimal.Zero, fmt.Errorf("decrement stock: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.Ingredient{}).Where("id = ?", ingredientID).Count(&count).Error; err != nil {
			return decimal.Zero, fmt.Errorf("check ingredient: %w", err)
		}
		if count == 0 {
			return decimal.Zero, ErrIngredientNotFound
		}
		return decimal.Zero, ErrInsufficientStock
	}

	return row.CurrentStockQty, nil
}
