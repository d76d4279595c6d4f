package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe maps one unit of a menu item to the ingredient quantity it consumes.
// One row per (menu item, ingredient) pair.
type Recipe struct {
	ID               uint            `gorm:"primaryKey"`
	MenuItemID       uint            `gorm:"not null;uniqueIndex:idx_recipe_item_ingredient"`
	MenuItem         MenuItem
	IngredientID     uint            `gorm:"not null;uniqueIndex:idx_recipe_item_ingredient"`
	Ingredient       Ingredient
	QuantityRequired decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
