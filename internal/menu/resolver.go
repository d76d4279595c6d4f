package menu

import (
	"context"
	"errors"
	"fmt"

	"canteen-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

// RecipeComponent is one line of a menu item's bill of materials: the
// ingredient and the quantity consumed per unit sold.
type RecipeComponent struct {
	IngredientID     uint
	QuantityRequired decimal.Decimal
}

// Resolver looks up the committed recipe of a menu item. It holds no cache:
// recipes can be edited between orders and every fulfillment must see the
// latest committed rows.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve returns the recipe components of the menu item ordered by
// ingredient id. A menu item without a recipe yields an empty slice; that is
// a valid state (e.g. a bottled drink resold as-is).
func (r *Resolver) Resolve(ctx context.Context, menuItemID uint) ([]RecipeComponent, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.MenuItem{}).Where("id = ?", menuItemID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check menu item: %w", err)
	}
	if count == 0 {
		return nil, ErrMenuItemNotFound
	}

	var rows []models.Recipe
	if err := r.db.WithContext(ctx).
		Where("menu_item_id = ?", menuItemID).
		Order("ingredient_id asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load recipe: %w", err)
	}

	components := make([]RecipeComponent, 0, len(rows))
	for _, row := range rows {
		components = append(components, RecipeComponent{
			IngredientID:     row.IngredientID,
			QuantityRequired: row.QuantityRequired,
		})
	}
	return components, nil
}
