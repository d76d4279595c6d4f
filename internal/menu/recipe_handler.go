package menu

import (
	"canteen-backend/internal/audit"
	"canteen-backend/internal/database"
	"canteen-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RecipeLineResponse struct {
	IngredientID     uint            `json:"ingredient_id"`
	IngredientName   string          `json:"ingredient_name"`
	UnitOfMeasure    string          `json:"unit_of_measure"`
	QuantityRequired decimal.Decimal `json:"quantity_required"`
}

type RecipeResponse struct {
	MenuItemID   uint                 `json:"menu_item_id"`
	MenuItemName string               `json:"menu_item_name"`
	Components   []RecipeLineResponse `json:"components"`
}

type UpdateRecipeLine struct {
	IngredientID     uint            `json:"ingredient_id"`
	QuantityRequired decimal.Decimal `json:"quantity_required"`
}

type UpdateRecipeRequest struct {
	Components []UpdateRecipeLine `json:"components"`
}

// GET /api/menu-items/:id/recipe
func GetRecipeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var item models.MenuItem
		if err := database.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "menu item not found")
		}

		var rows []models.Recipe
		if err := database.DB.
			Preload("Ingredient").
			Where("menu_item_id = ?", item.ID).
			Order("ingredient_id asc").
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load recipe")
		}

		res := RecipeResponse{
			MenuItemID:   item.ID,
			MenuItemName: item.Name,
			Components:   make([]RecipeLineResponse, 0, len(rows)),
		}
		for _, row := range rows {
			res.Components = append(res.Components, RecipeLineResponse{
				IngredientID:     row.IngredientID,
				IngredientName:   row.Ingredient.Name,
				UnitOfMeasure:    row.Ingredient.UnitOfMeasure,
				QuantityRequired: row.QuantityRequired,
			})
		}
		return c.JSON(res)
	}
}

// PUT /api/admin/menu-items/:id/recipe
// Replaces the whole recipe in one transaction: old rows are deleted and the
// submitted components rebuilt. Lines with non-positive quantities or unknown
// ingredients are rejected; duplicates of the same ingredient are rejected.
func UpdateRecipeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var item models.MenuItem
		if err := database.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "menu item not found")
		}

		var body UpdateRecipeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		seen := make(map[uint]bool, len(body.Components))
		for _, line := range body.Components {
			if line.QuantityRequired.LessThanOrEqual(decimal.Zero) {
				return fiber.NewError(fiber.StatusBadRequest, "quantity_required must be positive")
			}
			if seen[line.IngredientID] {
				return fiber.NewError(fiber.StatusBadRequest, "duplicate ingredient in recipe")
			}
			seen[line.IngredientID] = true

			var ing models.Ingredient
			if err := database.DB.First(&ing, "id = ?", line.IngredientID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "ingredient not found")
			}
		}

		var before []models.Recipe
		if err := database.DB.Where("menu_item_id = ?", item.ID).Find(&before).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load recipe")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("menu_item_id = ?", item.ID).Delete(&models.Recipe{}).Error; err != nil {
				return err
			}
			for _, line := range body.Components {
				row := models.Recipe{
					MenuItemID:       item.ID,
					IngredientID:     line.IngredientID,
					QuantityRequired: line.QuantityRequired,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update recipe")
		}

		if userID, userName, err := audit.UserFromCtx(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "recipe",
				EntityID:    item.ID,
				Action:      models.AuditActionUpdate,
				Description: "Recipe rebuilt for menu item: " + item.Name,
				Before:      before,
				After:       body.Components,
			})
		}

		return GetRecipeHandler()(c)
	}
}
