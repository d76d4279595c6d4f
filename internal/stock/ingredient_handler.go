package stock

import (
	"strings"

	"canteen-backend/internal/audit"
	"canteen-backend/internal/database"
	"canteen-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type IngredientResponse struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	UnitOfMeasure   string          `json:"unit_of_measure"`
	CurrentStockQty decimal.Decimal `json:"current_stock_qty"`
	SafetyStockQty  decimal.Decimal `json:"safety_stock_qty"`
	ReorderLevel    decimal.Decimal `json:"reorder_level"`
	IsPerishable    bool            `json:"is_perishable"`
	Status          HealthStatus    `json:"status"`
}

type CreateIngredientRequest struct {
	Name            string          `json:"name"`
	UnitOfMeasure   string          `json:"unit_of_measure"`
	CurrentStockQty decimal.Decimal `json:"current_stock_qty"`
	SafetyStockQty  decimal.Decimal `json:"safety_stock_qty"`
	ReorderLevel    decimal.Decimal `json:"reorder_level"`
	IsPerishable    bool            `json:"is_perishable"`
}

type UpdateIngredientRequest struct {
	Name           *string          `json:"name"`
	UnitOfMeasure  *string          `json:"unit_of_measure"`
	SafetyStockQty *decimal.Decimal `json:"safety_stock_qty"`
	ReorderLevel   *decimal.Decimal `json:"reorder_level"`
	IsPerishable   *bool            `json:"is_perishable"`
}

func toIngredientResponse(ing models.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:              ing.ID,
		Name:            ing.Name,
		UnitOfMeasure:   ing.UnitOfMeasure,
		CurrentStockQty: ing.CurrentStockQty,
		SafetyStockQty:  ing.SafetyStockQty,
		ReorderLevel:    ing.ReorderLevel,
		IsPerishable:    ing.IsPerishable,
		Status:          Classify(ing),
	}
}

// GET /api/ingredients?status=Critical
func ListIngredientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var ingredients []models.Ingredient
		if err := database.DB.Order("name asc").Find(&ingredients).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list ingredients")
		}

		statusFilter := c.Query("status")

		res := make([]IngredientResponse, 0, len(ingredients))
		for _, ing := range ingredients {
			r := toIngredientResponse(ing)
			if statusFilter != "" && string(r.Status) != statusFilter {
				continue
			}
			res = append(res, r)
		}
		return c.JSON(res)
	}
}

// GET /api/ingredients/:id
func GetIngredientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var ing models.Ingredient
		if err := database.DB.First(&ing, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "ingredient not found")
		}
		return c.JSON(toIngredientResponse(ing))
	}
}

// POST /api/admin/ingredients
func CreateIngredientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateIngredientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.UnitOfMeasure = strings.TrimSpace(body.UnitOfMeasure)

		if body.Name == "" || body.UnitOfMeasure == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and unit_of_measure are required")
		}
		if body.CurrentStockQty.IsNegative() || body.SafetyStockQty.IsNegative() || body.ReorderLevel.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "stock quantities cannot be negative")
		}

		ing := models.Ingredient{
			Name:            body.Name,
			UnitOfMeasure:   body.UnitOfMeasure,
			CurrentStockQty: body.CurrentStockQty,
			SafetyStockQty:  body.SafetyStockQty,
			ReorderLevel:    body.ReorderLevel,
			IsPerishable:    body.IsPerishable,
		}

		if err := database.DB.Create(&ing).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create ingredient")
		}

		if userID, userName, err := audit.UserFromCtx(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "ingredient",
				EntityID:    ing.ID,
				Action:      models.AuditActionCreate,
				Description: "Ingredient created: " + ing.Name,
				After:       ing,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toIngredientResponse(ing))
	}
}

// PUT /api/admin/ingredients/:id
// Current stock is deliberately not editable here; it only moves through the
// ledger and restocking flows.
func UpdateIngredientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var ing models.Ingredient
		if err := database.DB.First(&ing, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "ingredient not found")
		}

		var body UpdateIngredientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		before := ing

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			ing.Name = name
		}
		if body.UnitOfMeasure != nil {
			unit := strings.TrimSpace(*body.UnitOfMeasure)
			if unit == "" {
				return fiber.NewError(fiber.StatusBadRequest, "unit_of_measure cannot be empty")
			}
			ing.UnitOfMeasure = unit
		}
		if body.SafetyStockQty != nil {
			if body.SafetyStockQty.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "safety_stock_qty cannot be negative")
			}
			ing.SafetyStockQty = *body.SafetyStockQty
		}
		if body.ReorderLevel != nil {
			if body.ReorderLevel.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "reorder_level cannot be negative")
			}
			ing.ReorderLevel = *body.ReorderLevel
		}
		if body.IsPerishable != nil {
			ing.IsPerishable = *body.IsPerishable
		}

		if err := database.DB.Save(&ing).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update ingredient")
		}

		if userID, userName, err := audit.UserFromCtx(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "ingredient",
				EntityID:    ing.ID,
				Action:      models.AuditActionUpdate,
				Description: "Ingredient updated: " + ing.Name,
				Before:      before,
				After:       ing,
			})
		}

		return c.JSON(toIngredientResponse(ing))
	}
}
