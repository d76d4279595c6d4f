package menu

import (
	"strings"

	"canteen-backend/internal/audit"
	"canteen-backend/internal/database"
	"canteen-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItemResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	IsAvailable  bool            `json:"is_available"`
	IsVegetarian bool            `json:"is_vegetarian"`
	SpiceLevel   string          `json:"spice_level,omitempty"`
}

type MenuCategoryResponse struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Items       []MenuItemResponse `json:"items"`
}

type CreateMenuItemRequest struct {
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   *uint           `json:"category_id"`
	IsAvailable  *bool           `json:"is_available"`
	IsVegetarian bool            `json:"is_vegetarian"`
	SpiceLevel   string          `json:"spice_level"`
}

type UpdateMenuItemRequest struct {
	Name         *string          `json:"name"`
	Price        *decimal.Decimal `json:"price"`
	CategoryID   *uint            `json:"category_id"`
	IsAvailable  *bool            `json:"is_available"`
	IsVegetarian *bool            `json:"is_vegetarian"`
	SpiceLevel   *string          `json:"spice_level"`
}

func toMenuItemResponse(item models.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		Price:        item.Price,
		IsAvailable:  item.IsAvailable,
		IsVegetarian: item.IsVegetarian,
		SpiceLevel:   item.SpiceLevel,
	}
}

// GET /api/menu
// Categories with their items, sorted by name; uncategorized items last.
func ListMenuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.MenuCategory
		if err := database.DB.
			Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("menu_items.name asc") }).
			Order("name asc").
			Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list menu")
		}

		res := make([]MenuCategoryResponse, 0, len(categories)+1)
		for _, cat := range categories {
			cr := MenuCategoryResponse{
				ID:          cat.ID,
				Name:        cat.Name,
				Description: cat.Description,
				Items:       make([]MenuItemResponse, 0, len(cat.Items)),
			}
			for _, item := range cat.Items {
				cr.Items = append(cr.Items, toMenuItemResponse(item))
			}
			res = append(res, cr)
		}

		var uncategorized []models.MenuItem
		if err := database.DB.Where("category_id IS NULL").Order("name asc").Find(&uncategorized).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list menu")
		}
		if len(uncategorized) > 0 {
			cr := MenuCategoryResponse{Name: "Uncategorized", Items: make([]MenuItemResponse, 0, len(uncategorized))}
			for _, item := range uncategorized {
				cr.Items = append(cr.Items, toMenuItemResponse(item))
			}
			res = append(res, cr)
		}

		return c.JSON(res)
	}
}

// POST /api/admin/menu-items
func CreateMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMenuItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}
		if body.Price.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "price cannot be negative")
		}
		if body.CategoryID != nil {
			var cat models.MenuCategory
			if err := database.DB.First(&cat, "id = ?", *body.CategoryID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "category not found")
			}
		}

		item := models.MenuItem{
			Name:         body.Name,
			Price:        body.Price,
			CategoryID:   body.CategoryID,
			IsAvailable:  true,
			IsVegetarian: body.IsVegetarian,
			SpiceLevel:   strings.TrimSpace(body.SpiceLevel),
		}
		if body.IsAvailable != nil {
			item.IsAvailable = *body.IsAvailable
		}

		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create menu item")
		}

		if userID, userName, err := audit.UserFromCtx(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "menu_item",
				EntityID:    item.ID,
				Action:      models.AuditActionCreate,
				Description: "Menu item created: " + item.Name,
				After:       item,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toMenuItemResponse(item))
	}
}

// PUT /api/admin/menu-items/:id
func UpdateMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var item models.MenuItem
		if err := database.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "menu item not found")
		}

		var body UpdateMenuItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		before := item

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			item.Name = name
		}
		if body.Price != nil {
			if body.Price.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "price cannot be negative")
			}
			item.Price = *body.Price
		}
		if body.CategoryID != nil {
			var cat models.MenuCategory
			if err := database.DB.First(&cat, "id = ?", *body.CategoryID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "category not found")
			}
			item.CategoryID = body.CategoryID
		}
		if body.IsAvailable != nil {
			item.IsAvailable = *body.IsAvailable
		}
		if body.IsVegetarian != nil {
			item.IsVegetarian = *body.IsVegetarian
		}
		if body.SpiceLevel != nil {
			item.SpiceLevel = strings.TrimSpace(*body.SpiceLevel)
		}

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update menu item")
		}

		if userID, userName, err := audit.UserFromCtx(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "menu_item",
				EntityID:    item.ID,
				Action:      models.AuditActionUpdate,
				Description: "Menu item updated: " + item.Name,
				Before:      before,
				After:       item,
			})
		}

		return c.JSON(toMenuItemResponse(item))
	}
}
