package dashboard

import (
	"canteen-backend/internal/database"
	"canteen-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type SummaryResponse struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalOrders    int64           `json:"total_orders"`
	TotalMenuItems int64           `json:"total_menu_items"`
	LowStockCount  int64           `json:"low_stock_count"`
}

// GET /api/dashboard/summary
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var res SummaryResponse

		var revenueRow struct {
			TotalRevenue decimal.Decimal `gorm:"column:total_revenue"`
		}
		if err := database.DB.Raw(
			`SELECT COALESCE(SUM(total_amount), 0) AS total_revenue FROM customer_orders`,
		).Scan(&revenueRow).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not compute revenue")
		}
		res.TotalRevenue = revenueRow.TotalRevenue

		if err := database.DB.Model(&models.CustomerOrder{}).Count(&res.TotalOrders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not count orders")
		}
		if err := database.DB.Model(&models.MenuItem{}).Count(&res.TotalMenuItems).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not count menu items")
		}
		if err := database.DB.Model(&models.Ingredient{}).
			Where("current_stock_qty < reorder_level").
			Count(&res.LowStockCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not count low stock")
		}

		return c.JSON(res)
	}
}
