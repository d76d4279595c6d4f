package sales

import (
	"time"

	"canteen-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type DailyPoint struct {
	Label      string          `json:"label"` // "02 Jan"
	TotalSales decimal.Decimal `json:"total_sales"`
	OrderCount int             `json:"order_count"`
}

type TopItem struct {
	Name       string          `json:"name"`
	TotalQty   int             `json:"total_qty"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

type SalesAnalyticsResponse struct {
	Daily    []DailyPoint `json:"daily"`
	TopItems []TopItem    `json:"top_items"`
}

// GET /api/analytics/sales
// Last-7-days revenue/order counts per day plus the top 10 items by revenue.
func AnalyticsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		start := today.AddDate(0, 0, -6)

		type dailyRow struct {
			Day        time.Time       `gorm:"column:day"`
			TotalSales decimal.Decimal `gorm:"column:total_sales"`
			OrderCount int             `gorm:"column:order_count"`
		}
		var dailyRows []dailyRow
		if err := database.DB.Raw(`
			SELECT (order_datetime)::date AS day,
			       COALESCE(SUM(total_amount), 0) AS total_sales,
			       COUNT(id) AS order_count
			FROM customer_orders
			WHERE order_datetime >= ?
			GROUP BY (order_datetime)::date
			ORDER BY day ASC`,
			start,
		).Scan(&dailyRows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not aggregate daily sales")
		}

		daily := make([]DailyPoint, 0, len(dailyRows))
		for _, row := range dailyRows {
			daily = append(daily, DailyPoint{
				Label:      row.Day.Format("02 Jan"),
				TotalSales: row.TotalSales,
				OrderCount: row.OrderCount,
			})
		}

		type topRow struct {
			Name       string          `gorm:"column:name"`
			TotalQty   int             `gorm:"column:total_qty"`
			TotalSales decimal.Decimal `gorm:"column:total_sales"`
		}
		var topRows []topRow
		if err := database.DB.Raw(`
			SELECT mi.name AS name,
			       SUM(oi.quantity) AS total_qty,
			       SUM(oi.line_amount) AS total_sales
			FROM order_items oi
			JOIN menu_items mi ON mi.id = oi.menu_item_id
			GROUP BY mi.name
			ORDER BY total_sales DESC
			LIMIT 10`,
		).Scan(&topRows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not aggregate top items")
		}

		top := make([]TopItem, 0, len(topRows))
		for _, row := range topRows {
			top = append(top, TopItem{Name: row.Name, TotalQty: row.TotalQty, TotalSales: row.TotalSales})
		}

		return c.JSON(SalesAnalyticsResponse{Daily: daily, TopItems: top})
	}
}
