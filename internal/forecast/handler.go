package forecast

import (
	"sort"

	"github.com/gofiber/fiber/v2"
)

type ForecastResponse struct {
	WindowDays int            `json:"window_days"`
	Items      []ItemForecast `json:"items"`
}

// GET /api/forecast?window_days=30
// Items are sorted by predicted quantity descending for presentation; cache
// may be nil when Redis is not configured.
func ForecastAllHandler(svc *Service, cache *Cache, defaultWindowDays int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		windowDays := c.QueryInt("window_days", defaultWindowDays)
		if windowDays <= 0 || windowDays > 365 {
			return fiber.NewError(fiber.StatusBadRequest, "window_days must be between 1 and 365")
		}

		if cache != nil {
			if items, ok := cache.Get(c.Context(), windowDays); ok {
				return c.JSON(ForecastResponse{WindowDays: windowDays, Items: items})
			}
		}

		items, err := svc.ForecastAll(c.Context(), windowDays)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not compute forecast")
		}

		sort.SliceStable(items, func(i, j int) bool {
			return items[i].PredictedQty > items[j].PredictedQty
		})

		if cache != nil {
			cache.Set(c.Context(), windowDays, items)
		}

		return c.JSON(ForecastResponse{WindowDays: windowDays, Items: items})
	}
}
