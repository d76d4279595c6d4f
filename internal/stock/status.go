package stock

import "canteen-backend/internal/models"

type HealthStatus string

const (
	StatusCritical HealthStatus = "Critical"
	StatusLow      HealthStatus = "Low"
	StatusHealthy  HealthStatus = "Healthy"
)

// Classify buckets an ingredient by its thresholds: below safety stock is
// Critical, below reorder level is Low, anything else Healthy.
func Classify(ing models.Ingredient) HealthStatus {
	if ing.CurrentStockQty.LessThan(ing.SafetyStockQty) {
		return StatusCritical
	}
	if ing.CurrentStockQty.LessThan(ing.ReorderLevel) {
		return StatusLow
	}
	return StatusHealthy
}
