package stock

import (
	"testing"

	"canteen-backend/internal/models"

	"github.com/shopspring/decimal"
)

func ing(current, safety, reorder int64) models.Ingredient {
	return models.Ingredient{
		CurrentStockQty: decimal.NewFromInt(current),
		SafetyStockQty:  decimal.NewFromInt(safety),
		ReorderLevel:    decimal.NewFromInt(reorder),
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   models.Ingredient
		want HealthStatus
	}{
		{"below safety", ing(4, 5, 20), StatusCritical},
		{"between safety and reorder", ing(10, 5, 20), StatusLow},
		{"at reorder level", ing(20, 5, 20), StatusHealthy},
		{"well stocked", ing(100, 5, 20), StatusHealthy},
		{"negative after oversell", ing(-3, 5, 20), StatusCritical},
		{"at safety level counts as low", ing(5, 5, 20), StatusLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.in); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
