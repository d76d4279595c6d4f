package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient is the authoritative stock record. CurrentStockQty is only
// mutated by the stock ledger's atomic decrement and by restocking flows.
type Ingredient struct {
	ID              uint            `gorm:"primaryKey"`
	Name            string          `gorm:"size:100;not null"`
	UnitOfMeasure   string          `gorm:"size:20;not null"` // g, ml, pcs, kg...
	CurrentStockQty decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	SafetyStockQty  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ReorderLevel    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	IsPerishable    bool            `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
