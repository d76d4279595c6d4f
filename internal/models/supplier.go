package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier master data is managed externally; the core only reads it for
// inventory status views.
type Supplier struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Phone     string `gorm:"size:20"`
	Email     string `gorm:"size:100"`
	Address   string `gorm:"size:200"`
	GSTNumber string `gorm:"size:20"`
	Status    string `gorm:"size:20"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SupplierIngredient struct {
	ID           uint `gorm:"primaryKey"`
	SupplierID   uint `gorm:"not null;uniqueIndex:idx_supplier_ingredient"`
	Supplier     Supplier
	IngredientID uint `gorm:"not null;uniqueIndex:idx_supplier_ingredient"`
	Ingredient   Ingredient
}

type PurchaseOrder struct {
	ID                   uint            `gorm:"primaryKey"`
	SupplierID           uint            `gorm:"index;not null"`
	Supplier             Supplier
	OrderDate            time.Time       `gorm:"not null"`
	ReceivedDate         *time.Time
	ExpectedDeliveryDate *time.Time
	TotalAmount          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Status               string          `gorm:"size:20"`
	Lines                []PurchaseOrderLine `gorm:"foreignKey:PurchaseOrderID"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type PurchaseOrderLine struct {
	ID              uint            `gorm:"primaryKey"`
	PurchaseOrderID uint            `gorm:"not null;uniqueIndex:idx_po_line_no"`
	LineNo          int             `gorm:"not null;uniqueIndex:idx_po_line_no"`
	IngredientID    uint            `gorm:"index;not null"`
	Ingredient      Ingredient
	OrderedQty      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ReceivedQty     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}
