package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuCategory struct {
	ID          uint       `gorm:"primaryKey"`
	Name        string     `gorm:"size:100;not null;unique"`
	Description string     `gorm:"size:200"`
	Items       []MenuItem `gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type MenuItem struct {
	ID           uint            `gorm:"primaryKey"`
	CategoryID   *uint           `gorm:"index"`
	Category     *MenuCategory
	Name         string          `gorm:"size:100;not null"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	IsAvailable  bool            `gorm:"not null;default:true"`
	IsVegetarian bool            `gorm:"not null;default:false"`
	SpiceLevel   string          `gorm:"size:20"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
