package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusServed    OrderStatus = "SERVED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type OrderType string

const (
	OrderTypeDineIn   OrderType = "DINE_IN"
	OrderTypeTakeaway OrderType = "TAKEAWAY"
	OrderTypeOnline   OrderType = "ONLINE"
)

type CustomerOrder struct {
	ID            uint            `gorm:"primaryKey"`
	OrderNumber   string          `gorm:"size:36;uniqueIndex;not null"`
	OrderDatetime time.Time       `gorm:"index;not null"`
	OrderType     OrderType       `gorm:"size:20;not null;default:DINE_IN"`
	OrderStatus   OrderStatus     `gorm:"size:20;not null;default:PENDING"`
	PaymentMode   string          `gorm:"size:50"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Items         []OrderItem     `gorm:"foreignKey:CustomerOrderID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem snapshots the unit price at order time; later menu price changes
// do not affect persisted orders.
type OrderItem struct {
	ID              uint            `gorm:"primaryKey"`
	CustomerOrderID uint            `gorm:"not null;uniqueIndex:idx_order_item_menu_item"`
	MenuItemID      uint            `gorm:"not null;uniqueIndex:idx_order_item_menu_item;index"`
	MenuItem        MenuItem
	Quantity        int             `gorm:"not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
