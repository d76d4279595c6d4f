package sales

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DailySales is one observed sale-day for a menu item: a calendar date with
// at least one unit sold, and the total quantity sold that day.
type DailySales struct {
	Date     time.Time `gorm:"column:day"`
	Quantity int       `gorm:"column:quantity"`
}

// Aggregator reads order history. The sequence it returns is sparse: days
// without sales are omitted, never zero-filled.
type Aggregator struct {
	db *gorm.DB
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// windowBounds returns the half-open interval [today - windowDays, tomorrow)
// covering the trailing window through the end of today. Rows dated in the
// future stay outside it.
func windowBounds(now time.Time, windowDays int) (start, end time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -windowDays), today.AddDate(0, 0, 1)
}

// History returns the per-day quantities sold for a menu item within the
// trailing window, oldest first.
func (a *Aggregator) History(ctx context.Context, menuItemID uint, windowDays int) ([]DailySales, error) {
	start, end := windowBounds(time.Now(), windowDays)

	var rows []DailySales
	err := a.db.WithContext(ctx).Raw(`
		SELECT (co.order_datetime)::date AS day, SUM(oi.quantity) AS quantity
		FROM order_items oi
		JOIN customer_orders co ON co.id = oi.customer_order_id
		WHERE oi.menu_item_id = ? AND co.order_datetime >= ? AND co.order_datetime < ?
		GROUP BY (co.order_datetime)::date
		ORDER BY day ASC`,
		menuItemID, start, end,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate sales history: %w", err)
	}

	return rows, nil
}
