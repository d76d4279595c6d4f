package forecast

import (
	"context"
	"fmt"
	"log"
	"sync"

	"canteen-backend/internal/models"
	"canteen-backend/internal/sales"

	"gorm.io/gorm"
)

// HistoryProvider yields the sparse per-day sales sequence for one item.
type HistoryProvider interface {
	History(ctx context.Context, menuItemID uint, windowDays int) ([]sales.DailySales, error)
}

// MenuLister enumerates the items to forecast.
type MenuLister interface {
	MenuItems(ctx context.Context) ([]models.MenuItem, error)
}

// ItemForecast is the per-item output schema. AvgDailySales is only set for
// high-confidence (regression) results.
type ItemForecast struct {
	ItemID        uint       `json:"item_id"`
	Name          string     `json:"name"`
	PredictedQty  int        `json:"predicted_qty"`
	Confidence    Confidence `json:"confidence"`
	AvgDailySales *int       `json:"avg_daily_sales,omitempty"`
	Method        Method     `json:"method"`
}

type Service struct {
	menu    MenuLister
	history HistoryProvider
}

func NewService(menu MenuLister, history HistoryProvider) *Service {
	return &Service{menu: menu, history: history}
}

// ForecastAll computes a next-day demand estimate for every menu item. Items
// are independent, so each one runs in its own goroutine; a failure for one
// item (history read or degenerate fit) degrades that item to the average
// fallback and never aborts the rest.
func (s *Service) ForecastAll(ctx context.Context, windowDays int) ([]ItemForecast, error) {
	items, err := s.menu.MenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}

	out := make([]ItemForecast, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item models.MenuItem) {
			defer wg.Done()
			out[i] = s.forecastItem(ctx, item, windowDays)
		}(i, item)
	}
	wg.Wait()

	return out, nil
}

func (s *Service) forecastItem(ctx context.Context, item models.MenuItem, windowDays int) ItemForecast {
	days, err := s.history.History(ctx, item.ID, windowDays)
	if err != nil {
		log.Printf("forecast: history for item %d (%s) failed, using empty fallback: %v", item.ID, item.Name, err)
		days = nil
	}

	quantities := make([]int, 0, len(days))
	for _, d := range days {
		quantities = append(quantities, d.Quantity)
	}

	p := Predict(quantities)
	if p.FitErr != nil {
		log.Printf("forecast: regression for item %d (%s) fell back to average: %v", item.ID, item.Name, p.FitErr)
	}

	f := ItemForecast{
		ItemID:       item.ID,
		Name:         item.Name,
		PredictedQty: p.PredictedQty,
		Confidence:   p.Confidence,
		Method:       p.Method,
	}
	if p.Confidence == ConfidenceHigh {
		avg := p.AvgDailySales
		f.AvgDailySales = &avg
	}
	return f
}

// GormMenuLister lists menu items straight from the database.
type GormMenuLister struct {
	db *gorm.DB
}

func NewGormMenuLister(db *gorm.DB) *GormMenuLister {
	return &GormMenuLister{db: db}
}

func (l *GormMenuLister) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := l.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	return items, nil
}
