package order

import (
	"context"
	"errors"
	"fmt"

	"canteen-backend/internal/models"
	"canteen-backend/internal/stock"

	"gorm.io/gorm"
)

// GormMenuReader serves menu item lookups for line validation.
type GormMenuReader struct {
	db *gorm.DB
}

func NewGormMenuReader(db *gorm.DB) *GormMenuReader {
	return &GormMenuReader{db: db}
}

func (r *GormMenuReader) MenuItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query menu item: %w", err)
	}
	return &item, nil
}

// GormStore commits an order inside a single database transaction. The
// deductions go through the stock ledger so the deltas are applied at the
// storage layer; if any of them fails the whole order rolls back.
type GormStore struct {
	db     *gorm.DB
	ledger *stock.Ledger
}

func NewGormStore(db *gorm.DB, ledger *stock.Ledger) *GormStore {
	return &GormStore{db: db, ledger: ledger}
}

func (s *GormStore) CreateOrder(ctx context.Context, order *models.CustomerOrder, deductions []StockDeduction) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for _, d := range deductions {
			if _, err := s.ledger.Decrement(tx, d.IngredientID, d.Amount); err != nil {
				return fmt.Errorf("decrement ingredient %d: %w", d.IngredientID, err)
			}
		}

		return nil
	})
}
