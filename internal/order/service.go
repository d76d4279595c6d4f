package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"canteen-backend/internal/menu"
	"canteen-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNoValidItems = errors.New("no valid items selected")

// Line is one requested (menu item, quantity) pair. Quantity arrives as a
// string from the order form and is validated here, not at the transport.
type Line struct {
	MenuItemID uint   `json:"menu_item_id"`
	Quantity   string `json:"quantity"`
}

// Request carries the order lines plus the presentation extras the receipt
// needs.
type Request struct {
	OrderType   models.OrderType
	PaymentMode string
	Lines       []Line
}

// StockDeduction is the cumulative amount to subtract from one ingredient
// when an order is committed.
type StockDeduction struct {
	IngredientID uint
	Amount       decimal.Decimal
}

// MenuReader returns the current menu item row, or nil when it does not
// exist.
type MenuReader interface {
	MenuItem(ctx context.Context, id uint) (*models.MenuItem, error)
}

// RecipeResolver returns the committed bill of materials for a menu item.
type RecipeResolver interface {
	Resolve(ctx context.Context, menuItemID uint) ([]menu.RecipeComponent, error)
}

// Store persists the order with its items and applies all stock deductions
// as one atomic unit of work. Any failure must leave no trace of the order
// or of partial deductions.
type Store interface {
	CreateOrder(ctx context.Context, order *models.CustomerOrder, deductions []StockDeduction) error
}

type Service struct {
	menu    MenuReader
	recipes RecipeResolver
	store   Store
}

func NewService(menuReader MenuReader, recipes RecipeResolver, store Store) *Service {
	return &Service{menu: menuReader, recipes: recipes, store: store}
}

type validLine struct {
	item       *models.MenuItem
	quantity   int
	lineAmount decimal.Decimal
}

// Fulfill validates the requested lines, drops the invalid ones, and commits
// the surviving lines as one order: order row, item rows with price
// snapshots, and the recipe-implied stock deductions, all-or-nothing.
// Lines repeating a menu item merge their quantities, so an order carries at
// most one item row per menu item.
func (s *Service) Fulfill(ctx context.Context, req Request) (*models.CustomerOrder, error) {
	valid := make([]validLine, 0, len(req.Lines))
	seen := make(map[uint]int)
	for _, line := range req.Lines {
		qty, err := strconv.Atoi(strings.TrimSpace(line.Quantity))
		if err != nil || qty <= 0 {
			continue
		}

		if i, ok := seen[line.MenuItemID]; ok {
			valid[i].quantity += qty
			valid[i].lineAmount = valid[i].item.Price.Mul(decimal.NewFromInt(int64(valid[i].quantity)))
			continue
		}

		item, err := s.menu.MenuItem(ctx, line.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("load menu item %d: %w", line.MenuItemID, err)
		}
		if item == nil {
			continue
		}

		seen[line.MenuItemID] = len(valid)
		valid = append(valid, validLine{
			item:       item,
			quantity:   qty,
			lineAmount: item.Price.Mul(decimal.NewFromInt(int64(qty))),
		})
	}

	if len(valid) == 0 {
		return nil, ErrNoValidItems
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(valid))
	for _, vl := range valid {
		total = total.Add(vl.lineAmount)
		items = append(items, models.OrderItem{
			MenuItemID: vl.item.ID,
			Quantity:   vl.quantity,
			UnitPrice:  vl.item.Price,
			LineAmount: vl.lineAmount,
		})
	}

	deductions, err := s.deductionsFor(ctx, valid)
	if err != nil {
		return nil, err
	}

	orderType := req.OrderType
	if orderType == "" {
		orderType = models.OrderTypeDineIn
	}

	order := &models.CustomerOrder{
		OrderNumber:   uuid.NewString(),
		OrderDatetime: time.Now(),
		OrderType:     orderType,
		OrderStatus:   models.OrderStatusPending,
		PaymentMode:   req.PaymentMode,
		TotalAmount:   total,
		Items:         items,
	}

	if err := s.store.CreateOrder(ctx, order, deductions); err != nil {
		return nil, fmt.Errorf("fulfill order: %w", err)
	}

	return order, nil
}

// deductionsFor aggregates the recipe components of all valid lines into one
// delta per ingredient. An ingredient shared by two lines accumulates both
// contributions. A menu item without a recipe simply deducts nothing.
func (s *Service) deductionsFor(ctx context.Context, valid []validLine) ([]StockDeduction, error) {
	index := make(map[uint]int)
	var deductions []StockDeduction

	for _, vl := range valid {
		components, err := s.recipes.Resolve(ctx, vl.item.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve recipe for menu item %d: %w", vl.item.ID, err)
		}

		qty := decimal.NewFromInt(int64(vl.quantity))
		for _, comp := range components {
			amount := comp.QuantityRequired.Mul(qty)
			if i, ok := index[comp.IngredientID]; ok {
				deductions[i].Amount = deductions[i].Amount.Add(amount)
			} else {
				index[comp.IngredientID] = len(deductions)
				deductions = append(deductions, StockDeduction{
					IngredientID: comp.IngredientID,
					Amount:       amount,
				})
			}
		}
	}

	return deductions, nil
}
