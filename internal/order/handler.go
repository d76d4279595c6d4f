package order

import (
	"errors"

	"canteen-backend/internal/audit"
	"canteen-backend/internal/database"
	"canteen-backend/internal/models"
	"canteen-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	OrderType   string `json:"order_type"`   // DINE_IN | TAKEAWAY | ONLINE
	PaymentMode string `json:"payment_mode"` // optional
	Items       []Line `json:"items"`
}

type CreateOrderResponse struct {
	OrderID     uint            `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type OrderItemResponse struct {
	MenuItemID   uint            `json:"menu_item_id"`
	MenuItemName string          `json:"menu_item_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineAmount   decimal.Decimal `json:"line_amount"`
}

type OrderResponse struct {
	ID            uint                `json:"id"`
	OrderNumber   string              `json:"order_number"`
	OrderDatetime string              `json:"order_datetime"`
	OrderType     models.OrderType    `json:"order_type"`
	OrderStatus   models.OrderStatus  `json:"order_status"`
	PaymentMode   string              `json:"payment_mode,omitempty"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Items         []OrderItemResponse `json:"items"`
}

var orderTypes = map[string]models.OrderType{
	string(models.OrderTypeDineIn):   models.OrderTypeDineIn,
	string(models.OrderTypeTakeaway): models.OrderTypeTakeaway,
	string(models.OrderTypeOnline):   models.OrderTypeOnline,
}

// POST /api/orders
func CreateOrderHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		orderType := models.OrderTypeDineIn
		if body.OrderType != "" {
			t, ok := orderTypes[body.OrderType]
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "unknown order_type")
			}
			orderType = t
		}

		created, err := svc.Fulfill(c.Context(), Request{
			OrderType:   orderType,
			PaymentMode: body.PaymentMode,
			Lines:       body.Items,
		})
		if err != nil {
			if errors.Is(err, ErrNoValidItems) {
				return fiber.NewError(fiber.StatusBadRequest, "no valid items selected")
			}
			if errors.Is(err, stock.ErrInsufficientStock) {
				return fiber.NewError(fiber.StatusConflict, "insufficient ingredient stock")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "could not fulfill order")
		}

		if userID, userName, err := audit.UserFromCtx(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "customer_order",
				EntityID:    created.ID,
				Action:      models.AuditActionCreate,
				Description: "Order fulfilled: " + created.OrderNumber,
				After:       created,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(CreateOrderResponse{
			OrderID:     created.ID,
			OrderNumber: created.OrderNumber,
			TotalAmount: created.TotalAmount,
		})
	}
}

// GET /api/orders/recent
// The last 20 orders with their item breakdown, newest first.
func RecentOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var orders []models.CustomerOrder
		if err := database.DB.
			Preload("Items.MenuItem").
			Order("order_datetime desc").
			Limit(20).
			Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list orders")
		}

		res := make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			or := OrderResponse{
				ID:            o.ID,
				OrderNumber:   o.OrderNumber,
				OrderDatetime: o.OrderDatetime.Format("2006-01-02 15:04:05"),
				OrderType:     o.OrderType,
				OrderStatus:   o.OrderStatus,
				PaymentMode:   o.PaymentMode,
				TotalAmount:   o.TotalAmount,
				Items:         make([]OrderItemResponse, 0, len(o.Items)),
			}
			for _, item := range o.Items {
				or.Items = append(or.Items, OrderItemResponse{
					MenuItemID:   item.MenuItemID,
					MenuItemName: item.MenuItem.Name,
					Quantity:     item.Quantity,
					UnitPrice:    item.UnitPrice,
					LineAmount:   item.LineAmount,
				})
			}
			res = append(res, or)
		}
		return c.JSON(res)
	}
}
