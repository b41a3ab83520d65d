// Package orders holds the order-creation transaction: total computation,
// order-number generation, order and line persistence, and stock decrement
// as one atomic unit.
package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/luxvision/luxvision-api/models"
	"github.com/luxvision/luxvision-api/utils"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrEmptyCart is returned when order creation is attempted with no line
// items. It maps to a validation error at the controller.
var ErrEmptyCart = errors.New("empty cart")

const (
	orderNumberPrefix = "LV"
	suffixLength      = 9
)

// TaxRate is the fixed 18% tax policy applied to every order subtotal.
var TaxRate = decimal.New(18, -2)

// LineItem is one product entry of the cart snapshot being checked out.
type LineItem struct {
	ProductID uint            `json:"productId" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
}

func (li LineItem) subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

type CreateOrderInput struct {
	Items           []LineItem     `json:"items" binding:"omitempty,dive"`
	ShippingAddress datatypes.JSON `json:"shippingAddress" binding:"required"`
	BillingAddress  datatypes.JSON `json:"billingAddress"`
	PaymentMethod   string         `json:"paymentMethod"`
}

// Manager runs the order-creation transaction against an injected store
// handle. The clock and suffix source are swappable for tests.
type Manager struct {
	db   *gorm.DB
	now  func() time.Time
	code func(int) (string, error)
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db, now: time.Now, code: utils.GenerateCode}
}

// orderNumber builds a human-readable unique identifier. The unique index on
// orders.order_number is the authoritative guard; the random suffix only
// makes collisions negligible.
func (m *Manager) orderNumber() (string, error) {
	suffix, err := m.code(suffixLength)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%s", orderNumberPrefix, m.now().UnixMilli(), suffix), nil
}

// CreateOrder persists the order, its line snapshots and the stock
// decrements inside a single transaction. Any failure rolls back every
// write. The decrement is unconditional: stock may go negative, flipping
// in_stock retroactively rather than rejecting the order.
func (m *Manager) CreateOrder(ctx context.Context, userID uint, input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := decimal.Zero
	for _, item := range input.Items {
		subtotal = subtotal.Add(item.subtotal())
	}
	tax := subtotal.Mul(TaxRate).Round(2)
	shippingCost := decimal.Zero
	total := subtotal.Add(tax).Add(shippingCost)

	number, err := m.orderNumber()
	if err != nil {
		return nil, err
	}

	billing := input.BillingAddress
	if len(billing) == 0 {
		billing = input.ShippingAddress
	}

	order := models.Order{
		UserID:          &userID,
		OrderNumber:     number,
		Status:          models.OrderStatusPending,
		Subtotal:        subtotal,
		Tax:             tax,
		ShippingCost:    shippingCost,
		Total:           total,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  billing,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   models.PaymentStatusPending,
	}

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range input.Items {
			orderItem := models.OrderItem{
				OrderID:      order.ID,
				ProductID:    item.ProductID,
				ProductName:  item.Name,
				ProductPrice: item.Price,
				Quantity:     item.Quantity,
				Subtotal:     item.subtotal(),
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			order.OrderItems = append(order.OrderItems, orderItem)

			// Two statements so in_stock is derived from the already
			// decremented quantity on every dialect.
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity)).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("in_stock", gorm.Expr("stock_quantity > 0")).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}
