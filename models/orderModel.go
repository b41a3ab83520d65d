package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s belongs to the fixed status vocabulary. Transitions
// between valid statuses are not constrained.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type Order struct {
	gorm.Model
	UserID          *uint           `json:"userId"`
	OrderNumber     string          `json:"orderNumber" gorm:"uniqueIndex;size:50"`
	Status          OrderStatus     `json:"status" gorm:"size:50;default:pending"`
	Subtotal        decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2)"`
	Tax             decimal.Decimal `json:"tax" gorm:"type:decimal(10,2)"`
	ShippingCost    decimal.Decimal `json:"shippingCost" gorm:"type:decimal(10,2)"`
	Total           decimal.Decimal `json:"total" gorm:"type:decimal(10,2)"`
	ShippingAddress datatypes.JSON  `json:"shippingAddress"`
	BillingAddress  datatypes.JSON  `json:"billingAddress"`
	PaymentMethod   string          `json:"paymentMethod" gorm:"size:50"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus" gorm:"size:50;default:pending"`
	Notes           string          `json:"notes"`
	OrderItems      []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem snapshots the purchased product at order time so later catalog
// edits do not alter historical orders.
type OrderItem struct {
	gorm.Model
	OrderID      uint            `json:"orderId"`
	ProductID    uint            `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductPrice decimal.Decimal `json:"productPrice" gorm:"type:decimal(10,2)"`
	Quantity     int             `json:"quantity" gorm:"check:quantity > 0"`
	Subtotal     decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2)"`
}
