package models

import "time"

// Cart rows are hard-deleted so a removed product can be re-added without
// colliding with the (user_id, product_id) unique index.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"userId" gorm:"uniqueIndex:idx_cart_user_product"`
	ProductID uint      `json:"productId" gorm:"uniqueIndex:idx_cart_user_product" binding:"required"`
	Quantity  int       `json:"quantity" gorm:"default:1;check:quantity > 0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
