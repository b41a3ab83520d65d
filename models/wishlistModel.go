package models

import "time"

type WishlistItem struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"userId" gorm:"uniqueIndex:idx_wishlist_user_product"`
	ProductID uint      `json:"productId" gorm:"uniqueIndex:idx_wishlist_user_product" binding:"required"`
	CreatedAt time.Time `json:"createdAt"`
}
