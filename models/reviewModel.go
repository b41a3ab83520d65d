package models

import "gorm.io/gorm"

// One review per (product, user) pair, enforced by the composite unique index.
type Review struct {
	gorm.Model
	ProductID    uint   `json:"productId" gorm:"uniqueIndex:idx_reviews_product_user" binding:"required"`
	UserID       uint   `json:"userId" gorm:"uniqueIndex:idx_reviews_product_user"`
	Rating       int    `json:"rating" gorm:"check:rating >= 1 AND rating <= 5" binding:"required,min=1,max=5"`
	Title        string `json:"title" binding:"required"`
	Comment      string `json:"comment" binding:"required"`
	Verified     bool   `json:"verified"`
	HelpfulCount int    `json:"helpfulCount"`
}
