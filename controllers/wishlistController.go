package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/luxvision/luxvision-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WishlistController struct {
	DB *gorm.DB
}

func NewWishlistController(db *gorm.DB) *WishlistController {
	return &WishlistController{DB: db}
}

// GetWishlist returns the caller's wishlisted products.
func (w *WishlistController) GetWishlist(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var products []models.Product
	err := w.DB.Model(&models.Product{}).
		Joins("JOIN wishlist_items ON wishlist_items.product_id = products.id").
		Where("wishlist_items.user_id = ?", userID).
		Order("wishlist_items.created_at DESC").
		Find(&products).Error
	if err != nil {
		log.Println("Wishlist query error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch wishlist")
		return
	}

	sendSuccess(ctx, http.StatusOK, gin.H{"products": products})
}

// AddToWishlist is idempotent: adding an already-present product is a silent
// no-op.
func (w *WishlistController) AddToWishlist(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var wishlistData struct {
		ProductID uint `json:"productId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&wishlistData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	item := models.WishlistItem{
		UserID:    userID,
		ProductID: wishlistData.ProductID,
	}
	if err := w.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&item).Error; err != nil {
		log.Println("Wishlist creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to add product to wishlist")
		return
	}

	sendMessage(ctx, http.StatusCreated, "Product added to wishlist")
}

// RemoveFromWishlist drops a product from the caller's wishlist.
func (w *WishlistController) RemoveFromWishlist(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	productID, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := w.DB.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.WishlistItem{}).Error; err != nil {
		log.Println("Wishlist delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove product from wishlist")
		return
	}

	sendMessage(ctx, http.StatusOK, "Product removed from wishlist")
}
