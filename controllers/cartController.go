package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/luxvision/luxvision-api/models"
	"gorm.io/gorm"
)

type CartController struct {
	DB *gorm.DB
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db}
}

type cartLine struct {
	models.Product
	Quantity   int  `json:"quantity"`
	CartItemID uint `json:"cartItemId" gorm:"column:cart_item_id"`
}

// GetCart returns the caller's cart rows joined with their products.
func (c *CartController) GetCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var items []cartLine
	err := c.DB.Table("cart_items").
		Select("products.*, cart_items.quantity AS quantity, cart_items.id AS cart_item_id").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ? AND products.deleted_at IS NULL", userID).
		Order("cart_items.created_at DESC").
		Scan(&items).Error
	if err != nil {
		log.Println("Cart query error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	sendSuccess(ctx, http.StatusOK, gin.H{"items": items})
}

// AddToCart is an upsert: a duplicate (user, product) add increments the
// existing row's quantity instead of creating a second row.
func (c *CartController) AddToCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var cartData struct {
		ProductID uint `json:"productId" binding:"required"`
		Quantity  int  `json:"quantity" binding:"omitempty,min=1"`
	}
	if err := ctx.ShouldBindJSON(&cartData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if cartData.Quantity == 0 {
		cartData.Quantity = 1
	}

	var existing models.CartItem
	err := c.DB.Where("user_id = ? AND product_id = ?", userID, cartData.ProductID).First(&existing).Error
	if err == nil {
		existing.Quantity += cartData.Quantity
		if err := c.DB.Save(&existing).Error; err != nil {
			log.Println("Cart update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to update cart item quantity")
			return
		}
		sendSuccess(ctx, http.StatusOK, gin.H{"item": existing})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Cart lookup error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch cart item")
		return
	}

	item := models.CartItem{
		UserID:    userID,
		ProductID: cartData.ProductID,
		Quantity:  cartData.Quantity,
	}
	if err := c.DB.Create(&item).Error; err != nil {
		log.Println("Cart creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to add product to cart")
		return
	}

	sendSuccess(ctx, http.StatusCreated, gin.H{"item": item})
}

// UpdateCartItem replaces a cart row's quantity. Non-positive quantities are
// rejected.
func (c *CartController) UpdateCartItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	itemID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid cart item ID")
		return
	}

	var cartData struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := ctx.ShouldBindJSON(&cartData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	result := c.DB.Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("quantity", cartData.Quantity)
	if result.Error != nil {
		log.Println("Cart update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update cart item")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Cart item not found")
		return
	}

	sendMessage(ctx, http.StatusOK, "Cart item updated")
}

// RemoveFromCart deletes one of the caller's cart rows.
func (c *CartController) RemoveFromCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	itemID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid cart item ID")
		return
	}

	result := c.DB.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{})
	if result.Error != nil {
		log.Println("Cart delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove cart item")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Cart item not found")
		return
	}

	sendMessage(ctx, http.StatusOK, "Product removed from cart")
}

// ClearCart empties the caller's cart.
func (c *CartController) ClearCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	if err := c.DB.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		log.Println("Cart clear error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	sendMessage(ctx, http.StatusOK, "Cart cleared")
}
