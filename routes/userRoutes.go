package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/luxvision/luxvision-api/controllers"
	"github.com/luxvision/luxvision-api/middlewares"
	"gorm.io/gorm"
)

// UserRoutes registers the user-scoped wishlist and cart endpoints.
func UserRoutes(api *gin.RouterGroup, db *gorm.DB) {
	cartController := controllers.NewCartController(db)
	wishlistController := controllers.NewWishlistController(db)

	users := api.Group("/users", middlewares.RequireAuth())
	{
		users.GET("/wishlist", wishlistController.GetWishlist)
		users.POST("/wishlist", wishlistController.AddToWishlist)
		users.DELETE("/wishlist/:productId", wishlistController.RemoveFromWishlist)

		users.GET("/cart", cartController.GetCart)
		users.POST("/cart", cartController.AddToCart)
		users.PUT("/cart/:id", cartController.UpdateCartItem)
		users.DELETE("/cart/:id", cartController.RemoveFromCart)
		users.DELETE("/cart", cartController.ClearCart)
	}
}
