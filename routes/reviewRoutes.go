package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/luxvision/luxvision-api/controllers"
	"github.com/luxvision/luxvision-api/middlewares"
	"gorm.io/gorm"
)

func ReviewRoutes(api *gin.RouterGroup, db *gorm.DB) {
	controller := controllers.NewReviewController(db)
	reviews := api.Group("/reviews")
	{
		reviews.GET("/product/:productId", controller.GetProductReviews)
		reviews.POST("", middlewares.RequireAuth(), controller.CreateReview)
		reviews.PUT("/:id", middlewares.RequireAuth(), controller.UpdateReview)
		reviews.DELETE("/:id", middlewares.RequireAuth(), controller.DeleteReview)
	}
}
