package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/luxvision/luxvision-api/controllers"
	"github.com/luxvision/luxvision-api/middlewares"
	"gorm.io/gorm"
)

func ProductRoutes(api *gin.RouterGroup, db *gorm.DB) {
	controller := controllers.NewProductController(db)
	products := api.Group("/products")
	{
		products.GET("", controller.GetProducts)
		products.GET("/stats", controller.GetProductStats)
		products.GET("/:id", controller.GetProduct)

		admin := products.Group("", middlewares.RequireAuth(), middlewares.RequireAdmin())
		{
			admin.POST("", controller.CreateProduct)
			admin.PUT("/:id", controller.UpdateProduct)
			admin.DELETE("/:id", controller.DeleteProduct)
			admin.POST("/:id/images", controller.UploadProductImages)
		}
	}
}
