package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/luxvision/luxvision-api/controllers"
	"github.com/luxvision/luxvision-api/middlewares"
	"gorm.io/gorm"
)

func OrderRoutes(api *gin.RouterGroup, db *gorm.DB) {
	controller := controllers.NewOrderController(db)
	orders := api.Group("/orders", middlewares.RequireAuth())
	{
		orders.GET("", controller.GetUserOrders)
		orders.POST("", controller.CreateOrder)
		orders.GET("/all", middlewares.RequireAdmin(), controller.GetAllOrders)
		orders.GET("/:id", controller.GetOrder)
		orders.PUT("/:id/status", middlewares.RequireAdmin(), controller.UpdateOrderStatus)
	}
}
