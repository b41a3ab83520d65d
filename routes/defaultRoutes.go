package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/luxvision/luxvision-api/controllers"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/health", controllers.HealthCheck)
}
