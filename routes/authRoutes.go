package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/luxvision/luxvision-api/controllers"
	"github.com/luxvision/luxvision-api/middlewares"
	"gorm.io/gorm"
)

func AuthRoutes(api *gin.RouterGroup, db *gorm.DB) {
	controller := controllers.NewAuthController(db)
	auth := api.Group("/auth")
	{
		auth.POST("/register", controller.Register)
		auth.POST("/login", controller.Login)
		auth.POST("/verify-email/:activationToken", controller.VerifyEmail)
		auth.POST("/forgot-password", controller.ForgotPassword)
		auth.POST("/reset-password/:resetToken", controller.ResetPassword)
		auth.GET("/me", middlewares.RequireAuth(), controller.GetMe)
		auth.PUT("/updateprofile", middlewares.RequireAuth(), controller.UpdateProfile)
		auth.PUT("/updatepassword", middlewares.RequireAuth(), controller.UpdatePassword)
	}
}
