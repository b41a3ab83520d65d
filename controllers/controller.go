package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Every response uses the shared envelope {status, data?, message?}.

func sendSuccess(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, gin.H{"status": "success", "data": data})
}

func sendMessage(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"status": "success", "message": message})
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"status": "error", "message": message})
}

// currentUserID extracts the authenticated user id from the claims set by
// RequireAuth.
func currentUserID(ctx *gin.Context) (uint, bool) {
	userClaims, exists := ctx.Get("user")
	if !exists {
		return 0, false
	}
	claims, ok := userClaims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, false
	}
	return uint(id), true
}
