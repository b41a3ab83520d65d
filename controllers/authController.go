package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/luxvision/luxvision-api/models"
	"github.com/luxvision/luxvision-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Standard response messages
	msgInvalidInput          = "Invalid input"
	msgEmailInUse            = "This email is already in use"
	msgFailedToHashPassword  = "Failed to hash password"
	msgInvalidCredentials    = "Invalid email or password"
	msgFailedToGenerateToken = "Failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgInvalidLink           = "Invalid or expired link"
	msgActivationSuccess     = "Account has been verified successfully."
	msgResetLinkSent         = "Check your email for a password reset link."
	msgUserNotFound          = "User with this email does not exist"
	msgWrongCurrentPassword  = "Current password is incorrect"
	msgPasswordUpdated       = "Password updated successfully"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour * 24 * 30).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

func userPayload(user models.User) gin.H {
	return gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"phone":     user.Phone,
		"role":      user.Role,
	}
}

// Register creates a user account and returns a token plus the profile.
func (a *AuthController) Register(ctx *gin.Context) {
	var registerData models.RegisterData
	if err := ctx.ShouldBindJSON(&registerData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var existing models.User
	result := a.DB.Where("email = ?", registerData.Email).Find(&existing)
	if result.Error != nil {
		log.Println("Database error during user check:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgEmailInUse)
		return
	}

	hashedPassword, err := hashPassword(registerData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	activationToken, err := utils.GenerateCode(16)
	if err != nil {
		log.Println("Token generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	user := models.User{
		Email:                  registerData.Email,
		Password:               hashedPassword,
		FirstName:              registerData.FirstName,
		LastName:               registerData.LastName,
		Phone:                  registerData.Phone,
		Role:                   models.RoleCustomer,
		AccountActivationToken: activationToken,
	}

	if result := a.DB.Create(&user); result.Error != nil {
		log.Println("User creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	// Continue despite email errors, but log them.
	if err := utils.SendVerificationEmail(user.Email, user.FirstName, activationToken); err != nil {
		log.Println("Error sending verification email:", err)
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendSuccess(ctx, http.StatusCreated, gin.H{
		"token": tokenString,
		"user":  userPayload(user),
	})
}

// Login verifies credentials and returns a token plus the profile.
func (a *AuthController) Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	if err := a.DB.Where("email = ?", loginData.Email).First(&user).Error; err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendSuccess(ctx, http.StatusOK, gin.H{
		"token": tokenString,
		"user":  userPayload(user),
	})
}

// GetMe returns the authenticated user's profile.
func (a *AuthController) GetMe(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var user models.User
	if err := a.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	payload := userPayload(user)
	payload["isVerified"] = user.IsVerified
	payload["createdAt"] = user.CreatedAt
	sendSuccess(ctx, http.StatusOK, gin.H{"user": payload})
}

// UpdateProfile mutates the caller's own name and phone fields. Absent
// fields keep their current values.
func (a *AuthController) UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var profileData struct {
		FirstName *string `json:"firstName"`
		LastName  *string `json:"lastName"`
		Phone     *string `json:"phone"`
	}
	if err := ctx.ShouldBindJSON(&profileData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updates := map[string]any{}
	if profileData.FirstName != nil {
		updates["first_name"] = *profileData.FirstName
	}
	if profileData.LastName != nil {
		updates["last_name"] = *profileData.LastName
	}
	if profileData.Phone != nil {
		updates["phone"] = *profileData.Phone
	}

	if len(updates) > 0 {
		if err := a.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			log.Println("Profile update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
	}

	var user models.User
	if err := a.DB.First(&user, userID).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccess(ctx, http.StatusOK, gin.H{"user": userPayload(user)})
}

// UpdatePassword re-verifies the current password before accepting the new
// one, then issues a fresh token.
func (a *AuthController) UpdatePassword(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var passwordData struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=8"`
	}
	if err := ctx.ShouldBindJSON(&passwordData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	if err := a.DB.First(&user, userID).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if err := comparePasswords(user.Password, passwordData.CurrentPassword); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgWrongCurrentPassword)
		return
	}

	hashedPassword, err := hashPassword(passwordData.NewPassword)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	if err := a.DB.Model(&user).Update("password", hashedPassword).Error; err != nil {
		log.Println("Password update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendSuccess(ctx, http.StatusOK, gin.H{
		"token":   tokenString,
		"message": msgPasswordUpdated,
	})
}

// VerifyEmail flips is_verified using the activation token from the link.
func (a *AuthController) VerifyEmail(ctx *gin.Context) {
	activationToken := ctx.Param("activationToken")

	result := a.DB.Model(&models.User{}).
		Where("account_activation_token = ? AND account_activation_token <> ''", activationToken).
		Updates(map[string]any{
			"is_verified":              true,
			"account_activation_token": "",
		})

	if result.Error != nil {
		log.Println("Account verification error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidLink)
		return
	}

	sendMessage(ctx, http.StatusOK, msgActivationSuccess)
}

// ForgotPassword generates a reset token and mails the reset link.
func (a *AuthController) ForgotPassword(ctx *gin.Context) {
	var forgotPasswordData struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := ctx.ShouldBindJSON(&forgotPasswordData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	if err := a.DB.Where("email = ?", forgotPasswordData.Email).First(&user).Error; err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUserNotFound)
		return
	}

	resetToken, err := utils.GenerateCode(16)
	if err != nil {
		log.Println("Reset token generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if err := a.DB.Model(&user).Update("password_reset_token", resetToken).Error; err != nil {
		log.Println("Error saving reset token:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if err := utils.SendPasswordResetEmail(user.Email, user.FirstName, resetToken); err != nil {
		log.Println("Error sending password reset email:", err)
	}

	sendMessage(ctx, http.StatusOK, msgResetLinkSent)
}

// ResetPassword sets a new password using the reset token from the link.
func (a *AuthController) ResetPassword(ctx *gin.Context) {
	var resetPasswordData struct {
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := ctx.ShouldBindJSON(&resetPasswordData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	hashedPassword, err := hashPassword(resetPasswordData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	resetToken := ctx.Param("resetToken")
	result := a.DB.Model(&models.User{}).
		Where("password_reset_token = ? AND password_reset_token <> ''", resetToken).
		Updates(map[string]any{
			"password":             hashedPassword,
			"password_reset_token": "",
		})

	if result.Error != nil {
		log.Println("Error resetting password:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidLink)
		return
	}

	sendMessage(ctx, http.StatusOK, "Password reset successful")
}
