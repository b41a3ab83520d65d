package models

import "gorm.io/gorm"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	gorm.Model
	Email                  string `json:"email" gorm:"uniqueIndex;size:255"`
	Password               string `json:"-"`
	FirstName              string `json:"firstName"`
	LastName               string `json:"lastName"`
	Phone                  string `json:"phone"`
	Role                   string `json:"role" gorm:"size:20;default:customer"`
	IsVerified             bool   `json:"isVerified"`
	AccountActivationToken string `json:"-"`
	PasswordResetToken     string `json:"-"`
}

type RegisterData struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
