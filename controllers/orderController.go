package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/luxvision/luxvision-api/models"
	"github.com/luxvision/luxvision-api/orders"
	"gorm.io/gorm"
)

type OrderController struct {
	DB      *gorm.DB
	Manager *orders.Manager
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db, Manager: orders.NewManager(db)}
}

// CreateOrder runs the checkout transaction for the caller's cart snapshot.
func (o *OrderController) CreateOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input orders.CreateOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	order, err := o.Manager.CreateOrder(ctx.Request.Context(), userID, input)
	if err != nil {
		if errors.Is(err, orders.ErrEmptyCart) {
			sendErrorResponse(ctx, http.StatusBadRequest, "Cart is empty")
			return
		}
		log.Println("Order creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
		return
	}

	sendSuccess(ctx, http.StatusCreated, gin.H{"order": order})
}

// GetUserOrders lists the caller's orders, newest first.
func (o *OrderController) GetUserOrders(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var userOrders []models.Order
	err := o.DB.Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&userOrders).Error
	if err != nil {
		log.Println("Order query error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	sendSuccess(ctx, http.StatusOK, gin.H{"orders": userOrders})
}

// GetOrder returns one of the caller's orders with its line items.
func (o *OrderController) GetOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var order models.Order
	err = o.DB.Preload("OrderItems").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println("Order query error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order")
		}
		return
	}

	sendSuccess(ctx, http.StatusOK, gin.H{"order": order})
}

// UpdateOrderStatus sets an order's status (admin only). The value must
// belong to the fixed vocabulary; transitions are otherwise unconstrained.
func (o *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var statusData struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&statusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if !statusData.Status.Valid() {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid status")
		return
	}

	result := o.DB.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", statusData.Status)
	if result.Error != nil {
		log.Println("Order status update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	var order models.Order
	if err := o.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		log.Println("Order reload error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccess(ctx, http.StatusOK, gin.H{"order": order})
}

// GetAllOrders lists every order with pagination (admin only).
func (o *OrderController) GetAllOrders(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	if limit < 1 {
		limit = 15
	}
	offset := (page - 1) * limit

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := o.DB.Preload("OrderItems")
	if search := ctx.Query("search"); search != "" {
		query = query.Where("order_number LIKE ?", "%"+search+"%")
	}

	var allOrders []models.Order
	result := query.Order("created_at " + sortOrder).Limit(limit).Offset(offset).Find(&allOrders)
	if result.Error != nil {
		log.Println("Order query error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch orders")
		return
	}

	var count int64
	countQuery := o.DB.Model(&models.Order{})
	if search := ctx.Query("search"); search != "" {
		countQuery = countQuery.Where("order_number LIKE ?", "%"+search+"%")
	}
	if err := countQuery.Count(&count).Error; err != nil {
		log.Println("Order count error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch orders")
		return
	}

	totalPages := int(math.Ceil(float64(count) / float64(limit)))

	sendSuccess(ctx, http.StatusOK, gin.H{
		"orders": allOrders,
		"pagination": gin.H{
			"page":        page,
			"limit":       limit,
			"totalOrders": count,
			"totalPages":  totalPages,
		},
	})
}
