package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/luxvision/luxvision-api/models"
	"gorm.io/gorm"
)

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

type reviewWithAuthor struct {
	models.Review
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// GetProductReviews lists a product's reviews with author names plus the
// average rating.
func (r *ReviewController) GetProductReviews(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var reviews []reviewWithAuthor
	err = r.DB.Model(&models.Review{}).
		Select("reviews.*, users.first_name, users.last_name").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.product_id = ?", productID).
		Order("reviews.created_at DESC").
		Scan(&reviews).Error
	if err != nil {
		log.Println("Review query error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch reviews")
		return
	}

	var summary struct {
		AverageRating float64
		ReviewCount   int64
	}
	err = r.DB.Raw(
		"SELECT COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS review_count FROM reviews WHERE product_id = ? AND deleted_at IS NULL",
		productID,
	).Scan(&summary).Error
	if err != nil {
		log.Println("Review summary error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch reviews")
		return
	}

	sendSuccess(ctx, http.StatusOK, gin.H{
		"reviews":       reviews,
		"averageRating": summary.AverageRating,
		"totalReviews":  summary.ReviewCount,
	})
}

// CreateReview adds a review; a second review by the same user on the same
// product is rejected as a conflict.
func (r *ReviewController) CreateReview(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var review models.Review
	if err := ctx.ShouldBindJSON(&review); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	review.UserID = userID
	review.Verified = false
	review.HelpfulCount = 0

	var count int64
	if err := r.DB.Model(&models.Review{}).
		Where("product_id = ? AND user_id = ?", review.ProductID, userID).
		Count(&count).Error; err != nil {
		log.Println("Review lookup error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if count > 0 {
		sendErrorResponse(ctx, http.StatusConflict, "You have already reviewed this product")
		return
	}

	if err := r.DB.Create(&review).Error; err != nil {
		// The unique (product, user) index is the authoritative guard.
		log.Println("Review creation error:", err)
		sendErrorResponse(ctx, http.StatusConflict, "You have already reviewed this product")
		return
	}

	sendSuccess(ctx, http.StatusCreated, gin.H{"review": review})
}

// UpdateReview mutates a review; only its author may do so.
func (r *ReviewController) UpdateReview(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	reviewID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid review ID")
		return
	}

	var reviewData struct {
		Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
		Title   *string `json:"title"`
		Comment *string `json:"comment"`
	}
	if err := ctx.ShouldBindJSON(&reviewData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updates := map[string]any{}
	if reviewData.Rating != nil {
		updates["rating"] = *reviewData.Rating
	}
	if reviewData.Title != nil {
		updates["title"] = *reviewData.Title
	}
	if reviewData.Comment != nil {
		updates["comment"] = *reviewData.Comment
	}
	if len(updates) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result := r.DB.Model(&models.Review{}).
		Where("id = ? AND user_id = ?", reviewID, userID).
		Updates(updates)
	if result.Error != nil {
		log.Println("Review update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update review")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Review not found or not yours")
		return
	}

	var review models.Review
	if err := r.DB.First(&review, reviewID).Error; err != nil {
		log.Println("Review reload error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccess(ctx, http.StatusOK, gin.H{"review": review})
}

// DeleteReview removes a review; only its author may do so.
func (r *ReviewController) DeleteReview(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	reviewID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid review ID")
		return
	}

	// Hard delete so the (product, user) unique slot frees up for a future
	// review.
	result := r.DB.Unscoped().Where("id = ? AND user_id = ?", reviewID, userID).Delete(&models.Review{})
	if result.Error != nil {
		log.Println("Review delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Review not found or not yours")
		return
	}

	sendMessage(ctx, http.StatusOK, "Review deleted successfully")
}
