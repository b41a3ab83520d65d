package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/luxvision/luxvision-api/catalog"
	"github.com/luxvision/luxvision-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// productUpdateColumns is the allow-list of caller-updatable columns, keyed
// by JSON field name. Anything outside it is ignored.
var productUpdateColumns = map[string]string{
	"name":          "name",
	"brand":         "brand",
	"description":   "description",
	"price":         "price",
	"discount":      "discount",
	"category":      "category",
	"gender":        "gender",
	"frameShape":    "frame_shape",
	"material":      "material",
	"color":         "color",
	"stockQuantity": "stock_quantity",
	"images":        "images",
	"features":      "features",
}

// GetProducts lists the catalog with optional filters, sorting and
// pagination.
func (p *ProductController) GetProducts(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(catalog.DefaultLimit)))

	opts := catalog.Options{
		Category:  ctx.Query("category"),
		Gender:    ctx.Query("gender"),
		Brand:     ctx.Query("brand"),
		Search:    ctx.Query("search"),
		SortBy:    ctx.DefaultQuery("sortBy", "created_at"),
		SortOrder: ctx.DefaultQuery("sortOrder", "desc"),
		Page:      page,
		Limit:     limit,
	}
	if v := ctx.Query("minPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			opts.MinPrice = &d
		}
	}
	if v := ctx.Query("maxPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			opts.MaxPrice = &d
		}
	}

	var count int64
	if err := opts.Apply(p.DB.Model(&models.Product{})).Count(&count).Error; err != nil {
		log.Println("Product count error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch products")
		return
	}

	var products []models.Product
	result := opts.Apply(p.DB.Model(&models.Product{})).
		Order(opts.OrderClause()).
		Limit(opts.LimitOrDefault()).
		Offset(opts.Offset()).
		Find(&products)
	if result.Error != nil {
		log.Println("Product query error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch products")
		return
	}

	totalPages := int(math.Ceil(float64(count) / float64(opts.LimitOrDefault())))

	sendSuccess(ctx, http.StatusOK, gin.H{
		"products": products,
		"pagination": gin.H{
			"page":          opts.PageOrDefault(),
			"limit":         opts.LimitOrDefault(),
			"totalProducts": count,
			"totalPages":    totalPages,
		},
	})
}

// GetProduct returns a single product by id.
func (p *ProductController) GetProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	if err := p.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			log.Println("Product query error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to retrieve product")
		}
		return
	}

	sendSuccess(ctx, http.StatusOK, gin.H{"product": product})
}

// CreateProduct adds a catalog entry (admin only). in_stock is derived from
// the initial stock quantity.
func (p *ProductController) CreateProduct(ctx *gin.Context) {
	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	product.InStock = product.StockQuantity > 0
	if product.Images == nil {
		product.Images = datatypes.JSON([]byte("[]"))
	}
	if product.Features == nil {
		product.Features = datatypes.JSON([]byte("[]"))
	}

	if err := p.DB.Create(&product).Error; err != nil {
		log.Println("Product creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create product")
		return
	}

	sendSuccess(ctx, http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct applies a partial update (admin only). Column names come
// from the allow-list; a stock change rederives in_stock.
func (p *ProductController) UpdateProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	if err := p.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			log.Println("Product query error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	decoder := json.NewDecoder(ctx.Request.Body)
	decoder.UseNumber()
	var body map[string]any
	if err := decoder.Decode(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updates := map[string]any{}
	for key, value := range body {
		column, allowed := productUpdateColumns[key]
		if !allowed {
			continue
		}
		switch column {
		case "images", "features":
			raw, err := json.Marshal(value)
			if err != nil {
				sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
				return
			}
			updates[column] = datatypes.JSON(raw)
		case "price":
			number, ok := value.(json.Number)
			if !ok {
				sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
				return
			}
			price, err := decimal.NewFromString(number.String())
			if err != nil {
				sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
				return
			}
			updates[column] = price
		case "stock_quantity":
			number, ok := value.(json.Number)
			if !ok {
				sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
				return
			}
			quantity, err := strconv.Atoi(number.String())
			if err != nil {
				sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
				return
			}
			updates[column] = quantity
			updates["in_stock"] = quantity > 0
		default:
			updates[column] = value
		}
	}

	if len(updates) > 0 {
		if err := p.DB.Model(&product).Updates(updates).Error; err != nil {
			log.Println("Product update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update product")
			return
		}
	}

	if err := p.DB.First(&product, productID).Error; err != nil {
		log.Println("Product reload error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccess(ctx, http.StatusOK, gin.H{"product": product})
}

// DeleteProduct removes a catalog entry (admin only).
func (p *ProductController) DeleteProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	result := p.DB.Delete(&models.Product{}, productID)
	if result.Error != nil {
		log.Println("Product delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		return
	}

	sendMessage(ctx, http.StatusOK, "Product deleted successfully")
}

// GetProductStats returns catalog aggregates.
func (p *ProductController) GetProductStats(ctx *gin.Context) {
	var stats struct {
		TotalProducts   int64   `json:"totalProducts"`
		OpticalCount    int64   `json:"opticalCount"`
		SunglassesCount int64   `json:"sunglassesCount"`
		AveragePrice    float64 `json:"averagePrice"`
		MinPrice        float64 `json:"minPrice"`
		MaxPrice        float64 `json:"maxPrice"`
		InStockCount    int64   `json:"inStockCount"`
	}

	err := p.DB.Raw(`
		SELECT
			COUNT(*) AS total_products,
			COUNT(CASE WHEN category = 'optical' THEN 1 END) AS optical_count,
			COUNT(CASE WHEN category = 'sunglasses' THEN 1 END) AS sunglasses_count,
			COALESCE(AVG(price), 0) AS average_price,
			COALESCE(MIN(price), 0) AS min_price,
			COALESCE(MAX(price), 0) AS max_price,
			COUNT(CASE WHEN in_stock THEN 1 END) AS in_stock_count
		FROM products
		WHERE deleted_at IS NULL`).Scan(&stats).Error
	if err != nil {
		log.Println("Product stats error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch product statistics")
		return
	}

	sendSuccess(ctx, http.StatusOK, gin.H{"stats": stats})
}

func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadProductImages uploads image files to S3 and appends the resulting
// URLs to the product's image list (admin only).
func (p *ProductController) UploadProductImages(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	if err := p.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			log.Println("Product query error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid form data")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "No files uploaded")
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		log.Println("AWS config error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to configure uploads")
		return
	}

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		bucket = "luxvision"
	}

	var uploadedURLs []string
	var failedUploads []string

	for _, file := range files {
		f, openErr := file.Open()
		if openErr != nil {
			log.Printf("Error opening file %s: %v", file.Filename, openErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		// Unique key to prevent overwrites.
		key := fmt.Sprintf("%d-%s-%s", productID, time.Now().Format("20060102150405"), file.Filename)

		result, uploadErr := uploader.Upload(context.TODO(), &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        f,
			ACL:         "public-read",
			ContentType: aws.String(file.Header.Get("Content-Type")),
		})
		f.Close()

		if uploadErr != nil {
			log.Printf("Error uploading file %s: %v", file.Filename, uploadErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		uploadedURLs = append(uploadedURLs, result.Location)
	}

	if len(uploadedURLs) > 0 {
		var images []string
		if len(product.Images) > 0 {
			if err := json.Unmarshal(product.Images, &images); err != nil {
				log.Println("Image list decode error:", err)
				images = nil
			}
		}
		images = append(images, uploadedURLs...)

		raw, err := json.Marshal(images)
		if err != nil {
			log.Println("Image list encode error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		if err := p.DB.Model(&product).Update("images", datatypes.JSON(raw)).Error; err != nil {
			log.Println("Image list save error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save image URLs")
			return
		}
	}

	data := gin.H{"urls": uploadedURLs}
	if len(failedUploads) > 0 {
		data["failed"] = failedUploads
	}
	sendSuccess(ctx, http.StatusOK, data)
}
