package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/luxvision/luxvision-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productListPayload struct {
	Products   []models.Product `json:"products"`
	Pagination struct {
		Page          int   `json:"page"`
		Limit         int   `json:"limit"`
		TotalProducts int64 `json:"totalProducts"`
		TotalPages    int   `json:"totalPages"`
	} `json:"pagination"`
}

func TestGetProducts(t *testing.T) {
	server, db := setupServer(t)
	createProduct(t, db, "Aviator Classic", 95000, 10)
	createProduct(t, db, "Round Frame", 50000, 0)

	recorder, resp := doRequest(t, server, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload productListPayload
	decodeData(t, resp, &payload)
	assert.Len(t, payload.Products, 2)
	assert.Equal(t, 1, payload.Pagination.Page)
	assert.EqualValues(t, 2, payload.Pagination.TotalProducts)
	assert.Equal(t, 1, payload.Pagination.TotalPages)
}

func TestGetProductsFiltered(t *testing.T) {
	server, db := setupServer(t)
	sun := createProduct(t, db, "Aviator Classic", 95000, 10)
	optical := models.Product{
		Name:          "Reading Frame",
		Brand:         "LuxVision",
		Price:         decimal.NewFromInt(30000),
		Category:      models.CategoryOptical,
		Gender:        "women",
		StockQuantity: 5,
		InStock:       true,
	}
	require.NoError(t, db.Create(&optical).Error)

	recorder, resp := doRequest(t, server, http.MethodGet, "/api/v1/products?category=sunglasses", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload productListPayload
	decodeData(t, resp, &payload)
	require.Len(t, payload.Products, 1)
	assert.Equal(t, sun.Name, payload.Products[0].Name)
	assert.EqualValues(t, 1, payload.Pagination.TotalProducts)
}

func TestGetProductsPriceRange(t *testing.T) {
	server, db := setupServer(t)
	createProduct(t, db, "Cheap", 20000, 5)
	createProduct(t, db, "Mid", 50000, 5)
	createProduct(t, db, "Expensive", 120000, 5)

	recorder, resp := doRequest(t, server, http.MethodGet, "/api/v1/products?minPrice=30000&maxPrice=100000", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload productListPayload
	decodeData(t, resp, &payload)
	require.Len(t, payload.Products, 1)
	assert.Equal(t, "Mid", payload.Products[0].Name)
}

func TestGetProduct(t *testing.T) {
	server, db := setupServer(t)
	product := createProduct(t, db, "Aviator Classic", 95000, 10)

	recorder, resp := doRequest(t, server, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", product.ID), "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		Product models.Product `json:"product"`
	}
	decodeData(t, resp, &payload)
	assert.Equal(t, "Aviator Classic", payload.Product.Name)
	assert.True(t, payload.Product.Price.Equal(decimal.NewFromInt(95000)))

	recorder, resp = doRequest(t, server, http.MethodGet, "/api/v1/products/9999", "", nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Product not found", resp.Message)
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	server, db := setupServer(t)
	customer := createUser(t, db, "claire@example.com", models.RoleCustomer)

	body := map[string]any{
		"name":     "New Frame",
		"brand":    "LuxVision",
		"price":    "45000",
		"category": "optical",
		"gender":   "unisex",
	}

	recorder, _ := doRequest(t, server, http.MethodPost, "/api/v1/products", "", body)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder, _ = doRequest(t, server, http.MethodPost, "/api/v1/products", tokenFor(t, customer), body)
	require.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestCreateProduct(t *testing.T) {
	server, db := setupServer(t)
	admin := createUser(t, db, "admin@example.com", models.RoleAdmin)

	recorder, resp := doRequest(t, server, http.MethodPost, "/api/v1/products", tokenFor(t, admin), map[string]any{
		"name":          "New Frame",
		"brand":         "LuxVision",
		"price":         "45000",
		"category":      "optical",
		"gender":        "unisex",
		"stockQuantity": 3,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var payload struct {
		Product models.Product `json:"product"`
	}
	decodeData(t, resp, &payload)
	assert.True(t, payload.Product.InStock, "in_stock derives from the initial stock")
	assert.JSONEq(t, "[]", string(payload.Product.Images))

	recorder, resp = doRequest(t, server, http.MethodPost, "/api/v1/products", tokenFor(t, admin), map[string]any{
		"name":     "Bad Category",
		"brand":    "LuxVision",
		"price":    "45000",
		"category": "hats",
		"gender":   "unisex",
	})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Invalid input", resp.Message)
}

func TestUpdateProductAllowList(t *testing.T) {
	server, db := setupServer(t)
	admin := createUser(t, db, "admin@example.com", models.RoleAdmin)
	product := createProduct(t, db, "Aviator Classic", 95000, 10)

	path := fmt.Sprintf("/api/v1/products/%d", product.ID)
	recorder, _ := doRequest(t, server, http.MethodPut, path, tokenFor(t, admin), map[string]any{
		"name":      "Aviator Deluxe",
		"price":     88000,
		"inStock":   false,
		"role":      "admin",
		"deletedAt": "2020-01-01",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, "Aviator Deluxe", got.Name)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(88000)))
	assert.True(t, got.InStock, "fields outside the allow-list are ignored")
}

func TestUpdateProductStockRederivesInStock(t *testing.T) {
	server, db := setupServer(t)
	admin := createUser(t, db, "admin@example.com", models.RoleAdmin)
	product := createProduct(t, db, "Aviator Classic", 95000, 10)

	path := fmt.Sprintf("/api/v1/products/%d", product.ID)
	recorder, _ := doRequest(t, server, http.MethodPut, path, tokenFor(t, admin), map[string]any{
		"stockQuantity": 0,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 0, got.StockQuantity)
	assert.False(t, got.InStock)

	recorder, _ = doRequest(t, server, http.MethodPut, path, tokenFor(t, admin), map[string]any{
		"stockQuantity": 7,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 7, got.StockQuantity)
	assert.True(t, got.InStock)
}

func TestDeleteProduct(t *testing.T) {
	server, db := setupServer(t)
	admin := createUser(t, db, "admin@example.com", models.RoleAdmin)
	product := createProduct(t, db, "Aviator Classic", 95000, 10)

	path := fmt.Sprintf("/api/v1/products/%d", product.ID)
	recorder, _ := doRequest(t, server, http.MethodDelete, path, tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	// Soft deleted rows disappear from reads.
	recorder, _ = doRequest(t, server, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder, _ = doRequest(t, server, http.MethodDelete, path, tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetProductStats(t *testing.T) {
	server, db := setupServer(t)
	createProduct(t, db, "Aviator Classic", 95000, 10)
	createProduct(t, db, "Round Frame", 50000, 0)
	optical := models.Product{
		Name:          "Reading Frame",
		Brand:         "LuxVision",
		Price:         decimal.NewFromInt(30000),
		Category:      models.CategoryOptical,
		Gender:        "women",
		StockQuantity: 5,
		InStock:       true,
	}
	require.NoError(t, db.Create(&optical).Error)

	recorder, resp := doRequest(t, server, http.MethodGet, "/api/v1/products/stats", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		Stats struct {
			TotalProducts   int64   `json:"totalProducts"`
			OpticalCount    int64   `json:"opticalCount"`
			SunglassesCount int64   `json:"sunglassesCount"`
			MinPrice        float64 `json:"minPrice"`
			MaxPrice        float64 `json:"maxPrice"`
			InStockCount    int64   `json:"inStockCount"`
		} `json:"stats"`
	}
	decodeData(t, resp, &payload)
	assert.EqualValues(t, 3, payload.Stats.TotalProducts)
	assert.EqualValues(t, 1, payload.Stats.OpticalCount)
	assert.EqualValues(t, 2, payload.Stats.SunglassesCount)
	assert.InDelta(t, 30000, payload.Stats.MinPrice, 0.001)
	assert.InDelta(t, 95000, payload.Stats.MaxPrice, 0.001)
	assert.EqualValues(t, 2, payload.Stats.InStockCount)
}
