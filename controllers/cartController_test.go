package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/luxvision/luxvision-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRequiresAuth(t *testing.T) {
	server, _ := setupServer(t)

	recorder, _ := doRequest(t, server, http.MethodGet, "/api/v1/users/cart", "", nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAddToCartAccumulatesQuantity(t *testing.T) {
	server, db := setupServer(t)
	user := createUser(t, db, "claire@example.com", models.RoleCustomer)
	product := createProduct(t, db, "Aviator Classic", 95000, 10)
	token := tokenFor(t, user)

	body := map[string]any{"productId": product.ID}
	recorder, _ := doRequest(t, server, http.MethodPost, "/api/v1/users/cart", token, body)
	require.Equal(t, http.StatusCreated, recorder.Code)

	// Two more adds of the same product must not create new rows.
	recorder, _ = doRequest(t, server, http.MethodPost, "/api/v1/users/cart", token, body)
	require.Equal(t, http.StatusOK, recorder.Code)
	recorder, _ = doRequest(t, server, http.MethodPost, "/api/v1/users/cart", token, body)
	require.Equal(t, http.StatusOK, recorder.Code)

	var items []models.CartItem
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddToCartExplicitQuantity(t *testing.T) {
	server, db := setupServer(t)
	user := createUser(t, db, "claire@example.com", models.RoleCustomer)
	product := createProduct(t, db, "Round Frame", 50000, 10)
	token := tokenFor(t, user)

	recorder, _ := doRequest(t, server, http.MethodPost, "/api/v1/users/cart", token, map[string]any{
		"productId": product.ID,
		"quantity":  4,
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder, _ = doRequest(t, server, http.MethodPost, "/api/v1/users/cart", token, map[string]any{
		"productId": product.ID,
		"quantity":  2,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ? AND product_id = ?", user.ID, product.ID).First(&item).Error)
	assert.Equal(t, 6, item.Quantity)
}

func TestGetCartJoinsProducts(t *testing.T) {
	server, db := setupServer(t)
	user := createUser(t, db, "claire@example.com", models.RoleCustomer)
	product := createProduct(t, db, "Cat Eye", 72000, 5)
	other := createUser(t, db, "other@example.com", models.RoleCustomer)
	otherProduct := createProduct(t, db, "Square Frame", 30000, 5)

	require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2}).Error)
	require.NoError(t, db.Create(&models.CartItem{UserID: other.ID, ProductID: otherProduct.ID, Quantity: 1}).Error)

	recorder, resp := doRequest(t, server, http.MethodGet, "/api/v1/users/cart", tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		Items []struct {
			Name       string `json:"name"`
			Price      string `json:"price"`
			Quantity   int    `json:"quantity"`
			CartItemID uint   `json:"cartItemId"`
		} `json:"items"`
	}
	decodeData(t, resp, &payload)
	require.Len(t, payload.Items, 1, "only the caller's rows")
	assert.Equal(t, "Cat Eye", payload.Items[0].Name)
	assert.Equal(t, "72000", payload.Items[0].Price)
	assert.Equal(t, 2, payload.Items[0].Quantity)
	assert.NotZero(t, payload.Items[0].CartItemID)
}

func TestGetCartExcludesDeletedProducts(t *testing.T) {
	server, db := setupServer(t)
	user := createUser(t, db, "claire@example.com", models.RoleCustomer)
	product := createProduct(t, db, "Retired Model", 40000, 5)
	require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}).Error)
	require.NoError(t, db.Delete(&product).Error)

	recorder, resp := doRequest(t, server, http.MethodGet, "/api/v1/users/cart", tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		Items []any `json:"items"`
	}
	decodeData(t, resp, &payload)
	assert.Empty(t, payload.Items)
}

func TestUpdateCartItem(t *testing.T) {
	server, db := setupServer(t)
	user := createUser(t, db, "claire@example.com", models.RoleCustomer)
	product := createProduct(t, db, "Aviator Classic", 95000, 10)
	item := models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, db.Create(&item).Error)
	token := tokenFor(t, user)

	path := fmt.Sprintf("/api/v1/users/cart/%d", item.ID)

	recorder, resp := doRequest(t, server, http.MethodPut, path, token, map[string]any{"quantity": 0})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Quantity must be at least 1", resp.Message)

	recorder, _ = doRequest(t, server, http.MethodPut, path, token, map[string]any{"quantity": 5})
	require.Equal(t, http.StatusOK, recorder.Code)

	var got models.CartItem
	require.NoError(t, db.First(&got, item.ID).Error)
	assert.Equal(t, 5, got.Quantity)
}

func TestUpdateCartItemOwnership(t *testing.T) {
	server, db := setupServer(t)
	owner := createUser(t, db, "owner@example.com", models.RoleCustomer)
	intruder := createUser(t, db, "intruder@example.com", models.RoleCustomer)
	product := createProduct(t, db, "Aviator Classic", 95000, 10)
	item := models.CartItem{UserID: owner.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, db.Create(&item).Error)

	path := fmt.Sprintf("/api/v1/users/cart/%d", item.ID)
	recorder, resp := doRequest(t, server, http.MethodPut, path, tokenFor(t, intruder), map[string]any{"quantity": 5})
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Cart item not found", resp.Message)

	var got models.CartItem
	require.NoError(t, db.First(&got, item.ID).Error)
	assert.Equal(t, 1, got.Quantity)
}

func TestRemoveFromCart(t *testing.T) {
	server, db := setupServer(t)
	user := createUser(t, db, "claire@example.com", models.RoleCustomer)
	product := createProduct(t, db, "Aviator Classic", 95000, 10)
	item := models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, db.Create(&item).Error)
	token := tokenFor(t, user)

	path := fmt.Sprintf("/api/v1/users/cart/%d", item.ID)
	recorder, _ := doRequest(t, server, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)

	// Gone rows report not found.
	recorder, _ = doRequest(t, server, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	// Removal frees the unique slot for a fresh add.
	recorder, _ = doRequest(t, server, http.MethodPost, "/api/v1/users/cart", token, map[string]any{"productId": product.ID})
	assert.Equal(t, http.StatusCreated, recorder.Code)
}

func TestClearCart(t *testing.T) {
	server, db := setupServer(t)
	user := createUser(t, db, "claire@example.com", models.RoleCustomer)
	first := createProduct(t, db, "First", 10000, 5)
	second := createProduct(t, db, "Second", 20000, 5)
	require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: first.ID, Quantity: 1}).Error)
	require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: second.ID, Quantity: 2}).Error)

	recorder, _ := doRequest(t, server, http.MethodDelete, "/api/v1/users/cart", tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}
