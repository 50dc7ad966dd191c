package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront-service/internal/cart"
	"storefront-service/internal/catalog"
	"storefront-service/internal/config"
	"storefront-service/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestRouter(t *testing.T) (*gin.Engine, *cart.Store, *catalog.Loader) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	loader := catalog.NewLoader("", testLogger())
	loader.ReplaceAll([]models.Product{
		{ID: "a", Title: "Alpha", Category: "X", Price: 10, Reviews: 5, Featured: true},
		{ID: "b", Title: "Beta", Category: "Y", Price: 5, Reviews: 50},
	})
	store := cart.NewStore(cart.NewMemoryKV(), 0.07, testLogger())

	cfg := &config.Config{DefaultPageSize: 20, MaxPageSize: 100}
	catalogHandler := NewCatalogHandler(loader, cfg)
	cartHandler := NewCartHandler(store, loader)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.GET("/products", catalogHandler.GetProducts)
	v1.GET("/products/:id", catalogHandler.GetProduct)
	v1.GET("/categories", catalogHandler.GetCategories)
	v1.GET("/cart", cartHandler.GetCart)
	v1.DELETE("/cart", cartHandler.ClearCart)
	v1.POST("/cart/items", cartHandler.AddItem)
	v1.PUT("/cart/items/:id", cartHandler.SetQuantity)
	v1.DELETE("/cart/items/:id", cartHandler.RemoveItem)
	v1.GET("/cart/totals", cartHandler.GetTotals)
	v1.POST("/cart/demo", cartHandler.DemoAdd)

	return router, store, loader
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) models.CartResponse {
	t.Helper()
	var resp models.CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAddItemUnknownProduct(t *testing.T) {
	router, store, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", models.AddItemRequest{ProductID: "ghost", Quantity: 1})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, store.Count())

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestAddItemAndGetCart(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", models.AddItemRequest{ProductID: "a", Quantity: 2})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeCart(t, doJSON(t, router, http.MethodGet, "/api/v1/cart", nil))
	require.Len(t, resp.Data.Lines, 1)
	assert.Equal(t, 2, resp.Data.Count)
	assert.Equal(t, 20.0, resp.Data.Totals.Subtotal)
	assert.Equal(t, 1.40, resp.Data.Totals.Tax)
	assert.Equal(t, 21.40, resp.Data.Totals.Grand)
}

func TestAddItemRequiresProductID(t *testing.T) {
	router, _, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetQuantityToZeroRemovesLine(t *testing.T) {
	router, store, _ := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", models.AddItemRequest{ProductID: "a", Quantity: 2})
	w := doJSON(t, router, http.MethodPut, "/api/v1/cart/items/a", models.SetQuantityRequest{Quantity: 0})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, store.Count())
}

func TestRemoveAndClear(t *testing.T) {
	router, store, _ := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", models.AddItemRequest{ProductID: "a"})
	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", models.AddItemRequest{ProductID: "b"})
	require.Equal(t, 2, store.Count())

	doJSON(t, router, http.MethodDelete, "/api/v1/cart/items/a", nil)
	assert.Equal(t, 1, store.Count())

	doJSON(t, router, http.MethodDelete, "/api/v1/cart", nil)
	assert.Equal(t, 0, store.Count())
}

func TestDemoAddPicksFeaturedOnly(t *testing.T) {
	router, store, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/demo", nil)
	require.Equal(t, http.StatusOK, w.Code)

	lines := store.Lines()
	require.Len(t, lines, 1, "only product a is featured")
	assert.Equal(t, "a", lines[0].ProductID)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestGetProductsSortParam(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/products?sort=price-asc", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ProductListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "b", resp.Data[0].ID)
	assert.Equal(t, "a", resp.Data[1].ID)
	assert.Equal(t, int64(2), resp.Pagination.Total)
}

func TestGetProductsPagination(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/products?limit=1&page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ProductListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.True(t, resp.Pagination.HasPrevious)
	assert.False(t, resp.Pagination.HasNext)
}

func TestGetProductNotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/api/v1/products/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCategories(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.CategoryListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"X", "Y"}, resp.Data)
}
