package handlers

import (
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"
	"storefront-service/internal/cart"
	"storefront-service/internal/catalog"
	"storefront-service/internal/models"
)

const demoAddPicks = 3

type CartHandler struct {
	store  *cart.Store
	loader *catalog.Loader
}

func NewCartHandler(store *cart.Store, loader *catalog.Loader) *CartHandler {
	return &CartHandler{store: store, loader: loader}
}

// GetCart returns cart lines, totals and the badge count
// @Summary Get cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.CartResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, models.CartResponse{
		Success: true,
		Data:    h.store.View(),
	})
}

// AddItem adds a product to the cart
// @Summary Add to cart
// @Description Create a cart line with a snapshot of the product, or bump the existing line's quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Param item body models.AddItemRequest true "Product id and quantity delta (defaults to 1)"
// @Success 200 {object} models.CartResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	// The store itself does not validate against the catalog; that is this
	// caller's job.
	product, ok := h.loader.Get(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "NOT_FOUND",
				Message: "Product not found in catalog",
				Field:   "productId",
			},
		})
		return
	}

	h.store.Add(c.Request.Context(), product, req.Quantity)
	c.JSON(http.StatusOK, models.CartResponse{
		Success: true,
		Data:    h.store.View(),
	})
}

// SetQuantity sets the absolute quantity of a cart line
// @Summary Set line quantity
// @Description Quantity <= 0 removes the line; an id without an existing line is a no-op
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param quantity body models.SetQuantityRequest true "Absolute quantity"
// @Success 200 {object} models.CartResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/items/{id} [put]
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req models.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	h.store.SetQuantity(c.Request.Context(), c.Param("id"), req.Quantity)
	c.JSON(http.StatusOK, models.CartResponse{
		Success: true,
		Data:    h.store.View(),
	})
}

// RemoveItem deletes a cart line
// @Summary Remove from cart
// @Description Idempotent; removing an absent line is a no-op
// @Tags Cart
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.CartResponse
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	h.store.Remove(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, models.CartResponse{
		Success: true,
		Data:    h.store.View(),
	})
}

// ClearCart removes all lines
// @Summary Clear cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.CartResponse
// @Router /cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	h.store.Clear(c.Request.Context())
	c.JSON(http.StatusOK, models.CartResponse{
		Success: true,
		Data:    h.store.View(),
	})
}

// GetTotals returns the derived totals only
// @Summary Cart totals
// @Tags Cart
// @Produce json
// @Success 200 {object} models.TotalsResponse
// @Router /cart/totals [get]
func (h *CartHandler) GetTotals(c *gin.Context) {
	c.JSON(http.StatusOK, models.TotalsResponse{
		Success: true,
		Data:    h.store.Totals(),
	})
}

// DemoAdd drops up to three random featured products into the cart
// @Summary Demo add
// @Tags Cart
// @Produce json
// @Success 200 {object} models.CartResponse
// @Router /cart/demo [post]
func (h *CartHandler) DemoAdd(c *gin.Context) {
	var featured []models.Product
	for _, p := range h.loader.Products() {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	rand.Shuffle(len(featured), func(i, j int) {
		featured[i], featured[j] = featured[j], featured[i]
	})

	picks := featured
	if len(picks) > demoAddPicks {
		picks = picks[:demoAddPicks]
	}
	for _, p := range picks {
		h.store.Add(c.Request.Context(), p, 1)
	}

	c.JSON(http.StatusOK, models.CartResponse{
		Success: true,
		Data:    h.store.View(),
	})
}
