package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"storefront-service/internal/checkout"
	"storefront-service/internal/models"
)

type CheckoutHandler struct {
	service *checkout.Service
}

func NewCheckoutHandler(service *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// GetSnapshot returns the order summary shown before placing the order
// @Summary Order snapshot
// @Description Read-only summary of the current cart: items, totals and count
// @Tags Checkout
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /checkout/snapshot [get]
func (h *CheckoutHandler) GetSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    h.service.Snapshot(),
	})
}

// PlaceOrder validates the checkout form and submits the order
// @Summary Place order
// @Description Submit the order to the email endpoint; the cart is cleared only on success
// @Tags Checkout
// @Accept json
// @Produce json
// @Param customer body models.CustomerInfo true "Checkout form fields"
// @Success 200 {object} models.OrderResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /checkout [post]
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var customer models.CustomerInfo
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	orderID, snapshot, err := h.service.PlaceOrder(c.Request.Context(), customer)
	if err != nil {
		var validationErr *checkout.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "VALIDATION_ERROR",
					Message: "Please complete all required fields",
					Field:   validationErr.Field,
				},
			})
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "CART_EMPTY",
					Message: "Your cart is empty",
				},
			})
		default:
			// Submission failure: the order is not placed and the cart is
			// preserved so the shopper can retry.
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "ORDER_SUBMISSION_FAILED",
					Message: "There was an issue sending your order. Please try again.",
				},
			})
		}
		return
	}

	message := "Order placed"
	c.JSON(http.StatusOK, models.OrderResponse{
		Success: true,
		Data: models.OrderPlacedData{
			OrderID:  orderID,
			Snapshot: snapshot,
		},
		Message: &message,
	})
}
