// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prnse-cda/cda-store/internal/config"
	"github.com/prnse-cda/cda-store/internal/domain/cart"
	"github.com/prnse-cda/cda-store/internal/domain/checkout"
)

// CheckoutHandler handles order composition
type CheckoutHandler struct {
	checkoutService *checkout.Service
	cartService     *cart.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, cartService *cart.Service, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		cartService:     cartService,
		config:          cfg,
	}
}

// PlaceOrder handles POST /checkout. A composed order is handed back as a
// ready WhatsApp link; the cart is cleared once composition succeeds.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var details checkout.CustomerDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	snapshot := h.cartService.Snapshot(c.Request.Context(), sessionID)

	order, err := h.checkoutService.Compose(c.Request.Context(), snapshot, details)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart after checkout",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order composed successfully",
		"data": gin.H{
			"order_message": order.Message,
			"destination":   order.Destination,
			"whatsapp_url":  checkout.WhatsAppURL(order),
			"total":         order.Total,
		},
	})
}

func respondCheckoutError(c *gin.Context, err error) {
	var verr *checkout.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": verr.Message,
			"field": verr.Field,
		})
	case errors.Is(err, checkout.ErrCartEmpty):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cart is empty",
		})
	case errors.Is(err, checkout.ErrDestinationUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Ordering is temporarily unavailable",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compose order",
		})
	}
}
