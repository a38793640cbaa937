// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prnse-cda/cda-store/internal/config"
	"github.com/prnse-cda/cda-store/internal/domain/cart"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		config:      cfg,
	}
}

// AddToCartRequest is the add-to-cart payload
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartLineRequest updates one cart line. Omitted fields are untouched.
type UpdateCartLineRequest struct {
	Quantity *int    `json:"quantity"`
	Size     *string `json:"size"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)
	snapshot := h.cartService.Snapshot(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    cartPayload(snapshot),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	snapshot, err := h.cartService.AddLine(c.Request.Context(), sessionID, req.ProductID, req.Size, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    cartPayload(snapshot),
	})
}

// UpdateCartLine handles PUT /cart/items/:index
func (h *CartHandler) UpdateCartLine(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid line index",
		})
		return
	}

	var req UpdateCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var snapshot cart.Cart
	if req.Quantity != nil {
		snapshot, err = h.cartService.SetQuantity(c.Request.Context(), sessionID, index, *req.Quantity)
		if err != nil {
			respondCartError(c, err)
			return
		}
	}
	if req.Size != nil {
		snapshot, err = h.cartService.SetVariant(c.Request.Context(), sessionID, index, *req.Size)
		if err != nil {
			respondCartError(c, err)
			return
		}
	}
	if req.Quantity == nil && req.Size == nil {
		snapshot = h.cartService.Snapshot(c.Request.Context(), sessionID)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart line updated successfully",
		"data":    cartPayload(snapshot),
	})
}

// RemoveFromCart handles DELETE /cart/items/:index
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid line index",
		})
		return
	}

	snapshot, err := h.cartService.RemoveLine(c.Request.Context(), sessionID, index)
	if err != nil {
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    cartPayload(snapshot),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	if err := h.cartService.Clear(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)
	count := h.cartService.Count(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": count,
		},
	})
}

func cartPayload(snapshot cart.Cart) gin.H {
	return gin.H{
		"lines": snapshot.Lines,
		"count": snapshot.Count(),
		"total": snapshot.Total(),
	}
}

func respondCartError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, cart.ErrProductUnknown), errors.Is(err, cart.ErrLineNotFound):
		status = http.StatusNotFound
	case errors.Is(err, cart.ErrQuantityLimitExceeded):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
	})
}
