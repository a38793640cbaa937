// internal/interfaces/http/handlers/navigation.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prnse-cda/cda-store/internal/config"
	"github.com/prnse-cda/cda-store/internal/domain/navigation"
)

// NavigationHandler resolves shareable deep-link tokens
type NavigationHandler struct {
	resolver *navigation.Resolver
	config   *config.Config
}

// NewNavigationHandler creates a new navigation handler
func NewNavigationHandler(resolver *navigation.Resolver, cfg *config.Config) *NavigationHandler {
	return &NavigationHandler{
		resolver: resolver,
		config:   cfg,
	}
}

// Resolve handles GET /navigate?token=...
func (h *NavigationHandler) Resolve(c *gin.Context) {
	outcome, err := h.resolver.Resolve(c.Request.Context(), c.Query("token"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to resolve navigation target",
		})
		return
	}

	data := gin.H{
		"view":  outcome.View,
		"token": outcome.Token.String(),
	}
	switch outcome.View {
	case navigation.ViewProduct:
		data["product"] = outcome.Product
		data["size"] = outcome.Size
	default:
		data["products"] = outcome.Products
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Navigation target resolved successfully",
		"data":    data,
	})
}

// ShareLinkRequest asks for a shareable token for a storefront target
type ShareLinkRequest struct {
	ProductID  string `json:"product_id"`
	Size       string `json:"size"`
	Collection string `json:"collection"`
	Filter     string `json:"filter"`
}

// ShareLink handles POST /navigate/share
func (h *NavigationHandler) ShareLink(c *gin.Context) {
	var req ShareLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var token string
	switch {
	case req.ProductID != "":
		token = navigation.FormatProduct(req.ProductID, req.Size)
	case req.Collection != "":
		token = navigation.FormatCollection(req.Collection)
	case req.Filter != "":
		token = navigation.FormatFilter(req.Filter)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Nothing to share",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Share token created successfully",
		"data": gin.H{
			"token": token,
		},
	})
}
