// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prnse-cda/cda-store/internal/config"
	"github.com/prnse-cda/cda-store/internal/domain/catalog"
)

// CatalogHandler handles catalog browsing endpoints
type CatalogHandler struct {
	cache  *catalog.Cache
	config *config.Config
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cache *catalog.Cache, cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{
		cache:  cache,
		config: cfg,
	}
}

// ListProducts handles GET /catalog/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.cache.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load catalog",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Catalog retrieved successfully",
		"data":    products,
	})
}

// GetProduct handles GET /catalog/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, ok := h.cache.Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    product,
	})
}

// ListCollections handles GET /catalog/collections
func (h *CatalogHandler) ListCollections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Collections retrieved successfully",
		"data":    h.cache.Collections(c.Request.Context()),
	})
}

// ListCollectionProducts handles GET /catalog/collections/:title/products
func (h *CatalogHandler) ListCollectionProducts(c *gin.Context) {
	products, err := h.cache.ListByCollectionTitle(c.Request.Context(), c.Param("title"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load collection",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Collection retrieved successfully",
		"data":    products,
	})
}

// ListFilteredProducts handles GET /catalog/filters/:label/products
func (h *CatalogHandler) ListFilteredProducts(c *gin.Context) {
	products, err := h.cache.ListByFilterLabel(c.Request.Context(), c.Param("label"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load filtered products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Filtered products retrieved successfully",
		"data":    products,
	})
}

// GetContact handles GET /contact
func (h *CatalogHandler) GetContact(c *gin.Context) {
	contact, ok := h.cache.Contact(c.Request.Context())
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Contact information is not available",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contact retrieved successfully",
		"data":    contact,
	})
}
