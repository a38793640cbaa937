// internal/interfaces/http/handlers/consent.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prnse-cda/cda-store/internal/infrastructure/storage"
)

// ConsentHandler records the shopper's cookie-consent choice per session
type ConsentHandler struct {
	kv storage.KV
}

// NewConsentHandler creates a new consent handler
func NewConsentHandler(kv storage.KV) *ConsentHandler {
	return &ConsentHandler{kv: kv}
}

// ConsentRequest is the recorded choice
type ConsentRequest struct {
	Choice string `json:"choice" binding:"required,oneof=accepted declined"`
}

func consentKey(sessionID string) string {
	return fmt.Sprintf("consent:session:%s", sessionID)
}

// GetConsent handles GET /consent
func (h *ConsentHandler) GetConsent(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	choice, found, err := h.kv.Get(c.Request.Context(), consentKey(sessionID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read consent choice",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Consent choice retrieved successfully",
		"data": gin.H{
			"recorded": found,
			"choice":   choice,
		},
	})
}

// SetConsent handles PUT /consent
func (h *ConsentHandler) SetConsent(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var req ConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.kv.Set(c.Request.Context(), consentKey(sessionID), req.Choice); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to record consent choice",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Consent choice recorded successfully",
		"data": gin.H{
			"choice": req.Choice,
		},
	})
}
