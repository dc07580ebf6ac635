package adminController

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/rivaleats-api/store"
)

type Handler struct {
	Admins store.AdminStore
}

func (h *Handler) requireStore(c *gin.Context) bool {
	if h.Admins == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin store is not configured"})
		return false
	}
	return true
}

func (h *Handler) GetAllAdmins(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	admins, err := h.Admins.ListAdmins(c.Request.Context())
	if err != nil {
		log.Println("❌ Failed to fetch admins:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch admins"})
		return
	}
	c.JSON(http.StatusOK, admins)
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func bindEmail(c *gin.Context) (string, bool) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(req.Email)), true
}

func respondNotFound(c *gin.Context, err error, failure string) bool {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return true
	}
	if err != nil {
		log.Printf("❌ %s: %v", failure, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": failure})
		return true
	}
	return false
}
