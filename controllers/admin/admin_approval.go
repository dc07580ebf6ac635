package adminController

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListPendingAdmins returns all admins awaiting approval.
func (h *Handler) ListPendingAdmins(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	pending, err := h.Admins.ListPendingAdmins(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending admins"})
		return
	}
	c.JSON(http.StatusOK, pending)
}

func (h *Handler) ApproveAdmin(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	email, ok := bindEmail(c)
	if !ok {
		return
	}
	if respondNotFound(c, h.Admins.ApproveAdmin(c.Request.Context(), email), "Failed to approve admin") {
		return
	}
	log.Printf("✅ Admin approved: %s", email)
	c.JSON(http.StatusOK, gin.H{"message": "Admin approved"})
}

func (h *Handler) RejectAdmin(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	email, ok := bindEmail(c)
	if !ok {
		return
	}
	if respondNotFound(c, h.Admins.RejectAdmin(c.Request.Context(), email), "Failed to reject admin") {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin rejected"})
}
