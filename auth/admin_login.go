package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/rivaleats-api/models"
	"github.com/junaidrashid-git/rivaleats-api/store"
)

// LoginHandler exchanges an identity-provider ID token for an admin session.
type LoginHandler struct {
	Verifier        IDTokenVerifier
	Admins          store.AdminStore // nil when running without a database
	Issuer          *Issuer
	SuperAdminEmail string
}

// AdminLogin grants superadmin to SUPER_ADMIN_EMAIL and admin to tokens
// carrying the admin role claim. Everyone else goes through the approval
// workflow: first login registers a pending admin.
func (h *LoginHandler) AdminLogin(c *gin.Context) {
	var req struct {
		IDToken string `json:"idToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if h.Verifier == nil || h.Issuer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin login is not configured"})
		return
	}

	ctx := c.Request.Context()
	id, err := h.Verifier.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		log.Printf("❌ ID token verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or revoked ID token"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(id.Email))
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email not found in token"})
		return
	}

	if h.SuperAdminEmail != "" && email == h.SuperAdminEmail {
		h.issueTokenAndRespond(c, email, RoleSuperAdmin, id)
		return
	}
	if id.Role == RoleAdmin {
		h.issueTokenAndRespond(c, email, RoleAdmin, id)
		return
	}
	if h.Admins == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin approval is unavailable without a database"})
		return
	}

	admin, err := h.Admins.FindAdminByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		pending := &models.Admin{Email: email, Name: id.Name, Picture: id.Picture}
		if err := h.Admins.CreateAdmin(ctx, pending); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register admin"})
			return
		}
		log.Printf("📝 New admin registered: %s (pending approval)", email)
		c.JSON(http.StatusForbidden, gin.H{"error": "Pending approval by super admin"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if err := h.Admins.UpdateAdminProfile(ctx, email, id.Name, id.Picture); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update admin info"})
		return
	}
	if !admin.Approved {
		c.JSON(http.StatusForbidden, gin.H{"error": "Pending approval by super admin"})
		return
	}

	h.issueTokenAndRespond(c, email, RoleAdmin, id)
}

func (h *LoginHandler) issueTokenAndRespond(c *gin.Context, email, role string, id *Identity) {
	token, err := h.Issuer.Issue(email, role, id.UID)
	if err != nil {
		log.Printf("❌ Failed to sign JWT: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"role":    role,
		"email":   email,
		"name":    id.Name,
		"picture": id.Picture,
	})
}
