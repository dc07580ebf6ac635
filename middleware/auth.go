package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/rivaleats-api/auth"
)

const ClaimsKey = "claims"

// RequireRole accepts a bearer token from the Authorization header and
// checks its role.
func RequireRole(issuer *auth.Issuer, roles ...string) gin.HandlerFunc {
	return requireRole(issuer, false, roles)
}

// RequireRoleForUpgrade also accepts the "token" query parameter for
// websocket upgrades. Mount it only on websocket routes.
func RequireRoleForUpgrade(issuer *auth.Issuer, roles ...string) gin.HandlerFunc {
	return requireRole(issuer, true, roles)
}

func requireRole(issuer *auth.Issuer, allowQuery bool, roles []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		if issuer == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Admin authentication is not configured"})
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if tokenString == "" && allowQuery {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}

		claims, err := issuer.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		if !allowed[claims.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
