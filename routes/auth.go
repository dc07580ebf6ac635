package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/auth")
	{
		// Firebase/Google admin login
		authGroup.POST("/admin", d.Login.AdminLogin)
	}
}
