package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/rivaleats-api/auth"
	adminController "github.com/junaidrashid-git/rivaleats-api/controllers/admin"
	menuControllers "github.com/junaidrashid-git/rivaleats-api/controllers/menu"
	orderControllers "github.com/junaidrashid-git/rivaleats-api/controllers/order"
	subscribeControllers "github.com/junaidrashid-git/rivaleats-api/controllers/subscribe"
	"github.com/junaidrashid-git/rivaleats-api/monitoring"
)

// Deps carries the handlers built in main. Nil stores inside the handlers
// put the matching endpoints in dry-run or 503 mode.
type Deps struct {
	Orders    *orderControllers.Handler
	Feed      *orderControllers.Feed
	Menu      *menuControllers.Handler
	Subscribe *subscribeControllers.Handler
	Admins    *adminController.Handler
	Login     *auth.LoginHandler
	Issuer    *auth.Issuer // nil disables every /admin route
	Metrics   *monitoring.Metrics
	APIKey    string
}

// SetupRoutes is the single entry-point that wires up the public, auth,
// admin and ops route groups.
func SetupRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 1️⃣ Public storefront routes
	SetupOrderRoutes(r, d)

	// 2️⃣ Admin login
	SetupAuthRoutes(r, d)

	// 3️⃣ Admin routes (JWT-protected)
	SetupAdminRoutes(r, d)

	// 4️⃣ Ops routes (API-Key-protected)
	SetupOpsRoutes(r, d)
}
