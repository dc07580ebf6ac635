package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupOrderRoutes registers the public storefront endpoints.
func SetupOrderRoutes(r *gin.Engine, d Deps) {
	api := r.Group("/api")
	{
		// Submit an order
		api.POST("/order", d.Orders.SubmitOrder)

		// Price a cart without submitting it
		api.POST("/checkout/quote", d.Orders.Quote)

		// Menu signup list
		api.POST("/subscribe", d.Subscribe.Subscribe)

		// Current menu, falling back to the sample menu
		api.GET("/menu", d.Menu.GetMenu)
	}
}
