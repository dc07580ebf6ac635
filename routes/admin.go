package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/rivaleats-api/auth"
	"github.com/junaidrashid-git/rivaleats-api/middleware"
)

// OrderFeedPath is the admin websocket. It is the only route that takes its
// token from the query string, so access logs must skip it.
const OrderFeedPath = "/admin/orders/ws"

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires an admin
// or superadmin session token.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	r.GET(OrderFeedPath, middleware.RequireRoleForUpgrade(d.Issuer, auth.RoleAdmin, auth.RoleSuperAdmin), d.Feed.ServeWS)

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireRole(d.Issuer, auth.RoleAdmin, auth.RoleSuperAdmin))
	{
		// ─────────── Orders ───────────
		orders := adminGroup.Group("/orders")
		{
			orders.GET("", d.Orders.ListOrders)
			orders.GET("/export", d.Orders.ExportOrders)
			orders.GET("/:ref", d.Orders.GetOrder)
			orders.PUT("/:ref/status", d.Orders.UpdateOrderStatus)
			orders.PUT("/:ref/payment-status", d.Orders.UpdatePaymentStatus)
			orders.DELETE("/:ref", d.Orders.DeleteOrder)
		}

		// ─────────── Menu Management ───────────
		menu := adminGroup.Group("/menu")
		{
			menu.GET("", d.Menu.ListMenuItems)
			menu.POST("", d.Menu.CreateMenuItem)
			menu.PUT("/:id", d.Menu.UpdateMenuItem)
			menu.DELETE("/:id", d.Menu.DeleteMenuItem)
			menu.POST("/import-excel", d.Menu.ImportMenuFromExcel)
			menu.GET("/export-excel", d.Menu.ExportMenuToExcel)
		}

		// ─────────── Signups ───────────
		adminGroup.GET("/subscribers", d.Subscribe.ListSubscribers)

		// ─────────── Admin Approval Workflow ───────────
		adminMgmt := adminGroup.Group("/admin-management")
		adminMgmt.Use(middleware.RequireRole(d.Issuer, auth.RoleSuperAdmin))
		{
			adminMgmt.GET("/admins", d.Admins.GetAllAdmins)
			adminMgmt.GET("/pending", d.Admins.ListPendingAdmins)
			adminMgmt.POST("/approve", d.Admins.ApproveAdmin)
			adminMgmt.POST("/reject", d.Admins.RejectAdmin)
		}
	}
}

// SetupOpsRoutes registers endpoints for scrapers and operators.
func SetupOpsRoutes(r *gin.Engine, d Deps) {
	r.GET("/metrics", middleware.ValidateAPIKey(d.APIKey), gin.WrapH(d.Metrics.Handler()))
}
