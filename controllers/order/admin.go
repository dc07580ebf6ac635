package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/rivaleats-api/checkout"
	"github.com/junaidrashid-git/rivaleats-api/models"
	"github.com/junaidrashid-git/rivaleats-api/store"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

func (h *Handler) requireStore(c *gin.Context) bool {
	if h.Orders == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Order store is not configured"})
		return false
	}
	return true
}

// filterFromQuery reads ?week=YYYY-MM-DD&status=..&limit=..
func filterFromQuery(c *gin.Context) (store.OrderFilter, error) {
	var f store.OrderFilter
	if week := c.Query("week"); week != "" {
		d, err := checkout.ParseDate(week)
		if err != nil {
			return f, errors.New("invalid week, expected YYYY-MM-DD")
		}
		f.WeekStart = d.String()
	}
	if s := c.Query("status"); s != "" {
		status, ok := models.ParseOrderStatus(strings.ToLower(s))
		if !ok {
			return f, errors.New("invalid order status")
		}
		f.Status = status
	}
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 || n > 500 {
			return f, errors.New("limit must be between 1 and 500")
		}
		f.Limit = n
	}
	return f, nil
}

func (h *Handler) ListOrders(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	orders, err := h.Orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	order, err := h.Orders.GetOrder(c.Request.Context(), c.Param("ref"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	status, ok := models.ParseOrderStatus(strings.ToLower(req.Status))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
		return
	}
	err := h.Orders.UpdateOrderStatus(c.Request.Context(), c.Param("ref"), status)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "status": status})
}

func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	status, ok := models.ParsePaymentStatus(strings.ToLower(req.PaymentStatus))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment status"})
		return
	}
	err := h.Orders.UpdatePaymentStatus(c.Request.Context(), c.Param("ref"), status)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment status updated", "payment_status": status})
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	err := h.Orders.DeleteOrder(c.Request.Context(), c.Param("ref"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}
