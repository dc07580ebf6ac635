package orderControllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/junaidrashid-git/rivaleats-api/checkout"
	"github.com/junaidrashid-git/rivaleats-api/models"
	"github.com/junaidrashid-git/rivaleats-api/monitoring"
	"github.com/junaidrashid-git/rivaleats-api/notify"
	"github.com/junaidrashid-git/rivaleats-api/store"
	"github.com/shopspring/decimal"
)

const orderRoute = "/api/order"

// Handler serves checkout submission and order administration.
type Handler struct {
	Engine   *checkout.Engine
	Orders   store.OrderStore // nil: accept in dry-run mode
	Notifier notify.Notifier
	Metrics  *monitoring.Metrics
}

// -------- Request Structs --------

type CartItemRequest struct {
	ItemID   string             `json:"itemId"`
	Name     string             `json:"name"`
	Price    decimal.Decimal    `json:"price"`
	Quantity int                `json:"quantity"`
	Notes    checkout.ItemNotes `json:"notes"`
}

// SubmitOrderRequest is the checkout body. Subtotal, fee and cutoff fields
// are the client's own computation and are only compared for drift.
type SubmitOrderRequest struct {
	FullName            string            `json:"fullName"`
	Email               string            `json:"email"`
	Phone               string            `json:"phone"`
	ContactPreference   string            `json:"contactPreference"`
	SMSConsent          bool              `json:"smsConsent"`
	Fulfillment         string            `json:"fulfillment"`
	DeliveryDay         string            `json:"deliveryDay"`
	TimeWindow          string            `json:"timeWindow"`
	AddressLine1        string            `json:"addressLine1"`
	AddressLine2        string            `json:"addressLine2"`
	City                string            `json:"city"`
	State               string            `json:"state"`
	PostalCode          string            `json:"postalCode"`
	County              string            `json:"county"`
	Notes               string            `json:"notes"`
	CartItems           []CartItemRequest `json:"cartItems"`
	OutsideZoneAccepted bool              `json:"outsideZoneAccepted"`
	ScheduleNextWindow  bool              `json:"scheduleNextWindow"`
	SubmissionSource    string            `json:"submissionSource"`

	Subtotal       *decimal.Decimal `json:"subtotal,omitempty"`
	DeliveryFee    *decimal.Decimal `json:"deliveryFee,omitempty"`
	OutsideZoneFee *decimal.Decimal `json:"outsideZoneFee,omitempty"`
	AfterCutoff    *bool            `json:"afterCutoff,omitempty"`
}

func (r SubmitOrderRequest) toCheckout() checkout.OrderRequest {
	lines := make([]checkout.CartLine, len(r.CartItems))
	for i, item := range r.CartItems {
		lines[i] = checkout.CartLine{
			ItemID:    item.ItemID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
		}
	}
	return checkout.OrderRequest{
		FullName:          r.FullName,
		Email:             r.Email,
		Phone:             r.Phone,
		ContactPreference: r.ContactPreference,
		SMSConsent:        r.SMSConsent,
		Fulfillment:       r.Fulfillment,
		DeliveryDay:       r.DeliveryDay,
		TimeWindow:        r.TimeWindow,
		Address: checkout.Address{
			Line1:      r.AddressLine1,
			Line2:      r.AddressLine2,
			City:       r.City,
			State:      r.State,
			PostalCode: r.PostalCode,
			County:     r.County,
		},
		Notes:               r.Notes,
		Lines:               lines,
		SubmissionSource:    r.SubmissionSource,
		OutsideZoneAccepted: r.OutsideZoneAccepted,
		ScheduleNextWindow:  r.ScheduleNextWindow,
	}
}

// -------- Helpers --------

// bindOrder decodes the body. It reports false after writing a 400.
func bindOrder(c *gin.Context, route string) (SubmitOrderRequest, bool) {
	var req SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		body := gin.H{"error": "Invalid JSON payload"}
		if errors.As(err, &typeErr) {
			body = gin.H{"error": "Validation failed", "details": typeErr.Field + ": expected " + typeErr.Type.String()}
		}
		monitoring.LogAPIEvent(monitoring.APIEvent{Route: route, Status: http.StatusBadRequest, Message: "Malformed order body", Details: err.Error()})
		c.JSON(http.StatusBadRequest, body)
		return req, false
	}
	return req, true
}

// orderFromNormalized builds the persisted record of an accepted order.
func orderFromNormalized(ref string, n *checkout.NormalizedOrder) models.Order {
	items := make([]models.OrderItem, len(n.Lines))
	for i, l := range n.Lines {
		items[i] = models.OrderItem{
			ItemID:             l.ItemID,
			Name:               l.Name,
			UnitPrice:          l.UnitPrice,
			Quantity:           l.Quantity,
			Allergies:          l.Notes.Allergies,
			DietaryPreferences: l.Notes.DietaryPreferences,
			SpecialRequests:    l.Notes.SpecialRequests,
		}
	}
	return models.Order{
		OrderRef:            ref,
		CustomerName:        n.FullName,
		Email:               n.Email,
		Phone:               n.Phone,
		ContactPreference:   string(n.ContactPreference),
		SMSConsent:          n.SMSConsent,
		DeliveryType:        string(n.Fulfillment),
		DeliveryDay:         string(n.DeliveryDay),
		TimeWindow:          n.TimeWindow,
		AddressLine1:        n.Address.Line1,
		AddressLine2:        n.Address.Line2,
		City:                n.Address.City,
		State:               n.Address.State,
		Zip:                 n.Address.PostalCode,
		County:              n.Address.County,
		Notes:               n.Notes,
		Subtotal:            n.Pricing.Subtotal,
		DeliveryFee:         n.Pricing.DeliveryFee,
		OutOfZoneFee:        n.Pricing.OutsideZoneFee,
		TotalPrice:          n.Pricing.Total,
		IsLateOrder:         n.Eligibility.AfterCutoff,
		OutsideZone:         n.Eligibility.OutsideZone,
		OutsideZoneAccepted: n.OutsideZoneAccepted,
		ScheduleNextWindow:  n.ScheduleNextWindow,
		ScheduledWeekStart:  n.Eligibility.ScheduledWeekStart.String(),
		Items:               items,
		SubmissionSource:    n.SubmissionSource,
		Status:              models.OrderStatusPending,
		PaymentStatus:       models.PaymentStatusPending,
	}
}

// clientDrift lists the client-computed values that disagree with the engine.
func clientDrift(req SubmitOrderRequest, n *checkout.NormalizedOrder) map[string]any {
	drift := map[string]any{}
	check := func(name string, client *decimal.Decimal, engine decimal.Decimal) {
		if client != nil && !client.Round(2).Equal(engine) {
			drift[name] = gin.H{"client": client.String(), "engine": engine.StringFixed(2)}
		}
	}
	check("subtotal", req.Subtotal, n.Pricing.Subtotal)
	check("deliveryFee", req.DeliveryFee, n.Pricing.DeliveryFee)
	check("outsideZoneFee", req.OutsideZoneFee, n.Pricing.OutsideZoneFee)
	if req.AfterCutoff != nil && *req.AfterCutoff != n.Eligibility.AfterCutoff {
		drift["afterCutoff"] = gin.H{"client": *req.AfterCutoff, "engine": n.Eligibility.AfterCutoff}
	}
	return drift
}

func (h *Handler) publish(order models.Order) {
	if h.Notifier == nil {
		return
	}
	go func() {
		err := h.Notifier.Notify(context.Background(), notify.NewEvent(notify.EventOrderAccepted, order))
		if err != nil {
			if h.Metrics != nil {
				h.Metrics.NotifyFailures.Inc()
			}
			monitoring.LogAPIEvent(monitoring.APIEvent{
				Route:   orderRoute,
				Message: "Order notification failed",
				Details: err.Error(),
				Meta:    map[string]any{"orderRef": order.OrderRef},
			})
		}
	}()
}

// -------- Handlers --------

// SubmitOrder evaluates a checkout and records it. 400 on rejection, 202 in
// dry-run mode, 500 when the store fails, 201 once the order is durable.
func (h *Handler) SubmitOrder(c *gin.Context) {
	req, ok := bindOrder(c, orderRoute)
	if !ok {
		return
	}

	normalized, err := h.Engine.Evaluate(req.toCheckout())
	if err != nil {
		var rej *checkout.Rejection
		if !errors.As(err, &rej) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to evaluate order"})
			return
		}
		if h.Metrics != nil {
			h.Metrics.OrdersRejected.WithLabelValues(string(rej.Reason)).Inc()
		}
		monitoring.LogAPIEvent(monitoring.APIEvent{
			Route:   orderRoute,
			Status:  http.StatusBadRequest,
			Message: "Order rejected",
			Details: rej.Error(),
			Meta:    map[string]any{"reason": rej.Reason},
		})
		c.JSON(http.StatusBadRequest, rej)
		return
	}

	if drift := clientDrift(req, normalized); len(drift) > 0 {
		monitoring.LogAPIEvent(monitoring.APIEvent{
			Route:   orderRoute,
			Message: "Client pricing drift",
			Details: drift,
			Meta:    map[string]any{"email": normalized.Email},
		})
	}

	if h.Orders == nil {
		if h.Metrics != nil {
			h.Metrics.OrdersAccepted.WithLabelValues(monitoring.ModeDryRun).Inc()
		}
		monitoring.LogAPIEvent(monitoring.APIEvent{
			Route:   orderRoute,
			Status:  http.StatusAccepted,
			Message: "Dry-run order: database not configured",
			Meta:    map[string]any{"email": normalized.Email},
		})
		c.JSON(http.StatusAccepted, gin.H{
			"ok":      true,
			"message": "Database is not configured. Order accepted in dry-run mode.",
		})
		return
	}

	order := orderFromNormalized(uuid.NewString(), normalized)
	if err := h.Orders.CreateOrder(c.Request.Context(), &order); err != nil {
		if h.Metrics != nil {
			h.Metrics.OrderStoreFailures.Inc()
		}
		monitoring.LogAPIEvent(monitoring.APIEvent{
			Route:   orderRoute,
			Status:  http.StatusInternalServerError,
			Message: "Unable to save order",
			Details: err.Error(),
			Meta:    map[string]any{"email": normalized.Email},
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Unable to save order",
			"details": "order store unavailable",
		})
		return
	}

	if h.Metrics != nil {
		h.Metrics.OrdersAccepted.WithLabelValues(monitoring.ModeCommitted).Inc()
		h.Metrics.OrderTotal.Observe(order.TotalPrice.InexactFloat64())
	}
	monitoring.LogAPIEvent(monitoring.APIEvent{
		Route:   orderRoute,
		Status:  http.StatusCreated,
		Message: "Order saved",
		Meta:    map[string]any{"email": order.Email, "fulfillment": order.DeliveryType, "orderRef": order.OrderRef},
	})
	h.publish(order)

	c.JSON(http.StatusCreated, gin.H{
		"ok":                 true,
		"orderRef":           order.OrderRef,
		"total":              order.TotalPrice.StringFixed(2),
		"scheduledWeekStart": order.ScheduledWeekStart,
	})
}

// Quote previews eligibility and pricing for the checkout page.
func (h *Handler) Quote(c *gin.Context) {
	req, ok := bindOrder(c, "/api/checkout/quote")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Engine.Quote(req.toCheckout()))
}
