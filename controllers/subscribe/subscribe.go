package subscribeControllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/rivaleats-api/models"
	"github.com/junaidrashid-git/rivaleats-api/monitoring"
	"github.com/junaidrashid-git/rivaleats-api/notify"
	"github.com/junaidrashid-git/rivaleats-api/signup"
	"github.com/junaidrashid-git/rivaleats-api/store"
)

const route = "/api/subscribe"

type Handler struct {
	Subscribers store.SubscriberStore // nil: accept in dry-run mode
	Notifier    notify.Notifier
	Metrics     *monitoring.Metrics
}

type SubscribeRequest struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	ContactPreference string `json:"contactPreference"`
	SMSConsent        bool   `json:"smsConsent"`
}

func (h *Handler) count(outcome string) {
	if h.Metrics != nil {
		h.Metrics.Subscriptions.WithLabelValues(outcome).Inc()
	}
}

// Subscribe adds an email (and optionally a phone) to the weekly menu list.
func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.count("rejected")
		monitoring.LogAPIEvent(monitoring.APIEvent{Route: route, Status: http.StatusBadRequest, Message: "Malformed signup body", Details: err.Error()})
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		return
	}

	s, err := signup.Validate(signup.Request{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		ContactPreference: req.ContactPreference,
		SMSConsent:        req.SMSConsent,
	})
	if err != nil {
		h.count("rejected")
		if errors.Is(err, signup.ErrSMSConsentMissing) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	if h.Subscribers == nil {
		h.count("dry_run")
		monitoring.LogAPIEvent(monitoring.APIEvent{
			Route:   route,
			Status:  http.StatusAccepted,
			Message: "Dry-run subscribe: database not configured",
			Meta:    map[string]any{"email": s.Email},
		})
		c.JSON(http.StatusAccepted, gin.H{
			"ok":      true,
			"message": "Database is not configured. Subscription accepted in dry-run mode.",
		})
		return
	}

	sub := models.Subscriber{
		FirstName:         s.FirstName,
		LastName:          s.LastName,
		Email:             s.Email,
		Phone:             s.Phone,
		ContactPreference: string(s.ContactPreference),
		SMSConsent:        s.SMSConsent,
		Source:            "web",
	}
	if err := h.Subscribers.CreateSubscriber(c.Request.Context(), &sub); err != nil {
		h.count("failed")
		monitoring.LogAPIEvent(monitoring.APIEvent{
			Route:   route,
			Status:  http.StatusInternalServerError,
			Message: "Unable to save signup",
			Details: err.Error(),
			Meta:    map[string]any{"email": s.Email},
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Unable to save signup",
			"details": "signup store unavailable",
		})
		return
	}

	h.count("saved")
	monitoring.LogAPIEvent(monitoring.APIEvent{
		Route:   route,
		Status:  http.StatusCreated,
		Message: "Signup saved",
		Meta:    map[string]any{"email": s.Email},
	})
	if h.Notifier != nil {
		go func() {
			if err := h.Notifier.Notify(context.Background(), notify.NewEvent(notify.EventSignupCreated, sub)); err != nil {
				monitoring.LogAPIEvent(monitoring.APIEvent{Route: route, Message: "Signup notification failed", Details: err.Error()})
			}
		}()
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

// ListSubscribers is the admin view of the mailing list.
func (h *Handler) ListSubscribers(c *gin.Context) {
	if h.Subscribers == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Signup store is not configured"})
		return
	}
	subs, err := h.Subscribers.ListSubscribers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscribers"})
		return
	}
	c.JSON(http.StatusOK, subs)
}
