package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending        OrderStatus = "pending"          // Accepted, awaiting kitchen confirmation
	OrderStatusConfirmed      OrderStatus = "confirmed"        // Confirmed for its scheduled week
	OrderStatusPrepared       OrderStatus = "prepared"         // Cooked and packed
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery" // On the road
	OrderStatusDelivered      OrderStatus = "delivered"        // Delivered to the customer
	OrderStatusPickedUp       OrderStatus = "picked_up"        // Collected by the customer
	OrderStatusCancelled      OrderStatus = "cancelled"

	// Payment is collected manually after acceptance; admins record the outcome.
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Order is the persisted record of an accepted checkout.
type Order struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	OrderRef string `gorm:"uniqueIndex;not null" json:"order_ref"`

	CustomerName      string `gorm:"not null" json:"customer_name"`
	Email             string `gorm:"index;not null" json:"email"`
	Phone             string `json:"phone,omitempty"`
	ContactPreference string `gorm:"type:VARCHAR(10);default:'email'" json:"contact_preference"`
	SMSConsent        bool   `json:"sms_consent"`

	DeliveryType string `gorm:"type:VARCHAR(10);not null" json:"delivery_type"`
	DeliveryDay  string `gorm:"type:VARCHAR(10);not null" json:"delivery_day"`
	TimeWindow   string `json:"time_window"`

	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Zip          string `json:"zip,omitempty"`
	County       string `json:"county,omitempty"`
	Notes        string `gorm:"type:TEXT" json:"notes,omitempty"`

	Subtotal     decimal.Decimal `gorm:"type:NUMERIC(10,2);not null" json:"subtotal"`
	DeliveryFee  decimal.Decimal `gorm:"type:NUMERIC(10,2);not null" json:"delivery_fee"`
	OutOfZoneFee decimal.Decimal `gorm:"type:NUMERIC(10,2);not null" json:"out_of_zone_fee"`
	TotalPrice   decimal.Decimal `gorm:"type:NUMERIC(10,2);not null" json:"total_price"`

	IsLateOrder         bool   `json:"is_late_order"`
	OutsideZone         bool   `json:"outside_zone"`
	OutsideZoneAccepted bool   `json:"outside_zone_accepted"`
	ScheduleNextWindow  bool   `json:"schedule_next_window"`
	ScheduledWeekStart  string `gorm:"type:VARCHAR(10);index;not null" json:"scheduled_week_start"`

	Items            []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	SubmissionSource string        `gorm:"default:'web'" json:"submission_source"`
	Status           OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus    PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// OrderItem is a cart line copied into the order at submission time.
type OrderItem struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	OrderID            uint            `gorm:"index" json:"order_id"`
	ItemID             string          `json:"item_id"`
	Name               string          `json:"name"`
	UnitPrice          decimal.Decimal `gorm:"type:NUMERIC(10,2)" json:"unit_price"`
	Quantity           int             `json:"quantity"`
	Allergies          string          `json:"allergies,omitempty"`
	DietaryPreferences string          `json:"dietary_preferences,omitempty"`
	SpecialRequests    string          `json:"special_requests,omitempty"`
}

// ParseOrderStatus maps a string to an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(s); st {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPrepared, OrderStatusOutForDelivery,
		OrderStatusDelivered, OrderStatusPickedUp, OrderStatusCancelled:
		return st, true
	}
	return "", false
}

// ParsePaymentStatus maps a string to a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch st := PaymentStatus(s); st {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded:
		return st, true
	}
	return "", false
}
