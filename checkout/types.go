package checkout

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Fulfillment string
type DeliveryDay string
type ContactPreference string

const (
	FulfillmentDelivery Fulfillment = "delivery"
	FulfillmentPickup   Fulfillment = "pickup"

	DeliverySunday DeliveryDay = "sunday"
	DeliveryMonday DeliveryDay = "monday"

	ContactEmail  ContactPreference = "email"
	ContactPhone  ContactPreference = "phone"
	ContactEither ContactPreference = "either"
)

// ParseFulfillment maps a raw string to a Fulfillment.
func ParseFulfillment(s string) (Fulfillment, error) {
	switch Fulfillment(strings.ToLower(strings.TrimSpace(s))) {
	case FulfillmentDelivery:
		return FulfillmentDelivery, nil
	case FulfillmentPickup:
		return FulfillmentPickup, nil
	default:
		return "", fmt.Errorf("invalid fulfillment %q", s)
	}
}

// ParseDeliveryDay maps a raw string to a DeliveryDay.
func ParseDeliveryDay(s string) (DeliveryDay, error) {
	switch DeliveryDay(strings.ToLower(strings.TrimSpace(s))) {
	case DeliverySunday:
		return DeliverySunday, nil
	case DeliveryMonday:
		return DeliveryMonday, nil
	default:
		return "", fmt.Errorf("invalid delivery day %q", s)
	}
}

// ParseContactPreference maps a raw string to a ContactPreference. Empty means email.
func ParseContactPreference(s string) (ContactPreference, error) {
	switch ContactPreference(strings.ToLower(strings.TrimSpace(s))) {
	case "", ContactEmail:
		return ContactEmail, nil
	case ContactPhone:
		return ContactPhone, nil
	case ContactEither:
		return ContactEither, nil
	default:
		return "", fmt.Errorf("invalid contact preference %q", s)
	}
}

type ItemNotes struct {
	Allergies          string `json:"allergies"`
	DietaryPreferences string `json:"dietaryPreferences"`
	SpecialRequests    string `json:"specialRequests"`
}

func (n ItemNotes) IsEmpty() bool {
	return n.Allergies == "" && n.DietaryPreferences == "" && n.SpecialRequests == ""
}

type CartLine struct {
	ItemID    string          `json:"itemId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Notes     ItemNotes       `json:"notes"`
}

// LineTotal is unit price times quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Address struct {
	Line1      string `json:"addressLine1,omitempty"`
	Line2      string `json:"addressLine2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	County     string `json:"county,omitempty"`
}

// OrderRequest is the raw checkout submission. Fulfillment, DeliveryDay and
// ContactPreference hold unparsed caller input; the engine rejects values
// outside their enumerations.
type OrderRequest struct {
	FullName          string
	Email             string
	Phone             string
	ContactPreference string
	SMSConsent        bool
	Fulfillment       string
	DeliveryDay       string
	TimeWindow        string
	Address           Address
	Notes             string
	Lines             []CartLine
	SubmissionSource  string

	// Caller confirmations of conditions the engine re-derives.
	OutsideZoneAccepted bool
	ScheduleNextWindow  bool
}

type PricingResult struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryFee    decimal.Decimal `json:"deliveryFee"`
	OutsideZoneFee decimal.Decimal `json:"outsideZoneFee"`
	Total          decimal.Decimal `json:"total"`
}

type Eligibility struct {
	AfterCutoff        bool `json:"afterCutoff"`
	OutsideZone        bool `json:"outsideZone"`
	ScheduledWeekStart Date `json:"scheduledWeekStart"`
}

// NormalizedOrder is an accepted, priced order ready to be persisted.
type NormalizedOrder struct {
	FullName            string
	Email               string
	Phone               string
	ContactPreference   ContactPreference
	SMSConsent          bool
	Fulfillment         Fulfillment
	DeliveryDay         DeliveryDay
	TimeWindow          string
	Address             Address
	Notes               string
	Lines               []CartLine
	SubmissionSource    string
	OutsideZoneAccepted bool
	ScheduleNextWindow  bool

	Pricing     PricingResult
	Eligibility Eligibility
}
