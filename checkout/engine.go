package checkout

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Reason string

const (
	ReasonEmptyCart              Reason = "empty_cart"
	ReasonMissingContact         Reason = "missing_contact"
	ReasonMissingAddress         Reason = "missing_address"
	ReasonSchemaInvalid          Reason = "schema_invalid"
	ReasonCutoffNotAcknowledged  Reason = "cutoff_not_acknowledged"
	ReasonOutsideZoneNotAccepted Reason = "outside_zone_not_accepted"
)

const (
	maxNoteLength = 500
	maxOrderNotes = 4000
	minNameLength = 2
)

// Rejection is returned when a submission fails validation. It is always
// user-correctable.
type Rejection struct {
	Reason  Reason `json:"reason"`
	Field   string `json:"field,omitempty"`
	Message string `json:"error"`
}

func (r *Rejection) Error() string {
	if r.Field != "" {
		return fmt.Sprintf("%s (%s): %s", r.Reason, r.Field, r.Message)
	}
	return fmt.Sprintf("%s: %s", r.Reason, r.Message)
}

func reject(reason Reason, field, message string) *Rejection {
	return &Rejection{Reason: reason, Field: field, Message: message}
}

var validate = validator.New()

// ValidEmail reports whether s is a well-formed email address.
func ValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// Engine evaluates checkout submissions against Rules at the clock's "now".
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	rules Rules
	clock Clock
}

func NewEngine(rules Rules, clock Clock) *Engine {
	return &Engine{rules: rules, clock: clock}
}

func (e *Engine) Rules() Rules { return e.rules }

// Evaluate validates req and, when every check passes, returns the priced
// order. Checks run in order and the first failure is returned:
// empty cart, contact, delivery address, field schema, cutoff
// acknowledgement, outside-zone acceptance.
func (e *Engine) Evaluate(req OrderRequest) (*NormalizedOrder, error) {
	if len(req.Lines) == 0 {
		return nil, reject(ReasonEmptyCart, "cartItems", "Add at least one meal to continue.")
	}

	fullName := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(req.Email)
	if len([]rune(fullName)) < minNameLength {
		return nil, reject(ReasonMissingContact, "fullName", "Name and email are required.")
	}
	if !ValidEmail(email) {
		return nil, reject(ReasonMissingContact, "email", "Name and email are required.")
	}

	fulfillment, err := ParseFulfillment(req.Fulfillment)
	if err != nil {
		return nil, reject(ReasonSchemaInvalid, "fulfillment", err.Error())
	}
	addr := trimAddress(req.Address)
	if fulfillment == FulfillmentDelivery {
		if addr.Line1 == "" || addr.City == "" || addr.State == "" || addr.PostalCode == "" {
			return nil, reject(ReasonMissingAddress, "address", "Address is required for delivery orders.")
		}
	} else {
		addr = Address{}
	}

	parsed, rej := e.checkSchema(req)
	if rej != nil {
		return nil, rej
	}

	now := e.clock.Now()
	afterCutoff := e.rules.IsAfterCutoff(now)
	if afterCutoff && !req.ScheduleNextWindow {
		return nil, reject(ReasonCutoffNotAcknowledged, "scheduleNextWindow",
			"Cutoff reached. Confirm scheduling for the next window to continue.")
	}

	outsideZone := fulfillment == FulfillmentDelivery &&
		e.rules.IsOutsideZone(addr.PostalCode, addr.County, addr.State)
	if outsideZone && !req.OutsideZoneAccepted {
		return nil, reject(ReasonOutsideZoneNotAccepted, "outsideZoneAccepted",
			"Please confirm the outside-zone delivery fee to continue.")
	}

	scheduleNext := afterCutoff && req.ScheduleNextWindow
	lines := normalizeLines(req.Lines)
	notes := strings.TrimSpace(req.Notes)
	if notes == "" {
		notes = CartNotes(lines)
	}
	source := strings.TrimSpace(req.SubmissionSource)
	if source == "" {
		source = "web"
	}

	return &NormalizedOrder{
		FullName:            fullName,
		Email:               email,
		Phone:               strings.TrimSpace(req.Phone),
		ContactPreference:   parsed.contact,
		SMSConsent:          req.SMSConsent,
		Fulfillment:         fulfillment,
		DeliveryDay:         parsed.day,
		TimeWindow:          parsed.window,
		Address:             addr,
		Notes:               notes,
		Lines:               lines,
		SubmissionSource:    source,
		OutsideZoneAccepted: outsideZone && req.OutsideZoneAccepted,
		ScheduleNextWindow:  scheduleNext,
		Pricing:             e.rules.ComputeTotal(Subtotal(lines), fulfillment, outsideZone, req.OutsideZoneAccepted),
		Eligibility: Eligibility{
			AfterCutoff:        afterCutoff,
			OutsideZone:        outsideZone,
			ScheduledWeekStart: ResolveScheduledWeek(now, parsed.day, afterCutoff, req.ScheduleNextWindow),
		},
	}, nil
}

type parsedFields struct {
	day     DeliveryDay
	contact ContactPreference
	window  string
}

func (e *Engine) checkSchema(req OrderRequest) (parsedFields, *Rejection) {
	var p parsedFields
	var err error
	if p.day, err = ParseDeliveryDay(req.DeliveryDay); err != nil {
		return p, reject(ReasonSchemaInvalid, "deliveryDay", err.Error())
	}
	if p.contact, err = ParseContactPreference(req.ContactPreference); err != nil {
		return p, reject(ReasonSchemaInvalid, "contactPreference", err.Error())
	}
	p.window = strings.TrimSpace(req.TimeWindow)
	if !e.isTimeWindow(p.window) {
		return p, reject(ReasonSchemaInvalid, "timeWindow", fmt.Sprintf("unknown time window %q", req.TimeWindow))
	}
	if len(req.Notes) > maxOrderNotes {
		return p, reject(ReasonSchemaInvalid, "notes", "notes are too long")
	}
	for i, l := range req.Lines {
		field := fmt.Sprintf("cartItems[%d]", i)
		switch {
		case strings.TrimSpace(l.ItemID) == "":
			return p, reject(ReasonSchemaInvalid, field+".itemId", "item id is required")
		case strings.TrimSpace(l.Name) == "":
			return p, reject(ReasonSchemaInvalid, field+".name", "item name is required")
		case l.Quantity < 1:
			return p, reject(ReasonSchemaInvalid, field+".quantity", "quantity must be a positive whole number")
		case l.UnitPrice.IsNegative():
			return p, reject(ReasonSchemaInvalid, field+".price", "price must not be negative")
		case len(l.Notes.Allergies) > maxNoteLength,
			len(l.Notes.DietaryPreferences) > maxNoteLength,
			len(l.Notes.SpecialRequests) > maxNoteLength:
			return p, reject(ReasonSchemaInvalid, field+".notes", "item notes are too long")
		}
	}
	return p, nil
}

func (e *Engine) isTimeWindow(w string) bool {
	for _, tw := range e.rules.TimeWindows {
		if tw == w {
			return true
		}
	}
	return false
}

func trimAddress(a Address) Address {
	return Address{
		Line1:      strings.TrimSpace(a.Line1),
		Line2:      strings.TrimSpace(a.Line2),
		City:       strings.TrimSpace(a.City),
		State:      strings.TrimSpace(a.State),
		PostalCode: strings.TrimSpace(a.PostalCode),
		County:     strings.TrimSpace(a.County),
	}
}

func normalizeLines(in []CartLine) []CartLine {
	out := make([]CartLine, len(in))
	for i, l := range in {
		out[i] = CartLine{
			ItemID:    strings.TrimSpace(l.ItemID),
			Name:      strings.TrimSpace(l.Name),
			UnitPrice: money(l.UnitPrice),
			Quantity:  l.Quantity,
			Notes: ItemNotes{
				Allergies:          strings.TrimSpace(l.Notes.Allergies),
				DietaryPreferences: strings.TrimSpace(l.Notes.DietaryPreferences),
				SpecialRequests:    strings.TrimSpace(l.Notes.SpecialRequests),
			},
		}
	}
	return out
}

// CartNotes summarizes per-item notes, one line per item that has any.
func CartNotes(lines []CartLine) string {
	var out []string
	for _, l := range lines {
		var parts []string
		if l.Notes.Allergies != "" {
			parts = append(parts, "Allergies: "+l.Notes.Allergies)
		}
		if l.Notes.DietaryPreferences != "" {
			parts = append(parts, "Dietary: "+l.Notes.DietaryPreferences)
		}
		if l.Notes.SpecialRequests != "" {
			parts = append(parts, "Requests: "+l.Notes.SpecialRequests)
		}
		if len(parts) == 0 {
			continue
		}
		out = append(out, fmt.Sprintf("%s x%d - %s", l.Name, l.Quantity, strings.Join(parts, " | ")))
	}
	return strings.Join(out, "\n")
}
